// Package source reads calendar events from files.
//
// Three formats are supported, selected by file extension in [Load]:
//
//   - JSON (.json): an array of events or an object with an "events" array,
//     times in RFC 3339
//   - YAML (.yaml, .yml): the same shapes as JSON
//   - iCalendar (.ics): VEVENT components, mapped onto [calendar.Event]
//
// Readers never validate events beyond what decoding requires. Malformed
// events are passed through so the document assembler can report them.
package source
