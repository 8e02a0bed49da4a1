// Package calendar defines the event model consumed by the planner engine.
//
// Events are supplied per render call by an external source (a provider
// sync, a JSON export, an .ics file). The engine only reads them; it never
// mutates, deduplicates or persists events.
//
// Every event carries a [Source] tag from a closed set. The tag drives
// styling and the legend, nothing else. An optional [Status] distinguishes
// confirmed appointments from canceled ones; canceled events are still drawn
// but do not count toward scheduled time.
package calendar
