// Package links turns the local anchors of rendered pages into link regions
// with final page indices.
//
// A document has a fixed page order: the weekly overview at index 0 and the
// seven daily pages at indices 1 through 7. [Build] runs once, after every
// page is rendered, and checks the navigation graph as a whole:
//
//   - every weekly day header links to exactly its daily page
//   - every daily page links back to the overview at least once
//   - prev and next buttons exist except at the edges of the week and point
//     at the neighbouring day
//   - no link region overlaps an event card
//
// Any violation is a [errors.LinkError]. A broken graph is never repaired.
package links
