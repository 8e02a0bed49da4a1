// Package document assembles a week of calendar events into a paginated,
// hyperlinked planner document.
//
// A [Document] always has eight pages: the weekly overview followed by one
// page per day. [Assembler.Assemble] validates the events, partitions them
// by local calendar day, renders every page through the layout engine,
// resolves navigation links once all pages are done, and returns the
// document together with its diagnostics.
//
// # Degradation
//
// Bad input never aborts a document. Malformed events, events outside the
// visible window and lane overflow are reported as [errors.Diagnostic]
// values. A page whose render fails or panics is replaced by a placeholder
// that keeps the page's navigation anchors. The only fatal failure is an
// inconsistent link graph, returned as an [errors.LinkError].
//
// # Concurrency
//
// Pages are independent, so [WithParallel] renders them concurrently. Link
// resolution always waits for every page.
package document
