// Package sink provides output format renderers for planner documents.
//
// # Overview
//
// A "sink" transforms an assembled [document.Document] into a final output
// format:
//
//   - SVG: one file per page, link regions as <a> elements
//   - JSON: document summary for external tools, optionally with draw ops
//   - PDF: every page in one print-ready file (requires rsvg-convert)
//   - PNG: a single page as a raster image (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] renders one page; [RenderSVGPages] renders all of them in
// document order. Link regions become transparent rectangles wrapped in
// anchors whose href comes from [WithHref]. The default points at
// "#page-N", which suits viewers that concatenate pages.
//
//	pages := sink.RenderSVGPages(doc, sink.WithHref(func(i int) string {
//	    return fmt.Sprintf("page-%d.svg", i)
//	}))
//
// # JSON Output
//
// [RenderJSON] writes document metadata, per-page statistics, cards, links
// and diagnostics. [WithJSONOps] adds the raw drawing operations.
package sink
