// Package render turns planner documents into files.
//
// # Overview
//
// The layout engine in [planner] produces format-neutral drawing operations.
// This package holds the pieces that touch real output formats:
//
//   - Generic format conversion (SVG to PDF/PNG) via rsvg-convert
//   - The planner pipeline (in [planner] and its subpackages)
//
// # Format Conversion
//
// [ToPDF] accepts several SVG pages and produces one multi-page PDF, which is
// how a week of planner pages becomes a single printable file:
//
//	pages := sink.RenderSVGPages(doc)
//	pdf, err := render.ToPDF(ctx, pages...)
//	png, err := render.ToPNG(ctx, pages[0], 2.0)  // 2x scale
//
// Both require the external rsvg-convert tool from librsvg.
//
// [planner]: github.com/matzehuels/weekplan/pkg/render/planner
package render
