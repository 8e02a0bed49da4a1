// Package pkg provides the core libraries for the weekplan planner renderer.
//
// # Overview
//
// Weekplan turns a week of calendar events into an eight-page planner: one
// landscape weekly overview followed by seven portrait daily pages, with
// navigation links between them. The pkg directory is organized into a few
// areas:
//
//  1. [calendar] - The event model and week helpers
//  2. [render/planner] - The layout engine (grid, lanes, pages, links)
//  3. [source] - Event loading from JSON, YAML and iCalendar files
//  4. [cache] - Render caching (file, Redis, no-op)
//  5. [pipeline] - Orchestration (load → assemble → render)
//
// # Architecture
//
// The typical data flow:
//
//	Events file (.json / .yaml / .ics)
//	         ↓
//	    [source] package (parse into calendar.Event values)
//	         ↓
//	    [render/planner/document] (validate, lay out eight pages, link)
//	         ↓
//	    [render/planner/sink] (JSON, SVG, PDF, PNG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/weekplan/pkg/calendar"
//	    "github.com/matzehuels/weekplan/pkg/render/planner/config"
//	    "github.com/matzehuels/weekplan/pkg/render/planner/document"
//	    "github.com/matzehuels/weekplan/pkg/render/planner/sink"
//	    "github.com/matzehuels/weekplan/pkg/source"
//	)
//
//	events, _ := source.Load("week.json", calendar.SourceGoogle)
//	doc, _ := document.NewAssembler(config.Default()).Assemble(ctx, events, monday)
//	svg, _ := sink.RenderSVG(doc, 0)
//
// Most callers should use [pipeline] instead, which adds caching, format
// selection and statistics.
//
// # Error Handling
//
// Bad events never abort a document. They surface as diagnostics on the
// document ([errors.Diagnostic]). Fatal failures use the structured
// [errors.Error] type with a stable code.
//
// [calendar]: https://pkg.go.dev/github.com/matzehuels/weekplan/pkg/calendar
// [render/planner]: https://pkg.go.dev/github.com/matzehuels/weekplan/pkg/render/planner
// [render/planner/document]: https://pkg.go.dev/github.com/matzehuels/weekplan/pkg/render/planner/document
// [render/planner/sink]: https://pkg.go.dev/github.com/matzehuels/weekplan/pkg/render/planner/sink
// [source]: https://pkg.go.dev/github.com/matzehuels/weekplan/pkg/source
// [cache]: https://pkg.go.dev/github.com/matzehuels/weekplan/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/weekplan/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/weekplan/pkg/errors
package pkg
