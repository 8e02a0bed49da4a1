// Package planner is the root of the planner layout engine.
//
// The engine is split into small packages that build on each other:
//
//   - [config]: page sizes, time window, lane cap and palette
//   - [grid]: time-to-row mapping for the visible window
//   - [lanes]: overlap grouping and lane assignment
//   - [draw]: format-neutral drawing operations
//   - [styles]: colors and text fitting
//   - [layout]: weekly and daily page composition
//   - [links]: cross-page link resolution
//   - [document]: the eight-page assembler
//   - [sink]: JSON, SVG and PDF output
//
// Nothing under planner performs I/O except [sink], which shells out to
// rsvg-convert for PDF and PNG.
//
// [config]: github.com/matzehuels/weekplan/pkg/render/planner/config
// [grid]: github.com/matzehuels/weekplan/pkg/render/planner/grid
// [lanes]: github.com/matzehuels/weekplan/pkg/render/planner/lanes
// [draw]: github.com/matzehuels/weekplan/pkg/render/planner/draw
// [styles]: github.com/matzehuels/weekplan/pkg/render/planner/styles
// [layout]: github.com/matzehuels/weekplan/pkg/render/planner/layout
// [links]: github.com/matzehuels/weekplan/pkg/render/planner/links
// [document]: github.com/matzehuels/weekplan/pkg/render/planner/document
// [sink]: github.com/matzehuels/weekplan/pkg/render/planner/sink
package planner
