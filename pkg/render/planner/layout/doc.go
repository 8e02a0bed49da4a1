// Package layout computes the geometry of planner pages.
//
// The engine renders two page variants from one [config.LayoutConfig]:
//
//   - the weekly overview: seven day columns side by side over a shared
//     time axis, with a clickable header per day
//   - the daily page: one wide day column whose cards expose notes and
//     action items, with buttons back to the overview and to the
//     neighbouring days
//
// Both variants draw in the same order: page border, header, statistics
// band, legend band, time grid, event cards, footer. Output is a list of
// [draw.Op] values plus [Anchor] values naming where each navigation
// element should jump. Anchors use local targets (the overview, or "day 3");
// turning them into page indices is left to the links package.
//
// Rendering is a pure function of the [PageSpec] and the configuration, so
// pages can be rendered concurrently and re-rendering yields identical
// operations.
package layout
