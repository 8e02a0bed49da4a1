// Package styles provides text fitting and color helpers for planner pages.
//
// Text metrics are estimated, not measured: every character is assumed to
// be fontCharWidth em wide. The estimate is deliberately generous so that
// text fitted here stays inside its box for common sans-serif fonts.
//
// Wrapping uses muesli/reflow: words are wrapped first and words longer
// than a line are then hard-wrapped. Colors are handled with go-colorful.
package styles
