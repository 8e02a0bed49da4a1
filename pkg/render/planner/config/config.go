// Package config holds the immutable layout configuration shared by every
// planner component.
//
// A [LayoutConfig] is a plain value: it contains no maps, slices or
// pointers, so passing it by value gives each component its own copy and no
// component can change what another one sees. The weekly and daily page
// variants read the same grid, lane and card settings and differ only in the
// [PageConfig] they are handed.
//
// Configurations are usually built from [Default] and optionally overlaid
// with a TOML or YAML file via [Load].
package config

import (
	"github.com/matzehuels/weekplan/pkg/calendar"
)

// Orientation of a physical page.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// LayoutConfig is the complete geometry and palette of a planner document.
type LayoutConfig struct {
	Grid    GridConfig `toml:"grid" yaml:"grid" json:"grid"`
	Lanes   LaneConfig `toml:"lanes" yaml:"lanes" json:"lanes"`
	Card    CardConfig `toml:"card" yaml:"card" json:"card"`
	Weekly  PageConfig `toml:"weekly" yaml:"weekly" json:"weekly"`
	Daily   PageConfig `toml:"daily" yaml:"daily" json:"daily"`
	Palette Palette    `toml:"palette" yaml:"palette" json:"palette"`
}

// GridConfig defines the visible time window. The window covers
// [StartMinute, StartMinute + SlotMinutes*SlotCount) minutes after local
// midnight.
type GridConfig struct {
	StartMinute int `toml:"start_minute" yaml:"start_minute" json:"start_minute"`
	SlotMinutes int `toml:"slot_minutes" yaml:"slot_minutes" json:"slot_minutes"`
	SlotCount   int `toml:"slot_count" yaml:"slot_count" json:"slot_count"`
}

// EndMinute returns the first minute after the visible window.
func (g GridConfig) EndMinute() int { return g.StartMinute + g.SlotMinutes*g.SlotCount }

// WindowMinutes returns the length of the visible window in minutes.
func (g GridConfig) WindowMinutes() int { return g.SlotMinutes * g.SlotCount }

// LaneConfig bounds side-by-side placement of overlapping events.
// Events beyond Cap concurrent lanes are stacked into the last lane.
type LaneConfig struct {
	Cap     int     `toml:"cap" yaml:"cap" json:"cap"`
	Padding float64 `toml:"padding" yaml:"padding" json:"padding"`
}

// CardConfig controls event card geometry and typography.
//
// MinSlots is the legibility floor: no card is drawn shorter than
// MinSlots slot heights, even when the event is shorter. Cards near the
// bottom of the grid are clipped to the grid instead.
type CardConfig struct {
	MinSlots    float64 `toml:"min_slots" yaml:"min_slots" json:"min_slots"`
	Padding     float64 `toml:"padding" yaml:"padding" json:"padding"`
	StripeWidth float64 `toml:"stripe_width" yaml:"stripe_width" json:"stripe_width"`
	TitleSize   float64 `toml:"title_size" yaml:"title_size" json:"title_size"`
	BodySize    float64 `toml:"body_size" yaml:"body_size" json:"body_size"`
	LineHeight  float64 `toml:"line_height" yaml:"line_height" json:"line_height"`
}

// PageConfig is the chrome geometry of one page variant, in points.
type PageConfig struct {
	Width              float64     `toml:"width" yaml:"width" json:"width"`
	Height             float64     `toml:"height" yaml:"height" json:"height"`
	Orientation        Orientation `toml:"orientation" yaml:"orientation" json:"orientation"`
	Margin             float64     `toml:"margin" yaml:"margin" json:"margin"`
	HeaderHeight       float64     `toml:"header_height" yaml:"header_height" json:"header_height"`
	StatsHeight        float64     `toml:"stats_height" yaml:"stats_height" json:"stats_height"`
	LegendHeight       float64     `toml:"legend_height" yaml:"legend_height" json:"legend_height"`
	ColumnHeaderHeight float64     `toml:"column_header_height" yaml:"column_header_height" json:"column_header_height"`
	FooterHeight       float64     `toml:"footer_height" yaml:"footer_height" json:"footer_height"`
	TimeColumnWidth    float64     `toml:"time_column_width" yaml:"time_column_width" json:"time_column_width"`
	ButtonWidth        float64     `toml:"button_width" yaml:"button_width" json:"button_width"`
	ButtonHeight       float64     `toml:"button_height" yaml:"button_height" json:"button_height"`
	TitleSize          float64     `toml:"title_size" yaml:"title_size" json:"title_size"`
	SubtitleSize       float64     `toml:"subtitle_size" yaml:"subtitle_size" json:"subtitle_size"`
	LabelSize          float64     `toml:"label_size" yaml:"label_size" json:"label_size"`
}

// GridTop returns the y coordinate of the first slot row.
func (p PageConfig) GridTop() float64 {
	return p.Margin + p.HeaderHeight + p.StatsHeight + p.LegendHeight + p.ColumnHeaderHeight
}

// GridBottom returns the y coordinate below the last slot row.
func (p PageConfig) GridBottom() float64 {
	return p.Height - p.Margin - p.FooterHeight
}

// GridHeight returns the vertical space available to slot rows.
func (p PageConfig) GridHeight() float64 { return p.GridBottom() - p.GridTop() }

// SlotHeight returns the height of one slot row when slots rows share the
// grid evenly.
func (p PageConfig) SlotHeight(slots int) float64 {
	if slots <= 0 {
		return 0
	}
	return p.GridHeight() / float64(slots)
}

// ContentLeft returns the x coordinate of the inner page edge.
func (p PageConfig) ContentLeft() float64 { return p.Margin }

// ContentWidth returns the width inside the margins.
func (p PageConfig) ContentWidth() float64 { return p.Width - 2*p.Margin }

// Palette holds every color used by the planner as "#rrggbb" strings.
type Palette struct {
	Ink            string      `toml:"ink" yaml:"ink" json:"ink"`
	Muted          string      `toml:"muted" yaml:"muted" json:"muted"`
	Border         string      `toml:"border" yaml:"border" json:"border"`
	GridLine       string      `toml:"grid_line" yaml:"grid_line" json:"grid_line"`
	HourShade      string      `toml:"hour_shade" yaml:"hour_shade" json:"hour_shade"`
	Panel          string      `toml:"panel" yaml:"panel" json:"panel"`
	Button         string      `toml:"button" yaml:"button" json:"button"`
	FreeSlot       string      `toml:"free_slot" yaml:"free_slot" json:"free_slot"`
	SimplePractice SourceStyle `toml:"simplepractice" yaml:"simplepractice" json:"simplepractice"`
	Google         SourceStyle `toml:"google" yaml:"google" json:"google"`
	Holiday        SourceStyle `toml:"holiday" yaml:"holiday" json:"holiday"`
	Manual         SourceStyle `toml:"manual" yaml:"manual" json:"manual"`
}

// SourceStyle is the card treatment for one event source.
type SourceStyle struct {
	Fill   string `toml:"fill" yaml:"fill" json:"fill"`
	Stroke string `toml:"stroke" yaml:"stroke" json:"stroke"`
	Dashed bool   `toml:"dashed" yaml:"dashed" json:"dashed"`
}

// Source returns the style for s. Unknown sources use the manual style.
func (p Palette) Source(s calendar.Source) SourceStyle {
	switch s {
	case calendar.SourceSimplePractice:
		return p.SimplePractice
	case calendar.SourceGoogle:
		return p.Google
	case calendar.SourceHoliday:
		return p.Holiday
	}
	return p.Manual
}
