// Package pipeline provides the load → assemble → render pipeline for weekplan.
//
// The CLI and the HTTP server both drive documents through a [Runner] so
// that validation, cache keys and defaults are identical for every entry
// point.
//
// # Stages
//
//  1. Load: read events from a file (JSON, YAML, iCalendar) or take them
//     from [Options.Events], and resolve the layout configuration
//  2. Assemble: build the eight-page [document.Document]
//  3. Render: produce the requested output formats (SVG, PNG, PDF, JSON)
//
// Assembled documents and rendered artifacts are cached independently, so a
// new output format for an unchanged week reuses the cached document.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    EventsPath: "week.ics",
//	    WeekStart:  monday,
//	    Formats:    []string{"pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts["pdf"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weekplan/pkg/cache"
	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/config"
	"github.com/matzehuels/weekplan/pkg/render/planner/document"
	"github.com/matzehuels/weekplan/pkg/render/planner/links"
)

const (
	// DefaultParallel is the number of pages rendered at once.
	DefaultParallel = 4

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultSource tags events from iCalendar files without an explicit source.
	DefaultSource = calendar.SourceGoogle
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// PerPage reports whether format produces one artifact per page.
func PerPage(format string) bool {
	return format == FormatSVG || format == FormatPNG
}

// ArtifactName is the [Result.Artifacts] key for format. Per-page formats
// are keyed "svg/3"; whole-document formats by the format alone.
func ArtifactName(format string, page int) string {
	if !PerPage(format) {
		return format
	}
	return fmt.Sprintf("%s/%d", format, page)
}

// Options contains all configuration for one pipeline run.
// The JSON form is the request body of the HTTP endpoint.
type Options struct {
	// Input
	EventsPath string           `json:"-"`
	Events     []calendar.Event `json:"events,omitempty"`
	Source     calendar.Source  `json:"source,omitempty"` // tag for .ics events
	WeekStart  time.Time        `json:"week_start"`

	// Layout
	ConfigPath string               `json:"-"`
	Config     *config.LayoutConfig `json:"-"`
	Parallel   int                  `json:"parallel,omitempty"`

	// Render
	Formats    []string `json:"formats,omitempty"`
	Pages      []int    `json:"pages,omitempty"` // pages for svg/png, default all
	FontFamily string   `json:"font_family,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	WithOps    bool     `json:"with_ops,omitempty"` // include draw ops in JSON
	Refresh    bool     `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Document *document.Document

	// Artifacts contains rendered outputs keyed by [ArtifactName].
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EventCount    int
	Diagnostics   int
	DegradedPages int
	LoadTime      time.Duration
	AssembleTime  time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	DocumentHit bool // assembled document came from cache
	RenderHit   bool // every artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	if err := ValidateFormats(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.WeekStart.IsZero() {
		return errors.New(errors.ErrCodeInvalidWeek, "week start is required")
	}
	if o.EventsPath != "" && len(o.Events) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "events path and inline events are mutually exclusive")
	}
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if !o.Source.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "unknown source %q", o.Source)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if len(o.Pages) == 0 {
		o.Pages = make([]int, links.PageCount)
		for i := range o.Pages {
			o.Pages[i] = i
		}
	}
	for _, p := range o.Pages {
		if p < 0 || p >= links.PageCount {
			return errors.New(errors.ErrCodeInvalidInput, "page %d out of range 0-%d", p, links.PageCount-1)
		}
	}
	if o.Parallel <= 0 {
		o.Parallel = DefaultParallel
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutConfig returns the configured layout, loading ConfigPath if set.
func (o *Options) LayoutConfig() (config.LayoutConfig, error) {
	switch {
	case o.Config != nil:
		return *o.Config, o.Config.Validate()
	case o.ConfigPath != "":
		return config.Load(o.ConfigPath)
	}
	return config.Default(), nil
}

// DocumentKeyOpts returns cache key options for the assembled document.
func (o *Options) DocumentKeyOpts(cfg config.LayoutConfig) cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{
		WeekStart:  o.WeekStart.Format(time.RFC3339),
		ConfigHash: cache.Hash(config.Fingerprint(cfg)),
	}
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(format string, page int) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		Page:       -1,
		FontFamily: o.FontFamily,
	}
	if PerPage(format) {
		opts.Page = page
	}
	if format == FormatJSON {
		opts.WithOps = o.WithOps
	}
	return opts
}
