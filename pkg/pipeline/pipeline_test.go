package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/weekplan/pkg/cache"
	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
)

var monday = time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)

func sampleEvents() []calendar.Event {
	return []calendar.Event{
		{
			ID:     "a",
			Title:  "Intake",
			Start:  monday.Add(9 * time.Hour),
			End:    monday.Add(10 * time.Hour),
			Source: calendar.SourceSimplePractice,
		},
		{
			ID:     "b",
			Title:  "Team sync",
			Start:  monday.AddDate(0, 0, 2).Add(14 * time.Hour),
			End:    monday.AddDate(0, 0, 2).Add(15 * time.Hour),
			Source: calendar.SourceGoogle,
		},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"svg", []string{"svg"}, false},
		{"SVG, pdf", []string{"svg", "pdf"}, false},
		{"json,,png", []string{"json", "png"}, false},
		{"", nil, false},
		{"svg,docx", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	o := Options{WeekStart: monday}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if !reflect.DeepEqual(o.Formats, []string{FormatPDF}) {
		t.Errorf("Formats = %v, want [pdf]", o.Formats)
	}
	if len(o.Pages) != 8 || o.Pages[0] != 0 || o.Pages[7] != 7 {
		t.Errorf("Pages = %v, want 0..7", o.Pages)
	}
	if o.Parallel != DefaultParallel {
		t.Errorf("Parallel = %d, want %d", o.Parallel, DefaultParallel)
	}
	if o.Source != DefaultSource {
		t.Errorf("Source = %q, want %q", o.Source, DefaultSource)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"zero week", Options{}, errors.ErrCodeInvalidWeek},
		{"bad format", Options{WeekStart: monday, Formats: []string{"docx"}}, errors.ErrCodeInvalidFormat},
		{"page range", Options{WeekStart: monday, Pages: []int{8}}, errors.ErrCodeInvalidInput},
		{"bad source", Options{WeekStart: monday, Source: "outlook"}, errors.ErrCodeInvalidInput},
		{"path and events", Options{WeekStart: monday, EventsPath: "x.json", Events: sampleEvents()}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		format string
		page   int
		want   string
	}{
		{FormatSVG, 3, "svg/3"},
		{FormatPNG, 0, "png/0"},
		{FormatPDF, 3, "pdf"},
		{FormatJSON, 0, "json"},
	}
	for _, tt := range tests {
		if got := ArtifactName(tt.format, tt.page); got != tt.want {
			t.Errorf("ArtifactName(%q, %d) = %q, want %q", tt.format, tt.page, got, tt.want)
		}
		format, page := splitName(tt.want)
		if format != tt.format {
			t.Errorf("splitName(%q) format = %q, want %q", tt.want, format, tt.format)
		}
		if PerPage(tt.format) && page != tt.page {
			t.Errorf("splitName(%q) page = %d, want %d", tt.want, page, tt.page)
		}
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(c, nil, nil)

	opts := Options{
		Events:    sampleEvents(),
		WeekStart: monday,
		Formats:   []string{FormatSVG, FormatJSON},
		Pages:     []int{0, 1},
	}
	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, name := range []string{"svg/0", "svg/1", "json"} {
		if len(first.Artifacts[name]) == 0 {
			t.Errorf("artifact %s missing", name)
		}
	}
	if len(first.Artifacts) != 3 {
		t.Errorf("artifacts = %d, want 3", len(first.Artifacts))
	}
	if first.CacheInfo.DocumentHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if first.Stats.EventCount != 2 {
		t.Errorf("EventCount = %d, want 2", first.Stats.EventCount)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.DocumentHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if second.Document.ID != first.Document.ID {
		t.Errorf("cached document ID = %s, want %s", second.Document.ID, first.Document.ID)
	}
	if string(second.Artifacts["svg/1"]) != string(first.Artifacts["svg/1"]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if third.CacheInfo.DocumentHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", third.CacheInfo)
	}
}

func TestExecuteNewFormatReusesDocument(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(c, nil, nil)

	opts := Options{Events: sampleEvents(), WeekStart: monday, Formats: []string{FormatJSON}}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	opts.Formats = []string{FormatSVG}
	opts.Pages = []int{2}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.CacheInfo.DocumentHit {
		t.Error("document should come from cache")
	}
	if res.CacheInfo.RenderHit {
		t.Error("svg was never rendered and cannot be a hit")
	}
}

func TestExecuteFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "week.json")
	data := `{"events": [
		{"id": "x", "title": "Review", "start": "2025-07-08T09:00:00Z", "end": "2025-07-08T10:30:00Z", "source": "manual"},
		{"id": "late", "title": "Late", "start": "2025-07-08T04:00:00Z", "end": "2025-07-08T05:00:00Z"}
	]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		EventsPath: path,
		WeekStart:  monday,
		Formats:    []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Stats.EventCount != 2 {
		t.Errorf("EventCount = %d, want 2", res.Stats.EventCount)
	}
	found := false
	for _, d := range res.Document.Diagnostics {
		if d.Code == errors.ErrCodeOutOfWindow && d.EventID == "late" {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want OUT_OF_WINDOW for late", res.Document.Diagnostics)
	}
}

func TestExecuteMissingFile(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{
		EventsPath: filepath.Join(t.TempDir(), "missing.json"),
		WeekStart:  monday,
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
}
