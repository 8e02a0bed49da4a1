package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/render/planner/config"
	"github.com/matzehuels/weekplan/pkg/render/planner/document"
)

func testDocument(t *testing.T) *document.Document {
	t.Helper()
	monday := time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)
	events := []calendar.Event{
		{ID: "a", Title: "Check-in <weekly> & review", Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour),
			Source: calendar.SourceSimplePractice, Notes: []string{"Bring notes"}},
		{ID: "b", Title: "Lunch", Start: monday.Add(36 * time.Hour), End: monday.Add(37 * time.Hour),
			Source: calendar.SourceGoogle},
	}
	doc, err := document.NewAssembler(config.Default()).Assemble(context.Background(), events, monday)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return doc
}

func TestRenderSVG(t *testing.T) {
	doc := testDocument(t)

	data, err := RenderSVG(doc, 0)
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "<?xml") || !strings.Contains(s, "<svg") {
		t.Fatalf("RenderSVG() did not produce an SVG document: %.80s", s)
	}
	if !strings.Contains(s, `viewBox="0 0 7920 6120"`) {
		t.Errorf("RenderSVG() missing scaled viewBox")
	}
	if n := strings.Count(s, "<a "); n != len(doc.Overview().Links) {
		t.Errorf("anchors = %d, want %d", n, len(doc.Overview().Links))
	}
	for d := 1; d <= 7; d++ {
		if !strings.Contains(s, fmt.Sprintf(`"#page-%d"`, d)) {
			t.Errorf("missing link to page %d", d)
		}
	}
	if !strings.Contains(s, "WEEKLY PLANNER") {
		t.Error("missing weekly title")
	}
	if strings.Contains(s, "<weekly>") {
		t.Error("event title was not escaped")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	doc := testDocument(t)
	data, err := RenderSVG(doc, 1,
		WithHref(func(i int) string { return fmt.Sprintf("day-%d.svg", i) }),
		WithFontFamily("Inter"),
		WithLinkOutlines("#00ff00"))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	s := string(data)
	for _, want := range []string{`"day-0.svg"`, `"day-2.svg"`, "font-family:Inter", "stroke:#00ff00"} {
		if !strings.Contains(s, want) {
			t.Errorf("RenderSVG() missing %s", want)
		}
	}
}

func TestRenderSVGPageRange(t *testing.T) {
	doc := testDocument(t)
	for _, i := range []int{-1, len(doc.Pages)} {
		if _, err := RenderSVG(doc, i); err == nil {
			t.Errorf("RenderSVG(%d) error = nil, want error", i)
		}
	}
	if n := len(RenderSVGPages(doc)); n != len(doc.Pages) {
		t.Errorf("RenderSVGPages() = %d pages, want %d", n, len(doc.Pages))
	}
}

func TestRenderJSON(t *testing.T) {
	doc := testDocument(t)

	data, err := RenderJSON(doc)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.ID != doc.ID {
		t.Errorf("ID = %q, want %q", out.ID, doc.ID)
	}
	if out.WeekStart != "2025-07-07" {
		t.Errorf("WeekStart = %q, want 2025-07-07", out.WeekStart)
	}
	if len(out.Pages) != 8 {
		t.Fatalf("Pages = %d, want 8", len(out.Pages))
	}
	if got := out.Pages[0].Stats.Appointments; got != 2 {
		t.Errorf("weekly appointments = %d, want 2", got)
	}
	if got := out.Pages[0].Stats.ScheduledHours; got != 2 {
		t.Errorf("weekly scheduled hours = %v, want 2", got)
	}
	if out.Pages[1].Ops != nil {
		t.Error("ops present without WithJSONOps")
	}

	withOps, err := RenderJSON(doc, WithJSONOps())
	if err != nil {
		t.Fatalf("RenderJSON(WithJSONOps) error: %v", err)
	}
	if err := json.Unmarshal(withOps, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(out.Pages[1].Ops) == 0 {
		t.Error("ops missing with WithJSONOps")
	}
}

func TestRenderPDF(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	data, err := RenderPDF(context.Background(), testDocument(t))
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("RenderPDF() output does not start with %%PDF")
	}
}

func TestRenderPNG(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	data, err := RenderPNG(context.Background(), testDocument(t), 1, WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("RenderPNG() output is not a PNG")
	}
	if _, err := RenderPNG(context.Background(), testDocument(t), 8); err == nil {
		t.Error("RenderPNG(page 8) should fail")
	}
}
