package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
)

const eventsJSON = `[
  {"id": "a", "title": "Intake", "start": "2025-07-07T09:00:00Z", "end": "2025-07-07T10:00:00Z",
   "source": "simplepractice", "notes": ["first visit"], "status": "confirmed"},
  {"id": "b", "title": "Lunch", "start": "2025-07-08T12:00:00Z", "end": "2025-07-08T13:00:00Z", "source": "google"}
]`

const eventsYAML = `events:
  - id: a
    title: Intake
    start: 2025-07-07T09:00:00Z
    end: 2025-07-07T10:00:00Z
    source: simplepractice
    action_items: [send forms]
  - id: b
    title: Lunch
    start: 2025-07-08T12:00:00Z
    end: 2025-07-08T13:00:00Z
`

const eventsICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//weekplan//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:ics-1\r\n" +
	"DTSTAMP:20250701T000000Z\r\n" +
	"DTSTART:20250707T090000Z\r\n" +
	"DTEND:20250707T100000Z\r\n" +
	"SUMMARY:Team sync\r\n" +
	"DESCRIPTION:Agenda review\\n- [ ] Book room\r\n" +
	"STATUS:CANCELLED\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:ics-2\r\n" +
	"DTSTAMP:20250701T000000Z\r\n" +
	"DTSTART:20250709T140000Z\r\n" +
	"DTEND:20250709T150000Z\r\n" +
	"SUMMARY:Review\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"array", eventsJSON, 2},
		{"envelope", `{"events": ` + eventsJSON + `}`, 2},
		{"empty", "  ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := ReadJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadJSON() error = %v", err)
			}
			if len(events) != tt.want {
				t.Fatalf("ReadJSON() = %d events, want %d", len(events), tt.want)
			}
			if tt.want == 0 {
				return
			}
			e := events[0]
			if e.Source != calendar.SourceSimplePractice || e.Status != calendar.StatusConfirmed {
				t.Errorf("event = %+v", e)
			}
			if want := time.Date(2025, 7, 7, 9, 0, 0, 0, time.UTC); !e.Start.Equal(want) {
				t.Errorf("Start = %v, want %v", e.Start, want)
			}
		})
	}

	if _, err := ReadJSON(strings.NewReader("{not json")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadJSON(bad) error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadYAML(t *testing.T) {
	events, err := ReadYAML(strings.NewReader(eventsYAML))
	if err != nil {
		t.Fatalf("ReadYAML() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("ReadYAML() = %d events, want 2", len(events))
	}
	if got := events[0].ActionItems; len(got) != 1 || got[0] != "send forms" {
		t.Errorf("ActionItems = %v", got)
	}
	if events[1].Source != "" {
		t.Errorf("Source = %q, want empty before normalization", events[1].Source)
	}
	if d := events[1].Duration(); d != time.Hour {
		t.Errorf("Duration() = %v, want 1h", d)
	}
}

func TestReadICS(t *testing.T) {
	events, err := ReadICS(strings.NewReader(eventsICS), calendar.SourceGoogle)
	if err != nil {
		t.Fatalf("ReadICS() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("ReadICS() = %d events, want 2", len(events))
	}
	e := events[0]
	if e.ID != "ics-1" || e.Title != "Team sync" || e.Source != calendar.SourceGoogle {
		t.Errorf("event = %+v", e)
	}
	if e.Status != calendar.StatusCanceledByHost {
		t.Errorf("Status = %q, want %q", e.Status, calendar.StatusCanceledByHost)
	}
	if len(e.Notes) != 1 || e.Notes[0] != "Agenda review" {
		t.Errorf("Notes = %q", e.Notes)
	}
	if len(e.ActionItems) != 1 || e.ActionItems[0] != "Book room" {
		t.Errorf("ActionItems = %q", e.ActionItems)
	}
	if want := time.Date(2025, 7, 7, 9, 0, 0, 0, time.UTC); !e.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", e.Start, want)
	}
	if err := events[1].Validate(); err != nil {
		t.Errorf("second event Validate() = %v", err)
	}
}

func icsCalendar(events ...string) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//weekplan//test//EN\r\n")
	for _, e := range events {
		b.WriteString("BEGIN:VEVENT\r\nDTSTAMP:20250701T000000Z\r\n")
		b.WriteString(e)
		b.WriteString("END:VEVENT\r\n")
	}
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func TestReadICSTimes(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC) }
	tests := []struct {
		name      string
		event     string
		wantStart time.Time
		wantEnd   time.Time
		wantAll   bool
	}{
		{
			"duration",
			"UID:d-1\r\nDTSTART:20250707T090000Z\r\nDURATION:PT45M\r\nSUMMARY:Check-in\r\n",
			time.Date(2025, 7, 7, 9, 0, 0, 0, time.UTC),
			time.Date(2025, 7, 7, 9, 45, 0, 0, time.UTC),
			false,
		},
		{
			"holiday with end",
			"UID:h-1\r\nDTSTART;VALUE=DATE:20250704\r\nDTEND;VALUE=DATE:20250705\r\nSUMMARY:Independence Day\r\n",
			day(4), day(5), true,
		},
		{
			"holiday without end",
			"UID:h-2\r\nDTSTART;VALUE=DATE:20250707\r\nSUMMARY:Bank holiday\r\n",
			day(7), day(8), true,
		},
		{
			"multi-day by duration",
			"UID:h-3\r\nDTSTART;VALUE=DATE:20250707\r\nDURATION:P2D\r\nSUMMARY:Conference\r\n",
			day(7), day(9), true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := ReadICS(strings.NewReader(icsCalendar(tt.event)), calendar.SourceHoliday)
			if err != nil {
				t.Fatalf("ReadICS() error = %v", err)
			}
			if len(events) != 1 {
				t.Fatalf("ReadICS() = %d events, want 1", len(events))
			}
			e := events[0]
			if !e.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", e.Start, tt.wantStart)
			}
			if !e.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", e.End, tt.wantEnd)
			}
			if e.AllDay != tt.wantAll {
				t.Errorf("AllDay = %v, want %v", e.AllDay, tt.wantAll)
			}
			if err := e.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"PT45M", 45 * time.Minute, false},
		{"PT1H30M", 90 * time.Minute, false},
		{"P1D", 24 * time.Hour, false},
		{"P1W", 7 * 24 * time.Hour, false},
		{"P1DT2H", 26 * time.Hour, false},
		{"-PT15M", -15 * time.Minute, false},
		{"+PT10S", 10 * time.Second, false},
		{"PT", 0, true},
		{"1H", 0, true},
		{"PT5X", 0, true},
		{"P1H", 0, true},
		{"PT15", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name     string
		path     string
		want     int
		wantCode errors.Code
	}{
		{"json", write("week.json", eventsJSON), 2, ""},
		{"yaml", write("week.yml", eventsYAML), 2, ""},
		{"ics", write("week.ics", eventsICS), 2, ""},
		{"missing", filepath.Join(dir, "nope.json"), 0, errors.ErrCodeFileNotFound},
		{"unsupported", write("week.csv", "id,title"), 0, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Load(tt.path, calendar.SourceManual)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("Load() error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("Load() = %d events, want %d", len(events), tt.want)
			}
		})
	}
}
