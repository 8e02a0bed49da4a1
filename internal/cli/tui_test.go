package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/weekplan/pkg/calendar"
)

func testWeeks() []calendar.Week {
	start := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	weeks := make([]calendar.Week, 4)
	for i := range weeks {
		weeks[i] = calendar.Week{Start: start.AddDate(0, 0, 7*i), Events: i + 1}
	}
	return weeks
}

func TestWeekListModelStartsAtCurrentWeek(t *testing.T) {
	now := time.Date(2025, 7, 16, 10, 0, 0, 0, time.UTC) // week of Jul 14
	m := NewWeekListModel(testWeeks(), now)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}
}

func TestWeekListModelNavigation(t *testing.T) {
	now := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	var model tea.Model = NewWeekListModel(testWeeks(), now)

	keys := []tea.KeyMsg{
		{Type: tea.KeyDown},
		{Type: tea.KeyDown},
		{Type: tea.KeyUp},
	}
	for _, k := range keys {
		model, _ = model.Update(k)
	}
	m := model.(WeekListModel)
	if m.Cursor != 1 {
		t.Fatalf("Cursor = %d, want 1", m.Cursor)
	}

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(WeekListModel)
	if cmd == nil {
		t.Error("enter should quit the program")
	}
	if m.Selected == nil || !m.Selected.Start.Equal(testWeeks()[1].Start) {
		t.Errorf("Selected = %+v, want second week", m.Selected)
	}
}

func TestWeekListModelView(t *testing.T) {
	now := time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)
	view := NewWeekListModel(testWeeks(), now).View()
	for _, want := range []string{"Select Week", "Jul 7 - Jul 13, 2025", "this week", "last week", "[2/4]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestRelativeWeek(t *testing.T) {
	now := time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		start time.Time
		want  string
	}{
		{time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC), "this week"},
		{time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC), "next week"},
		{time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), "last week"},
		{time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC), "in 3 weeks"},
		{time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), "3 weeks ago"},
	}
	for _, tt := range tests {
		if got := relativeWeek(tt.start, now); got != tt.want {
			t.Errorf("relativeWeek(%s) = %q, want %q", tt.start.Format(time.DateOnly), got, tt.want)
		}
	}
}
