package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/weekplan/pkg/calendar"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// WeekListModel - Interactive week selection
// =============================================================================

// WeekListModel is the bubbletea model for picking a week to render.
type WeekListModel struct {
	Weeks    []calendar.Week
	Cursor   int
	Selected *calendar.Week
	Height   int
	Offset   int
	now      time.Time
}

// NewWeekListModel creates a week list with the cursor on the current week,
// or on the first week after it.
func NewWeekListModel(weeks []calendar.Week, now time.Time) WeekListModel {
	m := WeekListModel{Weeks: weeks, Height: 15, now: now}
	current := calendar.MondayOf(now)
	for i, w := range weeks {
		if !w.Start.Before(current) {
			m.Cursor = i
			break
		}
	}
	if m.Cursor >= m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m WeekListModel) Init() tea.Cmd {
	return nil
}

func (m WeekListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Weeks)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Weeks) == 0 {
				return m, tea.Quit
			}
			w := m.Weeks[m.Cursor]
			m.Selected = &w
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m WeekListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Week"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Weeks))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		w := m.Weeks[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		_, isoWeek := w.Start.ISOWeek()
		rows = append(rows, []string{
			cursor,
			weekRange(w.Start),
			fmt.Sprintf("W%02d", isoWeek),
			fmt.Sprint(w.Events),
			fmt.Sprint(w.Canceled),
			relativeWeek(w.Start, m.now),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	current := calendar.MondayOf(m.now)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Week", "ISO", "Events", "Canceled", "When").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Weeks) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 4 {
				base = base.Foreground(colorDim)
			}
			switch {
			case idx == m.Cursor:
				return base.Foreground(colorGreen).Bold(true)
			case m.Weeks[idx].Start.Equal(current):
				return base.Foreground(colorCyan)
			case m.Weeks[idx].Start.Before(current):
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Weeks))))

	return b.String()
}

// pickWeek runs the week picker and returns the selected week start.
// ok is false when the user quit without choosing.
func pickWeek(weeks []calendar.Week, now time.Time) (start time.Time, ok bool, err error) {
	final, err := tea.NewProgram(NewWeekListModel(weeks, now)).Run()
	if err != nil {
		return time.Time{}, false, err
	}
	m := final.(WeekListModel)
	if m.Selected == nil {
		return time.Time{}, false, nil
	}
	return m.Selected.Start, true, nil
}

// =============================================================================
// Helpers
// =============================================================================

func weekRange(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	if start.Year() != end.Year() {
		return start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
}

func relativeWeek(start, now time.Time) string {
	diff := int(math.Round(start.Sub(calendar.MondayOf(now.In(start.Location()))).Hours() / (24 * 7)))
	switch {
	case diff == 0:
		return "this week"
	case diff == 1:
		return "next week"
	case diff == -1:
		return "last week"
	case diff > 1:
		return fmt.Sprintf("in %d weeks", diff)
	}
	return fmt.Sprintf("%d weeks ago", -diff)
}
