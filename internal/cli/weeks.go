package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/source"
)

// weeksCommand creates the weeks command.
func (c *CLI) weeksCommand() *cobra.Command {
	var tz, src string

	cmd := &cobra.Command{
		Use:   "weeks <events-file>",
		Short: "List the weeks covered by an event file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := loadLocation(tz)
			if err != nil {
				return err
			}
			events, err := source.Load(args[0], calendar.Source(src))
			if err != nil {
				return err
			}
			weeks := calendar.Weeks(events, loc)
			if len(weeks) == 0 {
				printInfo("No events in %s", args[0])
				return nil
			}
			printWeeks(weeks, time.Now().In(loc))
			printNewline()
			printNextStep("Render a week", fmt.Sprintf("%s render %s --week %s", appName, args[0], weeks[len(weeks)-1].Start.Format(weekLayout)))
			return nil
		},
	}

	cmd.Flags().StringVar(&tz, "tz", "", "time zone for week boundaries (default: local)")
	cmd.Flags().StringVar(&src, "source", string(calendar.SourceGoogle), "source tag for .ics events")
	return cmd
}

func printWeeks(weeks []calendar.Week, now time.Time) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	current := calendar.MondayOf(now)

	rows := make([][]string, len(weeks))
	for i, w := range weeks {
		rows[i] = []string{
			w.Start.Format(weekLayout),
			weekRange(w.Start),
			fmt.Sprint(w.Events),
			fmt.Sprint(w.Canceled),
			relativeWeek(w.Start, now),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("--week", "Range", "Events", "Canceled", "When").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case weeks[row].Start.Equal(current):
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case col == 0:
				return StyleValue
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
	fmt.Println(t.Render())
}
