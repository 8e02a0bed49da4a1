package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/weekplan/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Commands:
//   - render: assemble a week and write SVG, PNG, PDF or JSON
//   - weeks: list the weeks covered by an event file
//   - serve: expose rendering over HTTP
//   - config: print or check a layout configuration
//   - cache: manage the render cache
//   - completion: generate shell completion scripts
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Weekplan turns a week of calendar events into a linked planner",
		Long:         `Weekplan renders a week of calendar events into an eight-page planner: a landscape weekly overview and seven portrait daily pages, linked to each other for tablet note-taking apps.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.weeksCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
