package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weekplan/pkg/render/planner/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print or check layout configuration",
	}

	cmd.AddCommand(c.configDefaultsCommand())
	cmd.AddCommand(c.configCheckCommand())

	return cmd
}

// configDefaultsCommand creates the "config defaults" subcommand.
func (c *CLI) configDefaultsCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default layout configuration",
		Long: `Print the default layout configuration.

The output is a complete config file: redirect it, edit the values you want
to change and pass it to render with --config. Keys removed from the file
keep their default values.`,
		Example: `  weekplan config defaults > planner.toml
  weekplan config defaults --format yaml > planner.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Encode(cmd.OutOrStdout(), config.Default(), config.Format(format))
		},
	}
	cmd.Flags().StringVar(&format, "format", string(config.FormatTOML), "output syntax: toml, yaml")
	return cmd
}

// configCheckCommand creates the "config check" subcommand.
func (c *CLI) configCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a layout configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			g := cfg.Grid
			printSuccess("%s is valid", args[0])
			printKeyValue("window", fmt.Sprintf("%s - %s", clock(g.StartMinute), clock(g.EndMinute())))
			printKeyValue("slots", fmt.Sprintf("%d × %d min", g.SlotCount, g.SlotMinutes))
			printKeyValue("lanes", fmt.Sprint(cfg.Lanes.Cap))
			printKeyValue("weekly", fmt.Sprintf("%gx%g %s", cfg.Weekly.Width, cfg.Weekly.Height, cfg.Weekly.Orientation))
			printKeyValue("daily", fmt.Sprintf("%gx%g %s", cfg.Daily.Width, cfg.Daily.Height, cfg.Daily.Orientation))
			printDetail("Use with: %s render <events> --config %s", appName, args[0])
			return nil
		},
	}
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
