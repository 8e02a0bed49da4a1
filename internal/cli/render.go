package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/pipeline"
	"github.com/matzehuels/weekplan/pkg/source"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file (single artifact) or base path
	week     string // any date in the week to render, YYYY-MM-DD
	tz       string // IANA zone for week boundaries
	config   string // layout config file (.toml, .yaml)
	formats  string // comma-separated output formats
	pages    []int  // pages for svg/png
	source   string // source tag for .ics events
	font     string // SVG font family
	scale    float64
	parallel int
	withOps  bool // include draw ops in JSON
	noCache  bool
	refresh  bool
	pick     bool // choose the week interactively
	watch    bool // re-render when inputs change
	table    bool // print the per-page summary table
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		formats:  pipeline.FormatPDF,
		source:   string(pipeline.DefaultSource),
		scale:    pipeline.DefaultScale,
		parallel: pipeline.DefaultParallel,
	}

	cmd := &cobra.Command{
		Use:   "render <events-file>",
		Short: "Render a week of events into a linked planner",
		Long: `Render a week of events into an eight-page planner.

Page 0 is the landscape weekly overview, pages 1-7 are the daily pages from
Monday to Sunday. Events are read from JSON, YAML or iCalendar (.ics) files.

Without --output, files are written next to the events file as
<name>-<week>.pdf, <name>-<week>.json and <name>-<week>-p<N>.svg|png.`,
		Example: `  weekplan render week.ics --week 2025-07-07
  weekplan render events.json -f svg,json --pages 0,1
  weekplan render calendar.ics --pick
  weekplan render week.yaml --watch -o planner.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single artifact) or base path")
	cmd.Flags().StringVarP(&opts.week, "week", "w", "", "date in the week to render, YYYY-MM-DD (default: current week)")
	cmd.Flags().StringVar(&opts.tz, "tz", "", "time zone for day boundaries (default: local)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "layout config file (.toml, .yaml)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): pdf, svg, png, json (comma-separated)")
	cmd.Flags().IntSliceVar(&opts.pages, "pages", nil, "pages to write for svg/png (default: all)")
	cmd.Flags().StringVar(&opts.source, "source", opts.source, "source tag for .ics events: simplepractice, google, holiday, manual")
	cmd.Flags().StringVar(&opts.font, "font", "", "font family for SVG text")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", opts.parallel, "pages rendered at once")
	cmd.Flags().BoolVar(&opts.withOps, "ops", false, "include draw operations in JSON output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and re-render")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose the week interactively")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "re-render when the events or config file changes")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print a summary table of every page")

	cmd.MarkFlagsMutuallyExclusive("week", "pick")
	return cmd
}

// runRender resolves the week, runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	loc, err := loadLocation(opts.tz)
	if err != nil {
		return err
	}

	var weekStart time.Time
	if opts.pick {
		var ok bool
		if weekStart, ok, err = c.pickWeekFrom(input, calendar.Source(opts.source), loc); err != nil || !ok {
			return err
		}
	} else if weekStart, err = parseWeek(opts.week, loc, time.Now()); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		EventsPath: input,
		Source:     calendar.Source(opts.source),
		WeekStart:  weekStart,
		ConfigPath: opts.config,
		Parallel:   opts.parallel,
		Formats:    formats,
		Pages:      opts.pages,
		FontFamily: opts.font,
		Scale:      opts.scale,
		WithOps:    opts.withOps,
		Refresh:    opts.refresh,
		Logger:     logger,
	}

	render := func(ctx context.Context) error {
		return renderOnce(ctx, runner, popts, input, opts)
	}
	if !opts.watch {
		return render(ctx)
	}

	if err := render(ctx); err != nil {
		printError("%s", UserError(err))
	}
	paths := []string{input}
	if opts.config != "" {
		paths = append(paths, opts.config)
	}
	printInfo("Watching %s (Ctrl+C to stop)", strings.Join(paths, ", "))
	return watchFiles(ctx, paths, logger, func() {
		p := newProgress(logger)
		if err := render(ctx); err != nil {
			printError("%s", UserError(err))
			return
		}
		p.done("Re-rendered after change")
	})
}

func renderOnce(ctx context.Context, runner *pipeline.Runner, popts pipeline.Options, input string, opts *renderOpts) error {
	s := newSpinnerWithContext(ctx, "Rendering week of "+popts.WeekStart.Format(weekLayout))
	s.Start()
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		s.StopWithError("Render failed")
		return err
	}

	doc := result.Document
	names := make([]string, 0, len(result.Artifacts))
	for name := range result.Artifacts {
		names = append(names, name)
	}
	slices.Sort(names)

	s.SetMessage(fmt.Sprintf("Writing %d files", len(names)))
	base := basePath(opts.output, input) + "-" + doc.WeekStart.Format(weekLayout)
	single := opts.output != "" && len(names) == 1
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = outputPath(base, name)
		if single {
			paths[i] = opts.output
		}
		if err := writeFile(paths[i], result.Artifacts[name]); err != nil {
			s.StopWithError("Write failed")
			return err
		}
	}
	s.StopWithSuccess("Rendered " + weekRange(doc.WeekStart))

	printStats(result.Stats, result.CacheInfo.DocumentHit && result.CacheInfo.RenderHit)
	printDiagnostics(doc.Diagnostics)
	if opts.table {
		printWeekTable(doc)
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// pickWeekFrom loads input and lets the user choose one of its weeks.
func (c *CLI) pickWeekFrom(input string, src calendar.Source, loc *time.Location) (time.Time, bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return time.Time{}, false, errors.New(errors.ErrCodeInvalidInput, "--pick needs an interactive terminal, use --week instead")
	}
	events, err := source.Load(input, src)
	if err != nil {
		return time.Time{}, false, err
	}
	weeks := calendar.Weeks(events, loc)
	if len(weeks) == 0 {
		return time.Time{}, false, errors.New(errors.ErrCodeInvalidInput, "%s contains no events", filepath.Base(input))
	}
	return pickWeek(weeks, time.Now().In(loc))
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath maps an artifact name ("pdf", "svg/3") to a file path.
func outputPath(base, name string) string {
	format, page, ok := strings.Cut(name, "/")
	if !ok {
		return base + "." + format
	}
	return fmt.Sprintf("%s-p%s.%s", base, page, format)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
