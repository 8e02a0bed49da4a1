// Package cli implements the weekplan command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weekplan/pkg/cache"
	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "weekplan"

	// weekLayout is the date format accepted by --week.
	weekLayout = time.DateOnly
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// UserError returns the message to show for err.
func UserError(err error) string {
	if errors.GetCode(err) != "" {
		return errors.UserMessage(err)
	}
	return err.Error()
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/weekplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Week Helpers
// =============================================================================

// parseWeek parses a --week value in loc. An empty value means the current
// week. Any date is moved back to its Monday.
func parseWeek(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if s == "" {
		return calendar.MondayOf(now.In(loc)), nil
	}
	t, err := time.ParseInLocation(weekLayout, s, loc)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidWeek, err, "invalid --week %q (want YYYY-MM-DD)", s)
	}
	return calendar.MondayOf(t), nil
}

// loadLocation resolves a --tz value. Empty means the local zone.
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "unknown time zone %q", name)
	}
	return loc, nil
}
