package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weekplan/internal/server"
	"github.com/matzehuels/weekplan/pkg/cache"
	"github.com/matzehuels/weekplan/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	redisURL string // shared cache; file cache when empty
	prefix   string // key prefix in a shared cache
	noCache  bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", prefix: appName + ":"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve planner rendering over HTTP",
		Long: `Serve planner rendering over HTTP.

  POST /v1/render   render a week (body: week_start, events, format, page)
  GET  /healthz     liveness probe

With --redis, documents and artifacts are cached in Redis and shared between
instances; otherwise the local file cache is used.`,
		Example: `  weekplan serve --addr :9000
  weekplan serve --redis redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for a shared cache (redis://host:port/db)")
	cmd.Flags().StringVar(&opts.prefix, "key-prefix", opts.prefix, "cache key prefix in Redis")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.serveRunner(ctx, opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.NewRouter(runner, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	printSuccess("Listening on %s", opts.addr)
	printKeyValue("cache", cacheLabel(opts))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serveRunner picks the cache backend for the server.
func (c *CLI) serveRunner(ctx context.Context, opts *serveOpts) (*pipeline.Runner, error) {
	if opts.redisURL == "" || opts.noCache {
		return c.newRunner(opts.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, opts.redisURL)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), opts.prefix)
	return pipeline.NewRunner(rc, keyer, c.Logger), nil
}

func cacheLabel(opts *serveOpts) string {
	switch {
	case opts.noCache:
		return "disabled"
	case opts.redisURL != "":
		return "redis (" + opts.prefix + "*)"
	}
	return "file"
}
