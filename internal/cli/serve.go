package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/collagely/collagely/internal/api"
	"github.com/collagely/collagely/pkg/cache"
	"github.com/collagely/collagely/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the collage HTTP API",
		Long: `Run the collage HTTP API.

The server exposes the same pipeline as the render command over HTTP:

  POST /v1/layout   solve slot geometry
  POST /v1/render   render a collage and return the encoded artifact

By default artifacts are cached on disk. Pass --redis (or set redis_url in
the config file) to share the cache between replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared cache (default: file cache)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the cache and runner, then serves until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool) error {
	if redisURL == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		redisURL = cfg.RedisURL
	}

	store, err := newServeCache(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := api.NewServer(runner, c.Logger)

	printInfo("Listening on %s", addr)
	return srv.ListenAndServe(ctx, addr)
}

// newServeCache selects the cache backend for the server.
func newServeCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	return newCache(false)
}
