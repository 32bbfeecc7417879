package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sardine/internal/server"
	"github.com/matzehuels/sardine/pkg/cache"
	"github.com/matzehuels/sardine/pkg/pipeline"
	"github.com/matzehuels/sardine/pkg/store"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	mongoURI string
	database string
	noCache  bool
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     ":8080",
		redisURL: os.Getenv("SARDINE_REDIS_URL"),
		mongoURI: os.Getenv("SARDINE_MONGO_URI"),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Solved lots are kept in memory unless --mongo names a MongoDB deployment.
Results are cached in Redis when --redis is given, in the local cache
directory otherwise.

Both can also be set with SARDINE_REDIS_URL and SARDINE_MONGO_URI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", opts.redisURL, "Redis URL for the result cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", opts.mongoURI, "MongoDB URI for lot storage")
	cmd.Flags().StringVar(&opts.database, "database", store.DefaultDatabase, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	settings, err := c.baseSettings()
	if err != nil {
		return err
	}

	rc, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, "api:"), c.Logger)
	defer runner.Close()

	var st store.Store = store.NewMemoryStore()
	if opts.mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, opts.mongoURI, opts.database)
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		st = ms
		c.Logger.Info("storing lots in MongoDB", "database", opts.database)
	}
	defer st.Close(context.Background())

	srv := server.New(server.Config{
		Runner:   runner,
		Store:    st,
		Settings: settings,
		Logger:   c.Logger,
	})

	printInfo("Serving on %s", styleHighlight.Render(opts.addr))
	return srv.ListenAndServe(ctx, opts.addr)
}

// serveCache picks the server's result cache.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache || opts.redisURL == "" {
		return newCache(opts.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, opts.redisURL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Logger.Info("caching results in Redis")
	return rc, nil
}
