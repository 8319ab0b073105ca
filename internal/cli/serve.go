package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alideep5/feedrank/internal/api"
	"github.com/alideep5/feedrank/internal/config"
	"github.com/alideep5/feedrank/internal/feed"
	"github.com/alideep5/feedrank/internal/feed/store"
	httpserver "github.com/alideep5/feedrank/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP feed server",
		Long: `Run the feed server: load configuration from the environment (and the
optional FEED_CONFIG_FILE YAML overlay), open the Postgres pool, and serve
until SIGINT or SIGTERM.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pool lifecycle is owned here: created once at startup, closed once on
	// the way out. Everything below receives the handle by reference.
	pg, err := store.New(ctx, cfg.BuildDSN(), cfg.PGMaxConns)
	if err != nil {
		return err
	}
	defer pg.Close()

	svc := feed.New(pg, feed.NewRandSynth(time.Now().UnixNano()), cfg.AtomicUserIDs, time.Now)
	app := api.New(svc, cfg.TopK, cfg.RecentWindow, cfg.TopWindow)
	srv := httpserver.New(app, slog.Default(), cfg.TaskDelay)

	slog.Info("listening",
		"addr", cfg.ListenAddr,
		"atomic_user_ids", cfg.AtomicUserIDs,
		"recent_window", cfg.RecentWindow,
		"top_window", cfg.TopWindow,
	)
	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}
