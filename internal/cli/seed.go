package cli

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alideep5/feedrank/internal/config"
	"github.com/alideep5/feedrank/internal/feed"
	"github.com/alideep5/feedrank/internal/feed/store"
	"github.com/alideep5/feedrank/internal/models"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Posts       int
	Users       int
	BatchSize   int
	Workers     int
	ContentSize int
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the posts table with synthetic data",
		Long: `Insert synthetic posts for exercising the ranking window. Posts get random
user ids, backdated timestamps, and bounded random engagement counters, the
same distribution the demo create workflow uses.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.Posts, "posts", 50000, "number of posts to insert")
	cmd.Flags().IntVar(&opts.Users, "users", 1000, "number of distinct users")
	cmd.Flags().IntVar(&opts.BatchSize, "batch", 500, "insert batch size")
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "concurrent insert workers")
	cmd.Flags().IntVar(&opts.ContentSize, "content-size", 80, "post content size in characters")

	return cmd
}

func runSeed(ctx context.Context, opts *SeedOptions) error {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	pg, err := store.New(ctx, cfg.BuildDSN(), cfg.PGMaxConns)
	if err != nil {
		return err
	}
	defer pg.Close()

	slog.Info("seeding", "posts", opts.Posts, "users", opts.Users,
		"batch", opts.BatchSize, "workers", opts.Workers)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	per := opts.Posts / opts.Workers
	for w := 0; w < opts.Workers; w++ {
		n := per
		if w == opts.Workers-1 {
			n = opts.Posts - per*(opts.Workers-1) // last worker takes the remainder
		}
		seed := time.Now().UnixNano() + int64(w)
		g.Go(func() error {
			return seedWorker(ctx, pg, n, opts.Users, opts.BatchSize, opts.ContentSize, seed)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("seed complete", "posts", opts.Posts,
		"elapsed", time.Since(start).Truncate(time.Millisecond))
	return nil
}

func seedWorker(ctx context.Context, pg *store.PGStore, n, users, batchSize, contentSize int, seed int64) error {
	// Local RNG instance; keeps randomness explicit per worker.
	r := rand.New(rand.NewSource(seed))
	synth := feed.NewRandSynth(seed)
	now := time.Now()

	batch := make([]models.NewPost, 0, batchSize)
	for i := 0; i < n; i++ {
		eng := synth.Draw(now)
		batch = append(batch, models.NewPost{
			UserID:    1 + r.Int63n(int64(users)),
			Content:   randContent(r, contentSize),
			CreatedAt: eng.CreatedAt,
			Likes:     eng.Likes,
			Comments:  eng.Comments,
			Shares:    eng.Shares,
		})
		if len(batch) >= batchSize {
			if err := pg.InsertBatch(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	return pg.InsertBatch(ctx, batch)
}

func randContent(r *rand.Rand, size int) string {
	var b strings.Builder
	b.Grow(size)
	for i := 0; i < size; i++ {
		b.WriteByte(byte('a' + r.Intn(26)))
	}
	return b.String()
}
