package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alideep5/feedrank/internal/feed"   // import ONLY for the interface and error kinds
	"github.com/alideep5/feedrank/internal/models" // import ONLY for the types
)

// PGStore is the posts table behind a pgx connection pool. Each method runs a
// single statement on a pooled connection; no method holds a connection
// across calls and no explicit transaction spans statements. The
// allocate-then-insert race in the non-atomic create workflow follows
// directly from that shape.
type PGStore struct{ pool *pgxpool.Pool }

var _ feed.StorePort = (*PGStore)(nil)

func New(ctx context.Context, dsn string, maxConns int32) (*PGStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	// Cache prepared statements per connection; the candidate queries run on
	// every request.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	_, err = pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS posts (
  id BIGSERIAL PRIMARY KEY,
  user_id BIGINT NOT NULL,
  content TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  likes INT NOT NULL,
  comments INT NOT NULL,
  shares INT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts (created_at DESC);
`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

// Close releases the pool. Owned by the process entry point: created once at
// startup, closed once at shutdown.
func (s *PGStore) Close() { s.pool.Close() }

func (s *PGStore) AllocateNextUserID(ctx context.Context) (int64, error) {
	var last int64
	err := s.pool.QueryRow(ctx,
		`SELECT user_id FROM posts ORDER BY id DESC LIMIT 1`).Scan(&last)
	if errors.Is(err, pgx.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read last user_id: %v", feed.ErrStoreUnavailable, err)
	}
	return last + 1, nil
}

func (s *PGStore) InsertPost(ctx context.Context, p models.NewPost) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
INSERT INTO posts (user_id, content, created_at, likes, comments, shares)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		p.UserID, p.Content, p.CreatedAt, p.Likes, p.Comments, p.Shares).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: insert post: %v", feed.ErrStoreUnavailable, err)
	}
	return id, nil
}

// InsertPostNextUser computes user_id and inserts in one statement, so two
// concurrent creates cannot both observe the same last user_id the way the
// two-statement workflow can. Note the statement still reads MAX(user_id)
// under the store's default isolation; a dedicated sequence would be the next
// step if strict gap-free allocation ever becomes a requirement.
func (s *PGStore) InsertPostNextUser(ctx context.Context, p models.NewPost) (int64, int64, error) {
	var id, userID int64
	err := s.pool.QueryRow(ctx, `
INSERT INTO posts (user_id, content, created_at, likes, comments, shares)
VALUES ((SELECT COALESCE(MAX(user_id), 0) + 1 FROM posts), $1, $2, $3, $4, $5)
RETURNING id, user_id`,
		p.Content, p.CreatedAt, p.Likes, p.Comments, p.Shares).Scan(&id, &userID)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: insert post: %v", feed.ErrStoreUnavailable, err)
	}
	return id, userID, nil
}

// InsertBatch appends many rows in one round-trip. Seeder-only; the request
// path inserts one row at a time.
func (s *PGStore) InsertBatch(ctx context.Context, posts []models.NewPost) error {
	if len(posts) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, p := range posts {
		b.Queue(`
INSERT INTO posts (user_id, content, created_at, likes, comments, shares)
VALUES ($1, $2, $3, $4, $5, $6)`,
			p.UserID, p.Content, p.CreatedAt, p.Likes, p.Comments, p.Shares)
	}
	br := s.pool.SendBatch(ctx, b)
	defer br.Close()
	for range posts {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("%w: batch insert: %v", feed.ErrStoreUnavailable, err)
		}
	}
	return nil
}

func (s *PGStore) QueryRecent(ctx context.Context, limit int) ([]models.Post, error) {
	return s.queryPosts(ctx, `
SELECT id, user_id, content, created_at, likes, comments, shares
FROM posts
ORDER BY created_at DESC
LIMIT $1`, limit)
}

func (s *PGStore) QueryWindow(ctx context.Context, limit int) ([]models.Post, error) {
	return s.queryPosts(ctx, `
SELECT id, user_id, content, created_at, likes, comments, shares
FROM posts
LIMIT $1`, limit)
}

func (s *PGStore) queryPosts(ctx context.Context, sql string, limit int) ([]models.Post, error) {
	rows, err := s.pool.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: query posts: %v", feed.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	out := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.CreatedAt,
			&p.Likes, &p.Comments, &p.Shares); err != nil {
			return nil, fmt.Errorf("%w: scan post: %v", feed.ErrMalformedRow, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read posts: %v", feed.ErrStoreUnavailable, err)
	}
	return out, nil
}
