package feed

import (
	"context"

	"github.com/alideep5/feedrank/internal/models"
)

// StorePort is the durable posts table as the feed core sees it: append-only,
// one pooled statement per call, no transaction spanning calls.
type StorePort interface {
	// AllocateNextUserID returns the user_id of the most recently inserted
	// post plus one, or 1 when the table is empty.
	AllocateNextUserID(ctx context.Context) (int64, error)

	// InsertPost appends a row and returns its assigned id.
	InsertPost(ctx context.Context, p models.NewPost) (int64, error)

	// InsertPostNextUser appends a row whose user_id is computed by the store
	// in the same statement, closing the allocate/insert race. Returns the
	// assigned id and user_id.
	InsertPostNextUser(ctx context.Context, p models.NewPost) (id, userID int64, err error)

	// QueryRecent returns up to limit posts ordered most-recent-first by
	// created_at. An empty table yields an empty slice, not an error.
	QueryRecent(ctx context.Context, limit int) ([]models.Post, error)

	// QueryWindow returns up to limit posts in store default order.
	QueryWindow(ctx context.Context, limit int) ([]models.Post, error)
}
