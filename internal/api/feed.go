package api

import (
	"context"

	"github.com/alideep5/feedrank/internal/models"
)

// TopPosts returns the ranked top posts over the small store-order window.
func (a *API) TopPosts(ctx context.Context) ([]models.Post, error) {
	return a.svc.TopPosts(ctx, a.topWindow, a.topK)
}

// CreateAndRank creates a post and returns its id plus the ranked top posts
// over the large recency window.
func (a *API) CreateAndRank(ctx context.Context, content string) (int64, []models.Post, error) {
	return a.svc.CreateAndRank(ctx, content, a.recentWindow, a.topK)
}
