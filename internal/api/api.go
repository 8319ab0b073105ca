package api

import (
	"time"

	"github.com/alideep5/feedrank/internal/feed"
)

// API is the application-facing facade. All callers (HTTP, CLI) go through
// this rather than touching the feed service directly.
type API struct {
	svc *feed.Service

	topK         int
	recentWindow int
	topWindow    int
}

func New(svc *feed.Service, topK, recentWindow, topWindow int) *API {
	return &API{
		svc:          svc,
		topK:         topK,
		recentWindow: recentWindow,
		topWindow:    topWindow,
	}
}

// Health responds with the health status of the app.
func (a *API) Health() map[string]any {
	return map[string]any{
		"app":       "feedrank",
		"startedAt": time.Now().Format(time.RFC3339),
		"status":    "ok",
	}
}
