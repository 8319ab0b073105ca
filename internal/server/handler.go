package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alideep5/feedrank/internal/feed"
	"github.com/alideep5/feedrank/internal/models"
)

const storeTimeout = 10 * time.Second

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"message": "Hello, World!"})
}

// handleTask simulates one fixed-latency I/O operation, honoring request
// cancellation while it waits.
func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	select {
	case <-time.After(s.taskDelay):
	case <-r.Context().Done():
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "I/O operation complete!"})
}

func (s *Server) handleTopPosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	posts, err := s.api.TopPosts(ctx)
	if errors.Is(err, feed.ErrEmptyResult) {
		writeError(w, http.StatusNotFound, "No posts found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"top_posts": posts})
}

func (s *Server) handleCreateAndFetch(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Invalid request: content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	postID, posts, err := s.api.CreateAndRank(ctx, req.Content)
	if err != nil {
		// The insert may have succeeded even though ranking failed; keep the
		// post id visible rather than pretending nothing happened.
		if cfe, ok := feed.AsCreateFetchError(err); ok {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "Database error: " + cfe.Err.Error(),
				"post_id": cfe.PostID,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Post created successfully",
		"post_id":   postID,
		"top_posts": posts,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
