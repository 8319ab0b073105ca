package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alideep5/feedrank/internal/api"
	"github.com/alideep5/feedrank/internal/feed"
	"github.com/alideep5/feedrank/internal/models"
)

type fakeStore struct {
	posts      []models.Post
	nextID     int64
	failWindow bool
	failRecent bool
}

func (f *fakeStore) AllocateNextUserID(ctx context.Context) (int64, error) {
	if len(f.posts) == 0 {
		return 1, nil
	}
	return f.posts[len(f.posts)-1].UserID + 1, nil
}

func (f *fakeStore) InsertPost(ctx context.Context, p models.NewPost) (int64, error) {
	f.nextID++
	f.posts = append(f.posts, models.Post{
		ID: f.nextID, UserID: p.UserID, Content: p.Content,
		CreatedAt: p.CreatedAt, Likes: p.Likes, Comments: p.Comments, Shares: p.Shares,
	})
	return f.nextID, nil
}

func (f *fakeStore) InsertPostNextUser(ctx context.Context, p models.NewPost) (int64, int64, error) {
	uid, _ := f.AllocateNextUserID(ctx)
	p.UserID = uid
	id, err := f.InsertPost(ctx, p)
	return id, uid, err
}

func (f *fakeStore) QueryRecent(ctx context.Context, limit int) ([]models.Post, error) {
	if f.failRecent {
		return nil, fmt.Errorf("%w: connection refused", feed.ErrStoreUnavailable)
	}
	return f.window(limit), nil
}

func (f *fakeStore) QueryWindow(ctx context.Context, limit int) ([]models.Post, error) {
	if f.failWindow {
		return nil, fmt.Errorf("%w: connection refused", feed.ErrStoreUnavailable)
	}
	return f.window(limit), nil
}

func (f *fakeStore) window(limit int) []models.Post {
	out := make([]models.Post, len(f.posts))
	copy(out, f.posts)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func newTestServer(t *testing.T, st *fakeStore) *httptest.Server {
	t.Helper()
	now := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	svc := feed.New(st, feed.FixedSynth{Likes: 1}, false, now)
	app := api.New(svc, 10, 25000, 200)
	srv := httptest.NewServer(New(app, nil, 10*time.Millisecond).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHandleRoot(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello, World!", decodeBody(t, resp)["message"])
}

func TestHandleTask(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	start := time.Now()
	resp, err := http.Get(srv.URL + "/task")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Equal(t, "I/O operation complete!", decodeBody(t, resp)["message"])
}

func TestHandleTopPosts_EmptyStore(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	resp, err := http.Get(srv.URL + "/top-posts")
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["error"], "No posts")
}

func TestHandleTopPosts_StoreError(t *testing.T) {
	srv := newTestServer(t, &fakeStore{failWindow: true})

	resp, err := http.Get(srv.URL + "/top-posts")
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["error"], "Database error")
}

func TestHandleTopPosts_RankedResult(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := &fakeStore{nextID: 3}
	st.posts = []models.Post{
		{ID: 1, UserID: 1, CreatedAt: now, Likes: 25},
		{ID: 2, UserID: 2, CreatedAt: now, Likes: 15},
		{ID: 3, UserID: 3, CreatedAt: now, Likes: 40},
	}
	srv := newTestServer(t, st)

	resp, err := http.Get(srv.URL + "/top-posts")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	top, ok := body["top_posts"].([]any)
	require.True(t, ok)
	require.Len(t, top, 3)
	first := top[0].(map[string]any)
	assert.Equal(t, float64(3), first["id"])
	assert.Equal(t, 80.0, first["engagement_score"])
}

func TestHandleCreateAndFetch_InvalidBody(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	resp, err := http.Post(srv.URL+"/create-and-fetch", "application/json",
		strings.NewReader("not json"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["error"], "Invalid request")
}

func TestHandleCreateAndFetch_MissingContent(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	resp, err := http.Post(srv.URL+"/create-and-fetch", "application/json",
		strings.NewReader(`{"content":"  "}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["error"], "content is required")
}

func TestHandleCreateAndFetch_Success(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	resp, err := http.Post(srv.URL+"/create-and-fetch", "application/json",
		strings.NewReader(`{"content":"hello"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Post created successfully", body["message"])
	assert.Equal(t, float64(1), body["post_id"])
	top, ok := body["top_posts"].([]any)
	require.True(t, ok)
	require.Len(t, top, 1)
	assert.Equal(t, "hello", top[0].(map[string]any)["content"])
}

func TestHandleCreateAndFetch_FetchFailureKeepsPostID(t *testing.T) {
	srv := newTestServer(t, &fakeStore{failRecent: true})

	resp, err := http.Post(srv.URL+"/create-and-fetch", "application/json",
		strings.NewReader(`{"content":"hello"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "Database error")
	assert.Equal(t, float64(1), body["post_id"], "insert succeeded, its id must be surfaced")
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
