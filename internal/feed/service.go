package feed

import (
	"context"
	"time"

	"github.com/alideep5/feedrank/internal/models"
)

// Service orchestrates post creation and ranked reads. Scoring and selection
// are in-process; the only blocking points are StorePort calls.
type Service struct {
	store StorePort
	synth Synth
	now   func() time.Time

	// atomicUserIDs selects the creation workflow. False allocates in two
	// statements: user_id is read in one and the row inserted in another,
	// so concurrent creates can observe the same last user_id and insert
	// duplicates. True routes creation through the store's single
	// read-max-and-insert statement.
	atomicUserIDs bool
}

func New(store StorePort, synth Synth, atomicUserIDs bool, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if synth == nil {
		synth = NewRandSynth(time.Now().UnixNano())
	}
	return &Service{store: store, synth: synth, now: now, atomicUserIDs: atomicUserIDs}
}

// TopPosts fetches up to limit candidates in store order and reduces them to
// the k highest-scoring posts. Every candidate is scored against one "now"
// captured at the start, so the ordering is internally consistent even if
// wall-clock time advances mid-request. An empty window is ErrEmptyResult.
func (s *Service) TopPosts(ctx context.Context, limit, k int) ([]models.Post, error) {
	now := s.now()
	posts, err := s.store.QueryWindow(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrEmptyResult
	}
	return rank(posts, k, now), nil
}

// CreateAndRank inserts a new post with synthesized engagement, then ranks a
// recency-ordered window of up to limit candidates down to k. The new post
// competes like any other candidate and may be absent from the result. If the
// fetch fails after the insert succeeded, the returned error is a
// CreateFetchError carrying the inserted post's id.
func (s *Service) CreateAndRank(ctx context.Context, content string, limit, k int) (int64, []models.Post, error) {
	now := s.now()
	eng := s.synth.Draw(now)
	post := models.NewPost{
		Content:   content,
		CreatedAt: eng.CreatedAt,
		Likes:     eng.Likes,
		Comments:  eng.Comments,
		Shares:    eng.Shares,
	}

	var postID int64
	if s.atomicUserIDs {
		id, _, err := s.store.InsertPostNextUser(ctx, post)
		if err != nil {
			return 0, nil, err
		}
		postID = id
	} else {
		userID, err := s.store.AllocateNextUserID(ctx)
		if err != nil {
			return 0, nil, err
		}
		post.UserID = userID
		id, err := s.store.InsertPost(ctx, post)
		if err != nil {
			return 0, nil, err
		}
		postID = id
	}

	candidates, err := s.store.QueryRecent(ctx, limit)
	if err != nil {
		return postID, nil, &CreateFetchError{PostID: postID, Err: err}
	}
	return postID, rank(candidates, k, now), nil
}

func rank(posts []models.Post, k int, now time.Time) []models.Post {
	return SelectTopK(posts, k, func(p models.Post) float64 {
		return Score(p, now)
	})
}
