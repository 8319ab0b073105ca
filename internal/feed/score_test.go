package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alideep5/feedrank/internal/models"
)

func TestScore_Formula(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := models.Post{
		Likes:     10,
		Comments:  4,
		Shares:    2,
		CreatedAt: now.Add(-3 * time.Hour),
	}

	// 2*10 + 3*4 + 5*2 - 3h = 20 + 12 + 10 - 3
	assert.Equal(t, 39.0, Score(p, now))
}

func TestScore_Pure(t *testing.T) {
	now := time.Unix(1_720_000_000, 0)
	p := models.Post{Likes: 7, Comments: 1, Shares: 3, CreatedAt: now.Add(-90 * time.Minute)}

	first := Score(p, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(p, now))
	}
}

func TestScore_DecayMonotonic(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := models.Post{Likes: 5, Comments: 5, Shares: 5, CreatedAt: created}

	t1 := created.Add(1 * time.Hour)
	t2 := created.Add(2 * time.Hour)
	assert.Greater(t, Score(p, t1), Score(p, t2))
}

func TestScore_FutureCreatedAtNotClamped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := models.Post{CreatedAt: now.Add(2 * time.Hour)} // backdating gone wrong: post from the future

	// Zero counters, negative elapsed hours: score is +2, not clamped to 0.
	assert.Equal(t, 2.0, Score(p, now))
}

func TestScore_NegativeAllowed(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := models.Post{Likes: 1, CreatedAt: now.Add(-100 * time.Hour)}

	assert.Equal(t, -98.0, Score(p, now))
}
