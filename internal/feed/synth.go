package feed

import (
	"math/rand"
	"time"
)

// Engagement is the demo-data half of a new post: when it was "created" and
// how much interaction it arrives with.
type Engagement struct {
	CreatedAt time.Time
	Likes     int
	Comments  int
	Shares    int
}

// Synth supplies the engagement fields for a newly created post. It is a
// policy object so the create workflow stays deterministic under test while
// demo deployments get randomized data.
type Synth interface {
	Draw(now time.Time) Engagement
}

// RandSynth backdates posts by a random number of hours (up to 30 days) and
// draws bounded random counters. Reads its own rand.Rand rather than the
// global source so seeding stays explicit.
type RandSynth struct {
	r *rand.Rand
}

func NewRandSynth(seed int64) *RandSynth {
	return &RandSynth{r: rand.New(rand.NewSource(seed))}
}

func (s *RandSynth) Draw(now time.Time) Engagement {
	return Engagement{
		CreatedAt: now.UTC().Add(-time.Hour * time.Duration(s.r.Intn(720))),
		Likes:     s.r.Intn(101),
		Comments:  s.r.Intn(51),
		Shares:    s.r.Intn(21),
	}
}

// FixedSynth returns the same engagement on every draw, with CreatedAt taken
// from the supplied now. Test builds inject it for reproducible rankings.
type FixedSynth struct {
	Backdate time.Duration
	Likes    int
	Comments int
	Shares   int
}

func (s FixedSynth) Draw(now time.Time) Engagement {
	return Engagement{
		CreatedAt: now.UTC().Add(-s.Backdate),
		Likes:     s.Likes,
		Comments:  s.Comments,
		Shares:    s.Shares,
	}
}
