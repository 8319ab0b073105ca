package feed

import (
	"time"

	"github.com/alideep5/feedrank/internal/models"
)

// Score computes the engagement score of a post relative to now:
// weighted interaction counts minus a linear decay in elapsed hours.
// now must come from the caller so a whole candidate window can be scored
// against one fixed timestamp. A created_at in the future yields negative
// elapsed hours and is not clamped; negative scores are valid.
func Score(p models.Post, now time.Time) float64 {
	hours := now.Sub(p.CreatedAt).Hours()
	return 2*float64(p.Likes) + 3*float64(p.Comments) + 5*float64(p.Shares) - hours
}
