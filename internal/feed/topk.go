package feed

import (
	"container/heap"
	"sort"

	"github.com/alideep5/feedrank/internal/models"
)

type scoredPost struct {
	post  models.Post
	score float64
	idx   int // position in the candidate sequence, breaks score ties
}

// topKHeap is a min-heap over the current best k candidates: the root is the
// weakest entry and gets evicted first. On equal scores the later candidate
// is the weaker entry, so survivors keep their input order.
type topKHeap []scoredPost

func (h topKHeap) Len() int { return len(h) }

func (h topKHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score < h[j].score
	}
	return h[i].idx > h[j].idx
}

func (h topKHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *topKHeap) Push(x any) { *h = append(*h, x.(scoredPost)) }

func (h *topKHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// SelectTopK reduces candidates to the k highest-scoring posts in
// score-descending order, with EngagementScore populated on each result.
// score runs exactly once per candidate. Candidates with equal scores keep
// their relative order from the input, the same order a full stable sort by
// score descending would produce. Large windows go through a bounded size-k
// heap instead of sorting the whole window.
func SelectTopK(candidates []models.Post, k int, score func(models.Post) float64) []models.Post {
	if k <= 0 || len(candidates) == 0 {
		return []models.Post{}
	}
	if len(candidates) <= k {
		return scoreAndSort(candidates, score)
	}

	h := make(topKHeap, 0, k)
	for i, p := range candidates {
		s := score(p)
		if len(h) < k {
			heap.Push(&h, scoredPost{post: p, score: s, idx: i})
			continue
		}
		// Strictly greater only: an equal score must not displace an
		// earlier candidate.
		if s > h[0].score {
			h[0] = scoredPost{post: p, score: s, idx: i}
			heap.Fix(&h, 0)
		}
	}

	out := make([]models.Post, len(h))
	for i := len(out) - 1; i >= 0; i-- {
		sp := heap.Pop(&h).(scoredPost)
		sp.post.EngagementScore = sp.score
		out[i] = sp.post
	}
	return out
}

func scoreAndSort(candidates []models.Post, score func(models.Post) float64) []models.Post {
	out := make([]models.Post, len(candidates))
	for i, p := range candidates {
		p.EngagementScore = score(p)
		out[i] = p
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EngagementScore > out[j].EngagementScore
	})
	return out
}
