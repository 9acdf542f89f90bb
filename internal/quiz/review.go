package quiz

import (
	"math/rand"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// MaxPriority caps how strongly a frequently-missed word is weighted
const MaxPriority = 10

// PostponedPriority is the flat weight for words from postponed days
const PostponedPriority = 1

// ReviewItem is one entry of the weighted review queue
type ReviewItem struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Priority int    `json:"priority"`
}

// Priority maps a wrong count to a sampling weight: min(wrong_count*2, 10).
// A count of 0 maps to 0 duplicates, so such a word may legitimately be
// absent from the queue.
func Priority(wrongCount int) int {
	p := wrongCount * 2
	if p > MaxPriority {
		p = MaxPriority
	}
	if p < 0 {
		p = 0
	}
	return p
}

// BuildReviewQueue produces the review order for a subscriber: wrong words
// weighted by their miss count, postponed-day words at a flat low weight.
// Each word enters a sampling pool priority times, the pool is shuffled
// uniformly, and first occurrence wins, so harder words tend to surface
// earlier without the order being deterministic.
func BuildReviewQueue(wrongWords []models.WrongWordEntry, postponed []models.Word, rng *rand.Rand) []ReviewItem {
	items := make(map[string]ReviewItem)
	var pool []string

	for _, e := range wrongWords {
		if e.Mastered {
			continue
		}
		p := Priority(e.WrongCount)
		if p == 0 {
			continue
		}
		items[e.Word] = ReviewItem{Word: e.Word, Meaning: e.Meaning, Priority: p}
		for i := 0; i < p; i++ {
			pool = append(pool, e.Word)
		}
	}

	for _, w := range postponed {
		if _, tracked := items[w.Word]; tracked {
			continue
		}
		items[w.Word] = ReviewItem{Word: w.Word, Meaning: w.Meaning, Priority: PostponedPriority}
		for i := 0; i < PostponedPriority; i++ {
			pool = append(pool, w.Word)
		}
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	seen := make(map[string]bool, len(items))
	queue := make([]ReviewItem, 0, len(items))
	for _, word := range pool {
		if seen[word] {
			continue
		}
		seen[word] = true
		queue = append(queue, items[word])
	}
	return queue
}
