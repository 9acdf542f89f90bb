package dispatch

import (
	"context"
	"log"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// contentCache memoizes generated content per distinct day for the lifetime
// of one invocation. It is a plain value created inside each dispatch call
// and passed down the loop, never package state, so invocations stay pure
// and testable in isolation.
type contentCache struct {
	passages  map[int]string
	summaries map[int]string
}

func newContentCache() *contentCache {
	return &contentCache{
		passages:  make(map[int]string),
		summaries: make(map[int]string),
	}
}

// passage returns the morning passage for a day, generating it at most
// once. Generation failures degrade to an empty section.
func (c *contentCache) passage(ctx context.Context, gen ContentGenerator, day int, words []models.Word) string {
	if text, ok := c.passages[day]; ok {
		return text
	}
	text := ""
	if gen != nil {
		generated, err := gen.DailyPassage(ctx, words)
		if err != nil {
			log.Printf("dispatch: passage generation failed for day %d: %v", day, err)
		} else {
			text = generated
		}
	}
	c.passages[day] = text
	return text
}

// summary returns the evening review summary for a day, generating it at
// most once. Generation failures degrade to an empty section.
func (c *contentCache) summary(ctx context.Context, gen ContentGenerator, day int, words []models.Word) string {
	if text, ok := c.summaries[day]; ok {
		return text
	}
	text := ""
	if gen != nil {
		generated, err := gen.ReviewSummary(ctx, day, words)
		if err != nil {
			log.Printf("dispatch: review summary generation failed for day %d: %v", day, err)
		} else {
			text = generated
		}
	}
	c.summaries[day] = text
	return text
}
