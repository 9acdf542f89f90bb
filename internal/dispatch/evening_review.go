package dispatch

import (
	"context"
	"fmt"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// EveningReview sends the day recap and runs the day-advancement protocol.
// A subscriber advances exactly one day when they completed the midday
// checkpoint and the ceiling allows it; at the ceiling they graduate with a
// distinct message instead of silently stalling. The streak-facing
// "evening" marker is recorded for everyone regardless of advancement.
func (d *Dispatcher) EveningReview(ctx context.Context) (*Summary, error) {
	b, err := d.prepare(TypeEveningReview, SlotEvening)
	if err != nil {
		return nil, err
	}

	totalDays, err := d.appConfig.TotalDays()
	if err != nil {
		return nil, fmt.Errorf("failed to load total days: %v", err)
	}

	// One query for everyone who finished the lunch quiz today
	lunchDone, err := d.attendance.MarkedEmails(b.date, models.AttendanceLunch)
	if err != nil {
		return nil, fmt.Errorf("failed to load lunch completions: %v", err)
	}

	cache := newContentCache()
	for _, day := range GroupDays(b.groups) {
		words := b.words[day]
		if len(words) == 0 {
			b.skipNoWords(day)
			continue
		}

		summaryText := cache.summary(ctx, d.content, day, words)

		for _, sub := range b.groups[day] {
			completed := lunchDone[sub.Email]
			graduated := completed && day >= totalDays

			msg := d.eveningMessage(day, words, summaryText, completed, graduated)
			channels := d.sender.Send(ctx, b.settings[sub.Email], msg)

			result := SubscriberResult{
				Email:     sub.Email,
				Day:       day,
				Status:    StatusSent,
				Channels:  channels,
				Graduated: graduated,
			}

			// The message already went out; an advancement failure is
			// surfaced in the result, never rolled back.
			if completed && !graduated {
				if _, advanced, err := d.subscribers.AdvanceDay(sub.Email, totalDays); err != nil {
					result.Error = fmt.Sprintf("day advancement failed: %v", err)
				} else {
					result.Advanced = advanced
				}
			}

			d.mark(sub.Email, b.date, TypeEveningReview, day)
			d.mark(sub.Email, b.date, models.AttendanceEvening, day)

			b.summary.Sent++
			b.summary.Results = append(b.summary.Results, result)
		}
	}

	return b.summary, nil
}

// Run dispatches by type name, for the HTTP trigger endpoint
func (d *Dispatcher) Run(ctx context.Context, dispatchType string) (*Summary, error) {
	switch dispatchType {
	case TypeMorningWords:
		return d.MorningWords(ctx)
	case TypeMorningTest:
		return d.MorningTest(ctx)
	case TypeLunchTest:
		return d.LunchTest(ctx)
	case TypeEveningReview:
		return d.EveningReview(ctx)
	default:
		return nil, fmt.Errorf("unknown dispatch type: %s", dispatchType)
	}
}
