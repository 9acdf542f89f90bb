package dispatch

import (
	"context"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// MorningTest invites each eligible subscriber to the morning quiz. It is
// gated and deduplicated exactly like the other dispatches; the quiz itself
// happens on the dashboard.
func (d *Dispatcher) MorningTest(ctx context.Context) (*Summary, error) {
	b, err := d.prepare(TypeMorningTest, SlotMorning)
	if err != nil {
		return nil, err
	}

	for _, day := range GroupDays(b.groups) {
		words := b.words[day]
		if len(words) == 0 {
			b.skipNoWords(day)
			continue
		}

		msg := d.quizInviteMessage(day, models.QuizMorning, len(words))

		for _, sub := range b.groups[day] {
			channels := d.sender.Send(ctx, b.settings[sub.Email], msg)
			d.mark(sub.Email, b.date, TypeMorningTest, day)
			b.summary.Sent++
			b.summary.Results = append(b.summary.Results, SubscriberResult{
				Email:    sub.Email,
				Day:      day,
				Status:   StatusSent,
				Channels: channels,
			})
		}
	}

	return b.summary, nil
}
