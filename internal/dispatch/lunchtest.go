package dispatch

import (
	"context"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// LunchTest invites each eligible subscriber to the midday quiz. Completing
// it writes the "lunch" attendance marker that gates the evening day
// advancement.
func (d *Dispatcher) LunchTest(ctx context.Context) (*Summary, error) {
	b, err := d.prepare(TypeLunchTest, SlotLunch)
	if err != nil {
		return nil, err
	}

	for _, day := range GroupDays(b.groups) {
		words := b.words[day]
		if len(words) == 0 {
			b.skipNoWords(day)
			continue
		}

		msg := d.quizInviteMessage(day, models.QuizLunch, len(words))

		for _, sub := range b.groups[day] {
			channels := d.sender.Send(ctx, b.settings[sub.Email], msg)
			d.mark(sub.Email, b.date, TypeLunchTest, day)
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
