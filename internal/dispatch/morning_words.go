package dispatch

import (
	"context"
)

// MorningWords sends each eligible subscriber their day's word batch, with
// an AI passage generated once per distinct day.
func (d *Dispatcher) MorningWords(ctx context.Context) (*Summary, error) {
	b, err := d.prepare(TypeMorningWords, SlotMorning)
	if err != nil {
		return nil, err
	}

	cache := newContentCache()
	for _, day := range GroupDays(b.groups) {
		words := b.words[day]
		if len(words) == 0 {
			b.skipNoWords(day)
			continue
		}

		passage := cache.passage(ctx, d.content, day, words)
		msg := d.morningWordsMessage(day, words, passage)

		for _, sub := range b.groups[day] {
			channels := d.sender.Send(ctx, b.settings[sub.Email], msg)
			d.mark(sub.Email, b.date, TypeMorningWords, day)
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
