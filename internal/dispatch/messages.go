package dispatch

import (
	"fmt"
	"strings"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/notify"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// wordList renders the day's words as one line per entry
func wordList(words []models.Word) string {
	var sb strings.Builder
	for _, w := range words {
		fmt.Fprintf(&sb, "%s — %s\n", w.Word, w.Meaning)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// dashboardButton links a message back to the web dashboard
func (d *Dispatcher) dashboardButton(label, path string) notify.Button {
	return notify.Button{Label: label, URL: d.dashboardURL + path}
}

// morningWordsMessage is the day's word batch plus the optional AI passage
func (d *Dispatcher) morningWordsMessage(day int, words []models.Word, passage string) notify.Message {
	body := wordList(words)
	if passage != "" {
		body += "\n\nToday's passage:\n" + passage
	}
	return notify.Message{
		Title:   fmt.Sprintf("Day %d — today's words", day),
		Body:    body,
		Buttons: []notify.Button{d.dashboardButton("Open dashboard", "/")},
	}
}

// quizInviteMessage invites the subscriber to a quiz slot
func (d *Dispatcher) quizInviteMessage(day int, slot string, wordCount int) notify.Message {
	var title string
	switch slot {
	case models.QuizLunch:
		title = fmt.Sprintf("Day %d — lunch quiz", day)
	default:
		title = fmt.Sprintf("Day %d — morning quiz", day)
	}
	return notify.Message{
		Title: title,
		Body:  fmt.Sprintf("Time to check yourself: %d words are waiting.", wordCount),
		Buttons: []notify.Button{
			d.dashboardButton("Start quiz", fmt.Sprintf("/quiz?day=%d&slot=%s", day, slot)),
		},
	}
}

// eveningMessage recaps the day. The variant depends on whether the
// subscriber completed the midday checkpoint and whether they are at the
// progression ceiling.
func (d *Dispatcher) eveningMessage(day int, words []models.Word, summary string, completed, graduated bool) notify.Message {
	body := wordList(words)
	if summary != "" {
		body += "\n\n" + summary
	}

	var title string
	switch {
	case graduated:
		title = fmt.Sprintf("Day %d complete — you finished the whole course! 🎉", day)
		body += "\n\nThat was the final day. Congratulations on making it all the way through!"
	case completed:
		title = fmt.Sprintf("Day %d complete — day %d unlocks tomorrow", day, day+1)
	default:
		title = fmt.Sprintf("Day %d review", day)
		body += "\n\nFinish the lunch quiz to move on to the next day."
	}

	return notify.Message{
		Title:   title,
		Body:    body,
		Buttons: []notify.Button{d.dashboardButton("Review today", fmt.Sprintf("/review?day=%d", day))},
	}
}
