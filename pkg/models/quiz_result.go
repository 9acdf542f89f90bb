package models

import "time"

// Quiz slots, matching the attendance completion markers.
const (
	QuizMorning = "morning"
	QuizLunch   = "lunch"
	QuizEvening = "evening"
)

// QuizAnswer is one per-word answer inside a submission.
type QuizAnswer struct {
	Word      string `json:"word"`
	Meaning   string `json:"meaning"`
	Memorized bool   `json:"memorized"`
}

// QuizResult is the append-only audit row for one quiz submission.
// Answers are stored as a JSON array on the row itself.
type QuizResult struct {
	ID        int          `json:"id" db:"id"`
	Email     string       `json:"email" db:"email"`
	Day       int          `json:"day" db:"day"`
	QuizType  string       `json:"quiz_type" db:"quiz_type"`
	Score     int          `json:"score" db:"score"`
	Total     int          `json:"total" db:"total"`
	Answers   []QuizAnswer `json:"answers" db:"-"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}
