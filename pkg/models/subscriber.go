package models

import "time"

// Subscriber statuses. Subscribers are never hard-deleted; pausing keeps
// their history and settings intact.
const (
	StatusActive = "active"
	StatusPaused = "paused"
)

// Subscriber represents a person receiving scheduled word batches.
// The email address is the identity used across all tables.
type Subscriber struct {
	Email         string     `json:"email" db:"email"`
	Name          string     `json:"name" db:"name"`
	Status        string     `json:"status" db:"status"`
	CurrentDay    int        `json:"current_day" db:"current_day"` // Personal progression pointer, starts at 1
	PostponedDays IntList    `json:"postponed_days" db:"postponed_days"`
	LastLessonAt  *time.Time `json:"last_lesson_at" db:"last_lesson_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// Day returns the subscriber's current day, defaulting to 1 for rows
// created before the progression column existed.
func (s *Subscriber) Day() int {
	if s.CurrentDay < 1 {
		return 1
	}
	return s.CurrentDay
}
