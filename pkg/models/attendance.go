package models

import "time"

// Dispatch dedup markers, one per subscriber per day per dispatch type.
const (
	AttendanceMorningWords  = "morning_words"
	AttendanceMorningTest   = "morning_test"
	AttendanceLunchTest     = "lunch_test"
	AttendanceEveningReview = "evening_review"
)

// User completion markers driving the streak calculation. A "lunch" marker
// is also the gate for the evening day-advancement.
const (
	AttendanceMorning   = "morning"
	AttendanceLunch     = "lunch"
	AttendanceEvening   = "evening"
	AttendancePostponed = "postponed"
)

// AttendanceRecord is an upsert-only completion marker keyed by
// (email, date, type). The table is dual-purpose: streak history for the
// dashboard and a dedup guard for the at-least-once dispatch trigger.
type AttendanceRecord struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Date      string    `json:"date" db:"date"` // YYYY-MM-DD in the organizational timezone
	Type      string    `json:"type" db:"type"`
	Completed bool      `json:"completed" db:"completed"`
	Day       *int      `json:"day,omitempty" db:"day"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
