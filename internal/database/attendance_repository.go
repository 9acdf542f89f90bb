package database

import (
	"fmt"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// AttendanceRepository handles database operations for attendance markers.
// The table is dual-purpose: dashboard streak history and the dedup guard
// for the at-least-once dispatch trigger.
type AttendanceRepository struct{}

// NewAttendanceRepository creates a new repository instance
func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{}
}

// MarkedEmails returns the set of subscribers that already carry the given
// marker today. Dispatch prefetches this once per invocation instead of one
// existence check per subscriber.
func (r *AttendanceRepository) MarkedEmails(date, typ string) (map[string]bool, error) {
	var emails []string
	err := DB.Select(&emails,
		"SELECT email FROM attendance WHERE date = $1 AND type = $2", date, typ)
	if err != nil {
		return nil, fmt.Errorf("failed to get marked emails: %v", err)
	}

	set := make(map[string]bool, len(emails))
	for _, e := range emails {
		set[e] = true
	}
	return set, nil
}

// Upsert writes a marker, idempotent on the (email, date, type) natural key
func (r *AttendanceRepository) Upsert(rec models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance (email, date, type, completed, day)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email, date, type) DO UPDATE SET
			completed = EXCLUDED.completed,
			day = EXCLUDED.day
	`
	_, err := DB.Exec(query, rec.Email, rec.Date, rec.Type, rec.Completed, rec.Day)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance: %v", err)
	}
	return nil
}

// ListByEmail returns a subscriber's attendance history, newest first.
// The dashboard computes streaks from these rows.
func (r *AttendanceRepository) ListByEmail(email string, limit int) ([]models.AttendanceRecord, error) {
	if limit <= 0 {
		limit = 90
	}
	var records []models.AttendanceRecord
	err := DB.Select(&records,
		"SELECT * FROM attendance WHERE email = $1 ORDER BY date DESC, type LIMIT $2",
		email, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %v", err)
	}
	return records, nil
}
