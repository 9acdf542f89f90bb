package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// SubscriberRepository handles database operations for subscribers
type SubscriberRepository struct{}

// NewSubscriberRepository creates a new repository instance
func NewSubscriberRepository() *SubscriberRepository {
	return &SubscriberRepository{}
}

// GetByEmail returns a subscriber by email
func (r *SubscriberRepository) GetByEmail(email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := DB.Get(&sub, "SELECT * FROM subscribers WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriber: %v", err)
	}
	return &sub, nil
}

// GetActive returns all active subscribers
func (r *SubscriberRepository) GetActive() ([]models.Subscriber, error) {
	var subs []models.Subscriber
	err := DB.Select(&subs, "SELECT * FROM subscribers WHERE status = $1 ORDER BY created_at", models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscribers: %v", err)
	}
	return subs, nil
}

// Upsert creates a subscriber or refreshes the name on conflict. Used by the
// signup/OAuth callback path; existing progression is never touched.
func (r *SubscriberRepository) Upsert(sub *models.Subscriber) error {
	if sub.CurrentDay < 1 {
		sub.CurrentDay = 1
	}
	if sub.Status == "" {
		sub.Status = models.StatusActive
	}
	now := time.Now()
	query := `
		INSERT INTO subscribers (email, name, status, current_day, postponed_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = EXCLUDED.updated_at
	`
	_, err := DB.Exec(query, sub.Email, sub.Name, sub.Status, sub.CurrentDay, sub.PostponedDays, now)
	if err != nil {
		return fmt.Errorf("failed to upsert subscriber: %v", err)
	}
	return nil
}

// AdvanceDay increments current_day by exactly one, bounded by ceiling.
// The guard lives in the statement itself, so the increment stays monotonic
// even when two invocations race. Returns the day after the update and
// whether an advance happened.
func (r *SubscriberRepository) AdvanceDay(email string, ceiling int) (int, bool, error) {
	now := time.Now()
	res, err := DB.Exec(`
		UPDATE subscribers
		SET current_day = current_day + 1, last_lesson_at = $1, updated_at = $1
		WHERE email = $2 AND current_day + 1 <= $3
	`, now, email, ceiling)
	if err != nil {
		return 0, false, fmt.Errorf("failed to advance day: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("failed to advance day: %v", err)
	}

	var day int
	if err := DB.Get(&day, "SELECT current_day FROM subscribers WHERE email = $1", email); err != nil {
		return 0, false, fmt.Errorf("failed to read current day: %v", err)
	}
	return day, affected > 0, nil
}

// SetDay overrides current_day directly. Admin path only; bypasses the
// monotonic advancement protocol.
func (r *SubscriberRepository) SetDay(email string, day int) error {
	if day < 1 {
		return fmt.Errorf("day must be at least 1, got %d", day)
	}
	_, err := DB.Exec("UPDATE subscribers SET current_day = $1, updated_at = $2 WHERE email = $3",
		day, time.Now(), email)
	if err != nil {
		return fmt.Errorf("failed to set day: %v", err)
	}
	return nil
}

// UpdateStatus transitions a subscriber between active and paused
func (r *SubscriberRepository) UpdateStatus(email, status string) error {
	if status != models.StatusActive && status != models.StatusPaused {
		return fmt.Errorf("unknown subscriber status: %s", status)
	}
	_, err := DB.Exec("UPDATE subscribers SET status = $1, updated_at = $2 WHERE email = $3",
		status, time.Now(), email)
	if err != nil {
		return fmt.Errorf("failed to update status: %v", err)
	}
	return nil
}

// UpdatePostponedDays replaces the postponed day list
func (r *SubscriberRepository) UpdatePostponedDays(email string, days models.IntList) error {
	_, err := DB.Exec("UPDATE subscribers SET postponed_days = $1, updated_at = $2 WHERE email = $3",
		days, time.Now(), email)
	if err != nil {
		return fmt.Errorf("failed to update postponed days: %v", err)
	}
	return nil
}
