package database

import (
	"database/sql"
	"fmt"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// SettingsRepository handles database operations for notification settings
type SettingsRepository struct{}

// NewSettingsRepository creates a new repository instance
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// GetByEmail returns settings for one subscriber, resolved against defaults.
// A missing row yields the default settings rather than an error.
func (r *SettingsRepository) GetByEmail(email string) (models.NotificationSettings, error) {
	var s models.NotificationSettings
	err := DB.Get(&s, "SELECT * FROM notification_settings WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return models.DefaultSettings(email), nil
	}
	if err != nil {
		return models.NotificationSettings{}, fmt.Errorf("failed to get settings: %v", err)
	}
	return s.Resolved(), nil
}

// GetAll returns all settings rows keyed by email, resolved against
// defaults. Dispatch loads this once per invocation instead of one query
// per subscriber.
func (r *SettingsRepository) GetAll() (map[string]models.NotificationSettings, error) {
	var rows []models.NotificationSettings
	err := DB.Select(&rows, "SELECT * FROM notification_settings")
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %v", err)
	}

	out := make(map[string]models.NotificationSettings, len(rows))
	for _, s := range rows {
		out[s.Email] = s.Resolved()
	}
	return out, nil
}

// Upsert writes a settings row. The Google Chat webhook is validated here,
// at write time, so the send path can trust stored values.
func (r *SettingsRepository) Upsert(s models.NotificationSettings) error {
	if s.GoogleChatEnabled && s.GoogleChatWebhook != "" && !models.ValidWebhook(s.GoogleChatWebhook) {
		return fmt.Errorf("google chat webhook must start with %s", models.GoogleChatWebhookPrefix)
	}

	resolved := s.Resolved()
	query := `
		INSERT INTO notification_settings (
			email, email_enabled, telegram_enabled, telegram_chat_id,
			google_chat_enabled, google_chat_webhook,
			morning_time, lunch_time, evening_time, active_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (email) DO UPDATE SET
			email_enabled = EXCLUDED.email_enabled,
			telegram_enabled = EXCLUDED.telegram_enabled,
			telegram_chat_id = EXCLUDED.telegram_chat_id,
			google_chat_enabled = EXCLUDED.google_chat_enabled,
			google_chat_webhook = EXCLUDED.google_chat_webhook,
			morning_time = EXCLUDED.morning_time,
			lunch_time = EXCLUDED.lunch_time,
			evening_time = EXCLUDED.evening_time,
			active_days = EXCLUDED.active_days
	`
	_, err := DB.Exec(query,
		resolved.Email,
		resolved.EmailEnabled,
		resolved.TelegramEnabled,
		resolved.TelegramChatID,
		resolved.GoogleChatEnabled,
		resolved.GoogleChatWebhook,
		resolved.MorningTime,
		resolved.LunchTime,
		resolved.EveningTime,
		resolved.ActiveDays,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %v", err)
	}
	return nil
}
