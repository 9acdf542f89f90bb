package models

import "strings"

// Default send times and active days applied when a subscriber has no
// settings row yet.
const (
	DefaultMorningTime = "07:30"
	DefaultLunchTime   = "12:00"
	DefaultEveningTime = "16:00"
)

// GoogleChatWebhookPrefix is the only accepted prefix for incoming webhooks.
// Validated when settings are written, not just at send time.
const GoogleChatWebhookPrefix = "https://chat.googleapis.com/"

// NotificationSettings holds a subscriber's channel toggles, addresses and
// per-slot send times. A missing row means "email only, default times".
type NotificationSettings struct {
	Email             string  `json:"email" db:"email"`
	EmailEnabled      bool    `json:"email_enabled" db:"email_enabled"`
	TelegramEnabled   bool    `json:"telegram_enabled" db:"telegram_enabled"`
	TelegramChatID    string  `json:"telegram_chat_id" db:"telegram_chat_id"`
	GoogleChatEnabled bool    `json:"google_chat_enabled" db:"google_chat_enabled"`
	GoogleChatWebhook string  `json:"google_chat_webhook" db:"google_chat_webhook"`
	MorningTime       string  `json:"morning_time" db:"morning_time"` // HH:mm
	LunchTime         string  `json:"lunch_time" db:"lunch_time"`
	EveningTime       string  `json:"evening_time" db:"evening_time"`
	ActiveDays        IntList `json:"active_days" db:"active_days"` // Weekdays 0=Sunday..6=Saturday
}

// DefaultSettings returns the settings used for subscribers without a row.
func DefaultSettings(email string) NotificationSettings {
	return NotificationSettings{
		Email:        email,
		EmailEnabled: true,
		MorningTime:  DefaultMorningTime,
		LunchTime:    DefaultLunchTime,
		EveningTime:  DefaultEveningTime,
		ActiveDays:   IntList{1, 2, 3, 4, 5},
	}
}

// Resolved returns a copy with every empty field replaced by its default,
// so callers never repeat fallback logic at read sites.
func (s NotificationSettings) Resolved() NotificationSettings {
	out := s
	if out.MorningTime == "" {
		out.MorningTime = DefaultMorningTime
	}
	if out.LunchTime == "" {
		out.LunchTime = DefaultLunchTime
	}
	if out.EveningTime == "" {
		out.EveningTime = DefaultEveningTime
	}
	if len(out.ActiveDays) == 0 {
		out.ActiveDays = IntList{1, 2, 3, 4, 5}
	}
	return out
}

// ActiveOn reports whether the given weekday (0=Sunday) is a sending day.
func (s NotificationSettings) ActiveOn(weekday int) bool {
	for _, d := range s.ActiveDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// ValidWebhook reports whether the Google Chat webhook has the expected
// provider prefix.
func ValidWebhook(url string) bool {
	return strings.HasPrefix(url, GoogleChatWebhookPrefix)
}
