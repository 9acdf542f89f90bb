package dispatch

import (
	"testing"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestWithinWindow(t *testing.T) {
	tests := []struct {
		name   string
		now    string
		target string
		want   bool
	}{
		{"exact match", "07:30", "07:30", true},
		{"edge of window before", "07:27", "07:30", true},
		{"edge of window after", "07:33", "07:30", true},
		{"just outside before", "07:26", "07:30", false},
		{"just outside after", "07:34", "07:30", false},
		{"wraps over midnight forward", "00:01", "23:59", true},
		{"wraps over midnight backward", "23:58", "00:01", true},
		{"far apart across midnight", "23:50", "00:10", false},
		{"malformed now", "seven", "07:30", false},
		{"malformed target", "07:30", "", false},
		{"out of range hour", "25:00", "07:30", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinWindow(tt.now, tt.target, ToleranceMinutes))
		})
	}
}

func TestSlotTime(t *testing.T) {
	s := models.NotificationSettings{
		MorningTime: "06:00",
		LunchTime:   "13:00",
		EveningTime: "21:00",
	}
	assert.Equal(t, "06:00", SlotTime(s, SlotMorning))
	assert.Equal(t, "13:00", SlotTime(s, SlotLunch))
	assert.Equal(t, "21:00", SlotTime(s, SlotEvening))
}

func TestHasConfiguredChannel(t *testing.T) {
	tests := []struct {
		name     string
		settings models.NotificationSettings
		want     bool
	}{
		{
			"email enabled with address",
			models.NotificationSettings{EmailEnabled: true, Email: "a@b.com"},
			true,
		},
		{
			"email enabled without address",
			models.NotificationSettings{EmailEnabled: true},
			false,
		},
		{
			"telegram enabled with chat id",
			models.NotificationSettings{TelegramEnabled: true, TelegramChatID: "12345"},
			true,
		},
		{
			"telegram toggle without chat id",
			models.NotificationSettings{TelegramEnabled: true},
			false,
		},
		{
			"google chat with valid webhook",
			models.NotificationSettings{
				GoogleChatEnabled: true,
				GoogleChatWebhook: "https://chat.googleapis.com/v1/spaces/x/messages?key=y",
			},
			true,
		},
		{
			"google chat with foreign webhook",
			models.NotificationSettings{
				GoogleChatEnabled: true,
				GoogleChatWebhook: "https://evil.example.com/hook",
			},
			false,
		},
		{
			"nothing enabled",
			models.NotificationSettings{Email: "a@b.com", TelegramChatID: "1"},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasConfiguredChannel(tt.settings))
		})
	}
}

func TestIsEligible(t *testing.T) {
	active := models.Subscriber{Email: "a@b.com", Status: models.StatusActive, CurrentDay: 3}
	settings := models.DefaultSettings("a@b.com") // weekdays, 07:30 morning

	t.Run("active subscriber inside window", func(t *testing.T) {
		assert.True(t, IsEligible(active, settings, 1, "07:31", SlotMorning))
	})

	t.Run("paused subscriber", func(t *testing.T) {
		paused := active
		paused.Status = models.StatusPaused
		assert.False(t, IsEligible(paused, settings, 1, "07:31", SlotMorning))
	})

	t.Run("inactive weekday", func(t *testing.T) {
		assert.False(t, IsEligible(active, settings, 0, "07:31", SlotMorning))
	})

	t.Run("outside window", func(t *testing.T) {
		assert.False(t, IsEligible(active, settings, 1, "09:00", SlotMorning))
	})

	t.Run("no configured channel", func(t *testing.T) {
		bare := settings
		bare.EmailEnabled = false
		assert.False(t, IsEligible(active, bare, 1, "07:31", SlotMorning))
	})
}
