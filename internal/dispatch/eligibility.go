package dispatch

import (
	"strconv"
	"strings"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// ToleranceMinutes is the half-width of the send window around a
// subscriber's configured slot time. The trigger fires every few minutes,
// so the window must be at least as wide as the trigger interval.
const ToleranceMinutes = 3

// Slots gate each dispatch on one of the per-subscriber send times
const (
	SlotMorning = "morning"
	SlotLunch   = "lunch"
	SlotEvening = "evening"
)

// SlotTime returns the subscriber's configured HH:mm for the given slot
func SlotTime(s models.NotificationSettings, slot string) string {
	switch slot {
	case SlotLunch:
		return s.LunchTime
	case SlotEvening:
		return s.EveningTime
	default:
		return s.MorningTime
	}
}

// IsEligible decides whether a scheduled dispatch should fire for a
// subscriber right now. All three rules must hold: a fully configured
// channel, an active weekday, and the clock inside the slot's tolerance
// window. Settings must already be resolved against defaults.
func IsEligible(sub models.Subscriber, s models.NotificationSettings, weekday int, nowHHMM, slot string) bool {
	if sub.Status != models.StatusActive {
		return false
	}
	if !HasConfiguredChannel(s) {
		return false
	}
	if !s.ActiveOn(weekday) {
		return false
	}
	return WithinWindow(nowHHMM, SlotTime(s, slot), ToleranceMinutes)
}

// HasConfiguredChannel reports whether at least one channel is both enabled
// and carries the address it needs. A toggle without its address does not
// count.
func HasConfiguredChannel(s models.NotificationSettings) bool {
	if s.EmailEnabled && s.Email != "" {
		return true
	}
	if s.TelegramEnabled && s.TelegramChatID != "" {
		return true
	}
	if s.GoogleChatEnabled && models.ValidWebhook(s.GoogleChatWebhook) {
		return true
	}
	return false
}

// WithinWindow reports whether now falls within ±tolerance minutes of
// target on a circular 24-hour clock, so a window spanning midnight
// (23:59 -> 00:01) still matches. Malformed times never match.
func WithinWindow(nowHHMM, targetHHMM string, tolerance int) bool {
	now, ok := parseHHMM(nowHHMM)
	if !ok {
		return false
	}
	target, ok := parseHHMM(targetHHMM)
	if !ok {
		return false
	}

	diff := now - target
	if diff < 0 {
		diff = -diff
	}
	// Shorter way around the clock
	if wrapped := 24*60 - diff; wrapped < diff {
		diff = wrapped
	}
	return diff <= tolerance
}

// parseHHMM parses "HH:mm" into minutes since midnight
func parseHHMM(v string) (int, bool) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
