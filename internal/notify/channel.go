// Package notify fans one logical message out to a subscriber's enabled
// channels. Channel failures are logged and reported as booleans, never
// propagated: one subscriber's broken channel must not break the batch.
package notify

import (
	"context"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// Channel names used as keys in SendResult
const (
	ChannelEmail      = "email"
	ChannelTelegram   = "telegram"
	ChannelGoogleChat = "google_chat"
)

// Button is an action attached to a message, rendered per channel
type Button struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Message is one logical notification, formatted per channel at send time
type Message struct {
	Title   string   `json:"title"`
	Body    string   `json:"body"`           // Plain text for chat channels
	HTML    string   `json:"html,omitempty"` // Rich body for email, falls back to Body
	Buttons []Button `json:"buttons,omitempty"`
}

// Channel is one delivery transport. IsConfigured must verify both the
// toggle and the required address: a flag without its address does not
// count as enabled.
type Channel interface {
	Name() string
	IsConfigured(settings models.NotificationSettings) bool
	Send(ctx context.Context, settings models.NotificationSettings, msg Message) error
}
