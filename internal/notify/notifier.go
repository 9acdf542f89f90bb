package notify

import (
	"context"
	"log"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// SendResult reports per-channel delivery, keyed by channel name. A channel
// that was not configured for the subscriber is reported false, same as a
// failed send.
type SendResult map[string]bool

// Any reports whether at least one channel accepted the message
func (r SendResult) Any() bool {
	for _, ok := range r {
		if ok {
			return true
		}
	}
	return false
}

// Notifier fans a message out over all registered channels
type Notifier struct {
	channels []Channel
}

// New creates a notifier over the given channels
func New(channels ...Channel) *Notifier {
	return &Notifier{channels: channels}
}

// Send delivers msg to the subscriber over every configured channel.
// Failures are logged and recorded as false; they never stop the remaining
// channels and never surface as an error.
func (n *Notifier) Send(ctx context.Context, settings models.NotificationSettings, msg Message) SendResult {
	result := make(SendResult, len(n.channels))
	for _, ch := range n.channels {
		if !ch.IsConfigured(settings) {
			result[ch.Name()] = false
			continue
		}
		if err := ch.Send(ctx, settings, msg); err != nil {
			log.Printf("notify: %s send failed for %s: %v", ch.Name(), settings.Email, err)
			result[ch.Name()] = false
			continue
		}
		result[ch.Name()] = true
	}
	return result
}
