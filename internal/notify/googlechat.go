package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// GoogleChatChannel delivers messages through a per-subscriber incoming
// webhook. Webhook prefixes are validated at settings-write time; the send
// path re-checks only as a belt against stale rows.
type GoogleChatChannel struct {
	httpClient *http.Client
}

// NewGoogleChatChannel creates the channel
func NewGoogleChatChannel() *GoogleChatChannel {
	return &GoogleChatChannel{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Name implements Channel
func (c *GoogleChatChannel) Name() string { return ChannelGoogleChat }

// IsConfigured implements Channel
func (c *GoogleChatChannel) IsConfigured(settings models.NotificationSettings) bool {
	return settings.GoogleChatEnabled && models.ValidWebhook(settings.GoogleChatWebhook)
}

// Card payload structures for the Chat webhook API
type chatCardPayload struct {
	Text  string     `json:"text,omitempty"`
	Cards []chatCard `json:"cards,omitempty"`
}

type chatCard struct {
	Header   chatCardHeader   `json:"header"`
	Sections []chatCardSection `json:"sections"`
}

type chatCardHeader struct {
	Title string `json:"title"`
}

type chatCardSection struct {
	Widgets []chatWidget `json:"widgets"`
}

type chatWidget struct {
	TextParagraph *chatText    `json:"textParagraph,omitempty"`
	Buttons       []chatButton `json:"buttons,omitempty"`
}

type chatText struct {
	Text string `json:"text"`
}

type chatButton struct {
	TextButton chatTextButton `json:"textButton"`
}

type chatTextButton struct {
	Text    string      `json:"text"`
	OnClick chatOnClick `json:"onClick"`
}

type chatOnClick struct {
	OpenLink chatOpenLink `json:"openLink"`
}

type chatOpenLink struct {
	URL string `json:"url"`
}

// Send implements Channel. Messages without buttons go as plain text;
// messages with buttons go as a card.
func (c *GoogleChatChannel) Send(ctx context.Context, settings models.NotificationSettings, msg Message) error {
	var payload chatCardPayload
	if len(msg.Buttons) == 0 {
		text := msg.Body
		if msg.Title != "" {
			text = "*" + msg.Title + "*\n" + msg.Body
		}
		payload.Text = text
	} else {
		buttons := make([]chatButton, 0, len(msg.Buttons))
		for _, b := range msg.Buttons {
			buttons = append(buttons, chatButton{
				TextButton: chatTextButton{
					Text:    b.Label,
					OnClick: chatOnClick{OpenLink: chatOpenLink{URL: b.URL}},
				},
			})
		}
		payload.Cards = []chatCard{{
			Header: chatCardHeader{Title: msg.Title},
			Sections: []chatCardSection{{
				Widgets: []chatWidget{
					{TextParagraph: &chatText{Text: msg.Body}},
					{Buttons: buttons},
				},
			}},
		}}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal chat payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, settings.GoogleChatWebhook, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create chat request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send chat message: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("chat webhook returned status %d", resp.StatusCode)
	}
	return nil
}
