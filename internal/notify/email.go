package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// EmailChannel delivers messages through the transactional email provider's
// HTTP API. Success means the transport accepted the message (2xx), not
// recipient-side delivery.
type EmailChannel struct {
	apiKey     string
	apiURL     string
	fromAddr   string
	fromName   string
	httpClient *http.Client
}

// NewEmailChannel builds the email channel from environment configuration.
// A missing API key leaves the channel unconfigured for everyone.
func NewEmailChannel() *EmailChannel {
	apiURL := os.Getenv("EMAIL_API_URL")
	if apiURL == "" {
		apiURL = "https://api.brevo.com/v3/smtp/email"
	}
	fromAddr := os.Getenv("EMAIL_FROM")
	if fromAddr == "" {
		fromAddr = "words@yessirpanda.com"
	}
	return &EmailChannel{
		apiKey:     os.Getenv("EMAIL_API_KEY"),
		apiURL:     apiURL,
		fromAddr:   fromAddr,
		fromName:   "Daily Words",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Name implements Channel
func (c *EmailChannel) Name() string { return ChannelEmail }

// IsConfigured implements Channel
func (c *EmailChannel) IsConfigured(settings models.NotificationSettings) bool {
	return settings.EmailEnabled && c.apiKey != "" && settings.Email != ""
}

type emailContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type emailSendRequest struct {
	Sender  emailContact   `json:"sender"`
	To      []emailContact `json:"to"`
	Subject string         `json:"subject"`
	HTML    string         `json:"htmlContent"`
}

// Send implements Channel
func (c *EmailChannel) Send(ctx context.Context, settings models.NotificationSettings, msg Message) error {
	html := msg.HTML
	if html == "" {
		html = renderHTMLBody(msg)
	}

	reqBody := emailSendRequest{
		Sender:  emailContact{Email: c.fromAddr, Name: c.fromName},
		To:      []emailContact{{Email: settings.Email}},
		Subject: msg.Title,
		HTML:    html,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create email request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}
	return nil
}

// renderHTMLBody builds a minimal HTML rendition of a plain message
func renderHTMLBody(msg Message) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<h2>%s</h2>", msg.Title)
	buf.WriteString("<p>")
	for _, r := range msg.Body {
		if r == '\n' {
			buf.WriteString("<br>")
		} else {
			buf.WriteRune(r)
		}
	}
	buf.WriteString("</p>")
	for _, b := range msg.Buttons {
		fmt.Fprintf(&buf, `<p><a href="%s">%s</a></p>`, b.URL, b.Label)
	}
	return buf.String()
}
