package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleChatSendPlainText(t *testing.T) {
	var got chatCardPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewGoogleChatChannel()
	settings := models.NotificationSettings{GoogleChatWebhook: srv.URL}

	err := c.Send(context.Background(), settings, Message{Title: "Day 3", Body: "apple - 사과"})
	require.NoError(t, err)

	assert.Equal(t, "*Day 3*\napple - 사과", got.Text)
	assert.Empty(t, got.Cards)
}

func TestGoogleChatSendCardWithButtons(t *testing.T) {
	var got chatCardPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewGoogleChatChannel()
	settings := models.NotificationSettings{GoogleChatWebhook: srv.URL}
	msg := Message{
		Title:   "Lunch quiz",
		Body:    "4 words are waiting",
		Buttons: []Button{{Label: "Start", URL: "https://dash.example.com/quiz"}},
	}

	err := c.Send(context.Background(), settings, msg)
	require.NoError(t, err)

	require.Len(t, got.Cards, 1)
	assert.Equal(t, "Lunch quiz", got.Cards[0].Header.Title)
	widgets := got.Cards[0].Sections[0].Widgets
	require.Len(t, widgets, 2)
	assert.Equal(t, "https://dash.example.com/quiz", widgets[1].Buttons[0].TextButton.OnClick.OpenLink.URL)
}

func TestGoogleChatSendNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewGoogleChatChannel()
	err := c.Send(context.Background(), models.NotificationSettings{GoogleChatWebhook: srv.URL}, Message{Body: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestGoogleChatIsConfigured(t *testing.T) {
	c := NewGoogleChatChannel()

	assert.True(t, c.IsConfigured(models.NotificationSettings{
		GoogleChatEnabled: true,
		GoogleChatWebhook: "https://chat.googleapis.com/v1/spaces/x",
	}))
	assert.False(t, c.IsConfigured(models.NotificationSettings{
		GoogleChatEnabled: true,
		GoogleChatWebhook: "https://example.com/hook",
	}))
	assert.False(t, c.IsConfigured(models.NotificationSettings{
		GoogleChatWebhook: "https://chat.googleapis.com/v1/spaces/x",
	}))
}
