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

func TestEmailSend(t *testing.T) {
	var got emailSendRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	t.Setenv("EMAIL_API_URL", srv.URL)
	t.Setenv("EMAIL_API_KEY", "test-key")
	t.Setenv("EMAIL_FROM", "words@test.local")
	c := NewEmailChannel()

	settings := models.NotificationSettings{Email: "a@x.com", EmailEnabled: true}
	msg := Message{
		Title:   "Day 3 words",
		Body:    "apple - 사과\nbanana - 바나나",
		Buttons: []Button{{Label: "Open dashboard", URL: "https://dash.example.com"}},
	}

	err := c.Send(context.Background(), settings, msg)
	require.NoError(t, err)

	assert.Equal(t, "test-key", apiKey)
	assert.Equal(t, "words@test.local", got.Sender.Email)
	require.Len(t, got.To, 1)
	assert.Equal(t, "a@x.com", got.To[0].Email)
	assert.Equal(t, "Day 3 words", got.Subject)
	assert.Contains(t, got.HTML, "<br>")
	assert.Contains(t, got.HTML, "https://dash.example.com")
}

func TestEmailSendPrefersProvidedHTML(t *testing.T) {
	var got emailSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	t.Setenv("EMAIL_API_URL", srv.URL)
	t.Setenv("EMAIL_API_KEY", "test-key")
	c := NewEmailChannel()

	err := c.Send(context.Background(), models.NotificationSettings{Email: "a@x.com"}, Message{
		Body: "plain",
		HTML: "<b>rich</b>",
	})
	require.NoError(t, err)
	assert.Equal(t, "<b>rich</b>", got.HTML)
}

func TestEmailSendNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	t.Setenv("EMAIL_API_URL", srv.URL)
	t.Setenv("EMAIL_API_KEY", "test-key")
	c := NewEmailChannel()

	err := c.Send(context.Background(), models.NotificationSettings{Email: "a@x.com"}, Message{Body: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestEmailIsConfigured(t *testing.T) {
	t.Setenv("EMAIL_API_KEY", "test-key")
	c := NewEmailChannel()

	assert.True(t, c.IsConfigured(models.NotificationSettings{EmailEnabled: true, Email: "a@x.com"}))
	assert.False(t, c.IsConfigured(models.NotificationSettings{EmailEnabled: true}))
	assert.False(t, c.IsConfigured(models.NotificationSettings{Email: "a@x.com"}))

	t.Setenv("EMAIL_API_KEY", "")
	bare := NewEmailChannel()
	assert.False(t, bare.IsConfigured(models.NotificationSettings{EmailEnabled: true, Email: "a@x.com"}))
}
