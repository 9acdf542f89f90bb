package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
	"github.com/stretchr/testify/assert"
)

type fakeChannel struct {
	name       string
	configured bool
	sendErr    error
	sent       int
}

func (c *fakeChannel) Name() string { return c.name }

func (c *fakeChannel) IsConfigured(_ models.NotificationSettings) bool { return c.configured }

func (c *fakeChannel) Send(_ context.Context, _ models.NotificationSettings, _ Message) error {
	c.sent++
	return c.sendErr
}

func TestNotifierSendFansOut(t *testing.T) {
	email := &fakeChannel{name: ChannelEmail, configured: true}
	telegram := &fakeChannel{name: ChannelTelegram, configured: false}
	chat := &fakeChannel{name: ChannelGoogleChat, configured: true}

	n := New(email, telegram, chat)
	result := n.Send(context.Background(), models.NotificationSettings{Email: "a@x.com"}, Message{Title: "hi"})

	assert.Equal(t, SendResult{
		ChannelEmail:      true,
		ChannelTelegram:   false,
		ChannelGoogleChat: true,
	}, result)
	assert.Equal(t, 1, email.sent)
	assert.Equal(t, 0, telegram.sent, "unconfigured channels are never called")
	assert.True(t, result.Any())
}

func TestNotifierFailureDoesNotStopOtherChannels(t *testing.T) {
	email := &fakeChannel{name: ChannelEmail, configured: true, sendErr: errors.New("provider down")}
	chat := &fakeChannel{name: ChannelGoogleChat, configured: true}

	n := New(email, chat)
	result := n.Send(context.Background(), models.NotificationSettings{Email: "a@x.com"}, Message{})

	assert.False(t, result[ChannelEmail])
	assert.True(t, result[ChannelGoogleChat])
	assert.Equal(t, 1, chat.sent)
	assert.True(t, result.Any())
}

func TestSendResultAny(t *testing.T) {
	assert.False(t, SendResult{}.Any())
	assert.False(t, SendResult{ChannelEmail: false}.Any())
	assert.True(t, SendResult{ChannelEmail: false, ChannelTelegram: true}.Any())
}
