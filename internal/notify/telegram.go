package notify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramChannel delivers messages through a shared bot. It needs the
// process-wide bot token plus a per-subscriber chat id; lacking either, it
// reports unconfigured instead of erroring.
type TelegramChannel struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramChannel wraps an already-authorized bot. Pass nil when no
// TELEGRAM_BOT_TOKEN is configured; the channel then no-ops for everyone.
func NewTelegramChannel(bot *tgbotapi.BotAPI) *TelegramChannel {
	return &TelegramChannel{bot: bot}
}

// Name implements Channel
func (c *TelegramChannel) Name() string { return ChannelTelegram }

// IsConfigured implements Channel
func (c *TelegramChannel) IsConfigured(settings models.NotificationSettings) bool {
	return settings.TelegramEnabled && c.bot != nil && settings.TelegramChatID != ""
}

// Send implements Channel
func (c *TelegramChannel) Send(ctx context.Context, settings models.NotificationSettings, msg Message) error {
	chatID, err := strconv.ParseInt(settings.TelegramChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %v", settings.TelegramChatID, err)
	}

	text := msg.Body
	if msg.Title != "" {
		text = msg.Title + "\n\n" + msg.Body
	}

	out := tgbotapi.NewMessage(chatID, text)
	if len(msg.Buttons) > 0 {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(msg.Buttons))
		for _, b := range msg.Buttons {
			row = append(row, tgbotapi.NewInlineKeyboardButtonURL(b.Label, b.URL))
		}
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
	}

	if _, err := c.bot.Send(out); err != nil {
		return fmt.Errorf("failed to send telegram message: %v", err)
	}
	return nil
}
