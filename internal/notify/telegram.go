package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/malingi/accabot/internal/pkg/config"
	"github.com/malingi/accabot/internal/pkg/interfaces"
)

// Min interval between any two Telegram messages to the same chat to avoid
// 429 Too Many Requests (~30/min limit).
const telegramSendInterval = 2 * time.Second

// Ensure TelegramNotifier implements interfaces.Notifier
var _ interfaces.Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier pushes the daily pick to a chat as a secondary channel
// next to email.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates the notifier. Returns nil when the token is
// missing or the bot cannot authenticate; Telegram delivery is optional.
func NewTelegramNotifier(cfg config.TelegramConfig) *TelegramNotifier {
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	slog.Info("Telegram notifier initialized", "chat_id", cfg.ChatID)
	return &TelegramNotifier{bot: bot, chatID: cfg.ChatID}
}

// SendPick sends the pick text to the chat, spacing messages by the rate
// limit interval.
func (n *TelegramNotifier) SendPick(ctx context.Context, subject, body string) error {
	n.mu.Lock()
	if wait := telegramSendInterval - time.Since(n.lastSend); wait > 0 {
		n.mu.Unlock()
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
		n.mu.Lock()
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, subject+"\n\n"+body)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	slog.Info("Telegram message sent", "chat_id", n.chatID)
	return nil
}
