package channel

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"notifybot/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram implements domain.Sender over the Telegram Bot API. The Bot
// API exposes no conversation-history fetch, so Telegram supports send
// only; purging a Telegram conversation is not possible.
type Telegram struct {
	token  string
	chatID int64
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

// TelegramConfig configures the Telegram client.
type TelegramConfig struct {
	Token  string
	Logger *slog.Logger
}

// NewTelegram creates a new Telegram client.
func NewTelegram(cfg TelegramConfig) *Telegram {
	return &Telegram{token: cfg.Token, logger: cfg.Logger}
}

func (t *Telegram) Name() string { return "telegram" }

// Connect authenticates against the Bot API. The HTTP transport has no
// long-lived session, so there is no ready/fault race to wait out.
func (t *Telegram) Connect(ctx context.Context) error {
	bot, err := tgbotapi.NewBotAPI(t.token)
	if err != nil {
		return domain.NewFault(domain.FaultPlatform, "telegram auth: %w", err)
	}
	t.bot = bot
	t.logger.Info("telegram connected", "user", bot.Self.UserName)
	return nil
}

func (t *Telegram) AsyncErr() <-chan error { return nil }

func (t *Telegram) Resolve(ctx context.Context, recipientID string) error {
	id, err := strconv.ParseInt(recipientID, 10, 64)
	if err != nil {
		return domain.NewFault(domain.FaultRecipientNotFound, "telegram recipient %q is not a numeric chat id", recipientID)
	}
	chat, err := t.bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: id},
	})
	if err != nil {
		return classifyGetChatError(recipientID, err)
	}
	t.chatID = chat.ID
	return nil
}

// classifyGetChatError maps a GetChat failure onto the fault taxonomy.
// Only the Bot API's "chat not found" answer means the recipient does
// not exist; transport faults and other API errors are platform
// trouble. The Bot API carries no stable error code beyond the HTTP
// status, so the description is the only discriminator it offers.
func classifyGetChatError(recipientID string, err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && strings.Contains(apiErr.Message, "chat not found") {
		return domain.NewFault(domain.FaultRecipientNotFound, "telegram recipient %s: %w", recipientID, err)
	}
	return domain.NewFault(domain.FaultPlatform, "telegram resolve recipient %s: %w", recipientID, err)
}

func (t *Telegram) Send(ctx context.Context, text string) error {
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return domain.NewFault(domain.FaultDelivery, "telegram send: %w", err)
	}
	return nil
}

func (t *Telegram) Close() error { return nil }
