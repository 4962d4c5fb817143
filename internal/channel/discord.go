package channel

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"notifybot/internal/domain"

	"github.com/bwmarrin/discordgo"
)

const readyTimeout = 30 * time.Second

// Discord implements domain.Purger over a Discord bot session.
type Discord struct {
	token     string
	session   *discordgo.Session
	channelID string // resolved DM channel
	ready     chan struct{}
	asyncErr  chan error
	logger    *slog.Logger
}

// DiscordConfig configures the Discord client.
type DiscordConfig struct {
	Token  string
	Logger *slog.Logger
}

// NewDiscord creates a new Discord client.
func NewDiscord(cfg DiscordConfig) *Discord {
	return &Discord{
		token:    cfg.Token,
		ready:    make(chan struct{}, 1),
		asyncErr: make(chan error, 1),
		logger:   cfg.Logger,
	}
}

func (d *Discord) Name() string { return "discord" }

// Connect opens the gateway session and blocks until the ready event or
// a session fault, whichever fires first.
func (d *Discord) Connect(ctx context.Context) error {
	session, err := discordgo.New("Bot " + d.token)
	if err != nil {
		return domain.NewFault(domain.FaultPlatform, "discord session: %w", err)
	}

	// DMs only; no guild or message-content intents.
	session.Identify.Intents = discordgo.IntentsDirectMessages

	session.AddHandlerOnce(func(s *discordgo.Session, r *discordgo.Ready) {
		select {
		case d.ready <- struct{}{}:
		default:
		}
	})
	session.AddHandler(func(s *discordgo.Session, ev *discordgo.Disconnect) {
		select {
		case d.asyncErr <- domain.NewFault(domain.FaultPlatform, "discord gateway disconnected"):
		default:
		}
	})

	if err := session.Open(); err != nil {
		return domain.NewFault(domain.FaultPlatform, "discord connect: %w", err)
	}
	d.session = session

	// Single-shot race: ready vs session fault vs caller cancellation.
	select {
	case <-d.ready:
	case err := <-d.asyncErr:
		session.Close()
		return err
	case <-ctx.Done():
		session.Close()
		return domain.NewFault(domain.FaultPlatform, "discord ready wait: %w", ctx.Err())
	case <-time.After(readyTimeout):
		session.Close()
		return domain.NewFault(domain.FaultPlatform, "discord ready wait: no ready event within %s", readyTimeout)
	}

	d.logger.Info("discord connected", "user", session.State.User.Username)
	return nil
}

func (d *Discord) AsyncErr() <-chan error { return d.asyncErr }

// Resolve opens (or fetches) the DM channel with the recipient.
func (d *Discord) Resolve(ctx context.Context, recipientID string) error {
	ch, err := d.session.UserChannelCreate(recipientID, discordgo.WithContext(ctx))
	if err != nil {
		var rest *discordgo.RESTError
		if errors.As(err, &rest) && rest.Message != nil && rest.Message.Code == discordgo.ErrCodeUnknownUser {
			return domain.NewFault(domain.FaultRecipientNotFound, "recipient %s: %w", recipientID, err)
		}
		return domain.NewFault(domain.FaultPlatform, "resolve recipient %s: %w", recipientID, err)
	}
	if ch == nil || ch.ID == "" {
		return domain.NewFault(domain.FaultRecipientNotFound, "recipient %s has no DM channel", recipientID)
	}
	d.channelID = ch.ID
	return nil
}

func (d *Discord) Send(ctx context.Context, text string) error {
	if _, err := d.session.ChannelMessageSend(d.channelID, text, discordgo.WithContext(ctx)); err != nil {
		return domain.NewFault(domain.FaultDelivery, "discord send: %w", err)
	}
	return nil
}

// BotUserID returns the authenticated account's own identifier.
func (d *Discord) BotUserID() string {
	if d.session == nil || d.session.State == nil || d.session.State.User == nil {
		return ""
	}
	return d.session.State.User.ID
}

// Messages fetches up to limit messages strictly older than beforeID,
// newest first.
func (d *Discord) Messages(ctx context.Context, beforeID string, limit int) ([]domain.Message, error) {
	msgs, err := d.session.ChannelMessages(d.channelID, limit, beforeID, "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, classifyRESTError("fetch messages", err)
	}
	out := make([]domain.Message, 0, len(msgs))
	for _, m := range msgs {
		var author string
		if m.Author != nil {
			author = m.Author.ID
		}
		out = append(out, domain.Message{ID: m.ID, AuthorID: author, Content: m.Content})
	}
	return out, nil
}

func (d *Discord) Delete(ctx context.Context, messageID string) error {
	if err := d.session.ChannelMessageDelete(d.channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return classifyRESTError("delete message "+messageID, err)
	}
	return nil
}

func (d *Discord) Close() error {
	if d.session == nil {
		return nil
	}
	return d.session.Close()
}

// classifyRESTError maps discordgo REST failures onto the fault
// taxonomy. Error code 50013 ("missing permissions") doubles as the
// platform's throttle signal during bulk deletion, so it aborts a purge
// the same way a real HTTP 429 does; the wrapped message keeps the two
// causes distinguishable.
func classifyRESTError(op string, err error) error {
	var rl *discordgo.RateLimitError
	if errors.As(err, &rl) {
		return domain.NewFault(domain.FaultRateLimit, "%s: rate limited, retry after %s: %w", op, rl.RetryAfter, err)
	}
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Message != nil && rest.Message.Code == discordgo.ErrCodeMissingPermissions {
		return domain.NewFault(domain.FaultRateLimit, "%s: missing permissions (code %d): %w", op, rest.Message.Code, err)
	}
	return domain.NewFault(domain.FaultPlatform, "%s: %w", op, err)
}
