package channel

import (
	"log/slog"

	"notifybot/internal/config"
	"notifybot/internal/domain"
)

// NewSender constructs the platform client named by the config.
func NewSender(cfg *config.Config, logger *slog.Logger) (domain.Sender, error) {
	switch cfg.Platform {
	case "discord":
		return NewDiscord(DiscordConfig{Token: cfg.Token, Logger: logger}), nil
	case "telegram":
		return NewTelegram(TelegramConfig{Token: cfg.Token, Logger: logger}), nil
	default:
		return nil, domain.NewFault(domain.FaultConfig, "unknown platform: %s", cfg.Platform)
	}
}

// NewPurger constructs a platform client that supports conversation
// purging. Platforms without history access fail here, before any
// network resource is acquired.
func NewPurger(cfg *config.Config, logger *slog.Logger) (domain.Purger, error) {
	sender, err := NewSender(cfg, logger)
	if err != nil {
		return nil, err
	}
	purger, ok := sender.(domain.Purger)
	if !ok {
		return nil, domain.NewFault(domain.FaultPlatform, "platform %s does not support purge", sender.Name())
	}
	return purger, nil
}
