// Package purge implements the conversation purge engine: backward
// pagination through a DM conversation, deleting every bot-authored
// message with a fixed delay between deletions.
package purge

import (
	"context"
	"log/slog"
	"time"

	"notifybot/internal/domain"
	"notifybot/internal/metrics"
)

const (
	DefaultPageSize = 50
	DefaultDelay    = 1000 * time.Millisecond
)

// Client is the subset of the platform client the engine drives.
type Client interface {
	BotUserID() string
	Messages(ctx context.Context, beforeID string, limit int) ([]domain.Message, error)
	Delete(ctx context.Context, messageID string) error
}

// Engine walks one conversation newest-to-oldest and deletes the bot's
// own messages. Deletions are serialized with a fixed pause to stay
// under the platform's abuse-rate threshold.
type Engine struct {
	client   Client
	pageSize int
	delay    time.Duration
	logger   *slog.Logger

	pagesFetched *metrics.Counter
	deleted      *metrics.Counter
	deleteFaults *metrics.Counter
}

// Config configures the purge engine.
type Config struct {
	Client   Client
	PageSize int           // messages per fetch, defaults to DefaultPageSize
	Delay    time.Duration // pause after each successful deletion
	Logger   *slog.Logger
}

// New creates a purge engine.
func New(cfg Config) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Engine{
		client:   cfg.Client,
		pageSize: cfg.PageSize,
		delay:    cfg.Delay,
		logger:   cfg.Logger,
		pagesFetched: metrics.Collector.Counter(
			"notifybot_pages_fetched_total", "Conversation pages fetched during purge"),
		deleted: metrics.Collector.Counter(
			"notifybot_messages_deleted_total", "Messages deleted during purge"),
		deleteFaults: metrics.Collector.Counter(
			"notifybot_delete_faults_total", "Per-message deletion faults that were skipped"),
	}
}

// Run drains the conversation and returns the number of messages
// deleted. The count is also meaningful on error: a rate-limit abort
// reports the progress made before the abort, and nothing is rolled
// back.
//
// Termination is guaranteed because the cursor moves to a strictly
// older message on every non-empty page and history is finite.
func (e *Engine) Run(ctx context.Context) (int, error) {
	botID := e.client.BotUserID()
	deleted := 0
	cursor := ""

	for {
		page, err := e.client.Messages(ctx, cursor, e.pageSize)
		if err != nil {
			return deleted, err
		}
		e.pagesFetched.Inc()
		if len(page) == 0 {
			return deleted, nil
		}

		for _, msg := range page {
			if msg.AuthorID != botID {
				continue
			}
			if err := e.client.Delete(ctx, msg.ID); err != nil {
				if domain.KindOf(err) == domain.FaultRateLimit {
					// Remaining messages and pages are abandoned.
					return deleted, err
				}
				e.deleteFaults.Inc()
				e.logger.Warn("delete failed, skipping message", "message_id", msg.ID, "err", err)
				continue
			}
			deleted++
			e.deleted.Inc()
			if err := e.pause(ctx); err != nil {
				return deleted, err
			}
		}

		// Advance past the oldest message of the page whether or not it
		// was deleted.
		cursor = page[len(page)-1].ID
	}
}

func (e *Engine) pause(ctx context.Context) error {
	if e.delay <= 0 {
		return nil
	}
	t := time.NewTimer(e.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return domain.NewFault(domain.FaultPlatform, "purge interrupted: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}
