package main

import (
	"context"
	"fmt"
	"os"

	"notifybot/internal/channel"
	"notifybot/internal/config"
	"notifybot/internal/domain"
	"notifybot/internal/history"
	"notifybot/internal/metrics"
	"notifybot/internal/notify"

	"github.com/spf13/cobra"
)

// Exit codes of the send command (stable; calling scripts branch on
// them).
var sendExits = exitCodes{
	byKind: map[domain.FaultKind]int{
		domain.FaultEmptyInput:        1,
		domain.FaultConfig:            2,
		domain.FaultRecipientNotFound: 3,
		domain.FaultDelivery:          3,
		domain.FaultPlatform:          3,
		domain.FaultRateLimit:         3,
		domain.FaultInputStream:       4,
	},
	fallback: 3,
}

func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Read a message from stdin and deliver it as a DM",
		Long: "Reads stdin to end-of-stream, trims surrounding whitespace, and sends the\n" +
			"result as one direct message to the configured recipient.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runSend()
		},
	}
}

func runSend() {
	// Safety net for anything escaping the run; expected error paths
	// never reach it.
	defer func() {
		if r := recover(); r != nil {
			fail(fmt.Errorf("unexpected fault: %v", r), sendExits)
		}
	}()

	// Pre-flight: a bad environment or empty input must never construct
	// a client.
	if err := config.RequireEnv(config.RequiredKeys...); err != nil {
		fail(err, sendExits)
	}
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		fail(err, sendExits)
	}

	text, err := notify.ReadMessage(os.Stdin)
	if err != nil {
		fail(err, sendExits)
	}

	client, err := channel.NewSender(cfg, logger)
	if err != nil {
		fail(err, sendExits)
	}

	ctx := context.Background()
	if err := client.Connect(ctx); err != nil {
		fail(err, sendExits)
	}
	defer client.Close()

	err = awaitRun(client, func() error {
		return notify.Deliver(ctx, client, cfg.RecipientID, text)
	})
	recordRun(cfg, history.Run{
		Command:   "send",
		Platform:  client.Name(),
		Recipient: cfg.RecipientID,
		Outcome:   outcome(err),
	})
	if err != nil {
		client.Close()
		fail(err, sendExits)
	}

	logger.Info("message delivered",
		"platform", client.Name(),
		"recipient", cfg.RecipientID,
		"bytes", len(text),
		"metrics", metrics.Collector.Summary(),
	)
}
