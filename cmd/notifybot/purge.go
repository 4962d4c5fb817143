package main

import (
	"context"
	"fmt"

	"notifybot/internal/channel"
	"notifybot/internal/config"
	"notifybot/internal/domain"
	"notifybot/internal/history"
	"notifybot/internal/metrics"
	"notifybot/internal/purge"

	"github.com/spf13/cobra"
)

// Exit codes of the purge command.
var purgeExits = exitCodes{
	byKind: map[domain.FaultKind]int{
		domain.FaultConfig:            1,
		domain.FaultPlatform:          2,
		domain.FaultDelivery:          2,
		domain.FaultRecipientNotFound: 2,
		domain.FaultRateLimit:         3,
	},
	fallback: 2,
}

func purgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete all bot-sent messages from the DM conversation",
		Long: "Paginates backward through the DM conversation with the configured\n" +
			"recipient and deletes every message authored by the bot, pausing between\n" +
			"deletions to stay under the platform's abuse threshold. Prints the count\n" +
			"of deleted messages.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runPurge()
		},
	}
}

func runPurge() {
	// Safety net for anything escaping the run; expected error paths
	// never reach it.
	defer func() {
		if r := recover(); r != nil {
			fail(fmt.Errorf("unexpected fault: %v", r), purgeExits)
		}
	}()

	if err := config.RequireEnv(config.RequiredKeys...); err != nil {
		fail(err, purgeExits)
	}
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		fail(err, purgeExits)
	}

	client, err := channel.NewPurger(cfg, logger)
	if err != nil {
		fail(err, purgeExits)
	}

	ctx := context.Background()
	if err := client.Connect(ctx); err != nil {
		fail(err, purgeExits)
	}
	defer client.Close()

	if err := client.Resolve(ctx, cfg.RecipientID); err != nil {
		client.Close()
		fail(err, purgeExits)
	}

	engine := purge.New(purge.Config{
		Client:   client,
		PageSize: cfg.PageSize,
		Delay:    cfg.DeleteDelay(),
		Logger:   logger,
	})

	var deleted int
	err = awaitRun(client, func() error {
		var runErr error
		deleted, runErr = engine.Run(ctx)
		return runErr
	})
	recordRun(cfg, history.Run{
		Command:   "purge",
		Platform:  client.Name(),
		Recipient: cfg.RecipientID,
		Deleted:   deleted,
		Outcome:   outcome(err),
	})
	if err != nil {
		// Progress is not rolled back; report how far the run got.
		logger.Error("purge aborted",
			"deleted_so_far", deleted,
			"metrics", metrics.Collector.Summary(),
			"err", err,
		)
		client.Close()
		fail(err, purgeExits)
	}

	logger.Info("purge complete",
		"platform", client.Name(),
		"recipient", cfg.RecipientID,
		"deleted", deleted,
		"metrics", metrics.Collector.Summary(),
	)
	fmt.Println(deleted)
}
