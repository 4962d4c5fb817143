package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"notifybot/internal/config"
	"notifybot/internal/domain"
	"notifybot/internal/history"

	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:   "notifybot",
		Short: "notifybot: pipe a message to a chat DM, or purge the bot's old messages",
		Long: "notifybot reads a message from stdin and delivers it as a direct message\n" +
			"to the preconfigured recipient, and can purge previously sent bot messages\n" +
			"from that conversation.",
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default: ~/.notifybot/config.yaml)")

	root.AddCommand(sendCmd())
	root.AddCommand(purgeCmd())
	root.AddCommand(doctorCmd())
	root.AddCommand(historyCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfigPath returns the config path from --config flag or default.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// exitCodes maps fault kinds to a command's exit codes. Faults not in
// the map (including anything escaping the run) take the fallback
// platform-error code.
type exitCodes struct {
	byKind   map[domain.FaultKind]int
	fallback int
}

func (m exitCodes) code(err error) int {
	if c, ok := m.byKind[domain.KindOf(err)]; ok {
		return c
	}
	return m.fallback
}

// fail prints the one-line diagnostic and terminates with the mapped
// exit code.
func fail(err error, codes exitCodes) {
	fmt.Fprintf(os.Stderr, "notifybot: %v\n", err)
	os.Exit(codes.code(err))
}

// awaitRun executes fn while racing it against asynchronous
// client-level faults, which can arrive at any point after login.
// Whichever finishes first decides the run's fate.
func awaitRun(client domain.Sender, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case err := <-client.AsyncErr(): // nil channel for sessionless platforms
		return err
	}
}

// recordRun journals a completed run. Best effort: journal trouble is
// logged, never fatal.
func recordRun(cfg *config.Config, run history.Run) {
	store, err := history.Open(cfg.HistoryDBPath, logger)
	if err != nil {
		logger.Warn("history journal unavailable", "err", err)
		return
	}
	defer store.Close()
	if err := store.Record(context.Background(), run); err != nil {
		logger.Warn("history journal write failed", "err", err)
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return domain.KindOf(err).String()
}
