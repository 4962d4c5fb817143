package main

import (
	"context"
	"fmt"

	"notifybot/internal/config"
	"notifybot/internal/history"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent notifybot runs from the local journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(resolveConfigPath())
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryDBPath, logger)
			if err != nil {
				return fmt.Errorf("open history db: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no recorded runs")
				return nil
			}
			for _, r := range runs {
				line := fmt.Sprintf("%s  %-5s %-8s recipient=%s outcome=%s",
					r.CreatedAt.Format("2006-01-02 15:04:05"), r.Command, r.Platform, r.Recipient, r.Outcome)
				if r.Command == "purge" {
					line += fmt.Sprintf(" deleted=%d", r.Deleted)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to list")
	return cmd
}
