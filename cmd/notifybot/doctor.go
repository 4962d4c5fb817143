package main

import (
	"fmt"
	"os"
	"strings"

	"notifybot/internal/config"
	"notifybot/internal/history"

	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run diagnostic checks on your notifybot setup",
		Long: `Verifies that the environment, configuration, and history database are
correctly set up. Reports pass/fail for each check. Makes no network calls.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("notifybot doctor v%s\n\n", version)

			passed := 0
			failed := 0

			// 1. Required environment variables
			if missing := config.MissingEnv(config.RequiredKeys); len(missing) > 0 {
				printFail("Environment", "missing: "+strings.Join(missing, ", "))
				failed++
			} else {
				printPass("Environment", strings.Join(config.RequiredKeys, ", "))
				passed++
			}

			// 2. Token shape (never printed)
			if token := os.Getenv(config.EnvToken); token != "" && strings.ContainsAny(token, " \t\n") {
				printFail("Token", "contains whitespace")
				failed++
			} else if token != "" {
				printPass("Token", fmt.Sprintf("%d bytes", len(token)))
				passed++
			}

			// 3. Config file parses and validates
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				printFail("Config", err.Error())
				failed++
				fmt.Printf("\n%d passed, %d failed\n", passed, failed)
				return nil
			}
			if _, statErr := os.Stat(cfgPath); statErr != nil {
				printWarn("Config", fmt.Sprintf("no file at %s, using defaults", cfgPath))
			} else {
				printPass("Config", cfgPath)
			}
			passed++
			printPass("Platform", cfg.Platform)
			passed++

			// 4. History database opens and migrates
			store, err := history.Open(cfg.HistoryDBPath, logger)
			if err != nil {
				printFail("History DB", err.Error())
				failed++
			} else {
				store.Close()
				printPass("History DB", cfg.HistoryDBPath)
				passed++
			}

			fmt.Printf("\n%d passed, %d failed\n", passed, failed)
			return nil
		},
	}
}

func printPass(check, detail string) {
	fmt.Printf("  [PASS] %-14s %s\n", check, detail)
}

func printFail(check, detail string) {
	fmt.Printf("  [FAIL] %-14s %s\n", check, detail)
}

func printWarn(check, detail string) {
	fmt.Printf("  [WARN] %-14s %s\n", check, detail)
}
