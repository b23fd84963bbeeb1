// Package cli defines Cobra command definitions for the eareview CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mohan-con17/ea-review-fe/internal/config"
	"github.com/mohan-con17/ea-review-fe/internal/history"
	"github.com/mohan-con17/ea-review-fe/internal/review"
	"github.com/mohan-con17/ea-review-fe/internal/tui"
	"github.com/mohan-con17/ea-review-fe/internal/tui/app"
)

var (
	serverURL string
	version   = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "eareview",
	Short: "Terminal client for the Enterprise Architecture Review assistant",
	Long: `eareview submits architecture descriptions, diagrams, and documents to
the review backend, streams the pipeline stages live, and browses the
archive of past review sessions.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		tuiApp := app.New(cfg)
		return tui.Run(tuiApp)
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the user config and applies the --server override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.DefaultDir())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}
	return cfg, nil
}

// reviewClient builds the stream client from config.
func reviewClient(cfg *config.Config) *review.Client {
	return review.NewClient(cfg.Server.BaseURL)
}

// historyClient builds the /logs client from config.
func historyClient(cfg *config.Config) *history.Client {
	return history.NewClient(cfg.Server.BaseURL, time.Duration(cfg.Server.RequestTimeout)*time.Second)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Review backend base URL (overrides config)")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(historyCmd)
}
