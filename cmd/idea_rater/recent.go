package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/idea-rater/internal/db"
	"github.com/jonathan/idea-rater/internal/observability"
)

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recent ideas",
	Long:  `Print the newest stored ideas with their ratings and notes.`,
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().IntVar(&recentLimit, "limit", 20, "Maximum number of ideas to list")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	ideas, err := database.ListRecentIdeas(ctx, recentLimit)
	if err != nil {
		return fmt.Errorf("failed to list ideas: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintIdeas(ideas)
	return nil
}
