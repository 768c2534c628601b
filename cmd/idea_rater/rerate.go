package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/idea-rater/internal/db"
	"github.com/jonathan/idea-rater/internal/llm"
	"github.com/jonathan/idea-rater/internal/observability"
	"github.com/jonathan/idea-rater/internal/server"
)

var rerateLimit int

var rerateCmd = &cobra.Command{
	Use:   "rerate",
	Short: "Re-rate the most recent ideas",
	Long:  `Recompute the rating and note for the newest stored ideas, one AI call at a time. Progress made before a failure is kept.`,
	RunE:  runRerate,
}

func init() {
	rerateCmd.Flags().IntVar(&rerateLimit, "limit", 20, "Number of ideas to re-rate (clamped to 1-50)")
	rootCmd.AddCommand(rerateCmd)
}

func runRerate(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if err := requireAPIKey(cfg); err != nil {
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

	client, err := llm.NewClient(ctx, &llm.Config{
		Provider: llm.Provider(cfg.Provider),
		Model:    cfg.Model,
	}, cfg.APIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	limit := server.ClampRerateLimit(&rerateLimit)
	selected, updated, rerateErr := server.RerateIdeas(ctx, database, llm.NewRater(client), limit)

	// Show partial progress even when the run stopped early.
	observability.NewPrinter(os.Stdout).PrintRerateSummary(selected, updated)
	return rerateErr
}
