// Package main provides the entry point for the Idea Rater HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "idea_rater",
	Short: "Idea Rater HTTP API Server",
	Long:  "Idea Rater accepts short business ideas over a JSON API, rates each one via an AI evaluator with a deterministic profitability guardrail, and stores the verdicts in PostgreSQL.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
