package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/idea-rater/internal/llm"
	"github.com/jonathan/idea-rater/internal/server"
)

var (
	servePort  int
	configPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the ideas endpoint for submitting, listing, and re-rating business ideas.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	port := servePort
	if cfg.Port != 0 && !cmd.Flags().Changed("port") {
		port = cfg.Port
	}

	srv, err := server.New(server.Config{
		Port:        port,
		DatabaseURL: cfg.DatabaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Provider:    llm.Provider(cfg.Provider),
		AdminToken:  cfg.AdminToken,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
