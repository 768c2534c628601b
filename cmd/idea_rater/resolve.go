package main

import (
	"fmt"

	"github.com/jonathan/idea-rater/internal/config"
)

// resolveConfig merges the optional --config file with environment variables
// and checks the values every command needs.
func resolveConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithEnv()
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if merged.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return &merged, nil
}

// requireAPIKey checks the configuration for a completion-service credential.
func requireAPIKey(cfg *config.Config) error {
	if cfg.APIKey == "" {
		if cfg.Provider == "gemini" {
			return fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
		return fmt.Errorf("DEEPSEEK_API_KEY environment variable is required")
	}
	return nil
}
