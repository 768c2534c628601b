// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values fall back to environment variables.
type Config struct {
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Completion service API key
	Model       string `json:"model,omitempty"`        // Completion model identifier
	Provider    string `json:"provider,omitempty"`     // "deepseek" (default) or "gemini"
	AdminToken  string `json:"admin_token,omitempty"`  // Shared secret for re-rating
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}
	switch c.Provider {
	case "", "deepseek", "gemini":
	default:
		return fmt.Errorf("config error: 'provider' must be \"deepseek\" or \"gemini\"")
	}
	return nil
}

// MergeWithEnv returns a new Config with empty fields filled from the
// environment. The config file wins where both are set.
func (c *Config) MergeWithEnv() Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if result.Provider == "" {
		result.Provider = os.Getenv("LLM_PROVIDER")
	}
	if result.AdminToken == "" {
		result.AdminToken = os.Getenv("ADMIN_TOKEN")
	}

	// Each provider reads its own key and model variables.
	if result.APIKey == "" {
		if result.Provider == "gemini" {
			result.APIKey = os.Getenv("GEMINI_API_KEY")
		} else {
			result.APIKey = os.Getenv("DEEPSEEK_API_KEY")
		}
	}
	if result.Model == "" {
		if result.Provider == "gemini" {
			result.Model = os.Getenv("GEMINI_MODEL")
		} else {
			result.Model = os.Getenv("DEEPSEEK_MODEL")
		}
	}

	return result
}
