// Package llm provides the chat-completion client abstraction used to rate
// ideas, with a provider switch between DeepSeek and Gemini.
package llm

import (
	"context"
	"fmt"
)

// Provider represents a chat-completion provider
type Provider string

// Provider constants define supported providers
const (
	// ProviderDeepSeek is the DeepSeek chat-completions provider (default)
	ProviderDeepSeek Provider = "deepseek"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the provider and model selection
type Config struct {
	Provider Provider
	Model    string
}

// DefaultConfig returns the default configuration (DeepSeek)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderDeepSeek,
		Model:    DefaultDeepSeekModel,
	}
}

// Client is an abstraction over chat-completion providers
type Client interface {
	// GenerateJSON sends a system instruction and a user message and returns
	// the raw text of the model's JSON-mode reply
	GenerateJSON(ctx context.Context, system, user string) (string, error)
	// Model returns the configured model identifier
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a client for the configured provider
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderDeepSeek, "":
		return NewDeepSeekClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unknown provider %q", config.Provider)
	}
}
