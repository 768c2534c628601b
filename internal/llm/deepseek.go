package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	deepSeekURL = "https://api.deepseek.com/chat/completions"

	// DefaultDeepSeekModel is used when no model is configured
	DefaultDeepSeekModel = "deepseek-chat"

	// requestTimeout bounds a single completion call. A hung upstream aborts
	// the in-flight request rather than stalling the caller.
	requestTimeout = 12 * time.Second
)

// DeepSeekClient calls the DeepSeek chat-completions API.
type DeepSeekClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewDeepSeekClient creates a DeepSeek client
func NewDeepSeekClient(config *Config, apiKey string) (*DeepSeekClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := config.Model
	if model == "" {
		model = DefaultDeepSeekModel
	}

	return &DeepSeekClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: deepSeekURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string              `json:"model"`
	Temperature    float64             `json:"temperature"`
	Messages       []chatMessage       `json:"messages"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateJSON sends the prompt pair in JSON mode and returns the reply text
func (c *DeepSeekClient) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &chatResponseFormat{Type: "json_object"},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &ExternalServiceError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &ExternalServiceError{Err: fmt.Errorf("read response: %w", err)}
	}

	var apiResp chatResponse
	// Tolerate an unparseable body; status handling below still applies.
	_ = json.Unmarshal(respBody, &apiResp)

	if resp.StatusCode != http.StatusOK {
		message := "DeepSeek request failed."
		if apiResp.Error != nil && apiResp.Error.Message != "" {
			message = apiResp.Error.Message
		}
		return "", &ExternalServiceError{Message: message}
	}

	if len(apiResp.Choices) == 0 {
		return "", &ExternalServiceError{Message: "empty response from DeepSeek"}
	}
	return apiResp.Choices[0].Message.Content, nil
}

// Model returns the configured model identifier
func (c *DeepSeekClient) Model() string {
	return c.model
}

// Close releases idle connections
func (c *DeepSeekClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
