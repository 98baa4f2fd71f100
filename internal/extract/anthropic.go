package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

const (
	DefaultAnthropicBaseURL = "https://api.anthropic.com"
	DefaultAnthropicModel   = "claude-sonnet-4-5-20250929"
	DefaultMaxTokens        = 1024

	anthropicVersion = "2023-06-01"
)

// AnthropicConfig configures the Messages API completer.
type AnthropicConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// AnthropicCompleter calls the Anthropic Messages API.
type AnthropicCompleter struct {
	client    *resty.Client
	model     string
	maxTokens int
}

type messagesRequest struct {
	Model     string           `json:"model"`
	MaxTokens int              `json:"max_tokens"`
	Messages  []messageContent `json:"messages"`
}

type messageContent struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropicCompleter creates a completer. Retries are disabled.
func NewAnthropicCompleter(cfg AnthropicConfig) *AnthropicCompleter {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultAnthropicBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := resty.New().
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &AnthropicCompleter{client: c, model: model, maxTokens: maxTokens}
}

// Complete sends the prompt as a single user message.
func (a *AnthropicCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	var out messagesResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(messagesRequest{
			Model:     a.model,
			MaxTokens: a.maxTokens,
			Messages:  []messageContent{{Role: "user", Content: prompt}},
		}).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("anthropic status %d: %s", resp.StatusCode(), truncate(resp.String(), 500))
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(out.Content) == 0 {
		return "", errors.New("anthropic response has no content")
	}
	return out.Content[0].Text, nil
}

// truncate truncates a string to the specified length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "... (truncated)"
}
