package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4"

	// Default OpenAI API base URL.
	defaultBaseURL = "https://api.openai.com/v1"

	// Default timeout for API requests. A bounded timeout keeps a slow
	// upstream from hanging the calling request indefinitely.
	defaultTimeout = 30 * time.Second
)

// Config configures the chat completion client.
type Config struct {
	// APIKey is required for authentication with OpenAI.
	APIKey string `env:"OPENAI_API_KEY,required"`

	// Model specifies which chat model to use.
	Model string `env:"OPENAI_MODEL" envDefault:"gpt-4"`

	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`

	// Timeout bounds each API request.
	Timeout time.Duration `env:"OPENAI_HTTP_TIMEOUT" envDefault:"30s"`

	// HTTPClient allows custom HTTP client configuration.
	// Default: http.Client with Timeout.
	HTTPClient *http.Client
}

// Client calls the OpenAI chat completions API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewClient creates a new chat completion client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}, nil
}

// Complete sends a single user message to the chat completions API and
// returns the assistant's reply text unmodified.
func (c *Client) Complete(ctx context.Context, message string) (string, error) {
	requestBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: message},
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp errorResponse
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
			if resp.StatusCode == http.StatusTooManyRequests || strings.Contains(errorResp.Error.Message, "rate limit") {
				return "", fmt.Errorf("%w: %s", ErrRateLimitExceeded, errorResp.Error.Message)
			}
			return "", fmt.Errorf("%w: %s", ErrRequestFailed, errorResp.Error.Message)
		}
		return "", fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return response.Choices[0].Message.Content, nil
}

// OpenAI API request/response types

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}
