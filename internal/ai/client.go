// Package ai talks to an OpenAI-compatible chat-completion endpoint
// for catalog enrichment and recommendation search. Calls are plain
// HTTP with explicit timeouts; both features degrade gracefully when
// no key is configured or the endpoint misbehaves.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/utils"
)

// Client speaks the chat-completions wire protocol.
type Client struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// NewClient creates a chat-completion client. baseURL normally points
// at https://api.openai.com/v1 and is overridable for tests and
// compatible endpoints.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Temperature    float64         `json:"temperature"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CompleteJSON sends a single-user-message completion in JSON-object
// mode and decodes the model's reply into out.
func (c *Client) CompleteJSON(ctx context.Context, apiKey, model string, temperature float64, prompt string, out any) error {
	payload, err := json.Marshal(chatRequest{
		Model:          model,
		Temperature:    temperature,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return fmt.Errorf("failed to encode completion request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("completion request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read completion response: %w", err)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return fmt.Errorf("completion response undecodable (status %d): %w", resp.StatusCode, err)
	}

	if completion.Error != nil {
		return fmt.Errorf("completion endpoint error: %s", completion.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}
	if len(completion.Choices) == 0 {
		return fmt.Errorf("completion returned no choices")
	}

	c.logger.Debug("completion finished",
		logger.String("model", model),
		logger.Duration("took", time.Since(start)))

	content := completion.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("completion content is not the expected JSON: %w", err)
	}
	return nil
}
