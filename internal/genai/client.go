// internal/genai/client.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/48d31kh413k/NavixAI/internal/common/config"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/common/metrics"
)

var (
	ErrGenAITimeout = errors.New("GENAI_TIMEOUT")
	ErrGenAIFailed  = errors.New("GENAI_REQUEST_FAILED")
)

// Client talks to an OpenAI-compatible chat-completions endpoint. It
// implements keywords.Generator. Calls are bounded by the configured timeout
// and retried with exponential backoff within that window.
type Client struct {
	cfg    config.GenAIConfig
	client *http.Client
	logger logger.Logger
}

func NewClient(cfg config.GenAIConfig, log logger.Logger) *Client {
	return &Client{
		cfg: cfg,
		// No client-level timeout; the per-call context bounds the request.
		client: &http.Client{},
		logger: log.With(map[string]interface{}{"component": "genai"}),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends prompt and returns the raw completion text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: api key not configured", ErrGenAIFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.TimeoutDuration())
	defer cancel()

	body, _ := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ErrGenAITimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrGenAIFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return "", ErrGenAITimeout
		}
	}

	if lastErr != nil {
		metrics.ProviderRequests.WithLabelValues("genai", "error").Inc()
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrGenAITimeout
		}
		return "", fmt.Errorf("%w: %v", ErrGenAIFailed, lastErr)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: no successful response after retries", ErrGenAIFailed)
	}
	defer resp.Body.Close()
	metrics.ProviderRequests.WithLabelValues("genai", "200").Inc()

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrGenAIFailed, err)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrGenAIFailed)
	}

	text := payload.Choices[0].Message.Content
	c.logger.Debug("completion received", map[string]interface{}{
		"length": len(text),
	})
	return text, nil
}
