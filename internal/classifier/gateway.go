package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"chat-insights-go/internal/logger"
)

// GatewayConfig configures an OpenAI-compatible chat completions endpoint.
type GatewayConfig struct {
	URL    string
	APIKey string
	Model  string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
	// MaxRetries of zero means exactly one attempt.
	MaxRetries int
	// RetryInitialInterval seeds the exponential backoff; defaults to 500ms.
	RetryInitialInterval time.Duration
}

// Gateway is a Completer backed by a hosted model over HTTP.
type Gateway struct {
	cfg    GatewayConfig
	client *http.Client
	log    *logger.Logger
}

var _ Completer = (*Gateway)(nil)

func NewGateway(cfg GatewayConfig, log *logger.Logger) (*Gateway, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if cfg.RetryInitialInterval == 0 {
		cfg.RetryInitialInterval = 500 * time.Millisecond
	}
	return &Gateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    &logger.Logger{Entry: log.WithField("component", "llm-gateway")},
	}, nil
}

// Complete posts system + user messages at temperature 0 and returns
// choices[0].message.content.
func (g *Gateway) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := map[string]any{
		"model": g.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": 0.0,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	var content string
	var lastErr error

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.URL, bytes.NewReader(data))
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(req)
		if err != nil {
			lastErr = err
			g.log.WithError(err).Warn("llm request failed")
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = fmt.Errorf("read llm response: %w", err)
			return lastErr
		}
		g.log.WithField("http_status", resp.StatusCode).Debug("llm raw:\n" + string(body))

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("llm gateway status %d: %s", resp.StatusCode, truncate(body, 200))
			// Permanent: don't retry on client errors, except rate limiting
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(lastErr)
			}
			return lastErr
		}

		c, ok := extractContentFromChoices(body)
		if !ok {
			lastErr = fmt.Errorf("no choices in llm output: %s", truncate(body, 200))
			return backoff.Permanent(lastErr)
		}
		content, lastErr = c, nil
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.cfg.RetryInitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(g.cfg.MaxRetries)), ctx)

	if err := backoff.Retry(op, policy); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return "", fmt.Errorf("llm completion failed: %w", lastErr)
	}
	return content, nil
}

// extractContentFromChoices reads openai-style choices[0].message.content
func extractContentFromChoices(body []byte) (string, bool) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", false
	}

	choices, ok := obj["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}
	c0, _ := choices[0].(map[string]any)
	if c0 == nil {
		return "", false
	}
	msg, _ := c0["message"].(map[string]any)
	if msg == nil {
		return "", false
	}
	content, ok := msg["content"].(string)
	return content, ok
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
