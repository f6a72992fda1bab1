package classifier

import (
	"context"
	"errors"

	"chat-insights-go/internal/config"
	"chat-insights-go/internal/logger"
)

// NewCompleter picks the mock or the HTTP gateway from configuration. Without
// gateway credentials the run still proceeds: every completion fails with
// ErrNotConfigured and rows get their axis fallback.
func NewCompleter(cfg config.Config, log *logger.Logger) (Completer, error) {
	if cfg.UseMockLLM {
		log.Info("mock LLM mode ON - classifying with keyword rules")
		return MockCompleter{}, nil
	}
	gw, err := NewGateway(GatewayConfig{
		URL:        cfg.LLMGatewayURL,
		APIKey:     cfg.LLMAPIKey,
		Model:      cfg.LLMModel,
		Timeout:    cfg.LLMTimeout,
		MaxRetries: cfg.LLMMaxRetries,
	}, log)
	if errors.Is(err, ErrNotConfigured) {
		log.Warn("LLM_GATEWAY_URL or LLM_API_KEY not set - classifications will use fallback labels")
		return unconfigured{}, nil
	}
	if err != nil {
		return nil, err
	}
	return gw, nil
}

type unconfigured struct{}

func (unconfigured) Complete(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}

// NewPair builds the query and customer-state classifiers sharing one completer.
func NewPair(c Completer, strict bool) (query, customer *Classifier) {
	return New(c, QueryAxis, strict), New(c, CustomerAxis, strict)
}
