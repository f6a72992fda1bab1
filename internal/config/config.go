package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultDatasetPath = "chat_histories.csv"
	DefaultGatewayURL  = "https://api.openai.com/v1/chat/completions"
	DefaultModel       = "gpt-4o-mini"
	DefaultPort        = "8080"
	DefaultRecentLimit = 5
)

// Config is read from the environment (and .env via godotenv in main).
type Config struct {
	DatasetPath string

	LLMGatewayURL string
	LLMAPIKey     string
	LLMModel      string
	// LLMTimeout of zero leaves the HTTP client without a timeout.
	LLMTimeout    time.Duration
	LLMMaxRetries int
	UseMockLLM    bool
	StrictLabels  bool

	Port        string
	RecentLimit int
}

func Load() (Config, error) {
	cfg := Config{
		DatasetPath:   envOr("DATASET_PATH", DefaultDatasetPath),
		LLMGatewayURL: envOr("LLM_GATEWAY_URL", DefaultGatewayURL),
		LLMAPIKey:     os.Getenv("LLM_API_KEY"),
		LLMModel:      envOr("LLM_MODEL", DefaultModel),
		Port:          envOr("PORT", DefaultPort),
		RecentLimit:   DefaultRecentLimit,
	}

	var err error
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if cfg.LLMTimeout, err = time.ParseDuration(v); err != nil || cfg.LLMTimeout < 0 {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q", v)
		}
	}
	if v := os.Getenv("LLM_MAX_RETRIES"); v != "" {
		if cfg.LLMMaxRetries, err = strconv.Atoi(v); err != nil || cfg.LLMMaxRetries < 0 {
			return Config{}, fmt.Errorf("invalid LLM_MAX_RETRIES %q", v)
		}
	}
	if cfg.UseMockLLM, err = envBool("USE_MOCK_LLM"); err != nil {
		return Config{}, err
	}
	if cfg.StrictLabels, err = envBool("STRICT_LABELS"); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("RECENT_LIMIT"); v != "" {
		if cfg.RecentLimit, err = strconv.Atoi(v); err != nil || cfg.RecentLimit <= 0 {
			return Config{}, fmt.Errorf("invalid RECENT_LIMIT %q", v)
		}
	}
	return cfg, nil
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envBool(k string) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", k, v)
	}
	return b, nil
}
