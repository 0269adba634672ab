package llmprovider

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"customer-support-agent/config"
	"customer-support-agent/pkg/gemini"
	"customer-support-agent/pkg/log"
)

// Default endpoints of the OpenAI-compatible providers.
const (
	OllamaBaseURL   = "http://localhost:11434/v1"
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
	QwenBaseURL     = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
)

// InitializeProviders creates Provider instances from config.LLMConfig.
// Providers come back sorted by ascending priority with disabled ones
// filtered out. A provider that fails to initialize is skipped.
func InitializeProviders(cfg *config.LLMConfig, l log.Logger) ([]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}

	var enabled []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	ctx := context.Background()
	var (
		providers  []Provider
		initErrors []string
	)
	for _, p := range enabled {
		provider, err := createProvider(p)
		if err != nil {
			msg := fmt.Sprintf("provider %s (priority %d): %v", p.Name, p.Priority, err)
			initErrors = append(initErrors, msg)
			l.Warnf(ctx, "pkg.llmprovider.InitializeProviders: skipping %s", msg)
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers successfully initialized: %s", strings.Join(initErrors, "; "))
	}
	return providers, nil
}

// NewManagerFromConfig initializes providers and wraps them in a Manager.
func NewManagerFromConfig(cfg *config.LLMConfig, l log.Logger) (*Manager, error) {
	providers, err := InitializeProviders(cfg, l)
	if err != nil {
		return nil, err
	}

	retryDelay, err := parseDuration(cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("llm.retry_delay: %w", err)
	}
	maxTotal, err := parseDuration(cfg.MaxTotalTimeout)
	if err != nil {
		return nil, fmt.Errorf("llm.max_total_timeout: %w", err)
	}

	return NewManager(providers, &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}, l), nil
}

func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	timeout, err := parseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("timeout: %w", err)
	}

	switch cfg.Name {
	case "ollama":
		// Ollama ignores the key but go-openai always sends one.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIAdapter(OpenAIConfig{
			Name:    cfg.Name,
			APIKey:  apiKey,
			BaseURL: orDefault(cfg.BaseURL, OllamaBaseURL),
			Model:   cfg.Model,
			Timeout: timeout,
		}), nil

	case "openai", "deepseek", "qwen":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("API key is required")
		}
		base := cfg.BaseURL
		switch cfg.Name {
		case "deepseek":
			base = orDefault(base, DeepSeekBaseURL)
		case "qwen":
			base = orDefault(base, QwenBaseURL)
		}
		return NewOpenAIAdapter(OpenAIConfig{
			Name:    cfg.Name,
			APIKey:  cfg.APIKey,
			BaseURL: base,
			Model:   cfg.Model,
			Timeout: timeout,
		}), nil

	case "gemini":
		gcfg := gemini.Config{APIKey: cfg.APIKey, Model: cfg.Model, APIURL: cfg.BaseURL}
		if timeout > 0 {
			gcfg.HTTPClient = &http.Client{Timeout: timeout}
		}
		client, err := gemini.New(gcfg)
		if err != nil {
			return nil, err
		}
		return NewGeminiAdapter(client), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
