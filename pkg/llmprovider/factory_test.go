package llmprovider_test

import (
	"testing"

	"customer-support-agent/config"
	"customer-support-agent/pkg/llmprovider"
	"customer-support-agent/pkg/log"
)

func TestInitializeProviders(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.LLMConfig
		wantErr   bool
		wantOrder []string
	}{
		{
			name: "ordered by priority",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "gemini", Enabled: true, Priority: 10, APIKey: "g", Model: "gemini-2.5-flash"},
				{Name: "ollama", Enabled: true, Priority: 1, Model: "llama3.1"},
				{Name: "deepseek", Enabled: true, Priority: 5, APIKey: "d", Model: "deepseek-chat"},
			}},
			wantOrder: []string{"ollama", "deepseek", "gemini"},
		},
		{
			name:    "no providers",
			cfg:     &config.LLMConfig{},
			wantErr: true,
		},
		{
			name: "all providers disabled",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "qwen", Enabled: false, APIKey: "k", Model: "qwen-plus"},
			}},
			wantErr: true,
		},
		{
			name: "missing API key skips provider",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "qwen", Enabled: true, Priority: 1, Model: "qwen-plus"},
				{Name: "ollama", Enabled: true, Priority: 2, Model: "llama3.1"},
			}},
			wantOrder: []string{"ollama"},
		},
		{
			name: "unknown provider only",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "mystery", Enabled: true, APIKey: "k", Model: "m"},
			}},
			wantErr: true,
		},
		{
			name: "bad timeout",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "ollama", Enabled: true, Model: "llama3.1", Timeout: "soon"},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers, err := llmprovider.InitializeProviders(tt.cfg, log.NewNop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("InitializeProviders() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(providers) != len(tt.wantOrder) {
				t.Fatalf("expected %d providers, got %d", len(tt.wantOrder), len(providers))
			}
			for i, name := range tt.wantOrder {
				if providers[i].Name() != name {
					t.Errorf("provider %d: expected %s, got %s", i, name, providers[i].Name())
				}
			}
		})
	}
}

func TestNewManagerFromConfig(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers:       []config.ProviderConfig{{Name: "ollama", Enabled: true, Model: "llama3.1"}},
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      "1s",
		MaxTotalTimeout: "30s",
	}
	m, err := llmprovider.NewManagerFromConfig(cfg, log.NewNop())
	if err != nil || m == nil {
		t.Fatalf("expected manager, got %v", err)
	}

	cfg.RetryDelay = "later"
	if _, err := llmprovider.NewManagerFromConfig(cfg, log.NewNop()); err == nil {
		t.Error("expected error for bad retry delay")
	}
}
