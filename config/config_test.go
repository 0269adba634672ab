package config

import (
	"reflect"
	"testing"
)

func validConfig() *Config {
	return &Config{
		LLM:       LLMConfig{Providers: []ProviderConfig{{Name: "ollama", Enabled: true, Model: "llama3.1"}}},
		Store:     StoreConfig{Driver: StoreDriverSQLite, SQLitePath: "data/support.db"},
		Retrieval: RetrievalConfig{Backend: RetrievalBackendChromem, TopK: 3},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"no providers", func(c *Config) { c.LLM.Providers = nil }, true},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }, true},
		{"sqlite without path", func(c *Config) { c.Store.SQLitePath = "" }, true},
		{"redis without addr", func(c *Config) { c.Store.Driver = StoreDriverRedis }, true},
		{"redis with addr", func(c *Config) { c.Store.Driver = StoreDriverRedis; c.Store.RedisAddr = "localhost:6379" }, false},
		{"unknown backend", func(c *Config) { c.Retrieval.Backend = "pinecone" }, true},
		{"zero top k", func(c *Config) { c.Retrieval.TopK = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"angry, frustrated", " ", "useless"})
	want := []string{"angry", "frustrated", "useless"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitList() = %v, want %v", got, want)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("SUPPORT_TEST_KEY", "secret")
	if got := expandEnvVar("${SUPPORT_TEST_KEY}"); got != "secret" {
		t.Errorf("expected secret, got %q", got)
	}
	if got := expandEnvVar("plain"); got != "plain" {
		t.Errorf("expected plain, got %q", got)
	}
}

func TestGetIntFromMap(t *testing.T) {
	m := map[string]interface{}{"a": 1, "b": int64(2), "c": 3.0, "d": "4"}
	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3, "d": 0} {
		if got := getIntFromMap(m, key); got != want {
			t.Errorf("getIntFromMap(%q) = %d, want %d", key, got, want)
		}
	}
}
