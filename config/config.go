package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Conversation storage
	Store StoreConfig

	// Policy retrieval
	Retrieval RetrievalConfig
	Qdrant    QdrantConfig
	Voyage    VoyageConfig

	// Routing behaviour
	Support SupportConfig
	Orders  map[string]string
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	PerMin int
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"

	RetrievalBackendChromem = "chromem"
	RetrievalBackendQdrant  = "qdrant"
)

type StoreConfig struct {
	Driver        string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	CacheSize     int
}

type RetrievalConfig struct {
	Backend           string
	TopK              int
	Collection        string
	ChromemPath       string
	EmbeddingProvider string
	EmbeddingBaseURL  string
	EmbeddingModel    string
	EmbeddingAPIKey   string
}

type QdrantConfig struct {
	URL        string
	VectorSize int
}

type VoyageConfig struct {
	APIKey string
	Model  string
}

type SupportConfig struct {
	ApprovalGate       bool
	EscalationKeywords []string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.RateLimit.PerMin = viper.GetInt("rate_limit.per_min")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	cfg.LLM.Providers = loadProviders()

	// Storage
	cfg.Store.Driver = viper.GetString("store.driver")
	cfg.Store.SQLitePath = viper.GetString("store.sqlite_path")
	cfg.Store.RedisAddr = viper.GetString("store.redis_addr")
	cfg.Store.RedisPassword = viper.GetString("store.redis_password")
	cfg.Store.RedisDB = viper.GetInt("store.redis_db")
	cfg.Store.RedisPrefix = viper.GetString("store.redis_prefix")
	cfg.Store.CacheSize = viper.GetInt("store.cache_size")

	// Retrieval
	cfg.Retrieval.Backend = viper.GetString("retrieval.backend")
	cfg.Retrieval.TopK = viper.GetInt("retrieval.top_k")
	cfg.Retrieval.Collection = viper.GetString("retrieval.collection")
	cfg.Retrieval.ChromemPath = viper.GetString("retrieval.chromem_path")
	cfg.Retrieval.EmbeddingProvider = viper.GetString("retrieval.embedding_provider")
	cfg.Retrieval.EmbeddingBaseURL = viper.GetString("retrieval.embedding_base_url")
	cfg.Retrieval.EmbeddingModel = viper.GetString("retrieval.embedding_model")
	cfg.Retrieval.EmbeddingAPIKey = expandEnvVar(viper.GetString("retrieval.embedding_api_key"))
	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	cfg.Voyage.APIKey = expandEnvVar(viper.GetString("voyage.api_key"))
	cfg.Voyage.Model = viper.GetString("voyage.model")
	if voyageKey := viper.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	// Routing
	cfg.Support.ApprovalGate = viper.GetBool("support.approval_gate")
	cfg.Support.EscalationKeywords = splitList(viper.GetStringSlice("support.escalation_keywords"))
	cfg.Orders = viper.GetStringMapString("orders")
	if len(cfg.Orders) == 0 {
		cfg.Orders = DefaultOrders()
	} else {
		// viper lowercases map keys; order ids are matched upper case.
		upper := make(map[string]string, len(cfg.Orders))
		for k, v := range cfg.Orders {
			upper[strings.ToUpper(k)] = v
		}
		cfg.Orders = upper
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if len(c.LLM.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	switch c.Store.Driver {
	case StoreDriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the sqlite driver")
		}
	case StoreDriverRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	switch c.Retrieval.Backend {
	case RetrievalBackendChromem, RetrievalBackendQdrant:
	default:
		return fmt.Errorf("unknown retrieval.backend %q", c.Retrieval.Backend)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive")
	}
	return nil
}

// DefaultOrders is the demo order catalog used when none is configured.
func DefaultOrders() map[string]string {
	return map[string]string{
		"ORD123": "Shipped - expected delivery in 2 days",
		"ORD456": "Delivered",
		"ORD789": "Cancelled",
	}
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("rate_limit.per_min", 120)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 1)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")

	viper.SetDefault("store.driver", StoreDriverSQLite)
	viper.SetDefault("store.sqlite_path", "data/support.db")
	viper.SetDefault("store.redis_prefix", "support:")
	viper.SetDefault("store.cache_size", 1024)

	viper.SetDefault("retrieval.backend", RetrievalBackendChromem)
	viper.SetDefault("retrieval.top_k", 3)
	viper.SetDefault("retrieval.collection", "policies")
	viper.SetDefault("retrieval.chromem_path", "data/chromem")
	viper.SetDefault("retrieval.embedding_provider", "ollama")
	viper.SetDefault("retrieval.embedding_model", "nomic-embed-text")
	viper.SetDefault("qdrant.url", "http://localhost:6333")
	viper.SetDefault("qdrant.vector_size", 1024)
	viper.SetDefault("voyage.model", "voyage-3")

	viper.SetDefault("support.approval_gate", true)
	viper.SetDefault("support.escalation_keywords", []string{})
}

func loadProviders() []ProviderConfig {
	if !viper.IsSet("llm.providers") {
		return nil
	}

	var providers []ProviderConfig
	providersList, ok := viper.Get("llm.providers").([]interface{})
	if !ok {
		return nil
	}
	for _, p := range providersList {
		providerMap, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		providers = append(providers, ProviderConfig{
			Name:     getStringFromMap(providerMap, "name"),
			Enabled:  getBoolFromMap(providerMap, "enabled"),
			Priority: getIntFromMap(providerMap, "priority"),
			APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
			BaseURL:  getStringFromMap(providerMap, "base_url"),
			Model:    getStringFromMap(providerMap, "model"),
			Timeout:  getStringFromMap(providerMap, "timeout"),
		})
	}
	return providers
}

// splitList accepts both YAML lists and a comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func getStringFromMap(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// expandEnvVar resolves values written as ${VAR}.
func expandEnvVar(v string) string {
	if strings.HasPrefix(v, "${") && strings.HasSuffix(v, "}") {
		return os.Getenv(strings.TrimSuffix(strings.TrimPrefix(v, "${"), "}"))
	}
	return v
}
