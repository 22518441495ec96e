package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. It is loaded once at startup;
// nothing reads the environment ad hoc mid-request.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	LLM       LLMConfig
	Store     StoreConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
	Webhook   WebhookConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls outbound page fetching.
type FetchConfig struct {
	// Timeout bounds a single fetch end to end.
	Timeout time.Duration // default: 30s

	// MaxRedirects caps redirect following.
	MaxRedirects int // default: 10
}

// LLMConfig controls the generator provider. The credential lives here and
// is handed to the synthesizer at construction, never read mid-call.
type LLMConfig struct {
	// Provider selects the backend: "openai" (SDK, default) or "compat"
	// (dependency-free client for any OpenAI-compatible endpoint).
	Provider string

	// APIKey is the bearer credential. Required for generation.
	APIKey string

	// BaseURL overrides the provider endpoint, e.g. for DeepSeek or a
	// local server. Empty means the provider default.
	BaseURL string

	// Model is the generation model name.
	Model string // default: "gpt-4o-mini"

	// Timeout bounds a single generator round trip.
	Timeout time.Duration // default: 60s
}

// StoreConfig controls the MongoDB document store.
type StoreConfig struct {
	URI      string // default: "mongodb://localhost:27017"
	Database string // default: "faqforge"
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	Enabled bool     // default: true
	APIKeys []string // valid client keys
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 // default: 5
	Burst             int     // default: 10
}

// CacheConfig controls the extracted-document cache.
type CacheConfig struct {
	MaxEntries int // default: 1000
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// WebhookConfig controls signed event delivery.
type WebhookConfig struct {
	// Secret signs outgoing webhook payloads with HMAC-SHA256.
	Secret string
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("FAQFORGE_HOST", "0.0.0.0"),
			Port: envIntOr("FAQFORGE_PORT", 8080),
			Mode: envOr("FAQFORGE_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("FAQFORGE_FETCH_TIMEOUT", 30*time.Second),
			MaxRedirects: envIntOr("FAQFORGE_MAX_REDIRECTS", 10),
		},
		LLM: LLMConfig{
			Provider: envOr("FAQFORGE_LLM_PROVIDER", "openai"),
			APIKey:   os.Getenv("FAQFORGE_LLM_API_KEY"),
			BaseURL:  os.Getenv("FAQFORGE_LLM_BASE_URL"),
			Model:    envOr("FAQFORGE_LLM_MODEL", "gpt-4o-mini"),
			Timeout:  envDurationOr("FAQFORGE_LLM_TIMEOUT", 60*time.Second),
		},
		Store: StoreConfig{
			URI:      envOr("FAQFORGE_MONGO_URI", "mongodb://localhost:27017"),
			Database: envOr("FAQFORGE_MONGO_DB", "faqforge"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("FAQFORGE_AUTH_ENABLED", true),
			APIKeys: envSliceOr("FAQFORGE_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("FAQFORGE_RATE_RPS", 5.0),
			Burst:             envIntOr("FAQFORGE_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("FAQFORGE_CACHE_MAX_ENTRIES", 1000),
		},
		Log: LogConfig{
			Level:  envOr("FAQFORGE_LOG_LEVEL", "info"),
			Format: envOr("FAQFORGE_LOG_FORMAT", "json"),
		},
		Webhook: WebhookConfig{
			Secret: os.Getenv("FAQFORGE_WEBHOOK_SECRET"),
		},
	}
}

// Validate checks startup-fatal misconfiguration. A missing LLM credential
// is not fatal here: extraction-only deployments are valid, and the
// synthesizer rejects generation calls itself.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("config: server port out of range")
	}
	if c.LLM.Provider != "openai" && c.LLM.Provider != "compat" {
		return errors.New("config: unknown LLM provider " + strconv.Quote(c.LLM.Provider))
	}
	if c.Store.URI == "" {
		return errors.New("config: mongo URI is required")
	}
	return nil
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
