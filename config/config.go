package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Capture   CaptureConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8000
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Playwright backend.
type BrowserConfig struct {
	// Headless controls whether browsers run headless.
	Headless bool // default: true

	// InstallDriver runs the Playwright driver installation on startup.
	// Useful in containers; a no-op when the driver is already present.
	InstallDriver bool // default: false

	// ExecutablePath overrides the chromium binary path.
	ExecutablePath string
}

// CaptureConfig controls the per-request extraction pipeline.
type CaptureConfig struct {
	// StabilizeTimeout bounds the wait for network idle after navigation.
	// Exceeding it is non-fatal: the pipeline proceeds best-effort.
	StabilizeTimeout time.Duration // default: 10s

	// ItemsTimeout bounds the wait for the first item_selector match.
	ItemsTimeout time.Duration // default: 10s

	// SelectorTimeout bounds each body/title/date selector wait.
	SelectorTimeout time.Duration // default: 5s

	// NavigationTimeout bounds page navigation. 0 means unbounded, which
	// matches the pipeline's historical behavior: navigation is the one
	// wait without a deadline.
	NavigationTimeout time.Duration // default: 0
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the capture response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 1000
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("PAGEGRAB_HOST", "0.0.0.0"),
			Port: envIntOr("PAGEGRAB_PORT", 8000),
			Mode: envOr("PAGEGRAB_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:       envBoolOr("PAGEGRAB_HEADLESS", true),
			InstallDriver:  envBoolOr("PAGEGRAB_INSTALL_DRIVER", false),
			ExecutablePath: os.Getenv("PAGEGRAB_BROWSER_BIN"),
		},
		Capture: CaptureConfig{
			StabilizeTimeout:  envDurationOr("PAGEGRAB_STABILIZE_TIMEOUT", 10*time.Second),
			ItemsTimeout:      envDurationOr("PAGEGRAB_ITEMS_TIMEOUT", 10*time.Second),
			SelectorTimeout:   envDurationOr("PAGEGRAB_SELECTOR_TIMEOUT", 5*time.Second),
			NavigationTimeout: envDurationOr("PAGEGRAB_NAV_TIMEOUT", 0),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PAGEGRAB_AUTH_ENABLED", false),
			APIKeys: envSliceOr("PAGEGRAB_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PAGEGRAB_RATE_RPS", 5.0),
			Burst:             envIntOr("PAGEGRAB_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("PAGEGRAB_CACHE_MAX_ENTRIES", 1000),
		},
		Log: LogConfig{
			Level:  envOr("PAGEGRAB_LOG_LEVEL", "info"),
			Format: envOr("PAGEGRAB_LOG_FORMAT", "json"),
		},
	}
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
		return result
	}
	return fallback
}
