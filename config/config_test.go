package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8000 {
		t.Errorf("port = %d, want 8000", cfg.Server.Port)
	}
	if !cfg.Browser.Headless {
		t.Error("headless should default to true")
	}
	if cfg.Capture.StabilizeTimeout != 10*time.Second {
		t.Errorf("stabilize timeout = %v, want 10s", cfg.Capture.StabilizeTimeout)
	}
	if cfg.Capture.SelectorTimeout != 5*time.Second {
		t.Errorf("selector timeout = %v, want 5s", cfg.Capture.SelectorTimeout)
	}
	if cfg.Capture.NavigationTimeout != 0 {
		t.Errorf("navigation timeout = %v, want unbounded default", cfg.Capture.NavigationTimeout)
	}
	if cfg.Auth.Enabled {
		t.Error("auth should default to disabled")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAGEGRAB_PORT", "9090")
	t.Setenv("PAGEGRAB_HEADLESS", "false")
	t.Setenv("PAGEGRAB_NAV_TIMEOUT", "30s")
	t.Setenv("PAGEGRAB_API_KEYS", "key-a, key-b,")
	t.Setenv("PAGEGRAB_RATE_RPS", "2.5")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Browser.Headless {
		t.Error("headless should be overridable to false")
	}
	if cfg.Capture.NavigationTimeout != 30*time.Second {
		t.Errorf("navigation timeout = %v, want 30s", cfg.Capture.NavigationTimeout)
	}
	if len(cfg.Auth.APIKeys) != 2 || cfg.Auth.APIKeys[0] != "key-a" || cfg.Auth.APIKeys[1] != "key-b" {
		t.Errorf("api keys = %v, want trimmed [key-a key-b]", cfg.Auth.APIKeys)
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Errorf("rps = %v, want 2.5", cfg.RateLimit.RequestsPerSecond)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PAGEGRAB_PORT", "not-a-number")
	t.Setenv("PAGEGRAB_HEADLESS", "maybe")
	t.Setenv("PAGEGRAB_NAV_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Server.Port != 8000 {
		t.Errorf("port = %d, want the 8000 fallback", cfg.Server.Port)
	}
	if !cfg.Browser.Headless {
		t.Error("malformed bool should fall back to true")
	}
	if cfg.Capture.NavigationTimeout != 0 {
		t.Errorf("navigation timeout = %v, want the 0 fallback", cfg.Capture.NavigationTimeout)
	}
}
