package config

import (
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	t.Setenv(key, "")
	if got := getEnv(key, "9000"); got != "9000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9000")
	}

	t.Setenv(key, "8080")
	if got := getEnv(key, "9000"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestGetDurationFallsBackOnGarbage(t *testing.T) {
	const key = "TEST_CACHE_TTL"

	cases := []struct {
		val  string
		want time.Duration
	}{
		{"", time.Minute},
		{"30s", 30 * time.Second},
		{"soon", time.Minute},
		{"-5s", time.Minute},
	}
	for _, c := range cases {
		t.Setenv(key, c.val)
		if got := getDuration(key, time.Minute); got != c.want {
			t.Fatalf("getDuration(%q) = %s, want %s", c.val, got, c.want)
		}
	}
}

func TestLoadReadsAuthAndCache(t *testing.T) {
	t.Setenv("APP_PORT", "1234")
	t.Setenv("APP_BASIC_USER", "user")
	t.Setenv("APP_BASIC_PASS", "pass")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("DEDUPE_HEADLINES", "true")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()
	if cfg.AppPort != "1234" {
		t.Fatalf("AppPort = %q, want %q", cfg.AppPort, "1234")
	}
	if cfg.BasicAuthUser != "user" || cfg.BasicAuthPass != "pass" {
		t.Fatalf("BasicAuthUser/Pass not loaded correctly: %+v", cfg)
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Fatalf("CacheTTL = %s, want 2m", cfg.CacheTTL)
	}
	if !cfg.Dedupe {
		t.Fatalf("Dedupe should be enabled")
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Fatalf("FetchTimeout = %s, want 10s default", cfg.FetchTimeout)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("RedisAddr = %q, want empty", cfg.RedisAddr)
	}
}
