package infra

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
	unsetEnv(t, "JOURNAL_DRIVER", "PORT", "RATE_LIMIT_PER_MINUTE", "JOURNAL_COMMIT_TIMEOUT_MS", "HTTP_WRITE_TIMEOUT_SECONDS", "HTTP_IDLE_TIMEOUT_SECONDS")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.JournalDriver != JournalMemory {
		t.Fatalf("JournalDriver mismatch: got %q want %q", cfg.JournalDriver, JournalMemory)
	}
	if cfg.RateLimitPerMin != 120 || cfg.JournalCommitTimeout() != 2*time.Second {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
	if cfg.HTTPWriteTimeout() != 30*time.Second || cfg.HTTPIdleTimeout() != time.Minute {
		t.Fatalf("unexpected timeouts: write=%s idle=%s", cfg.HTTPWriteTimeout(), cfg.HTTPIdleTimeout())
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}

func TestLoadConfigJournalDrivers(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		dbURL   string
		wantErr bool
	}{
		{name: "postgres without url", driver: "postgres", wantErr: true},
		{name: "postgres with url", driver: "Postgres", dbURL: "postgres://example"},
		{name: "sqlite default path", driver: "sqlite"},
		{name: "unknown", driver: "mongo", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("JWT_SECRET", "test-secret")
			t.Setenv("JOURNAL_DRIVER", tc.driver)
			t.Setenv("DATABASE_URL", tc.dbURL)

			cfg, err := LoadConfig()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for driver %q", tc.driver)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig returned error: %v", err)
			}
			if cfg.JournalDriver != strings.ToLower(tc.driver) {
				t.Fatalf("JournalDriver = %q", cfg.JournalDriver)
			}
		})
	}
}

func TestLoadConfigTrimsCORSOrigins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSAllowedOrigins) != len(expected) {
		t.Fatalf("CORSAllowedOrigins mismatch: got %#v want %#v", cfg.CORSAllowedOrigins, expected)
	}
	for i, origin := range expected {
		if cfg.CORSAllowedOrigins[i] != origin {
			t.Fatalf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], origin)
		}
	}
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}
