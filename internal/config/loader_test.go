package config

import (
	"os"
	"testing"
	"time"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	clearEnv := func(t *testing.T) {
		t.Helper()
		for _, key := range []string{
			"SCHEDULER_HTTP_PORT",
			"SCHEDULER_SQLITE_DSN",
			"SCHEDULER_SESSION_TTL",
			"SCHEDULER_PLACEMENT_POLICY",
			"SCHEDULER_SMTP_HOST",
			"SCHEDULER_SMTP_PORT",
			"SCHEDULER_SMTP_USERNAME",
			"SCHEDULER_SMTP_PASSWORD",
			"SCHEDULER_SMTP_FROM",
			"SCHEDULER_SMTP_SENDER",
		} {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}
	}

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:placement.db" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.SessionTTL != 24*time.Hour {
			t.Fatalf("expected default session TTL 24h, got %s", cfg.SessionTTL)
		}
		if cfg.PlacementPolicy != "legacy" {
			t.Fatalf("expected default policy legacy, got %q", cfg.PlacementPolicy)
		}
		if cfg.SMTPEnabled() {
			t.Fatalf("expected SMTP to be disabled by default")
		}
	})

	t.Run("parses duration and numeric fields", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SCHEDULER_HTTP_PORT", "9090")
		t.Setenv("SCHEDULER_SQLITE_DSN", "file:/tmp/placement.db")
		t.Setenv("SCHEDULER_SESSION_TTL", "8h")
		t.Setenv("SCHEDULER_PLACEMENT_POLICY", "retry")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:/tmp/placement.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.SessionTTL != 8*time.Hour {
			t.Fatalf("expected session TTL 8h, got %s", cfg.SessionTTL)
		}
		if cfg.PlacementPolicy != "retry" {
			t.Fatalf("expected policy retry, got %q", cfg.PlacementPolicy)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SCHEDULER_HTTP_PORT", "not-a-port")
		t.Setenv("SCHEDULER_PLACEMENT_POLICY", "random")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		expected := "environment variables have invalid values: SCHEDULER_HTTP_PORT, SCHEDULER_PLACEMENT_POLICY"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("requires a from address when SMTP is enabled", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SCHEDULER_SMTP_HOST", "smtp.example.com")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error when SMTP host is set without a from address")
		}
		expected := "required environment variables are not set: SCHEDULER_SMTP_FROM"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("loads a complete SMTP configuration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SCHEDULER_SMTP_HOST", "smtp.example.com")
		t.Setenv("SCHEDULER_SMTP_PORT", "2525")
		t.Setenv("SCHEDULER_SMTP_USERNAME", "relay")
		t.Setenv("SCHEDULER_SMTP_PASSWORD", "secret")
		t.Setenv("SCHEDULER_SMTP_FROM", "noreply@example.com")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if !cfg.SMTPEnabled() {
			t.Fatalf("expected SMTP to be enabled")
		}
		if cfg.SMTPPort != "2525" || cfg.SMTPFrom != "noreply@example.com" {
			t.Fatalf("unexpected SMTP config: %+v", cfg)
		}
		if cfg.SMTPSender != "Placement Scheduler" {
			t.Fatalf("expected default sender, got %q", cfg.SMTPSender)
		}
	})
}
