package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tripplanner")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ALLOW_ORIGINS", "")
	t.Setenv("SESSION_TTL", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %s", cfg.SessionTTL)
	}
	if len(cfg.AllowOrigins) != 1 || cfg.AllowOrigins[0] != "*" {
		t.Fatalf("expected wildcard origins, got %v", cfg.AllowOrigins)
	}
	if cfg.ReviewAutoApprove {
		t.Fatalf("expected review auto-approve to default to false")
	}
	if cfg.ItineraryRatePerMinute != 30 || cfg.ItineraryRateBurst != 10 {
		t.Fatalf("unexpected rate limit defaults: %d/%d", cfg.ItineraryRatePerMinute, cfg.ItineraryRateBurst)
	}
	if cfg.DestinationImageMaxBytes != 5*1024*1024 {
		t.Fatalf("unexpected image max bytes %d", cfg.DestinationImageMaxBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tripplanner")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ADMIN_EMAILS", " Admin@Example.com , ops@example.com,")
	t.Setenv("REVIEW_AUTO_APPROVE", "true")
	t.Setenv("STRICT_TAG_MAPPING", "1")
	t.Setenv("ITINERARY_RATE_PER_MINUTE", "not-a-number")
	t.Setenv("SMTP_PORT", "2525")

	cfg := Load()

	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected 2h session ttl, got %s", cfg.SessionTTL)
	}
	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[0] != "admin@example.com" {
		t.Fatalf("unexpected admin emails %v", cfg.AdminEmails)
	}
	if !cfg.ReviewAutoApprove || !cfg.StrictTagMapping {
		t.Fatalf("expected boolean overrides to apply")
	}
	if cfg.ItineraryRatePerMinute != 30 {
		t.Fatalf("expected invalid rate to fall back to default, got %d", cfg.ItineraryRatePerMinute)
	}
	if cfg.SMTPPort != 2525 {
		t.Fatalf("expected smtp port 2525, got %d", cfg.SMTPPort)
	}
}

func TestLoadPanicsWithoutDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing DATABASE_URL")
		}
	}()
	Load()
}
