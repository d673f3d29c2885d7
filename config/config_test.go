package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.RateLimit.Requests != 100 || cfg.RateLimit.Window != 15*time.Minute {
		t.Errorf("unexpected rate limit defaults %+v", cfg.RateLimit)
	}
	if cfg.Scheduler.RecurringSpec != "5 0 * * *" || cfg.Scheduler.MonthlyEmailSpec != "0 9 1 * *" {
		t.Errorf("unexpected scheduler defaults %+v", cfg.Scheduler)
	}
	if len(cfg.AI.GeminiModels) != 3 || cfg.AI.GeminiModels[0] != "gemini-2.5-flash" {
		t.Errorf("unexpected gemini models %v", cfg.AI.GeminiModels)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("GEMINI_MODELS", "model-a, ,model-b")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("AUTH_TRUST_HEADER", "true")
	t.Setenv("APP_TIMEZONE", "Asia/Kolkata")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if !cfg.Server.IsProduction() {
		t.Error("expected production environment")
	}
	if got := strings.Join(cfg.AI.GeminiModels, ","); got != "model-a,model-b" {
		t.Errorf("unexpected models %q", got)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("expected 1m window, got %v", cfg.RateLimit.Window)
	}
	if !cfg.Auth.TrustHeader {
		t.Error("expected trust header enabled")
	}
	if cfg.Server.Location().String() != "Asia/Kolkata" {
		t.Errorf("unexpected location %v", cfg.Server.Location())
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("SCHEDULER_ENABLED", "maybe")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected fallback port 8080, got %d", cfg.Server.Port)
	}
	if !cfg.Scheduler.Enabled {
		t.Error("expected scheduler fallback to enabled")
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.Auth = AuthConfig{}
	cfg.AI.GeminiAPIKey = ""
	cfg.AI.OpenAIAPIKey = ""
	cfg.Email = EmailConfig{}
	cfg.Server.TimeZone = "Mars/Olympus"

	warnings := cfg.Validate()
	if len(warnings) != 4 {
		t.Fatalf("expected 4 warnings, got %d: %v", len(warnings), warnings)
	}

	cfg.Auth.JWTSecret = "secret"
	cfg.AI.GeminiAPIKey = "key"
	cfg.Email.ResendAPIKey = "re_123"
	cfg.Server.TimeZone = "UTC"
	if warnings := cfg.Validate(); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}
