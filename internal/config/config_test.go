package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/inkwell")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("TOKEN_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("AppEnv = %q, want %q", cfg.AppEnv, "development")
	}
	if cfg.AppPort != 5000 {
		t.Errorf("AppPort = %d, want 5000", cfg.AppPort)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
	if !cfg.RequireAuthForListing {
		t.Error("RequireAuthForListing must default to true")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("log defaults = %q/%q, want info/json", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.MaxRequestBodySize != 1048576 {
		t.Errorf("MaxRequestBodySize = %d, want 1048576", cfg.MaxRequestBodySize)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("REQUIRE_AUTH_FOR_LISTING", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Error("expected production mode")
	}
	if cfg.AppPort != 8080 {
		t.Errorf("AppPort = %d, want 8080", cfg.AppPort)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want 30m", cfg.TokenTTL)
	}
	if cfg.RequireAuthForListing {
		t.Error("RequireAuthForListing must be overridable to false")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/inkwell")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	// TOKEN_SECRET intentionally unset.
	t.Setenv("TOKEN_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected an error with TOKEN_SECRET missing")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Error("expected an error for a short TOKEN_SECRET")
	}
}

func TestGetCORSAllowedOrigins(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "https://example.com", []string{"https://example.com"}},
		{"multiple with spaces", "https://a.com, https://b.com", []string{"https://a.com", "https://b.com"}},
		{"trailing comma", "https://a.com,", []string{"https://a.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CORSAllowedOrigins: tt.value}
			got := cfg.GetCORSAllowedOrigins()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("origin[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
