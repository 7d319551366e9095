package config

import (
	"testing"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/platform/storage"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DevDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SESSION_SECRETS", "")
	t.Setenv("SESSION_SECURE", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PRESENCE_ALLOW_PAST_MATCHES", "")
	t.Setenv("PLACE_CACHE_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != storage.DriverPostgres {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if len(cfg.SessionSecrets) != 1 {
		t.Fatalf("expected the development session secret, got %d secrets", len(cfg.SessionSecrets))
	}
	if cfg.SessionSecure {
		t.Fatalf("expected SessionSecure=false outside prod")
	}
	if cfg.SessionMaxAge != 720*time.Hour {
		t.Fatalf("unexpected SessionMaxAge: %s", cfg.SessionMaxAge)
	}
	if !cfg.PresenceAllowPastMatches {
		t.Fatalf("expected PresenceAllowPastMatches=true by default")
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("unexpected BcryptCost: %d", cfg.BcryptCost)
	}
	if cfg.PlaceCacheTTL != 0 {
		t.Fatalf("expected the place cache to be off by default, got %s", cfg.PlaceCacheTTL)
	}
	if cfg.SeedAdminEmail != DefaultSeedAdminEmail {
		t.Fatalf("unexpected SeedAdminEmail: %q", cfg.SeedAdminEmail)
	}
}

func TestLoad_ProdSessionRules(t *testing.T) {
	t.Run("secrets are required", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SESSION_SECRETS", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when SESSION_SECRETS is missing in prod")
		}
	})

	t.Run("short secrets are rejected", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SESSION_SECRETS", "too-short")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for a short session secret in prod")
		}
	})

	t.Run("rotation list and secure cookies", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("SESSION_SECURE", "")
		t.Setenv("SESSION_SECRETS", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa, bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.SessionSecrets) != 2 {
			t.Fatalf("expected two session secrets, got %d", len(cfg.SessionSecrets))
		}
		if !cfg.SessionSecure {
			t.Fatalf("expected SessionSecure=true in prod by default")
		}
	})

	t.Run("memory storage is rejected", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("SESSION_SECRETS", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for memory storage in prod")
		}
	})
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "STORAGE_DRIVER", value: "sqlite"},
		{key: "PASSWORD_BCRYPT_COST", value: "3"},
		{key: "PASSWORD_BCRYPT_COST", value: "ten"},
		{key: "DB_MAX_OPEN_CONNS", value: "0"},
		{key: "SESSION_MAX_AGE", value: "-1h"},
		{key: "APP_SHUTDOWN_TIMEOUT", value: "soon"},
		{key: "PRESENCE_ALLOW_PAST_MATCHES", value: "maybe"},
		{key: "PLACE_CACHE_TTL", value: "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.example.com, ,https://b.example.com ")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Fatalf("unexpected split result: %v", got)
	}
}
