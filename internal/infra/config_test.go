package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("RECONCILE_MAX_RETRIES", "")
	t.Setenv("LOCK_EXPIRY_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Fatalf("StorageDriver mismatch: got %q want %q", cfg.StorageDriver, StorageDriverPostgres)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.ReconcileMaxRetries != 5 {
		t.Fatalf("ReconcileMaxRetries mismatch: got %d", cfg.ReconcileMaxRetries)
	}
	if cfg.LockExpiry != 10*time.Second {
		t.Fatalf("LockExpiry mismatch: got %s", cfg.LockExpiry)
	}
	if !cfg.RunMigrations {
		t.Fatalf("RunMigrations should default to true")
	}
}

func TestLoadConfigRequiresDatabaseURLForPostgres(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "postgres")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestLoadConfigMemoryDriverSkipsDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.StorageDriver != StorageDriverMemory {
		t.Fatalf("StorageDriver mismatch: got %q", cfg.StorageDriver)
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "mongo")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoadConfigRejectsZeroRetries(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("RECONCILE_MAX_RETRIES", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for zero retries")
	}
}

func TestLoadConfigParsesAllowedOrigins(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://fund.example.com, ,http://localhost:3000 ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := []string{"https://fund.example.com", "http://localhost:3000"}
	if len(cfg.CORSAllowedOrigins) != len(expected) {
		t.Fatalf("CORSAllowedOrigins mismatch: got %#v want %#v", cfg.CORSAllowedOrigins, expected)
	}
	for i, origin := range expected {
		if cfg.CORSAllowedOrigins[i] != origin {
			t.Fatalf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], origin)
		}
	}
}

func TestLoadConfigFirstSuperuser(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("FIRST_SUPERUSER_EMAIL", " root@fund.example ")
	t.Setenv("FIRST_SUPERUSER_PASSWORD", "hunter2")
	t.Setenv("TOKEN_TTL_MINUTES", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.SuperuserEmail != "root@fund.example" || cfg.SuperuserPassword != "hunter2" {
		t.Fatalf("superuser mismatch: %q %q", cfg.SuperuserEmail, cfg.SuperuserPassword)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("TokenTTL mismatch: got %s", cfg.TokenTTL)
	}

	t.Setenv("FIRST_SUPERUSER_PASSWORD", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for email without password")
	}
}
