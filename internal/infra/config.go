package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	AppTitle            string
	LogLevel            string
	Port                string
	StorageDriver       string
	DatabaseURL         string
	DBMaxConns          int
	RunMigrations       bool
	JWTSecret           string
	TokenTTL            time.Duration
	SuperuserEmail      string
	SuperuserPassword   string
	RedisURL            string
	LockKey             string
	LockExpiry          time.Duration
	ReconcileMaxRetries int
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	RateLimitPerMin     int
	CORSAllowedOrigins  []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		AppTitle:            getEnv("APP_TITLE", "Charity Fund"),
		LogLevel:            os.Getenv("LOG_LEVEL"),
		Port:                getEnv("PORT", "8080"),
		StorageDriver:       getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		DBMaxConns:          getEnvInt("DB_MAX_CONNS", 10),
		RunMigrations:       getEnvBool("RUN_MIGRATIONS", true),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		TokenTTL:            time.Minute * time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 60)),
		SuperuserEmail:      strings.TrimSpace(os.Getenv("FIRST_SUPERUSER_EMAIL")),
		SuperuserPassword:   os.Getenv("FIRST_SUPERUSER_PASSWORD"),
		RedisURL:            os.Getenv("REDIS_URL"),
		LockKey:             getEnv("LOCK_KEY", "lock:charityfund:reconcile"),
		LockExpiry:          time.Second * time.Duration(getEnvInt("LOCK_EXPIRY_SECONDS", 10)),
		ReconcileMaxRetries: getEnvInt("RECONCILE_MAX_RETRIES", 5),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS"),
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	case StorageDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if (cfg.SuperuserEmail == "") != (cfg.SuperuserPassword == "") {
		return nil, fmt.Errorf("FIRST_SUPERUSER_EMAIL and FIRST_SUPERUSER_PASSWORD must be set together")
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_MINUTES must be positive")
	}

	if cfg.ReconcileMaxRetries < 1 {
		return nil, fmt.Errorf("RECONCILE_MAX_RETRIES must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
