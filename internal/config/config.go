// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"care_scheduler_backend/pkg/utils"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Port    string
	GinMode string

	StoreDriver   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBApplySchema bool

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	CORSAllowedOrigins []string

	RedisURL string
	CacheTTL time.Duration

	LogLevel  string
	LogFormat string

	BootstrapAdminEmail    string
	BootstrapAdminPassword string
	BootstrapAdminName     string
}

// Load reads the configuration. Malformed durations, booleans and drivers are errors.
func Load() (*Config, error) {
	cfg := &Config{
		Port:    utils.Getenv("PORT", "8080"),
		GinMode: utils.Getenv("GIN_MODE", "debug"),

		StoreDriver: strings.ToLower(utils.Getenv("STORE_DRIVER", StoreDriverPostgres)),
		DBHost:      utils.Getenv("DB_HOST", "localhost"),
		DBPort:      utils.Getenv("DB_PORT", "5432"),
		DBUser:      utils.Getenv("DB_USER", "postgres"),
		DBPassword:  utils.Getenv("DB_PASSWORD", "postgres"),
		DBName:      utils.Getenv("DB_NAME", "care_scheduler"),
		DBSSLMode:   utils.Getenv("DB_SSLMODE", "disable"),

		JWTSecret: utils.Getenv("JWT_SECRET", "change-me-in-production"),

		CORSAllowedOrigins: splitList(utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		RedisURL: utils.Getenv("REDIS_URL", ""),

		LogLevel:  utils.Getenv("LOG_LEVEL", "info"),
		LogFormat: utils.Getenv("LOG_FORMAT", "console"),

		BootstrapAdminEmail:    utils.Getenv("BOOTSTRAP_ADMIN_EMAIL", ""),
		BootstrapAdminPassword: utils.Getenv("BOOTSTRAP_ADMIN_PASSWORD", ""),
		BootstrapAdminName:     utils.Getenv("BOOTSTRAP_ADMIN_NAME", "Administrator"),
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, cfg.StoreDriver)
	}

	var err error
	if cfg.DBApplySchema, err = parseBool("DB_APPLY_SCHEMA", "false"); err != nil {
		return nil, err
	}
	if cfg.AccessTokenTTL, err = parseDuration("ACCESS_TOKEN_TTL", utils.DefaultAccessTokenTTL.String()); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = parseDuration("REFRESH_TOKEN_TTL", utils.DefaultRefreshTokenTTL.String()); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = parseDuration("CACHE_TTL", "5m"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BootstrapAdminEnabled reports whether both bootstrap credentials are set.
func (c *Config) BootstrapAdminEnabled() bool {
	return c.BootstrapAdminEmail != "" && c.BootstrapAdminPassword != ""
}

func parseBool(key, fallback string) (bool, error) {
	raw := utils.Getenv(key, fallback)
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := utils.Getenv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
