package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultPostgresDSN = "host=localhost user=postgres password=postgres dbname=budget port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:3000"
)

type Config struct {
	HTTPPort       string
	DatabaseDriver string
	DatabaseDSN    string
	CORSOrigins    string
	JWTSecret      string // empty disables the write guard
	LogLevel       string
	LogFormat      string
	UIEnabled      bool
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "3001"),
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)),
		DatabaseDSN:    getEnv("DATABASE_DSN", ""),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		JWTSecret:      getEnv("API_JWT_SECRET", ""),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "text")),
		UIEnabled:      getEnvBool("UI_ENABLED", true),
	}

	if cfg.DatabaseDSN == "" {
		switch cfg.DatabaseDriver {
		case DriverSQLite:
			cfg.DatabaseDSN = "file:budget.db?_foreign_keys=on"
		default:
			cfg.DatabaseDSN = defaultPostgresDSN
		}
	}

	if cfg.DatabaseDSN == defaultPostgresDSN {
		slog.Warn("DATABASE_DSN is using the default value, set your own Postgres connection for production")
	}
	if cfg.CORSOrigins == defaultCORSOrigins {
		slog.Warn("CORS_ALLOWED_ORIGINS is using the default value, set your own domain for production")
	}
	if cfg.JWTSecret == "" {
		slog.Warn("API_JWT_SECRET is empty, write endpoints are not protected")
	}

	return cfg
}

// Validate collects every configuration problem into a single error.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.HTTPPort); err != nil {
		problems = append(problems, fmt.Sprintf("invalid HTTP_PORT %q: must be a number", c.HTTPPort))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid HTTP_PORT %d: must be between 1 and 65535", port))
	}

	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		problems = append(problems, fmt.Sprintf("invalid DATABASE_DRIVER %q: must be %q or %q", c.DatabaseDriver, DriverPostgres, DriverSQLite))
	}
	if c.DatabaseDSN == "" {
		problems = append(problems, "DATABASE_DSN cannot be empty")
	}

	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		problems = append(problems, "API_JWT_SECRET must be at least 32 characters")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_LEVEL %q: must be one of debug, info, warn, error", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT %q: must be text or json", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.HTTPPort
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
