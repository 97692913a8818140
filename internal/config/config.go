package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port        int
	Environment string
	LogLevel    slog.Level

	FrontendURLs []string

	SeedData bool
	SeedFile string

	BodyLimit       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables and validates required fields.
func Load() (Config, error) {
	port, err := getEnvInt("PORT", 3001)
	if err != nil {
		return Config{}, fmt.Errorf("parse PORT: %w", err)
	}

	seed, err := getEnvBool("SEED_DATA", true)
	if err != nil {
		return Config{}, fmt.Errorf("parse SEED_DATA: %w", err)
	}

	timeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	cfg := Config{
		Port:            port,
		Environment:     getEnv("APP_ENV", EnvDevelopment),
		LogLevel:        level,
		FrontendURLs:    splitList(getEnv("FRONTEND_URL", "http://localhost:5173,http://127.0.0.1:5173")),
		SeedData:        seed,
		SeedFile:        getEnv("SEED_FILE", ""),
		BodyLimit:       getEnv("BODY_LIMIT", "10M"),
		ShutdownTimeout: timeout,
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	switch c.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("APP_ENV must be one of development, production, test, got %q", c.Environment)
	}
	if len(c.FrontendURLs) == 0 {
		return fmt.Errorf("FRONTEND_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.ParseBool(v)
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
