package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every externally supplied setting for the server and its clients.
type Config struct {
	Port           string
	Environment    string
	AllowedOrigins []string
	DBDriver       string
	DatabaseDSN    string
	RabbitMQURL    string
	LogLevel       string
	APIURL         string
	RequestTimeout time.Duration
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:contacthub.db?cache=shared")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_URL", "http://localhost:5000/api")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
}

// Load reads the configuration from environment variables and, when path is
// non-empty, from the given config file. Environment variables win.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:           strings.TrimPrefix(v.GetString("PORT"), ":"),
		Environment:    v.GetString("ENVIRONMENT"),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		APIURL:         v.GetString("API_URL"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that cannot fall back to anything sensible.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDriver != "memory" && c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for driver %s", c.DBDriver)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction reports whether the fixed CORS allow-list applies.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ListenAddr is the address handed to fiber.App.Listen.
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
