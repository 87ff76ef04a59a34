// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Auth modes understood by the bearer-credential resolver.
const (
	AuthModeJWT     = "jwt"
	AuthModeSession = "session"
	AuthModeNone    = "none"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host           string        `envconfig:"APP_HOST" default:"0.0.0.0"`
	Port           string        `envconfig:"APP_PORT" default:"8080"`
	Env            string        `envconfig:"APP_ENV" default:"development"` // "development", "production", "testing"
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	// PostgreSQL connection
	DBHost            string        `envconfig:"POSTGRES_HOST" default:"localhost"`
	DBPort            string        `envconfig:"POSTGRES_PORT" default:"5432"`
	DBUser            string        `envconfig:"POSTGRES_USER" default:"engagecms"`
	DBPassword        string        `envconfig:"POSTGRES_PASSWORD" default:"changeme"`
	DBName            string        `envconfig:"POSTGRES_DB" default:"engagecms"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`

	// Category assigned to content created or updated without one.
	DefaultCategoryID int64 `envconfig:"DEFAULT_CATEGORY_ID" default:"1"`

	// Valkey (Redis-compatible cache and session store). Empty host disables it.
	ValkeyHost     string        `envconfig:"VALKEY_HOST" default:"localhost"`
	ValkeyPort     string        `envconfig:"VALKEY_PORT" default:"6379"`
	ValkeyPassword string        `envconfig:"VALKEY_PASSWORD"`
	QueryCacheTTL  time.Duration `envconfig:"QUERY_CACHE_TTL" default:"30s"`

	// Bearer credential resolution
	AuthMode  string `envconfig:"AUTH_MODE" default:"jwt"`
	JWTSecret string `envconfig:"JWT_SECRET"`

	// Kafka. No brokers means events are discarded and moderation is off.
	KafkaBrokers         []string `envconfig:"KAFKA_BROKERS"`
	KafkaEventsTopic     string   `envconfig:"KAFKA_TOPIC_EVENTS" default:"engagecms.events"`
	KafkaModerationTopic string   `envconfig:"KAFKA_TOPIC_MODERATION" default:"engagecms.comment-moderation"`
	KafkaGroupID         string   `envconfig:"KAFKA_GROUP_ID" default:"engagecms"`

	// Cron schedule for like counter reconciliation. Empty disables it.
	ReconcileSchedule string `envconfig:"RECONCILE_SCHEDULE" default:"@every 10m"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"debug"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogFile   string `envconfig:"LOG_FILE"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first when present. Returns an error if critical values are
// missing in production mode.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	cfg.AuthMode = strings.ToLower(strings.TrimSpace(cfg.AuthMode))
	switch cfg.AuthMode {
	case AuthModeJWT, AuthModeSession, AuthModeNone:
	default:
		return nil, fmt.Errorf("AUTH_MODE must be one of jwt, session, none (got %q)", cfg.AuthMode)
	}

	if cfg.DefaultCategoryID <= 0 {
		return nil, errors.New("DEFAULT_CATEGORY_ID must be positive")
	}

	if cfg.IsProd() {
		if cfg.DBPassword == "changeme" {
			return nil, errors.New("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.AuthMode == AuthModeJWT && cfg.JWTSecret == "" {
			return nil, errors.New("JWT_SECRET must be set in production when AUTH_MODE=jwt")
		}
	}

	return &cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address, or "" when Valkey is disabled.
func (c *Config) ValkeyAddr() string {
	if c.ValkeyHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProd returns true if the application is running in production mode.
func (c *Config) IsProd() bool {
	return c.Env == "production"
}
