package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

// DatabaseConfig is the submission archive. Empty URL disables persistence.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// EventsConfig is the NATS connection for submission events. Empty URL
// disables publishing.
type EventsConfig struct {
	URL string `yaml:"url"`
}

// WebhookConfig is the outbound POST fired when a submission completes.
type WebhookConfig struct {
	URL       string `yaml:"url"`
	Enabled   bool   `yaml:"enabled"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// CatalogConfig points at an alternate question catalog. Empty path uses the
// embedded default.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

type ScoringConfig struct {
	NeutralCategoryScore int `yaml:"neutral_category_score"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) WebhookTimeout() time.Duration {
	return time.Duration(c.Webhook.TimeoutMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Webhook: WebhookConfig{
			TimeoutMs: 5000,
		},
		Scoring: ScoringConfig{
			NeutralCategoryScore: 50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ASSESS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("ASSESS_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("ASSESS_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("ASSESS_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("ASSESS_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("ASSESS_WEBHOOK_URL"); v != "" {
		cfg.Webhook.URL = v
		cfg.Webhook.Enabled = true
	}
	if v := os.Getenv("ASSESS_WEBHOOK_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Webhook.Enabled = b
		}
	}
	if v := os.Getenv("ASSESS_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("ASSESS_NEUTRAL_SCORE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.NeutralCategoryScore = n
		}
	}
	if v := os.Getenv("ASSESS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ASSESS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
