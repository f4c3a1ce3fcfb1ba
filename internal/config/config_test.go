package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	envVars := []string{
		"ASSESS_PORT", "ASSESS_METRICS_PORT", "ASSESS_ADMIN_TOKEN",
		"ASSESS_DATABASE_URL", "ASSESS_EVENTS_URL", "ASSESS_WEBHOOK_URL",
		"ASSESS_WEBHOOK_ENABLED", "ASSESS_CATALOG_PATH", "ASSESS_NEUTRAL_SCORE",
		"ASSESS_LOG_LEVEL", "ASSESS_LOG_FORMAT",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Database.URL != "" {
		t.Errorf("expected persistence disabled by default, got %q", cfg.Database.URL)
	}
	if cfg.Events.URL != "" {
		t.Errorf("expected events disabled by default, got %q", cfg.Events.URL)
	}
	if cfg.Webhook.Enabled {
		t.Error("expected webhook disabled by default")
	}
	if cfg.WebhookTimeout() != 5*time.Second {
		t.Errorf("expected webhook timeout 5s, got %v", cfg.WebhookTimeout())
	}
	if cfg.Scoring.NeutralCategoryScore != 50 {
		t.Errorf("expected neutral score 50, got %d", cfg.Scoring.NeutralCategoryScore)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("expected info/json logging, got %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ASSESS_PORT", "9100")
	t.Setenv("ASSESS_METRICS_PORT", "9101")
	t.Setenv("ASSESS_ADMIN_TOKEN", "secret-token")
	t.Setenv("ASSESS_DATABASE_URL", "postgres://localhost/assess_test")
	t.Setenv("ASSESS_EVENTS_URL", "nats://nats:4222")
	t.Setenv("ASSESS_WEBHOOK_URL", "https://hooks.example.com/assess")
	t.Setenv("ASSESS_CATALOG_PATH", "/etc/assess/catalog.yaml")
	t.Setenv("ASSESS_NEUTRAL_SCORE", "40")
	t.Setenv("ASSESS_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token, got %q", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/assess_test" {
		t.Errorf("unexpected database URL %q", cfg.Database.URL)
	}
	if cfg.Events.URL != "nats://nats:4222" {
		t.Errorf("unexpected events URL %q", cfg.Events.URL)
	}
	if !cfg.Webhook.Enabled || cfg.Webhook.URL != "https://hooks.example.com/assess" {
		t.Errorf("setting a webhook URL should enable it, got %+v", cfg.Webhook)
	}
	if cfg.Catalog.Path != "/etc/assess/catalog.yaml" {
		t.Errorf("unexpected catalog path %q", cfg.Catalog.Path)
	}
	if cfg.Scoring.NeutralCategoryScore != 40 {
		t.Errorf("expected neutral score 40, got %d", cfg.Scoring.NeutralCategoryScore)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	for _, k := range []string{"ASSESS_PORT", "ASSESS_WEBHOOK_URL", "ASSESS_WEBHOOK_ENABLED"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: 9200
webhook:
  url: https://hooks.example.com/x
  enabled: true
  timeout_ms: 2500
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("expected file port 9200, got %d", cfg.Server.Port)
	}
	if !cfg.Webhook.Enabled || cfg.WebhookTimeout() != 2500*time.Millisecond {
		t.Errorf("expected webhook from file, got %+v", cfg.Webhook)
	}
	// File values keep defaults for untouched sections.
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port, got %d", cfg.Server.MetricsPort)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
