package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
scraper:
  enabled_sources: ["betexplorer"]
  timeout: 10s
  match_limit: 40
builder:
  target_min: 3.0
  target_max: 4.0
  stake: 500
email:
  smtp_host: smtp.example.com
  smtp_port: 465
  user: bot@example.com
  recipient: me@example.com
health:
  port: 8080
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Builder.LegsMin != 3 || cfg.Builder.LegsMax != 4 {
		t.Errorf("legs defaults = %d/%d, want 3/4", cfg.Builder.LegsMin, cfg.Builder.LegsMax)
	}
	if cfg.Scraper.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.Scraper.Timeout)
	}
	if cfg.Storage.JSONLogPath != "accumulator_log.json" {
		t.Errorf("json log path default = %q", cfg.Storage.JSONLogPath)
	}
	if cfg.Builder.Stake != 500 {
		t.Errorf("stake = %v, want 500", cfg.Builder.Stake)
	}
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("SMTP_PASS", "hunter2")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("STAKE", "250")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Email.Password != "hunter2" {
		t.Errorf("SMTP_PASS not applied, got %q", cfg.Email.Password)
	}
	if cfg.Telegram.ChatID != 12345 {
		t.Errorf("TELEGRAM_CHAT_ID not applied, got %d", cfg.Telegram.ChatID)
	}
	if cfg.Builder.Stake != 250 {
		t.Errorf("STAKE not applied, got %v", cfg.Builder.Stake)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
