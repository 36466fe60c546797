package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearSecrets(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvPracticumToken, EnvTelegramToken, EnvTelegramChatID} {
		t.Setenv(name, "")
		t.Setenv(legacyEnvPrefix+name, "")
	}
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	clearSecrets(t)
	t.Setenv(EnvPracticumToken, "p")
	t.Setenv(EnvTelegramToken, "t")
	t.Setenv(EnvTelegramChatID, "42")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Practicum.Endpoint != DefaultEndpoint {
		t.Fatalf("endpoint = %q", cfg.Practicum.Endpoint)
	}
	if cfg.Poll.RetryPeriod != 600*time.Second {
		t.Fatalf("retry period = %s", cfg.Poll.RetryPeriod)
	}
	if cfg.Poll.AdvanceCursor {
		t.Fatalf("cursor must not advance by default")
	}
	if cfg.Bot.Mode != "telegram" {
		t.Fatalf("bot mode = %q", cfg.Bot.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadConfig_YAMLOverrides(t *testing.T) {
	clearSecrets(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
practicum:
  endpoint: http://localhost:8080/hw/
  timeout: 5s
poll:
  retry_period: 1m
  advance_cursor: true
log:
  level: info
  format: json
admin:
  port: 9090
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Practicum.Endpoint != "http://localhost:8080/hw/" || cfg.Practicum.Timeout != 5*time.Second {
		t.Fatalf("practicum = %+v", cfg.Practicum)
	}
	if cfg.Poll.RetryPeriod != time.Minute || !cfg.Poll.AdvanceCursor {
		t.Fatalf("poll = %+v", cfg.Poll)
	}
	if cfg.Admin.Port != 9090 || cfg.Log.Format != "json" {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	if cfg.Bot.Mode != "noop" {
		t.Fatalf("dev mode should default to noop bot, got %q", cfg.Bot.Mode)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("poll: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path, false); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidate_MissingEachCredential(t *testing.T) {
	all := map[string]string{
		EnvPracticumToken: "p",
		EnvTelegramToken:  "t",
		EnvTelegramChatID: "42",
	}
	for missing := range all {
		t.Run(missing, func(t *testing.T) {
			clearSecrets(t)
			for name, v := range all {
				if name != missing {
					t.Setenv(name, v)
				}
			}
			cfg, err := LoadConfig("", false)
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			err = cfg.Validate()
			if !errors.Is(err, ErrMissingCredentials) {
				t.Fatalf("expected ErrMissingCredentials, got %v", err)
			}
			if !strings.Contains(err.Error(), missing) {
				t.Fatalf("error %q should name %s", err, missing)
			}
		})
	}
}

func TestLoadConfig_LegacySecretNames(t *testing.T) {
	clearSecrets(t)
	t.Setenv("SECRET_PRACTICUM_TOKEN", "p")
	t.Setenv("SECRET_TELEGRAM_TOKEN", "t")
	t.Setenv("SECRET_TELEGRAM_CHAT_ID", "42")

	cfg, err := LoadConfig("", false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := cfg.MissingCredentials(); len(got) != 0 {
		t.Fatalf("expected no missing credentials, got %v", got)
	}
	if cfg.Credentials.TelegramChatID != "42" {
		t.Fatalf("chat id = %q", cfg.Credentials.TelegramChatID)
	}
}

func TestValidate_BlankIsMissing(t *testing.T) {
	cfg := &Config{Credentials: Credentials{PracticumToken: "  ", TelegramToken: "t", TelegramChatID: "1"}, Bot: BotConfig{Mode: "telegram"}}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("blank token should be missing, got %v", err)
	}
}
