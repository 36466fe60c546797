// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"

	// legacyEnvPrefix is accepted for deployments that still export SECRET_* names.
	legacyEnvPrefix = "SECRET_"

	DefaultEndpoint    = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryPeriod = 600 * time.Second
	DefaultTimeout     = 30 * time.Second
)

// ErrMissingCredentials is returned when any of the required secrets is absent.
var ErrMissingCredentials = errors.New("required credentials are missing")

type RuntimeConfig struct {
	Dev bool
}

// Credentials are read from the environment only, never from the YAML file.
type Credentials struct {
	PracticumToken string `yaml:"-"`
	TelegramToken  string `yaml:"-"`
	TelegramChatID string `yaml:"-"`
}

type PracticumConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

type BotConfig struct {
	Mode string `yaml:"mode"` // telegram | noop
}

type PollConfig struct {
	RetryPeriod   time.Duration `yaml:"retry_period"`
	AdvanceCursor bool          `yaml:"advance_cursor"`
}

type LogConfig struct {
	Level      string `yaml:"level"`  // trace|debug|info|warn|error
	Format     string `yaml:"format"` // json|console
	File       string `yaml:"file"`   // empty disables the file sink
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type AdminConfig struct {
	Port int `yaml:"port"` // 0 disables /healthz and /metrics
}

type Config struct {
	Practicum PracticumConfig `yaml:"practicum"`
	Bot       BotConfig       `yaml:"bot"`
	Poll      PollConfig      `yaml:"poll"`
	Log       LogConfig       `yaml:"log"`
	Admin     AdminConfig     `yaml:"admin"`

	Credentials Credentials   `yaml:"-"`
	Runtime     RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the optional YAML file at path, applies defaults and pulls the
// credentials from the environment. A missing file is not an error.
// Credentials are not validated here; call Validate before doing any work.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	cfg.Credentials = Credentials{
		PracticumToken: lookupSecret(EnvPracticumToken),
		TelegramToken:  lookupSecret(EnvTelegramToken),
		TelegramChatID: lookupSecret(EnvTelegramChatID),
	}
	cfg.Runtime.Dev = dev
	if dev && cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "noop"
	}
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "telegram"
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Practicum.Endpoint) == "" {
		c.Practicum.Endpoint = DefaultEndpoint
	}
	if c.Practicum.Timeout <= 0 {
		c.Practicum.Timeout = DefaultTimeout
	}
	if c.Poll.RetryPeriod <= 0 {
		c.Poll.RetryPeriod = DefaultRetryPeriod
	}
	if c.Log.Level == "" {
		c.Log.Level = "debug"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.File == "" {
		c.Log.File = "program.log"
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays <= 0 {
		c.Log.MaxAgeDays = 28
	}
}

// MissingCredentials lists the env names of absent or blank secrets.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if strings.TrimSpace(c.Credentials.PracticumToken) == "" {
		missing = append(missing, EnvPracticumToken)
	}
	if strings.TrimSpace(c.Credentials.TelegramToken) == "" {
		missing = append(missing, EnvTelegramToken)
	}
	if strings.TrimSpace(c.Credentials.TelegramChatID) == "" {
		missing = append(missing, EnvTelegramChatID)
	}
	return missing
}

// Validate fails with ErrMissingCredentials when any secret is absent.
func (c *Config) Validate() error {
	if missing := c.MissingCredentials(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	if c.Bot.Mode != "telegram" && c.Bot.Mode != "noop" {
		return fmt.Errorf("bot.mode must be telegram or noop, got %q", c.Bot.Mode)
	}
	return nil
}

func lookupSecret(name string) string {
	if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(legacyEnvPrefix + name); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
