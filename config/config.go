// Package config loads the bot's YAML configuration with environment
// variable overrides for everything deployments usually inject.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	notifyservice "github.com/shepherdjay/gwg-bot/app/modules/notify/application"
	"github.com/shepherdjay/gwg-bot/internal/schedule"
	"github.com/shepherdjay/gwg-bot/internal/sheets"
	"github.com/shepherdjay/gwg-bot/internal/social"
)

// Config holds the full configuration.
type Config struct {
	Postgres PostgresConfig       `yaml:"postgres"`
	NATS     NATSConfig           `yaml:"nats"`
	Redis    RedisConfig          `yaml:"redis"`
	Sheets   sheets.Config        `yaml:"sheets"`
	Schedule schedule.Config      `yaml:"schedule"`
	Social   social.Config        `yaml:"social"`
	Notify   notifyservice.Config `yaml:"notify"`
	App      AppConfig            `yaml:"app"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds the schedule cache connection.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AppConfig holds process-level settings.
type AppConfig struct {
	// HTTPAddress serves health, metrics and the leaderboard endpoints.
	HTTPAddress string `yaml:"http_address"`
	// PollInterval is how often the poller checks for scorable rounds and
	// game days.
	PollInterval time.Duration `yaml:"poll_interval"`
	// Timezone is the contest's local timezone, used for cutoffs and
	// schedule lookups.
	Timezone string `yaml:"timezone"`
	// Awards maps normalized player identifiers to the annotation shown in
	// the standings award column (previous season winners).
	Awards map[string]string `yaml:"awards"`
}

// UnmarshalYAML accepts poll_interval in Go duration syntax ("30m").
func (a *AppConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		HTTPAddress  string            `yaml:"http_address"`
		PollInterval string            `yaml:"poll_interval"`
		Timezone     string            `yaml:"timezone"`
		Awards       map[string]string `yaml:"awards"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	a.HTTPAddress = raw.HTTPAddress
	a.Timezone = raw.Timezone
	a.Awards = raw.Awards
	if raw.PollInterval != "" {
		d, err := time.ParseDuration(raw.PollInterval)
		if err != nil {
			return fmt.Errorf("parse poll_interval: %w", err)
		}
		a.PollInterval = d
	}
	return nil
}

// LoadConfig reads the YAML file and applies environment overrides. A
// missing file is fine when the environment provides everything.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	case os.IsNotExist(err):
		// Environment-only configuration.
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.App.HTTPAddress = v
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		cfg.App.Timezone = v
	}
	if v := os.Getenv("SHEETS_SPREADSHEET_ID"); v != "" {
		cfg.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("SHEETS_CREDENTIALS_FILE"); v != "" {
		cfg.Sheets.CredentialsFile = v
	}
	if v := os.Getenv("SOCIAL_CLIENT_ID"); v != "" {
		cfg.Social.ClientID = v
	}
	if v := os.Getenv("SOCIAL_CLIENT_SECRET"); v != "" {
		cfg.Social.ClientSecret = v
	}
	if v := os.Getenv("SOCIAL_USERNAME"); v != "" {
		cfg.Social.Username = v
	}
	if v := os.Getenv("SOCIAL_PASSWORD"); v != "" {
		cfg.Social.Password = v
	}
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.App.PollInterval = d
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.HTTPAddress == "" {
		cfg.App.HTTPAddress = ":8080"
	}
	if cfg.App.PollInterval <= 0 {
		cfg.App.PollInterval = time.Hour
	}
	if cfg.App.Timezone == "" {
		cfg.App.Timezone = "America/Winnipeg"
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}
