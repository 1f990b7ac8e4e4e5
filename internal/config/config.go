// Package config loads the dashboard configuration from YAML or JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "BIOMON_CONFIG"

type Config struct {
	LogLevel  string          `json:"log_level" yaml:"log_level"`
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard"`
	Alerts    AlertsConfig    `json:"alerts" yaml:"alerts"`
	API       APIConfig       `json:"api" yaml:"api"`
	Storage   StorageConfig   `json:"storage" yaml:"storage"`
	Kafka     KafkaConfig     `json:"kafka" yaml:"kafka"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
}

type DashboardConfig struct {
	RefreshInterval time.Duration `json:"refresh_interval" yaml:"refresh_interval"`
	ClockInterval   time.Duration `json:"clock_interval" yaml:"clock_interval"`
	Timezone        string        `json:"timezone" yaml:"timezone"`
	Seed            uint64        `json:"seed" yaml:"seed"`
}

// UnmarshalJSON accepts intervals as duration strings ("3s") or as
// integer milliseconds.
func (c *DashboardConfig) UnmarshalJSON(data []byte) error {
	type plain DashboardConfig
	aux := struct {
		*plain
		RefreshInterval json.RawMessage `json:"refresh_interval"`
		ClockInterval   json.RawMessage `json:"clock_interval"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if err := decodeJSONDuration(aux.RefreshInterval, &c.RefreshInterval); err != nil {
		return fmt.Errorf("dashboard.refresh_interval: %w", err)
	}
	if err := decodeJSONDuration(aux.ClockInterval, &c.ClockInterval); err != nil {
		return fmt.Errorf("dashboard.clock_interval: %w", err)
	}
	return nil
}

type AlertsConfig struct {
	Dwell        time.Duration `json:"dwell" yaml:"dwell"`
	MaxActive    int           `json:"max_active" yaml:"max_active"`
	HistoryLimit int           `json:"history_limit" yaml:"history_limit"`
}

// UnmarshalJSON accepts dwell as a duration string or integer milliseconds.
func (c *AlertsConfig) UnmarshalJSON(data []byte) error {
	type plain AlertsConfig
	aux := struct {
		*plain
		Dwell json.RawMessage `json:"dwell"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if err := decodeJSONDuration(aux.Dwell, &c.Dwell); err != nil {
		return fmt.Errorf("alerts.dwell: %w", err)
	}
	return nil
}

// decodeJSONDuration leaves dst untouched when raw is absent or null.
func decodeJSONDuration(raw json.RawMessage, dst *time.Duration) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*dst = d
		return nil
	}
	var ms int64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return fmt.Errorf("want a duration string or integer milliseconds: %w", err)
	}
	*dst = time.Duration(ms) * time.Millisecond
	return nil
}

type APIConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr" yaml:"addr"`
}

type StorageConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Driver  string `json:"driver" yaml:"driver"`
	DSN     string `json:"dsn" yaml:"dsn"`
}

type KafkaConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
}

type MetricsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Dashboard: DashboardConfig{
			RefreshInterval: 3 * time.Second,
			ClockInterval:   30 * time.Second,
			Timezone:        "Local",
		},
		Alerts: AlertsConfig{
			Dwell:        5 * time.Second,
			MaxActive:    3,
			HistoryLimit: 100,
		},
		API:     APIConfig{Enabled: true, Addr: ":8090"},
		Storage: StorageConfig{Enabled: false, Driver: "sqlite", DSN: ":memory:"},
		Kafka:   KafkaConfig{Enabled: false, Topic: "biomon.alerts"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads path, falling back to defaults for missing fields.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

// Parse decodes a YAML or JSON document over the defaults.
func Parse(content []byte) (*Config, error) {
	cfg := DefaultConfig()

	trimmed := strings.TrimSpace(string(content))
	if len(trimmed) == 0 {
		return nil, errors.New("config file is empty")
	}
	var decodeErr error
	if looksLikeJSON(trimmed) {
		decodeErr = json.Unmarshal([]byte(trimmed), cfg)
	} else {
		decodeErr = yaml.Unmarshal([]byte(trimmed), cfg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode config: %w", decodeErr)
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv loads the file named by BIOMON_CONFIG, or returns defaults when
// the variable is unset.
func FromEnv() (*Config, error) {
	path := strings.TrimSpace(os.Getenv(EnvPath))
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Location resolves the dashboard timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Dashboard.Timezone {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	return time.LoadLocation(c.Dashboard.Timezone)
}

func looksLikeJSON(s string) bool {
	for _, ch := range s {
		if ch == '{' || ch == '[' {
			return true
		}
		if ch > ' ' {
			return false
		}
	}
	return false
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Dashboard.RefreshInterval <= 0 {
		cfg.Dashboard.RefreshInterval = def.Dashboard.RefreshInterval
	}
	if cfg.Dashboard.ClockInterval <= 0 {
		cfg.Dashboard.ClockInterval = def.Dashboard.ClockInterval
	}
	if cfg.Dashboard.Timezone == "" {
		cfg.Dashboard.Timezone = def.Dashboard.Timezone
	}
	if cfg.Alerts.Dwell <= 0 {
		cfg.Alerts.Dwell = def.Alerts.Dwell
	}
	if cfg.Alerts.MaxActive <= 0 {
		cfg.Alerts.MaxActive = def.Alerts.MaxActive
	}
	if cfg.Alerts.HistoryLimit <= 0 {
		cfg.Alerts.HistoryLimit = def.Alerts.HistoryLimit
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = def.Storage.Driver
	}
	if cfg.Storage.DSN == "" && strings.EqualFold(cfg.Storage.Driver, "sqlite") {
		cfg.Storage.DSN = def.Storage.DSN
	}
}

func Validate(cfg *Config) error {
	intervals := []struct {
		name string
		d    time.Duration
	}{
		{"dashboard.refresh_interval", cfg.Dashboard.RefreshInterval},
		{"dashboard.clock_interval", cfg.Dashboard.ClockInterval},
		{"alerts.dwell", cfg.Alerts.Dwell},
	}
	for _, iv := range intervals {
		if iv.d < time.Millisecond {
			return fmt.Errorf("%s must be at least 1ms, got %s", iv.name, iv.d)
		}
	}
	if cfg.API.Enabled && cfg.API.Addr == "" {
		return errors.New("api.addr required when api.enabled is true")
	}
	if cfg.Kafka.Enabled && (len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "") {
		return errors.New("kafka requires brokers and topic when enabled")
	}
	if cfg.Storage.Enabled {
		switch strings.ToLower(cfg.Storage.Driver) {
		case "sqlite", "postgres", "postgresql":
		default:
			return fmt.Errorf("storage.driver %q is not supported", cfg.Storage.Driver)
		}
	}
	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("dashboard.timezone: %w", err)
	}
	return nil
}
