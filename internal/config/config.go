// Package config loads the monitor's on-disk YAML configuration tree
// and applies defaults for anything left unset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/n0zvei/zveimonitor/internal/zvei"
)

// Config is the top-level on-disk configuration schema for
// cmd/zvei-monitor.
type Config struct {
	SDR        SDRConfig        `yaml:"sdr"`
	Decoder    zvei.Config      `yaml:"decoder"`
	Logging    LoggingConfig    `yaml:"logging"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	WebSocket  WebSocketConfig  `yaml:"websocket"`
	Prometheus PrometheusConfig `yaml:"prometheus"`
	Health     HealthConfig     `yaml:"health"`
}

// SDRConfig selects and parameterizes the IQ source.
type SDRConfig struct {
	Source       string  `yaml:"source"` // "synthetic" or "file"
	FilePath     string  `yaml:"file_path"`
	SampleFormat string  `yaml:"sample_format"` // "int16" or "float32"
	CenterFreqHz float64 `yaml:"center_freq_hz"`
	Gain         float64 `yaml:"gain"`
	Channel      string  `yaml:"channel"` // label attached to every Detection/metric
}

// LoggingConfig controls the on-disk detection logs.
type LoggingConfig struct {
	Format     string `yaml:"format"` // "json", "csv", "text", or "" to disable
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxAgeDays int    `yaml:"max_age_days"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

// MQTTConfig enables and configures the MQTT detection publisher.
type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
	QoS      byte   `yaml:"qos"`
	Retain   bool   `yaml:"retain"`
	TLS      struct {
		Enabled    bool   `yaml:"enabled"`
		CACert     string `yaml:"ca_cert"`
		ClientCert string `yaml:"client_cert"`
		ClientKey  string `yaml:"client_key"`
	} `yaml:"tls"`
}

// WebSocketConfig enables the live detection broadcast endpoint.
type WebSocketConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
	Path    string `yaml:"path"`
}

// PrometheusConfig enables the /metrics endpoint.
type PrometheusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
	Path    string `yaml:"path"`
}

// HealthConfig enables the /healthz endpoint.
type HealthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
	Path    string `yaml:"path"`
}

// Default returns the reference configuration: a synthetic source, text
// logging to stdout, and every optional network endpoint disabled.
func Default() Config {
	return Config{
		SDR: SDRConfig{
			Source:       "synthetic",
			SampleFormat: "int16",
			Channel:      "ch0",
		},
		Decoder: zvei.DefaultConfig(),
		Logging: LoggingConfig{
			Format: "text",
		},
		WebSocket: WebSocketConfig{
			Listen: ":8088",
			Path:   "/ws",
		},
		Prometheus: PrometheusConfig{
			Listen: ":9090",
			Path:   "/metrics",
		},
		Health: HealthConfig{
			Listen: ":8089",
			Path:   "/healthz",
		},
	}
}

// Load reads and parses the YAML configuration at path, starting from
// Default() so any field the file omits keeps its reference value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Decoder.Validate(); err != nil {
		return cfg, fmt.Errorf("config: decoder section: %w", err)
	}
	if cfg.SDR.Source != "synthetic" && cfg.SDR.Source != "file" {
		return cfg, fmt.Errorf("config: sdr.source must be \"synthetic\" or \"file\", got %q", cfg.SDR.Source)
	}
	if cfg.SDR.Source == "file" && cfg.SDR.FilePath == "" {
		return cfg, fmt.Errorf("config: sdr.file_path is required when sdr.source is \"file\"")
	}

	return cfg, nil
}
