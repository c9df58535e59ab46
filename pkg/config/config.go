// Package config loads and validates the client's static configuration:
// logging, telemetry, metrics, and the §6.4 connection-level toggles
// (generation, auto-closing, dispatch interval) plus client identity.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the client library's static configuration.
//
// Configuration sources, in order of precedence:
//  1. Environment variables (SIMCONNECT_*)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
type Config struct {
	// Client identifies this connection to the host.
	Client ClientConfig `mapstructure:"client" yaml:"client"`

	// Generation selects the facility-data token generation: "legacy" or
	// "current" (MSFS 2024-era fields). See §6.4.
	Generation string `mapstructure:"generation" validate:"required,oneof=legacy current" yaml:"generation"`

	// AutoClosing closes the connection automatically when the host
	// signals shutdown (quit), rather than leaving it to the caller.
	AutoClosing bool `mapstructure:"auto_closing" yaml:"auto_closing"`

	// DispatchInterval is how often CallDispatch polls the host when the
	// caller drives dispatch on a timer instead of an OS event/message.
	DispatchInterval time.Duration `mapstructure:"dispatch_interval" validate:"required,gt=0" yaml:"dispatch_interval"`

	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing.
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// Metrics contains Prometheus metrics server configuration.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Repository configures the SimObject repository's persistence file.
	Repository RepositoryConfig `mapstructure:"repository" yaml:"repository"`
}

// ClientConfig identifies the connection to the host.
type ClientConfig struct {
	// Name is the client name passed to the host's open primitive.
	Name string `mapstructure:"name" validate:"required" yaml:"name"`

	// ConfigIndex selects the host's SimConnect.cfg connection section.
	ConfigIndex uint32 `mapstructure:"config_index" yaml:"config_index"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive).
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format: text or json.
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written: stdout, stderr, or a file path.
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing. Unlike a
// server, this library does not own an exporter: callers construct and
// pass their own sdktrace.SpanExporter to telemetry.Init, this struct
// only toggles whether that happens and at what sampling rate.
type TelemetryConfig struct {
	// Enabled controls whether distributed tracing is enabled.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// ServiceName identifies this client in exported spans.
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`

	// SampleRate controls the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`
}

// MetricsConfig configures the Prometheus metrics HTTP server. When
// Enabled is false, no metrics are collected (zero overhead).
type MetricsConfig struct {
	// Enabled controls whether metrics collection and the HTTP server
	// are active.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is the HTTP port for the /metrics and /healthz endpoints.
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// RepositoryConfig configures the SimObject repository.
type RepositoryConfig struct {
	// Path is the directory holding the repository's persistence file.
	Path string `mapstructure:"path" yaml:"path"`

	// Watch enables fsnotify-based auto-reload of the persistence file.
	Watch bool `mapstructure:"watch" yaml:"watch"`
}

// Load loads configuration from file, environment, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}
	if !found {
		cfg := DefaultConfig()
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("default configuration failed validation: %w", err)
		}
		return cfg, nil
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg, viper.DecodeHook(durationDecodeHook())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate runs struct-tag validation over cfg.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

// SaveConfig writes cfg to path in YAML format, respecting yaml tags.
func SaveConfig(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("SIMCONNECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// durationDecodeHook converts strings to time.Duration, so config files
// can write "30s"/"5m" instead of raw nanosecond integers.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "simconnect")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "simconnect")
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string { return getConfigDir() }
