package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rpggio/staffplan/internal/planning"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. STAFFPLAN_DB_PATH.
const EnvPrefix = "STAFFPLAN"

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Planning  PlanningConfig  `yaml:"planning"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// LogConfig.Path, when set, sends logs to a size-capped file instead of the
// console.
type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// TransportConfig selects how the MCP server is exposed: "stdio" or "http".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TracingConfig.Output is "", "stdout", "stderr" or a file path. Empty
// disables span export.
type TracingConfig struct {
	Output string `yaml:"output"`
}

type PlanningConfig struct {
	WeekStart        string `yaml:"week_start" split_words:"true"`
	OverlapThreshold int    `yaml:"overlap_threshold" split_words:"true"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "staffplan.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Auth: AuthConfig{
			Enabled: true,
		},
		Planning: PlanningConfig{
			WeekStart:        "monday",
			OverlapThreshold: planning.FullCapacity,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvPrefix + "_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	var errs []error
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		errs = append(errs, fmt.Errorf("invalid transport mode %q", c.Transport.Mode))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port %d", c.Server.Port))
	}
	if _, err := planning.ParseWeekday(c.Planning.WeekStart); err != nil {
		errs = append(errs, fmt.Errorf("invalid planning week start: %w", err))
	}
	if c.Planning.OverlapThreshold < 0 {
		errs = append(errs, fmt.Errorf("invalid overlap threshold %d", c.Planning.OverlapThreshold))
	}
	return errors.Join(errs...)
}

// WeekStart returns the configured first day of a workload week.
func (c Config) WeekStart() time.Weekday {
	d, err := planning.ParseWeekday(c.Planning.WeekStart)
	if err != nil {
		return time.Monday
	}
	return d
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
