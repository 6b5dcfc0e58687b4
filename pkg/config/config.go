// Package config loads nofodiff settings from an optional YAML file and
// NOFODIFF_* environment variables.
//
// Precedence, lowest first: built-in defaults, the config file, the
// environment. Command-line flags are applied by the CLI on top.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/nofodiff/pkg/compare"
	"github.com/coolbeans/nofodiff/pkg/filter"
	"github.com/coolbeans/nofodiff/pkg/report"
)

// Environment variables read by Load.
const (
	EnvConfig   = "NOFODIFF_CONFIG"
	EnvFormat   = "NOFODIFF_FORMAT"
	EnvColor    = "NOFODIFF_COLOR"
	EnvWidth    = "NOFODIFF_WIDTH"
	EnvStatuses = "NOFODIFF_STATUSES"
	EnvWhere    = "NOFODIFF_WHERE"
	EnvLogLevel = "NOFODIFF_LOG_LEVEL"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings of a comparison run.
type Config struct {
	// MetadataFields is the ordered allow-list of metadata attributes.
	MetadataFields []compare.MetadataField `yaml:"metadata_fields"`

	// Statuses limits reported rows to these statuses. Empty keeps all.
	Statuses []string `yaml:"statuses"`

	// Where is an optional row filter expression.
	Where string `yaml:"where"`

	// Format is the report format: text, json, html or side-by-side.
	Format string `yaml:"format"`

	// Color is auto, always or never.
	Color string `yaml:"color"`

	// Width is the side-by-side report width in columns.
	Width int `yaml:"width"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MetadataFields: compare.DefaultMetadataFields(),
		Format:         string(report.FormatText),
		Color:          ColorAuto,
		Width:          report.DefaultWidth,
		LogLevel:       "info",
	}
}

// Load reads the config file at path, if any, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Format = getenv(EnvFormat, c.Format)
	c.Color = getenv(EnvColor, c.Color)
	c.Where = getenv(EnvWhere, c.Where)
	c.LogLevel = getenv(EnvLogLevel, c.LogLevel)

	if statuses := os.Getenv(EnvStatuses); statuses != "" {
		c.Statuses = strings.Split(statuses, ",")
	}

	if width := os.Getenv(EnvWidth); width != "" {
		parsed, err := strconv.Atoi(width)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWidth, width, err)
		}
		c.Width = parsed
	}

	return nil
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if len(c.MetadataFields) == 0 {
		errs = append(errs, errors.New("metadata_fields: at least one field is required"))
	}
	seen := make(map[string]bool)
	for i, field := range c.MetadataFields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			errs = append(errs, fmt.Errorf("metadata_fields %d: key is required", i))
			continue
		}
		if seen[key] {
			errs = append(errs, fmt.Errorf("metadata_fields %d: duplicate key %q", i, key))
		}
		seen[key] = true
	}

	if _, err := filter.ParseStatuses(c.Statuses); err != nil {
		errs = append(errs, fmt.Errorf("statuses: %w", err))
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		errs = append(errs, fmt.Errorf("format: %w", err))
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("color: expected auto, always or never, got %q", c.Color))
	}
	if c.Width < 0 {
		errs = append(errs, fmt.Errorf("width: must not be negative, got %d", c.Width))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	return errors.Join(errs...)
}

// Filter compiles the configured statuses and expression.
func (c *Config) Filter() (*filter.Filter, error) {
	statuses, err := filter.ParseStatuses(c.Statuses)
	if err != nil {
		return nil, err
	}
	return filter.New(statuses, c.Where)
}

// ReportFormat returns the configured report format.
func (c *Config) ReportFormat() (report.Format, error) {
	return report.ParseFormat(c.Format)
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// UseColor resolves the color mode. In auto mode color is used only when
// output is a terminal.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}
