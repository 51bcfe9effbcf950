package core

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Defaults used when neither the config file, the environment nor flags set
// a value. Heights are in rows for the terminal host.
const (
	DefaultTotalItems          = 1000
	DefaultEstimatedItemHeight = 3
	DefaultOverscanCount       = 5
	DefaultMaxContentLines     = 10
	DefaultFrameInterval       = 16 * time.Millisecond
)

// Config holds the application configuration. TotalItems,
// EstimatedItemHeight and OverscanCount are fixed once an engine is built.
type Config struct {
	TotalItems          int           `yaml:"totalItems"`
	EstimatedItemHeight int           `yaml:"estimatedItemHeight"`
	OverscanCount       int           `yaml:"overscanCount"`
	MaxContentLines     int           `yaml:"maxContentLines"`
	Seed                int64         `yaml:"seed"`
	FrameInterval       time.Duration `yaml:"frameInterval"`
	LogLevel            string        `yaml:"logLevel"`
	LogFile             string        `yaml:"logFile"`
}

// DefaultConfig returns a config with every default applied.
func DefaultConfig() *Config {
	return &Config{
		TotalItems:          DefaultTotalItems,
		EstimatedItemHeight: DefaultEstimatedItemHeight,
		OverscanCount:       DefaultOverscanCount,
		MaxContentLines:     DefaultMaxContentLines,
		Seed:                1,
		FrameInterval:       DefaultFrameInterval,
		LogLevel:            "info",
	}
}

// LoadConfig loads the defaults, then the YAML file at path if one is given,
// then VSCROLL_* environment variables. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := config.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.mergeEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) mergeFile(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("failed to expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", expanded, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", expanded, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	ints := []struct {
		name   string
		target *int
	}{
		{"VSCROLL_TOTAL_ITEMS", &c.TotalItems},
		{"VSCROLL_ESTIMATED_ITEM_HEIGHT", &c.EstimatedItemHeight},
		{"VSCROLL_OVERSCAN_COUNT", &c.OverscanCount},
		{"VSCROLL_MAX_CONTENT_LINES", &c.MaxContentLines},
	}
	for _, v := range ints {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", v.name, err)
		}
		*v.target = n
	}

	if level := os.Getenv("VSCROLL_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if file := os.Getenv("VSCROLL_LOG_FILE"); file != "" {
		c.LogFile = file
	}
	return nil
}

// Normalize clamps out-of-range values in place and describes each change.
func (c *Config) Normalize() []string {
	var changes []string

	if c.TotalItems < 0 {
		changes = append(changes, fmt.Sprintf("totalItems %d clamped to 0", c.TotalItems))
		c.TotalItems = 0
	}
	if c.EstimatedItemHeight <= 0 {
		changes = append(changes, fmt.Sprintf("estimatedItemHeight %d replaced by %d", c.EstimatedItemHeight, DefaultEstimatedItemHeight))
		c.EstimatedItemHeight = DefaultEstimatedItemHeight
	}
	if c.OverscanCount < 0 {
		changes = append(changes, fmt.Sprintf("overscanCount %d clamped to 0", c.OverscanCount))
		c.OverscanCount = 0
	}
	if c.MaxContentLines < 0 {
		changes = append(changes, fmt.Sprintf("maxContentLines %d clamped to 0", c.MaxContentLines))
		c.MaxContentLines = 0
	}
	if c.FrameInterval <= 0 {
		changes = append(changes, fmt.Sprintf("frameInterval %s replaced by %s", c.FrameInterval, DefaultFrameInterval))
		c.FrameInterval = DefaultFrameInterval
	}
	return changes
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
