// Package config provides configuration management for the directory build
// tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingCSVPath        = errors.New("data.csv_path is required")
	ErrInvalidThreshold      = errors.New("search.match_threshold must be greater than 0 and at most 1")
	ErrInvalidMaxSuggestions = errors.New("search.max_suggestions must be at least 1")
	ErrInvalidGeoTimeout     = errors.New("geolocation.timeout_sec must be at least 1")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete directory build configuration.
type Config struct {
	Data        DataConfig    `yaml:"data"`
	Search      SearchConfig  `yaml:"search"`
	Geolocation GeoConfig     `yaml:"geolocation"`
	Logging     LoggingConfig `yaml:"logging"`
}

// DataConfig locates the source CSV and the exported dataset.
type DataConfig struct {
	CSVPath     string `yaml:"csv_path"`
	OutputPath  string `yaml:"output_path"`
	PrettyPrint bool   `yaml:"pretty_print"`
}

// SearchConfig tunes the fuzzy index.
type SearchConfig struct {
	// MatchThreshold is on a 0 (exact) to 1 (no match) scale; entries score
	// at or below the threshold to match.
	MatchThreshold float64 `yaml:"match_threshold"`
	MaxSuggestions int     `yaml:"max_suggestions"`
}

// GeoConfig configures the IP geolocation endpoint used by the store finder.
type GeoConfig struct {
	ProviderURL string `yaml:"provider_url"`
	TimeoutSec  int    `yaml:"timeout_sec"`
}

// Timeout returns the location request timeout.
func (g *GeoConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSec) * time.Second
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			CSVPath:     "data/bookstores.csv",
			OutputPath:  "public/data/stores.json",
			PrettyPrint: true,
		},
		Search: SearchConfig{
			MatchThreshold: 0.3,
			MaxSuggestions: 5,
		},
		Geolocation: GeoConfig{
			ProviderURL: "https://ipapi.co/json/",
			TimeoutSec:  5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file, then applies .env and
// environment overrides. An empty path yields the defaults (still subject to
// overrides).
func LoadConfig(filepath string) (*Config, error) {
	// Missing .env is fine; system env vars still apply.
	_ = godotenv.Load()

	cfg := Default()

	if filepath != "" {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides lets deployment environments override file values.
func (c *Config) applyEnvOverrides() {
	c.Data.CSVPath = getEnv("BOOKSTOREDIR_CSV_PATH", c.Data.CSVPath)
	c.Data.OutputPath = getEnv("BOOKSTOREDIR_OUTPUT_PATH", c.Data.OutputPath)
	c.Geolocation.ProviderURL = getEnv("BOOKSTOREDIR_GEO_URL", c.Geolocation.ProviderURL)
	c.Geolocation.TimeoutSec = getEnvInt("BOOKSTOREDIR_GEO_TIMEOUT_SEC", c.Geolocation.TimeoutSec)
	c.Logging.Level = getEnv("BOOKSTOREDIR_LOG_LEVEL", c.Logging.Level)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.CSVPath == "" {
		return ErrMissingCSVPath
	}

	if c.Search.MatchThreshold <= 0 || c.Search.MatchThreshold > 1 {
		return ErrInvalidThreshold
	}

	if c.Search.MaxSuggestions < 1 {
		return ErrInvalidMaxSuggestions
	}

	if c.Geolocation.TimeoutSec < 1 {
		return ErrInvalidGeoTimeout
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{CSV: %s, Output: %s, Threshold: %.2f}",
		c.Data.CSVPath,
		c.Data.OutputPath,
		c.Search.MatchThreshold,
	)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return fallback
}
