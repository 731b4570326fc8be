package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// DataSource names where the rental CSV files are read from
type DataSource string

const (
	DataSourceLocal DataSource = "local"
	DataSourceGCS   DataSource = "gcs"
)

// Config holds all configuration for the bike sharing dashboard
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8501"`

	// Dataset location
	DataSource DataSource `env:"DATA_SOURCE,default=local"`
	DataDir    string     `env:"DATA_DIR,default=."`
	GCSBucket  string     `env:"GCS_BUCKET"`
	DayCSV     string     `env:"DAY_CSV,default=day.csv"`
	HourCSV    string     `env:"HOUR_CSV,default=hour.csv"`

	// Presentation
	HighlightBands    bool   `env:"HIGHLIGHT_BANDS,default=true"`
	HighlightsFile    string `env:"HIGHLIGHTS_FILE"`
	InteractiveTrends bool   `env:"INTERACTIVE_TRENDS,default=false"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express
func (c *Config) Validate() error {
	switch c.DataSource {
	case DataSourceLocal:
	case DataSourceGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when DATA_SOURCE=%s", DataSourceGCS)
		}
	default:
		return fmt.Errorf("unsupported DATA_SOURCE %q", c.DataSource)
	}
	if c.DayCSV == "" || c.HourCSV == "" {
		return fmt.Errorf("DAY_CSV and HOUR_CSV must not be empty")
	}
	return nil
}
