package storage

import (
	"context"
	"fmt"

	"bikeshare/internal/config"
)

// NewSource creates the storage source configured by DATA_SOURCE
func NewSource(ctx context.Context, cfg *config.Config) (Source, error) {
	switch cfg.DataSource {
	case config.DataSourceLocal, "":
		localClient, err := NewLocalSource(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local source: %w", err)
		}
		return localClient, nil

	case config.DataSourceGCS:
		gcsClient, err := NewGCSSource(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS source: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported data source: %s", cfg.DataSource)
	}
}
