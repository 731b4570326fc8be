package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"bikeshare/internal/logger"
)

// GCSSource reads objects from a Google Cloud Storage bucket
type GCSSource struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSSource creates a new GCS client using application default credentials
func NewGCSSource(ctx context.Context, bucketName string) (*GCSSource, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSSource{
		client: client,
		bucket: bucketName,
		log:    logger.Component("storage").With(logger.Fields{"bucket": bucketName}),
	}, nil
}

// Close closes the GCS client
func (g *GCSSource) Close() error {
	return g.client.Close()
}

// Describe returns the bucket URL
func (g *GCSSource) Describe() string {
	return "gs://" + g.bucket
}

// Open streams an object
func (g *GCSSource) Open(ctx context.Context, filePath string) (io.ReadCloser, error) {
	reader, err := g.client.Bucket(g.bucket).Object(filePath).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("gs://%s/%s: %w", g.bucket, filePath, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for gs://%s/%s: %w", g.bucket, filePath, err)
	}
	g.log.Debug("opened object", logger.Fields{"object": filePath, "size": reader.Attrs.Size})
	return reader, nil
}

// FileExists checks object attributes
func (g *GCSSource) FileExists(ctx context.Context, filePath string) (bool, error) {
	_, err := g.client.Bucket(g.bucket).Object(filePath).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat gs://%s/%s: %w", g.bucket, filePath, err)
	}
	return true, nil
}

// List lists object names under prefix
func (g *GCSSource) List(ctx context.Context, prefix string) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list gs://%s/%s: %w", g.bucket, prefix, err)
		}
		names = append(names, attrs.Name)
	}

	sort.Strings(names)
	return names, nil
}
