package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the requested object does not exist
var ErrNotFound = errors.New("object not found")

// Source is a read-only store the rental tables are loaded from
type Source interface {
	// Close closes the storage client
	Close() error

	// Open streams the object at the given path
	Open(ctx context.Context, filePath string) (io.ReadCloser, error)

	// FileExists checks if an object exists at the given path
	FileExists(ctx context.Context, filePath string) (bool, error)

	// List returns object paths under prefix, sorted
	List(ctx context.Context, prefix string) ([]string, error)

	// Describe names the source for logs, e.g. "gs://bucket" or a directory
	Describe() string
}
