package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalSource reads files below a base directory
type LocalSource struct {
	baseDir string
}

// NewLocalSource creates a source rooted at baseDir, which must exist
func NewLocalSource(baseDir string) (*LocalSource, error) {
	if baseDir == "" {
		baseDir = "."
	}
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("data directory %s: %w", baseDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory %s is not a directory", baseDir)
	}

	return &LocalSource{baseDir: baseDir}, nil
}

// Close is a no-op for local storage
func (l *LocalSource) Close() error {
	return nil
}

// Describe returns the base directory
func (l *LocalSource) Describe() string {
	return l.baseDir
}

// resolve joins filePath onto the base directory, refusing paths that escape it
func (l *LocalSource) resolve(filePath string) (string, error) {
	if filepath.IsAbs(filePath) {
		return "", fmt.Errorf("invalid path %s: must be relative to %s", filePath, l.baseDir)
	}
	clean := filepath.Clean(filePath)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid path %s: escapes %s", filePath, l.baseDir)
	}
	return filepath.Join(l.baseDir, clean), nil
}

// Open opens a file for reading
func (l *LocalSource) Open(ctx context.Context, filePath string) (io.ReadCloser, error) {
	fullPath, err := l.resolve(filePath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to open %s: %w", fullPath, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fullPath, err)
	}
	return f, nil
}

// FileExists checks if a regular file exists
func (l *LocalSource) FileExists(ctx context.Context, filePath string) (bool, error) {
	fullPath, err := l.resolve(filePath)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", fullPath, err)
	}
	return !info.IsDir(), nil
}

// List walks the base directory and returns slash-separated relative file
// paths that start with prefix
func (l *LocalSource) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(l.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(l.baseDir, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", l.baseDir, err)
	}

	sort.Strings(paths)
	return paths, nil
}
