// Package osfs implements storage.FileSystem on the local operating system.
package osfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/poiesic/jsonstore/storage"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileSystem is the local disk backend.
type FileSystem struct{}

var _ storage.FileSystem = (*FileSystem)(nil)

// New returns a local disk FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// DirExists reports whether path exists and is a directory.
func (f *FileSystem) DirExists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// CreateDir creates path and any missing parents.
func (f *FileSystem) CreateDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return fmt.Errorf("%w: %s", storage.ErrNotDirectory, path)
	}
	return os.MkdirAll(path, dirPerm)
}

// ListFiles walks root and returns the regular files whose base name matches pattern.
func (f *FileSystem) ListFiles(ctx context.Context, root, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ok, err := doublestar.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, root)
		}
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile returns the content of the file at path.
func (f *FileSystem) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return "", err
	}
	return string(data), nil
}

// WriteFile truncates or creates the file at path and writes content.
func (f *FileSystem) WriteFile(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), filePerm)
}
