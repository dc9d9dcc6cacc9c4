// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/jsonstore/storage"
)

// FileSystem implements storage.FileSystem on top of BadgerDB.
// Directories are marker keys; files are keyed by their cleaned path and hold
// a serialized storage.FileEntry.
type FileSystem struct {
	backend *Backend
	now     func() time.Time
}

var _ storage.FileSystem = (*FileSystem)(nil)

// NewFileSystem creates a FileSystem backed by an open Backend.
func NewFileSystem(backend *Backend) (*FileSystem, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &FileSystem{
		backend: backend,
		now:     time.Now,
	}, nil
}

// DirExists reports whether a directory marker exists for path.
func (f *FileSystem) DirExists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var exists bool
	err := f.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		exists, err = hasKey(tx, makeDirKey(p))
		return err
	}, false)
	return exists, err
}

// CreateDir writes directory markers for path and all of its ancestors.
func (f *FileSystem) CreateDir(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.backend.WithTx(func(tx *badger.Txn) error {
		for _, dir := range parentDirs(p) {
			isFile, err := hasKey(tx, makeFileKey(dir))
			if err != nil {
				return err
			}
			if isFile {
				return fmt.Errorf("%w: %s", storage.ErrNotDirectory, dir)
			}
			if err := tx.Set(makeDirKey(dir), nil); err != nil {
				return err
			}
		}
		return nil
	}, true)
}

// ListFiles iterates all file keys beneath root and matches their base names.
func (f *FileSystem) ListFiles(ctx context.Context, root, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var files []string
	err := f.backend.WithTx(func(tx *badger.Txn) error {
		exists, err := hasKey(tx, makeDirKey(root))
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, root)
		}

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeFilePrefix(root)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Keys come back in lexicographic order
		for iter.Rewind(); iter.Valid(); iter.Next() {
			p := filePathFromKey(iter.Item().Key())
			ok, err := doublestar.Match(pattern, path.Base(p))
			if err != nil {
				return err
			}
			if ok {
				files = append(files, p)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ReadFile returns the content stored for path.
func (f *FileSystem) ReadFile(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var entry *storage.FileEntry
	err := f.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeFileKey(p))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", storage.ErrNotFound, p)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			entry, unmarshalErr = storage.UnmarshalFileEntry(val)
			return unmarshalErr
		})
	}, false)
	if err != nil {
		return "", err
	}
	return entry.Content, nil
}

// WriteFile stores content for path. The parent directory must exist.
func (f *FileSystem) WriteFile(ctx context.Context, p, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.backend.WithTx(func(tx *badger.Txn) error {
		parent := path.Dir(cleanPath(p))
		exists, err := hasKey(tx, makeDirKey(parent))
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, parent)
		}
		isDir, err := hasKey(tx, makeDirKey(p))
		if err != nil {
			return err
		}
		if isDir {
			return fmt.Errorf("%s is a directory", p)
		}

		entry := &storage.FileEntry{Content: content, ModifiedAt: f.now().UTC()}
		return tx.Set(makeFileKey(p), storage.MarshalFileEntry(entry))
	}, true)
}

// hasKey reports whether key exists in the transaction's view.
func hasKey(tx *badger.Txn, key []byte) (bool, error) {
	_, err := tx.Get(key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return false, err
}
