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


package collection

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/jsonstore/core"
	"github.com/poiesic/jsonstore/storage"
)

// filePattern selects the files that belong to a collection.
const filePattern = "*" + core.JSONExt

// Loader reads the JSON files of a type folder into items.
type Loader struct {
	fs      storage.FileSystem
	pool    *ants.Pool // nil when files are read sequentially
	readers int
	logger  *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader) error

// WithReadConcurrency sets how many files are read at the same time.
// Values above 1 read on a worker pool; Load still returns only once every
// file is read. Default is 1.
func WithReadConcurrency(n int) LoaderOption {
	return func(l *Loader) error {
		if n < 1 {
			n = 1
		}

		// Release old pool
		if l.pool != nil {
			l.pool.Release()
			l.pool = nil
		}

		l.readers = n
		if n == 1 {
			return nil
		}

		pool, err := ants.NewPool(n)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithLoaderLogger sets a custom logger.
// Default is slog.Default().
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a Loader reading through fs.
func NewLoader(fs storage.FileSystem, opts ...LoaderOption) (*Loader, error) {
	if fs == nil {
		return nil, ErrFileSystemRequired
	}

	l := &Loader{
		fs:      fs,
		readers: 1,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Release()
			return nil, err
		}
	}
	return l, nil
}

// Release frees the worker pool, if any.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
		l.pool = nil
	}
}

// Load reads every *.json file beneath root/typeFolder, recursively.
//
// The folder is created when missing. Items come back in enumeration order.
// Each item's FileName and Path are the file's base name, so subfolder
// structure is flattened; Depth records how many subfolders were dropped.
// Handles are regenerated on every call.
// The first file that cannot be read fails the whole load.
func (l *Loader) Load(ctx context.Context, root, typeFolder string) ([]*core.Item, error) {
	if err := core.ValidateLocation(root, typeFolder); err != nil {
		return nil, err
	}

	dir := filepath.Join(root, typeFolder)
	if err := ensureDir(ctx, l.fs, dir); err != nil {
		return nil, storage.NewStorageError(opLoad, typeFolder, "", err)
	}

	paths, err := l.fs.ListFiles(ctx, dir, filePattern)
	if err != nil {
		return nil, storage.NewStorageError(opLoad, typeFolder, "", err)
	}

	contents, err := l.readAll(ctx, typeFolder, paths)
	if err != nil {
		return nil, err
	}

	items := make([]*core.Item, len(paths))
	for i, p := range paths {
		name := baseName(p)
		items[i] = &core.Item{
			Handle:   core.NewHandle(name),
			TypeName: typeFolder,
			Path:     name,
			FileName: name,
			Content:  contents[i],
			Depth:    depth(dir, p),
		}
	}

	l.logger.Debug("loaded collection", "type", typeFolder, "count", len(items))
	return items, nil
}

// readAll returns the content of every path, in order.
func (l *Loader) readAll(ctx context.Context, typeFolder string, paths []string) ([]string, error) {
	contents := make([]string, len(paths))

	if l.pool == nil {
		for i, p := range paths {
			content, err := l.fs.ReadFile(ctx, p)
			if err != nil {
				return nil, storage.NewStorageError(opLoad, typeFolder, baseName(p), err)
			}
			contents[i] = content
		}
		return contents, nil
	}

	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		err := l.pool.Submit(func() {
			defer wg.Done()
			contents[i], errs[i] = l.fs.ReadFile(ctx, p)
		})
		if err != nil {
			wg.Done()
			errs[i] = err
			break
		}
	}
	wg.Wait()

	// Report the lowest-index failure so results match a sequential read
	for i, err := range errs {
		if err != nil {
			return nil, storage.NewStorageError(opLoad, typeFolder, baseName(paths[i]), err)
		}
	}
	return contents, nil
}

// ensureDir creates dir when it does not exist.
func ensureDir(ctx context.Context, fs storage.FileSystem, dir string) error {
	exists, err := fs.DirExists(ctx, dir)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return fs.CreateDir(ctx, dir)
}

// depth returns the number of folders between dir and the file p.
func depth(dir, p string) int {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/")
}

// baseName returns the last element of p for either separator style.
func baseName(p string) string {
	return path.Base(filepath.ToSlash(p))
}
