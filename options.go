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


package jsonstore

import (
	"log/slog"
	"time"

	"github.com/poiesic/jsonstore/storage"
	"github.com/poiesic/jsonstore/storage/badger"
)

// Option configures a Manager.
type Option func(*Manager) error

// WithItemType sets the type folder served by the read cache.
func WithItemType(itemType string) Option {
	return func(m *Manager) error {
		m.itemType = itemType
		return nil
	}
}

// WithFileSystem sets the storage the Manager reads and writes through.
// Default is the local OS file system.
func WithFileSystem(fs storage.FileSystem) Option {
	return func(m *Manager) error {
		if fs == nil {
			return ErrFileSystemRequired
		}
		m.fs = fs
		return nil
	}
}

// WithBadger stores files in a BadgerDB database at path instead of on the
// local disk. With inMemory set, path is ignored and nothing is persisted.
// The Manager owns the database and closes it in Close.
func WithBadger(path string, inMemory bool) Option {
	return func(m *Manager) error {
		backend, err := badger.OpenBackend(path, inMemory)
		if err != nil {
			return err
		}
		fs, err := badger.NewFileSystem(backend)
		if err != nil {
			backend.Close()
			return err
		}
		if m.backend != nil {
			m.backend.Close()
		}
		m.backend = backend
		m.fs = fs
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithReadConcurrency sets how many files a load reads at the same time.
// Default is 1.
func WithReadConcurrency(n int) Option {
	return func(m *Manager) error {
		if n < 1 {
			n = 1
		}
		m.readers = n
		return nil
	}
}

// WithClock sets the time source for the cache's last-loaded timestamp.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) error {
		if now == nil {
			now = time.Now
		}
		m.now = now
		return nil
	}
}
