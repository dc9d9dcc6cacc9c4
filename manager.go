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
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/jsonstore/collection"
	"github.com/poiesic/jsonstore/core"
	"github.com/poiesic/jsonstore/storage"
	"github.com/poiesic/jsonstore/storage/badger"
	"github.com/poiesic/jsonstore/storage/osfs"
)

// Manager stores items as JSON files beneath a root folder and keeps an
// optional read cache of one type folder.
type Manager struct {
	root     string
	itemType string
	fs       storage.FileSystem
	backend  *badger.Backend // owned; nil unless WithBadger was used
	loader   *collection.Loader
	writer   *collection.Writer
	readers  int
	now      func() time.Time
	logger   *slog.Logger

	// Read cache
	mu          sync.RWMutex
	cacheOn     bool
	cacheFolder string
	cached      []*core.Item
	lastLoaded  time.Time
}

// NewManager creates a Manager rooted at root. The cache starts disabled.
func NewManager(root string, opts ...Option) (*Manager, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidArgument, core.ErrEmptyRoot)
	}

	m := &Manager{
		root:    root,
		readers: 1,
		now:     time.Now,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			m.Close()
			return nil, err
		}
	}

	if m.fs == nil {
		m.fs = osfs.New()
	}

	loader, err := collection.NewLoader(m.fs,
		collection.WithReadConcurrency(m.readers),
		collection.WithLoaderLogger(m.logger),
	)
	if err != nil {
		m.Close()
		return nil, err
	}
	m.loader = loader

	writer, err := collection.NewWriter(m.fs, m.logger)
	if err != nil {
		m.Close()
		return nil, err
	}
	m.writer = writer

	return m, nil
}

// Close releases the loader's workers and closes an owned BadgerDB database.
func (m *Manager) Close() error {
	if m.loader != nil {
		m.loader.Release()
	}
	if m.backend != nil {
		if err := m.backend.Close(); err != nil {
			m.logger.Error("error closing backend storage", "err", err)
			return err
		}
		m.backend = nil
	}
	return nil
}

// Root returns the root folder.
func (m *Manager) Root() string {
	return m.root
}

// ItemType returns the type folder served by the read cache.
func (m *Manager) ItemType() string {
	return m.itemType
}

// Load reads every item of typeFolder from storage. The cache is not used.
func (m *Manager) Load(ctx context.Context, typeFolder string) ([]*core.Item, error) {
	return m.loader.Load(ctx, m.root, typeFolder)
}

// Save writes items into typeFolder as they are, without merging.
// See collection.Writer.Save for the partial failure behavior.
func (m *Manager) Save(ctx context.Context, typeFolder string, items []*core.Item) error {
	return m.writer.Save(ctx, m.root, typeFolder, typeFolder, items)
}

// InsertOne adds item to typeFolder, replacing an item with the same path.
// Failures are returned as a *storage.StorageError naming the type folder
// and the item.
func (m *Manager) InsertOne(ctx context.Context, typeFolder string, item *core.Item) error {
	if err := core.ValidateLocation(m.root, typeFolder); err != nil {
		return err
	}
	if err := core.ValidateItem(item); err != nil {
		return err
	}

	if _, err := m.insert(ctx, typeFolder, []*core.Item{item}, collection.OverwriteExisting); err != nil {
		return storage.NewStorageError(opInsert, typeFolder, item.Key(), err)
	}
	return nil
}

// InsertMany merges items into typeFolder under policy and saves the result.
//
// The collection is always reloaded from storage, never from the cache.
// When the cache is enabled it is disabled for the duration of the insert
// and re-enabled afterwards, which reloads it. Failures are returned as one
// *storage.StorageError naming the type folder; the cause stays reachable
// with errors.Is and errors.As.
func (m *Manager) InsertMany(ctx context.Context, typeFolder string, items []*core.Item, policy collection.Policy) (*collection.Plan, error) {
	if err := core.ValidateLocation(m.root, typeFolder); err != nil {
		return nil, err
	}
	if err := core.ValidateItems(items); err != nil {
		return nil, err
	}

	plan, err := m.insert(ctx, typeFolder, items, policy)
	if err != nil {
		return nil, storage.NewStorageError(opInsert, typeFolder, "", err)
	}
	return plan, nil
}

func (m *Manager) insert(ctx context.Context, typeFolder string, items []*core.Item, policy collection.Policy) (plan *collection.Plan, err error) {
	wasEnabled := m.CacheEnabled()
	if wasEnabled {
		m.DisableCache()
		defer func() {
			// Restore even when ctx is done so a failed insert leaves the
			// cache in its prior state.
			rerr := m.EnableCache(context.WithoutCancel(ctx))
			if rerr == nil {
				return
			}
			m.logger.Error("failed to restore cache", "type", m.itemType, "err", rerr)
			if err == nil {
				plan = nil
				err = storage.NewStorageError(opRestoreCache, m.itemType, "", rerr)
			}
		}()
	}

	existing, err := m.loader.Load(ctx, m.root, typeFolder)
	if err != nil {
		return nil, err
	}

	plan = collection.Merge(existing, items, policy)
	if err := m.writer.Save(ctx, m.root, typeFolder, typeFolder, plan.Items); err != nil {
		return nil, err
	}

	m.logger.Debug("inserted items",
		"type", typeFolder,
		"policy", policy.String(),
		"added", plan.Added,
		"overwritten", plan.Overwritten,
		"skipped", plan.Skipped,
		"duplicates", plan.Duplicates,
	)
	return plan, nil
}

// Items returns every item of typeFolder. It serves the cache snapshot when
// the cache is enabled for typeFolder, and reads storage otherwise.
func (m *Manager) Items(ctx context.Context, typeFolder string) ([]*core.Item, error) {
	if err := core.ValidateLocation(m.root, typeFolder); err != nil {
		return nil, err
	}
	if items, ok := m.cachedFor(typeFolder); ok {
		return items, nil
	}
	return m.loader.Load(ctx, m.root, typeFolder)
}

// Get returns the item of typeFolder whose file name, without .json, matches
// id after the same sanitizing core.NewItem applies. A missing item yields a
// *storage.StorageError wrapping storage.ErrNotFound.
func (m *Manager) Get(ctx context.Context, typeFolder, id string) (*core.Item, error) {
	name := core.FileNameFromID(id)
	if name == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidArgument, core.ErrEmptyID)
	}

	items, err := m.Items(ctx, typeFolder)
	if err != nil {
		return nil, err
	}

	// Prefer the file that lives directly in the type folder over nested
	// namesakes flattened by the loader
	var found *core.Item
	key := core.DedupKey(name)
	for _, item := range items {
		if item.Key() == key && (found == nil || item.Depth < found.Depth) {
			found = item
		}
	}
	if found != nil {
		return found, nil
	}
	return nil, storage.NewStorageError(opGet, typeFolder, id, storage.ErrNotFound)
}
