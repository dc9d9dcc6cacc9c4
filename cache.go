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
	"time"

	"github.com/poiesic/jsonstore/core"
)

// EnableCache loads the configured item type into the cache and serves
// reads of that type from it until DisableCache.
// Without an item type it fails with core.ErrInvalidArgument.
func (m *Manager) EnableCache(ctx context.Context) error {
	if m.itemType == "" {
		return fmt.Errorf("%w: %w", core.ErrInvalidArgument, ErrItemTypeRequired)
	}

	items, err := m.loader.Load(ctx, m.root, m.itemType)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheOn = true
	m.setSnapshot(m.itemType, items)
	m.logger.Debug("cache enabled", "type", m.itemType, "count", len(items))
	return nil
}

// DisableCache drops the snapshot. Later reads go to storage.
func (m *Manager) DisableCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheOn = false
	m.cacheFolder = ""
	m.cached = nil
}

// FlushCache reloads the snapshot from typeFolder, or from the configured
// item type when typeFolder is empty, and updates the last-loaded time.
// It reloads whether or not the cache is enabled and leaves that state as
// it is.
func (m *Manager) FlushCache(ctx context.Context, typeFolder string) error {
	if typeFolder == "" {
		typeFolder = m.itemType
	}
	if typeFolder == "" {
		return fmt.Errorf("%w: %w", core.ErrInvalidArgument, core.ErrEmptyTypeFolder)
	}

	items, err := m.loader.Load(ctx, m.root, typeFolder)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.setSnapshot(typeFolder, items)
	return nil
}

// CacheEnabled reports whether reads are served from the cache.
func (m *Manager) CacheEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cacheOn
}

// CachedItems returns a copy of the snapshot, empty when nothing is cached.
func (m *Manager) CachedItems() []*core.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneItems(m.cached)
}

// CacheLastLoaded returns when the snapshot was last loaded, or the zero
// time if it never was.
func (m *Manager) CacheLastLoaded() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastLoaded
}

// cachedFor returns the snapshot when the cache is enabled for typeFolder.
func (m *Manager) cachedFor(typeFolder string) ([]*core.Item, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.cacheOn || m.cacheFolder != typeFolder {
		return nil, false
	}
	return cloneItems(m.cached), true
}

// setSnapshot must be called with mu held.
func (m *Manager) setSnapshot(typeFolder string, items []*core.Item) {
	m.cacheFolder = typeFolder
	m.cached = items
	m.lastLoaded = m.now()
}

func cloneItems(items []*core.Item) []*core.Item {
	out := make([]*core.Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
