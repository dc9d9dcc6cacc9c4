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
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/poiesic/jsonstore/core"
	"github.com/poiesic/jsonstore/storage"
)

// Writer writes items to their files beneath a type folder.
type Writer struct {
	fs     storage.FileSystem
	logger *slog.Logger
}

// NewWriter creates a Writer writing through fs.
// A nil logger falls back to slog.Default().
func NewWriter(fs storage.FileSystem, logger *slog.Logger) (*Writer, error) {
	if fs == nil {
		return nil, ErrFileSystemRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{fs: fs, logger: logger}, nil
}

// Save writes each item's Content to root/typeFolder/Path, with leading
// separators stripped from Path and a .json suffix ensured.
//
// The type folder is created when missing, as is the parent folder of a
// nested Path. Every argument is validated before the first write.
//
// Writes are independent: when item N fails, Save returns a StorageError
// naming that item and items 0..N-1 remain on disk.
func (w *Writer) Save(ctx context.Context, root, typeFolder, typeName string, items []*core.Item) error {
	if err := core.ValidateLocation(root, typeFolder); err != nil {
		return err
	}
	if typeName == "" {
		return fmt.Errorf("%w: %w", core.ErrInvalidArgument, core.ErrEmptyTypeName)
	}
	if err := core.ValidateItems(items); err != nil {
		return err
	}

	dir := filepath.Join(root, typeFolder)
	targets := make([]string, len(items))
	for i, item := range items {
		rel, err := core.TargetPath(item.Path)
		if err != nil {
			return err
		}
		targets[i] = filepath.Join(dir, filepath.FromSlash(rel))
	}

	if err := ensureDir(ctx, w.fs, dir); err != nil {
		return storage.NewStorageError(opSave, typeName, "", err)
	}

	for i, item := range items {
		target := targets[i]
		if parent := filepath.Dir(target); parent != dir {
			if err := ensureDir(ctx, w.fs, parent); err != nil {
				return storage.NewStorageError(opSave, typeName, displayName(item), err)
			}
		}
		if err := w.fs.WriteFile(ctx, target, item.Content); err != nil {
			w.logger.Error("failed to save item", "type", typeName, "item", displayName(item), "written", i, "err", err)
			return storage.NewStorageError(opSave, typeName, displayName(item), err)
		}
	}

	w.logger.Debug("saved collection", "type", typeName, "count", len(items))
	return nil
}

// displayName identifies an item in errors and logs.
func displayName(item *core.Item) string {
	if item.FileName != "" {
		return item.FileName
	}
	return item.Path
}
