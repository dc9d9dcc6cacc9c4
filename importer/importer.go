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


package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/jsonstore/collection"
	"github.com/poiesic/jsonstore/core"
)

const (
	// DefaultBatchSize is the default number of items merged per save
	DefaultBatchSize = 500
)

// Store merges items into a type folder. *jsonstore.Manager implements it.
type Store interface {
	InsertMany(ctx context.Context, typeFolder string, items []*core.Item, policy collection.Policy) (*collection.Plan, error)
}

// Config holds configuration for an import.
type Config struct {
	// BatchSize is the number of items merged and saved at a time
	BatchSize int

	// ReportInterval is how often to report progress (number of items)
	ReportInterval int

	// Policy decides what happens to items already in the folder
	Policy collection.Policy

	// IDPath is the gjson path of each element's identifier.
	// Empty means identities are content hashes.
	IDPath string
}

// DefaultConfig returns a Config that skips existing items and hashes
// content for identities.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: DefaultBatchSize,
		Policy:         collection.SkipExisting,
	}
}

// Result summarizes an import.
type Result struct {
	Total       int // Elements in the source document
	Added       int
	Overwritten int
	Skipped     int
	Duplicates  int // Elements dropped because an earlier element had the same identity
	Batches     int
}

// Importer loads JSON array documents into a store.
type Importer struct {
	store    Store
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewImporter creates a new importer.
// progress: where to write progress output (typically os.Stderr); nil discards it
func NewImporter(store Store, config *Config, progress io.Writer, logger *slog.Logger) (*Importer, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		store:    store,
		config:   config,
		progress: progress,
		logger:   logger,
	}, nil
}

// Run imports every element of doc into typeFolder.
//
// Duplicates within doc are dropped before anything is written, first
// occurrence wins. Batches are merged one after another; when one fails the
// earlier batches stay written and Run returns the partial Result together
// with the error.
func (im *Importer) Run(ctx context.Context, typeFolder, doc string) (*Result, error) {
	items, err := Parse(doc, typeFolder, im.config.IDPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	result := &Result{Total: len(items)}
	items, result.Duplicates = dedup(items)

	if len(items) == 0 {
		fmt.Fprintf(im.progress, "No items found in source (0 items)\n")
		return result, nil
	}

	batchSize := im.config.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	reportInterval := im.config.ReportInterval
	if reportInterval <= 0 {
		reportInterval = batchSize
	}

	fmt.Fprintf(im.progress, "Starting import of %d items into %s (batch size: %d, policy: %s)\n",
		len(items), typeFolder, batchSize, im.config.Policy)

	tracker := NewProgressTracker(im.progress, len(items), reportInterval)
	tracker.Start()

	processed := 0
	err = forEachBatch(items, batchSize, func(batch []*core.Item) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		plan, err := im.store.InsertMany(ctx, typeFolder, batch, im.config.Policy)
		if err != nil {
			return fmt.Errorf("failed to import batch %d: %w", result.Batches+1, err)
		}

		result.Batches++
		result.Added += plan.Added
		result.Overwritten += plan.Overwritten
		result.Skipped += plan.Skipped

		processed += len(batch)
		tracker.RecordBatch(len(batch), plan)
		return nil
	})
	if err != nil {
		im.logger.Error("import failed", "type", typeFolder, "imported", processed, "err", err)
		return result, err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(im.progress, "Import complete. Added %d, overwritten %d, skipped %d, duplicates %d in %v\n",
		result.Added, result.Overwritten, result.Skipped, result.Duplicates, elapsed.Round(time.Millisecond))

	im.logger.Info("import complete",
		"type", typeFolder,
		"total", result.Total,
		"added", result.Added,
		"overwritten", result.Overwritten,
		"skipped", result.Skipped,
		"duplicates", result.Duplicates,
	)
	return result, nil
}
