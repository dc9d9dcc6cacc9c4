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
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/poiesic/jsonstore/collection"
)

// ProgressTracker reports how far an import got, batch by batch, together
// with the merge outcome of the batches written so far.
type ProgressTracker struct {
	writer         io.Writer
	total          int
	reportInterval int
	startTime      time.Time
	started        bool
	mu             sync.Mutex

	imported     int
	lastReported int
	batches      int
	added        int
	overwritten  int
	skipped      int
}

// NewProgressTracker creates a tracker for total items that reports every
// reportInterval imported items. A nil writer discards the output.
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	if writer == nil {
		writer = io.Discard
	}
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start resets the counters and starts the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.imported = 0
	p.lastReported = 0
	p.batches = 0
	p.added = 0
	p.overwritten = 0
	p.skipped = 0
}

// RecordBatch accounts for one written batch of size items merged as plan.
func (p *ProgressTracker) RecordBatch(size int, plan *collection.Plan) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.batches++
	p.imported = min(p.imported+size, p.total)
	if plan != nil {
		p.added += plan.Added
		p.overwritten += plan.Overwritten
		p.skipped += plan.Skipped
	}

	if p.imported-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.imported
	}
}

// Finish prints the final line.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time since Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}
	return time.Since(p.startTime)
}

// report prints the current line. Must be called with lock held.
func (p *ProgressTracker) report() {
	rate := 0.0
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 {
		rate = float64(p.imported) / elapsed
	}

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.imported) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rBatch %d: %d/%d items (%.1f%%) added %d, overwritten %d, skipped %d - %.1f items/s",
		p.batches, p.imported, p.total, percentage, p.added, p.overwritten, p.skipped, rate)
}
