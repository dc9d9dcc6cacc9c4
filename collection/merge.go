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
	"fmt"
	"strings"

	"github.com/poiesic/jsonstore/core"
)

// Policy decides what happens when an incoming item has the same dedup key
// as an item already on disk.
type Policy int

const (
	// SkipExisting keeps the on-disk item and drops the incoming one.
	SkipExisting Policy = iota
	// OverwriteExisting replaces the on-disk item with the incoming one.
	OverwriteExisting
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case SkipExisting:
		return "skip"
	case OverwriteExisting:
		return "overwrite"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a policy name ("skip" or "overwrite") to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip", "skip-existing":
		return SkipExisting, nil
	case "overwrite", "overwrite-existing":
		return OverwriteExisting, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// Plan is the outcome of a merge: the save set and how it was reached.
type Plan struct {
	Policy Policy
	// Items is the save set. Paths are normalized and dedup keys are unique.
	Items []*core.Item

	Added       int // Incoming items with no on-disk counterpart
	Overwritten int // Incoming items that replace an on-disk item
	Skipped     int // Incoming items dropped because the on-disk item wins
	Duplicates  int // Items dropped because an earlier item had the same key
	Carried     int // On-disk items kept unchanged
}

// Merge combines the on-disk collection with incoming items under policy.
//
// Within the incoming batch the first occurrence of a key wins. Among on-disk
// items sharing a key (nested files flattened by the loader) the shallowest
// one wins, so a file living directly in the type folder is never replaced
// by a nested namesake; ties go to the first in order. Every loser counts as
// a Duplicate. Under SkipExisting the save set is the
// on-disk items followed by the new ones. Under OverwriteExisting it is the
// incoming items followed by the on-disk items they do not replace.
//
// Items in the plan are copies with normalized paths; the inputs are not
// modified. Content is never inspected.
func Merge(existing, incoming []*core.Item, policy Policy) *Plan {
	plan := &Plan{
		Policy: policy,
		Items:  make([]*core.Item, 0, len(existing)+len(incoming)),
	}

	existing, dropped := shallowest(existing)
	plan.Duplicates = dropped

	switch policy {
	case OverwriteExisting:
		mergeOverwrite(plan, existing, incoming)
	default:
		mergeSkip(plan, existing, incoming)
	}
	return plan
}

// shallowest keeps one on-disk item per key, the one with the lowest Depth,
// at its original position. It returns the kept items and how many were
// dropped.
func shallowest(existing []*core.Item) ([]*core.Item, int) {
	winner := make(map[string]int, len(existing))
	for i, item := range existing {
		key := item.Key()
		if w, ok := winner[key]; !ok || item.Depth < existing[w].Depth {
			winner[key] = i
		}
	}
	if len(winner) == len(existing) {
		return existing, 0
	}

	kept := make([]*core.Item, 0, len(winner))
	for i, item := range existing {
		if winner[item.Key()] == i {
			kept = append(kept, item)
		}
	}
	return kept, len(existing) - len(kept)
}

func mergeSkip(plan *Plan, existing, incoming []*core.Item) {
	onDisk := make(map[string]bool, len(existing))
	staged := make(map[string]bool, len(existing)+len(incoming))

	for _, item := range existing {
		key := item.Key()
		staged[key] = true
		onDisk[key] = true
		plan.Items = append(plan.Items, normalized(item))
		plan.Carried++
	}

	for _, item := range incoming {
		key := item.Key()
		if staged[key] {
			if onDisk[key] {
				plan.Skipped++
			} else {
				plan.Duplicates++
			}
			continue
		}
		staged[key] = true
		plan.Items = append(plan.Items, normalized(item))
		plan.Added++
	}
}

func mergeOverwrite(plan *Plan, existing, incoming []*core.Item) {
	fromBatch := make(map[string]bool, len(incoming))

	for _, item := range incoming {
		key := item.Key()
		if fromBatch[key] {
			plan.Duplicates++
			continue
		}
		fromBatch[key] = true
		plan.Items = append(plan.Items, normalized(item))
	}

	for _, item := range existing {
		if fromBatch[item.Key()] {
			plan.Overwritten++
			continue
		}
		plan.Items = append(plan.Items, normalized(item))
		plan.Carried++
	}

	plan.Added = len(fromBatch) - plan.Overwritten
}

// normalized returns a copy of item whose Path ends in a single .json.
func normalized(item *core.Item) *core.Item {
	c := item.Clone()
	c.Path = core.NormalizePath(c.Path)
	return c
}
