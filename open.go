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
	"github.com/poiesic/jsonstore/config"
)

// Open creates a Manager from cfg. Options in opts are applied after the
// ones derived from cfg.
func Open(cfg *config.Config, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := []Option{
		WithItemType(cfg.ItemType),
		WithReadConcurrency(cfg.ReadConcurrency),
	}
	if cfg.Store == config.StoreBadger {
		base = append(base, WithBadger(cfg.BadgerPath, false))
	}

	return NewManager(cfg.Root, append(base, opts...)...)
}
