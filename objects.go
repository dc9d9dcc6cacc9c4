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

	"github.com/poiesic/jsonstore/codec"
	"github.com/poiesic/jsonstore/core"
)

// ItemFor serializes value into a new item of typeName. The id is sanitized
// into a file name the same way core.NewItem does.
func ItemFor(value any, id, typeName string) (*core.Item, error) {
	item, err := core.NewItem(typeName, id, "")
	if err != nil {
		return nil, err
	}
	content, err := codec.Serialize(value)
	if err != nil {
		return nil, err
	}
	item.Content = content
	return item, nil
}

// Insert serializes value and inserts it into typeFolder under id,
// replacing any item stored under the same id.
func Insert[T any](ctx context.Context, m *Manager, typeFolder, id string, value T) error {
	item, err := ItemFor(value, id, typeFolder)
	if err != nil {
		return err
	}
	return m.InsertOne(ctx, typeFolder, item)
}

// LoadObjects decodes every item of typeFolder into a T. Items come from the
// cache when it is enabled for typeFolder.
func LoadObjects[T any](ctx context.Context, m *Manager, typeFolder string) ([]T, error) {
	items, err := m.Items(ctx, typeFolder)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		v, err := codec.Deserialize[T](item.Content)
		if err != nil {
			return nil, fmt.Errorf("%s %s (%s): %w", opDecode, typeFolder, item.FileName, err)
		}
		out = append(out, v)
	}
	return out, nil
}
