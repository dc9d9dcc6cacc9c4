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


package core

import (
	"fmt"
	"path"
	"strings"
)

// ValidateLocation validates the root folder and type folder of an operation.
func ValidateLocation(root, typeFolder string) error {
	if root == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, ErrEmptyRoot)
	}
	if typeFolder == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, ErrEmptyTypeFolder)
	}
	return nil
}

// ValidateItem validates an item before it is merged or written.
//
// Validation rules:
//   - item must not be nil
//   - Path must not be empty
//   - Path must stay inside the type folder once cleaned
//
// NOT validated:
//   - Content (opaque, may be any string)
//   - Handle (only meaningful for loaded items)
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, ErrNilItem)
	}
	if item.Path == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, ErrEmptyPath)
	}
	_, err := TargetPath(item.Path)
	return err
}

// TargetPath returns the slash separated path an item is written to beneath
// its type folder: leading separators stripped, .json ensured and cleaned.
// Paths that clean to outside the folder are rejected.
func TargetPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimLeft(p, "/")
	p = path.Clean(NormalizePath(p))
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%w: %w: %s", ErrInvalidArgument, ErrPathOutsideFolder, p)
	}
	return p, nil
}

// ValidateItems validates every item of a batch. A nil slice is rejected, an
// empty one is not.
func ValidateItems(items []*Item) error {
	if items == nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, ErrNilItems)
	}
	for i, item := range items {
		if err := ValidateItem(item); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}
