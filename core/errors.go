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

import "errors"

var (
	// ErrInvalidArgument indicates a required argument was missing or empty.
	// It is always returned before any storage access takes place.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyRoot indicates the JSON root folder was not provided.
	ErrEmptyRoot = errors.New("root folder is required")

	// ErrEmptyTypeFolder indicates the type folder name was not provided.
	ErrEmptyTypeFolder = errors.New("type folder is required")

	// ErrEmptyTypeName indicates the item type name was not provided.
	ErrEmptyTypeName = errors.New("type name is required")

	// ErrEmptyID indicates the item identifier was empty after sanitizing.
	ErrEmptyID = errors.New("id is required")

	// ErrNilItem indicates a nil item was supplied.
	ErrNilItem = errors.New("item is required")

	// ErrNilItems indicates a nil item list was supplied.
	ErrNilItems = errors.New("items are required")

	// ErrEmptyPath indicates an item without a relative path.
	ErrEmptyPath = errors.New("item path is required")

	// ErrPathOutsideFolder indicates an item path that escapes its type folder.
	ErrPathOutsideFolder = errors.New("item path escapes type folder")
)
