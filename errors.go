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

import "errors"

var (
	// ErrFileSystemRequired is returned when a nil file system is configured.
	ErrFileSystemRequired = errors.New("file system required")

	// ErrItemTypeRequired is returned when the read cache is used without an
	// item type.
	ErrItemTypeRequired = errors.New("item type required")
)

// Operation names used in storage errors.
const (
	opInsert       = "insert"
	opGet          = "get"
	opDecode       = "decode"
	opRestoreCache = "restore cache"
)
