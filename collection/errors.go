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
	"errors"

	"github.com/poiesic/jsonstore/core"
)

var (
	// ErrFileSystemRequired is returned when a file system is not provided.
	ErrFileSystemRequired = errors.New("file system required")

	// ErrInvalidPolicy is returned when a merge policy name is not recognized.
	ErrInvalidPolicy = errors.New("invalid merge policy")

	// ErrPathOutsideFolder is returned when an item path escapes its type folder.
	ErrPathOutsideFolder = core.ErrPathOutsideFolder
)

// Operation names used in storage errors.
const (
	opLoad = "load"
	opSave = "save"
)
