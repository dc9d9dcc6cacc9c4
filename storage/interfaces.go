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


package storage

import "context"

// FileSystem is the set of file primitives the store is built on.
// Paths are slash or OS separated; implementations clean them.
// Implementations must be safe for concurrent use.
type FileSystem interface {
	// DirExists reports whether path exists and is a directory.
	DirExists(ctx context.Context, path string) (bool, error)

	// CreateDir creates path and any missing parents.
	// Succeeds if the directory already exists.
	CreateDir(ctx context.Context, path string) error

	// ListFiles returns every regular file beneath root, recursively, whose
	// base name matches pattern (doublestar syntax, e.g. "*.json").
	// Results are full paths in lexicographic order.
	ListFiles(ctx context.Context, root, pattern string) ([]string, error)

	// ReadFile returns the whole content of the file at path.
	// Returns ErrNotFound if the file doesn't exist.
	ReadFile(ctx context.Context, path string) (string, error)

	// WriteFile replaces the content of the file at path, creating it if needed.
	// The parent directory must exist.
	WriteFile(ctx context.Context, path, content string) error
}
