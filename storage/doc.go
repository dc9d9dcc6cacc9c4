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


// Package storage provides the file-system abstraction used by jsonstore.
//
// The store never touches the operating system directly. Every directory
// check, listing, read and write goes through the FileSystem interface so
// that the collection logic can run against different backends:
//
//	fs := osfs.New()                              // local disk
//	fs, backend, err := badger.NewMemoryFileSystem() // embedded, in-memory
//
// # Errors
//
// Backends report missing files with ErrNotFound and paths that are not
// directories with ErrNotDirectory. Operations above the backend wrap
// failures in a *StorageError, which carries the operation, the item type
// and the item identity while keeping the original cause reachable through
// errors.Is and errors.As:
//
//	if errors.Is(err, storage.ErrStorage) {
//	    var se *storage.StorageError
//	    errors.As(err, &se)
//	    log.Printf("%s failed for %s", se.Op, se.Item)
//	}
//
// # Thread Safety
//
// Backends must be safe to call from multiple goroutines; the collection
// loader reads files concurrently when configured to. Nothing in this
// package coordinates writers: two callers writing the same file race.
//
// # Context Support
//
// All FileSystem methods accept context.Context. Implementations check it
// before touching storage and return ctx.Err() when it is done.
package storage
