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

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage marks every failure of an underlying directory or file operation.
	ErrStorage = errors.New("storage error")

	// ErrNotFound indicates that the requested file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrNotDirectory indicates that a path expected to be a directory is not one.
	ErrNotDirectory = errors.New("not a directory")

	// ErrClosed indicates that the storage backend is closed.
	ErrClosed = errors.New("storage is closed")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrTruncatedData indicates that data was truncated during reading.
	ErrTruncatedData = errors.New("truncated data")
)

// StorageError wraps a failed load, save or insert with the context needed
// to report it. It matches ErrStorage and unwraps to its cause.
type StorageError struct {
	Op       string // Operation that failed, e.g. "load", "save", "insert"
	ItemType string // Item type or type folder involved
	Item     string // Item identity (file name or id), empty for whole-collection failures
	Err      error  // Underlying cause
}

// Error formats the operation, type and item followed by the cause.
func (e *StorageError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.ItemType, e.Item, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.ItemType, e.Err)
}

// Unwrap exposes both ErrStorage and the original cause.
func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// NewStorageError returns a *StorageError for the given operation.
func NewStorageError(op, itemType, item string, err error) *StorageError {
	return &StorageError{Op: op, ItemType: itemType, Item: item, Err: err}
}
