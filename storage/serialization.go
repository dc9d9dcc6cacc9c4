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
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// FileEntry is the value stored for one file by key-value backends.
type FileEntry struct {
	Content    string
	ModifiedAt time.Time
}

// MarshalFileEntry serializes a FileEntry to bytes.
// Layout: content (length-prefixed string), modification time (varint unix micro).
func MarshalFileEntry(entry *FileEntry) []byte {
	micro := entry.ModifiedAt.UnixMicro()
	buf := make([]byte, ord.String.Size(entry.Content)+varint.Int64.Size(micro))
	n := ord.String.Marshal(entry.Content, buf)
	varint.Int64.Marshal(micro, buf[n:])
	return buf
}

// UnmarshalFileEntry deserializes a FileEntry from bytes.
func UnmarshalFileEntry(data []byte) (*FileEntry, error) {
	content, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: content: %w", ErrSerializationFailed, err)
	}
	if n >= len(data) {
		return nil, ErrTruncatedData
	}
	micro, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: modified time: %w", ErrSerializationFailed, err)
	}
	return &FileEntry{
		Content:    content,
		ModifiedAt: time.UnixMicro(micro).UTC(),
	}, nil
}
