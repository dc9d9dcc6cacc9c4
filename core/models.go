package core

import (
	"encoding/hex"
	"fmt"
	"path"
	"strings"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// JSONExt is the extension every stored item file carries.
const JSONExt = ".json"

// Item is one stored JSON document together with the metadata needed to
// locate it beneath its type folder.
type Item struct {
	Handle   string // Session-scoped identity assigned at load time; never persisted
	TypeName string // Logical type the item belongs to
	Path     string // Path beneath the type folder; write target and dedup key
	FileName string // Base file name as seen on disk
	Content  string // Raw JSON payload, opaque to the store
	Depth    int    // Subfolders between the type folder and the file when loaded; 0 at top level
}

// NewItem builds an item for insertion from a caller supplied identifier.
// The identifier is sanitized with FileNameFromID and used as both the file
// name and the relative path.
func NewItem(typeName, id, content string) (*Item, error) {
	if typeName == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, ErrEmptyTypeName)
	}
	name := FileNameFromID(id)
	if name == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, ErrEmptyID)
	}
	return &Item{
		Handle:   name,
		TypeName: typeName,
		Path:     name,
		FileName: name,
		Content:  content,
	}, nil
}

// Clone returns a shallow copy of the item.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// Key returns the dedup key of the item's path.
func (i *Item) Key() string {
	return DedupKey(i.Path)
}

// FileNameFromID strips the characters that GUID-like identifiers carry
// ({, } and -) so the result can be used as a file name.
func FileNameFromID(id string) string {
	return strings.NewReplacer("{", "", "}", "", "-", "").Replace(id)
}

// NormalizePath converts p to a slash separated path ending in exactly one
// .json suffix.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	for strings.HasSuffix(p, JSONExt+JSONExt) {
		p = strings.TrimSuffix(p, JSONExt)
	}
	if !strings.HasSuffix(p, JSONExt) {
		p += JSONExt
	}
	return p
}

// DedupKey returns the identity used to match items during a merge: the
// normalized path without its leading separator and without .json.
func DedupKey(p string) string {
	p = strings.TrimLeft(NormalizePath(p), "/")
	return strings.TrimSuffix(path.Clean(p), JSONExt)
}

// NewHandle returns a process-local unique handle for a file loaded from disk.
func NewHandle(fileName string) string {
	return fileName + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// IDFromContent returns a deterministic identifier for content using a
// 64-bit BLAKE2b hash. Identical content yields identical identifiers.
func IDFromContent(content string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
