package importer

import (
	"github.com/poiesic/jsonstore/core"
	"github.com/tidwall/gjson"
)

// Parse turns every element of the JSON array doc into an item of typeName.
//
// The identity of an element is the string at idPath (gjson syntax) when
// that path is set and yields a usable file name; otherwise it is
// core.IDFromContent of the element's raw JSON. Element content is kept
// byte for byte.
func Parse(doc, typeName, idPath string) ([]*core.Item, error) {
	if !gjson.Valid(doc) {
		return nil, ErrInvalidDocument
	}
	root := gjson.Parse(doc)
	if !root.IsArray() {
		return nil, ErrNotArray
	}

	var (
		items []*core.Item
		err   error
	)
	root.ForEach(func(_, value gjson.Result) bool {
		var item *core.Item
		item, err = core.NewItem(typeName, elementID(value, idPath), value.Raw)
		if err != nil {
			return false
		}
		items = append(items, item)
		return true
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*core.Item{}
	}
	return items, nil
}

func elementID(value gjson.Result, idPath string) string {
	if idPath != "" {
		if id := value.Get(idPath); id.Exists() && core.FileNameFromID(id.String()) != "" {
			return id.String()
		}
	}
	return core.IDFromContent(value.Raw)
}

// dedup drops every item whose key was already seen. The first occurrence
// wins. It returns the kept items and how many were dropped.
func dedup(items []*core.Item) ([]*core.Item, int) {
	seen := make(map[string]bool, len(items))
	kept := make([]*core.Item, 0, len(items))
	for _, item := range items {
		key := item.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, item)
	}
	return kept, len(items) - len(kept)
}

// forEachBatch calls fn with consecutive slices of at most size items.
// Iteration stops on the first error from fn. Context cancellation is
// checked by the caller between batches.
func forEachBatch(items []*core.Item, size int, fn func([]*core.Item) error) error {
	if size <= 0 {
		size = DefaultBatchSize
	}
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		if err := fn(items[i:end]); err != nil {
			return err
		}
	}
	return nil
}
