package importer

import "errors"

var (
	// ErrStoreRequired is returned when no store is provided.
	ErrStoreRequired = errors.New("store required")

	// ErrInvalidDocument is returned when the source is not valid JSON.
	ErrInvalidDocument = errors.New("invalid JSON document")

	// ErrNotArray is returned when the source is valid JSON but not an array.
	ErrNotArray = errors.New("JSON document is not an array")
)
