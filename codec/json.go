// Package codec serializes values to and from the JSON documents stored by
// jsonstore.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/poiesic/jsonstore/core"
)

// ErrSerializationFailed wraps encoder and decoder failures.
var ErrSerializationFailed = errors.New("json serialization failed")

// Serialize encodes v as a compact JSON document.
func Serialize(v any) (string, error) {
	if v == nil {
		return "", fmt.Errorf("%w: value is required", core.ErrInvalidArgument)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return string(data), nil
}

// Deserialize decodes a JSON document into a new T.
func Deserialize[T any](doc string) (T, error) {
	var v T
	if doc == "" {
		return v, fmt.Errorf("%w: json is required", core.ErrInvalidArgument)
	}
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return v, nil
}

// Indent re-encodes a JSON document with two-space indentation.
func Indent(doc string) (string, error) {
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return string(data), nil
}
