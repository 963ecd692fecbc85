package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	errs "github.com/julianstephens/elevate/internal/errors"
)

// LoadDocument decodes the document stored under key. found is false when
// nothing is stored yet. Content that does not decode yields an error
// wrapping ErrMalformedDocument so callers can fall back to an empty value.
func LoadDocument[T any](p Provider, key string) (v T, found bool, err error) {
	data, err := p.GetDocument(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return v, false, nil
		}
		return v, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, true, fmt.Errorf("%w: %s: %v", errs.ErrMalformedDocument, key, err)
	}
	return v, true, nil
}

// SaveDocument encodes v and replaces the document stored under key.
func SaveDocument[T any](p Provider, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := p.PutDocument(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
