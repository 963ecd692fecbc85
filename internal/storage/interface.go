package storage

import (
	errs "github.com/julianstephens/elevate/internal/errors"
)

// ErrNotFound is returned by GetDocument when no document is stored under a key.
var ErrNotFound = errs.ErrNotFound

// Provider persists whole JSON documents under fixed string keys. Reads and
// writes replace the full document; there are no partial updates.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	GetDocument(key string) ([]byte, error)
	PutDocument(key string, data []byte) error
	DeleteDocument(key string) error

	// Utils
	GetConfigPath() string
}
