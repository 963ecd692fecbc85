package storage

import (
	"path/filepath"
	"strings"

	"github.com/julianstephens/elevate/internal/storage/postgres"
	"github.com/julianstephens/elevate/internal/storage/sqlite"
)

// Kind names the backend selected for a storage target.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindJSON     Kind = "json"
	KindPostgres Kind = "postgres"
)

// KindOf picks the backend for a target: PostgreSQL URLs go to PostgreSQL,
// .json paths to the single-file store and everything else to SQLite.
func KindOf(target string) Kind {
	switch {
	case postgres.IsConnString(target):
		return KindPostgres
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// New builds the provider for target. PostgreSQL targets must already have
// been checked with postgres.ValidateConnString.
func New(target string) Provider {
	switch KindOf(target) {
	case KindPostgres:
		return postgres.New(target)
	case KindJSON:
		return NewJSONStore(target)
	default:
		return sqlite.NewStore(target)
	}
}
