// Package store is the persistence boundary for the catalog. Every backend
// stores whole records keyed by id; writes are upserts and the last writer
// wins.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/supabase"
)

// Store persists catalog records.
type Store interface {
	// List returns all records ordered by createdTime, newest first.
	List(ctx context.Context) ([]catalog.Book, error)
	// Upsert inserts or replaces one record and returns the stored copy.
	Upsert(ctx context.Context, b catalog.Book) (catalog.Book, error)
	// UpsertMany writes a batch and returns the stored copies.
	UpsertMany(ctx context.Context, books []catalog.Book) ([]catalog.Book, error)
	// Delete removes a record. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindSupabase = "supabase"
	KindPostgres = "postgres"
	KindSQLite   = "sqlite"
	KindMemory   = "memory"
)

// Kinds lists the accepted backend kinds.
var Kinds = []string{KindSupabase, KindPostgres, KindSQLite, KindMemory}

// ErrUnknownKind is returned by Open for an unrecognized backend kind.
var ErrUnknownKind = errors.New("unknown backend kind")

// Config selects and parameterizes a backend.
type Config struct {
	Kind  string
	URL   string // supabase project URL
	Key   string // supabase API key
	DSN   string // postgres connection string
	Path  string // sqlite database file
	Table string
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Kind {
	case KindSupabase, "":
		c, err := supabase.New(cfg.URL, cfg.Key, supabase.WithTable(cfg.Table))
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindPostgres:
		return OpenPostgres(ctx, cfg.DSN, cfg.Table)
	case KindSQLite:
		return OpenSQLite(ctx, cfg.Path, cfg.Table)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownKind, cfg.Kind, Kinds)
	}
}
