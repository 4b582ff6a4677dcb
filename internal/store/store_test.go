package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/store"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempSQLite(t *testing.T) store.Store {
	t.Helper()
	s, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "catalog.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// backends runs fn against every backend that needs no network.
func backends(t *testing.T, fn func(t *testing.T, s store.Store)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, tempSQLite(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, store.NewMemory()) })
}

func book(id, created string) catalog.Book {
	return catalog.Book{
		ID:              id,
		FileName:        "File-" + id,
		TitleEnglish:    "Title " + id,
		TitleSindhi:     "ڪتاب " + id,
		Status:          catalog.StatusPending,
		CreatedTime:     created,
		Language:        "Sindhi/English",
		Stage:           "Initial",
		CreatedBy:       "Librarian",
		CurrentHolderID: "1700000000000",
	}
}

func ids(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestStore_EmptyList(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		books, err := s.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})
}

func TestStore_UpsertThenList(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		want := book("a", "2026-01-01T00:00:00.000Z")
		want.AuthorSindhi = "شاهه عبداللطيف"
		want.Status = catalog.StatusInProgress

		got, err := s.Upsert(ctx, want)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Upsert returned (-want +got):\n%s", diff)
		}

		books, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		if diff := cmp.Diff(want, books[0]); diff != "" {
			t.Errorf("List returned (-want +got):\n%s", diff)
		}
	})
}

func TestStore_UpsertReplacesWholeRecord(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		orig := book("a", "2026-01-01T00:00:00.000Z")
		orig.Category = "Poetry"
		_, err := s.Upsert(ctx, orig)
		require.NoError(t, err)

		updated := orig
		updated.Category = ""
		updated.Status = catalog.StatusCompleted
		_, err = s.Upsert(ctx, updated)
		require.NoError(t, err)

		books, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "", books[0].Category)
		assert.Equal(t, catalog.StatusCompleted, books[0].Status)
	})
}

func TestStore_ListNewestFirst(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		for _, b := range []catalog.Book{
			book("mid", "2026-02-01T00:00:00.000Z"),
			book("old", "2026-01-01T00:00:00.000Z"),
			book("new", "2026-03-01T00:00:00.000Z"),
		} {
			_, err := s.Upsert(ctx, b)
			require.NoError(t, err)
		}
		books, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"new", "mid", "old"}, ids(books))
	})
}

func TestStore_UpsertMany(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		now := catalog.Samples("Librarian", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
		out, err := s.UpsertMany(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, ids(now), ids(out))

		books, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, books, 3)

		out, err = s.UpsertMany(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestStore_Delete(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		_, err := s.Upsert(ctx, book("a", "2026-01-01T00:00:00.000Z"))
		require.NoError(t, err)
		_, err = s.Upsert(ctx, book("b", "2026-01-02T00:00:00.000Z"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, "a"))
		require.NoError(t, s.Delete(ctx, "never-existed"))

		books, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, ids(books))
	})
}

func TestStore_CanceledContext(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.List(ctx)
		assert.Error(t, err)
	})
}

func TestOpenSQLite_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := store.OpenSQLite(ctx, path, "")
	require.NoError(t, err)
	_, err = s.Upsert(ctx, book("keep", "2026-01-01T00:00:00.000Z"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.OpenSQLite(ctx, path, "")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	books, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, ids(books))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := store.Open(ctx, store.Config{Kind: store.KindMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, s)

	s, err = store.Open(ctx, store.Config{Kind: store.KindSQLite, Path: filepath.Join(t.TempDir(), "c.db"), Table: "scans"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(ctx, store.Config{Kind: store.KindSupabase, URL: "https://example.supabase.co", Key: "k"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = store.Open(ctx, store.Config{Kind: store.KindSupabase})
	assert.Error(t, err)

	_, err = store.Open(ctx, store.Config{Kind: "mongo"})
	assert.ErrorIs(t, err, store.ErrUnknownKind)

	_, err = store.Open(ctx, store.Config{Kind: store.KindPostgres})
	assert.Error(t, err, "empty DSN must be rejected before dialing")
}
