package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsMatchColumns(t *testing.T) {
	var b catalog.Book
	require.Len(t, fields(&b), len(columns))

	for i, p := range fields(&b) {
		*p = columns[i]
	}
	assert.Equal(t, "id", b.ID)
	assert.Equal(t, catalog.Status("status"), b.Status)
	assert.Equal(t, "currentHolderId", b.CurrentHolderID)
	assert.Equal(t, "lastEditedBy", b.LastEditedBy)
}

func TestPostgresQueries(t *testing.T) {
	s := newSQLStore(nil, "", postgresDialect)
	assert.Contains(t, s.listQuery, `FROM "books" ORDER BY "createdTime" DESC`)
	assert.Contains(t, s.upsertQuery, `ON CONFLICT ("id") DO UPDATE SET "fileName" = excluded."fileName"`)
	assert.Contains(t, s.upsertQuery, fmt.Sprintf("$%d)", len(columns)))
	assert.NotContains(t, s.upsertQuery, `"id" = excluded."id"`)
	assert.Equal(t, `DELETE FROM "books" WHERE "id" = $1`, s.deleteQuery)
}

func TestSQLiteQueries(t *testing.T) {
	s := newSQLStore(nil, `odd"name`, sqliteDialect)
	assert.Contains(t, s.listQuery, `FROM "odd""name"`)
	assert.Equal(t, len(columns), strings.Count(s.upsertQuery, "?"))
}

func TestScanBook_NullColumns(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "c.db"), "")
	require.NoError(t, err)
	s := st.(*sqlStore)
	t.Cleanup(func() { _ = s.Close() })

	// Rows written by other tools may carry NULLs and loose status text.
	_, err = s.db.ExecContext(ctx, `CREATE TABLE loose (`+strings.Join(columns, " TEXT, ")+` TEXT)`)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `INSERT INTO loose (id, status, createdTime) VALUES ('x', 'in-progress', NULL)`)
	require.NoError(t, err)

	row := s.db.QueryRowContext(ctx, `SELECT `+strings.Join(columns, ", ")+` FROM loose`)
	b, err := scanBook(row)
	require.NoError(t, err)
	assert.Equal(t, "x", b.ID)
	assert.Equal(t, catalog.StatusInProgress, b.Status)
	assert.Empty(t, b.CreatedTime)
	assert.Empty(t, b.TitleEnglish)
}

func TestMigrateSQLite_Idempotent(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "c.db"), "")
	require.NoError(t, err)
	s := st.(*sqlStore)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, migrateSQLite(ctx, s.db, s.table))

	var v int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key=?`, "schema_version:"+s.table).Scan(&v))
	assert.Equal(t, sqliteSchemaVersion, v)
}

func TestMigrateSQLite_SecondTableInSameFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "c.db")

	first, err := OpenSQLite(ctx, path, "books")
	require.NoError(t, err)
	_, err = first.Upsert(ctx, catalog.Book{ID: "a", FileName: "a", CreatedTime: "2026-01-01T00:00:00.000Z"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, path, "scans")
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	books, err := second.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
	_, err = second.Upsert(ctx, catalog.Book{ID: "b", FileName: "b"})
	require.NoError(t, err)
}
