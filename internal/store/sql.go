package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
)

// dialect captures the few places SQLite and PostgreSQL differ.
type dialect struct {
	name        string
	quote       func(ident string) string
	placeholder func(n int) string
}

// sqlStore implements Store over database/sql.
type sqlStore struct {
	db    *sql.DB
	table string
	d     dialect

	listQuery   string
	upsertQuery string
	deleteQuery string
}

func newSQLStore(db *sql.DB, table string, d dialect) *sqlStore {
	if table == "" {
		table = DefaultTable
	}
	s := &sqlStore{db: db, table: table, d: d}
	s.buildQueries()
	return s
}

func (s *sqlStore) buildQueries() {
	quoted := make([]string, len(columns))
	ph := make([]string, len(columns))
	var set []string
	for i, c := range columns {
		quoted[i] = s.d.quote(c)
		ph[i] = s.d.placeholder(i + 1)
		if c != "id" {
			set = append(set, quoted[i]+" = excluded."+quoted[i])
		}
	}
	cols := strings.Join(quoted, ", ")
	tbl := s.d.quote(s.table)
	id := s.d.quote("id")

	s.listQuery = fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`,
		cols, tbl, s.d.quote("createdTime"))
	s.upsertQuery = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)
ON CONFLICT (%s) DO UPDATE SET %s
RETURNING %s`,
		tbl, cols, strings.Join(ph, ", "), id, strings.Join(set, ", "), cols)
	s.deleteQuery = fmt.Sprintf(`DELETE FROM %s WHERE %s = %s`, tbl, id, s.d.placeholder(1))
}

func (s *sqlStore) List(ctx context.Context) ([]catalog.Book, error) {
	rows, err := s.db.QueryContext(ctx, s.listQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: listing %s: %w", s.d.name, s.table, err)
	}
	defer func() { _ = rows.Close() }()

	books := []catalog.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scanning row: %w", s.d.name, err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: listing %s: %w", s.d.name, s.table, err)
	}
	return books, nil
}

func (s *sqlStore) Upsert(ctx context.Context, b catalog.Book) (catalog.Book, error) {
	out, err := scanBook(s.db.QueryRowContext(ctx, s.upsertQuery, args(b)...))
	if err != nil {
		return catalog.Book{}, fmt.Errorf("%s: upserting %s: %w", s.d.name, b.ID, err)
	}
	return out, nil
}

func (s *sqlStore) UpsertMany(ctx context.Context, books []catalog.Book) ([]catalog.Book, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", s.d.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.upsertQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: prepare upsert: %w", s.d.name, err)
	}
	defer func() { _ = stmt.Close() }()

	out := make([]catalog.Book, 0, len(books))
	for _, b := range books {
		stored, err := scanBook(stmt.QueryRowContext(ctx, args(b)...))
		if err != nil {
			return nil, fmt.Errorf("%s: upserting %s: %w", s.d.name, b.ID, err)
		}
		out = append(out, stored)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", s.d.name, err)
	}
	return out, nil
}

func (s *sqlStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, s.deleteQuery, id); err != nil {
		return fmt.Errorf("%s: deleting %s: %w", s.d.name, id, err)
	}
	return nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

// createTableSQL is the books table definition shared by both dialects.
func createTableSQL(d dialect, table string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		if c == "id" {
			defs[i] = d.quote(c) + " TEXT PRIMARY KEY"
			continue
		}
		defs[i] = d.quote(c) + " TEXT NOT NULL DEFAULT ''"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", d.quote(table), strings.Join(defs, ",\n\t"))
}
