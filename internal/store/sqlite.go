package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteDialect = dialect{
	name: "sqlite",
	quote: func(ident string) string {
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	},
	placeholder: func(int) string { return "?" },
}

// OpenSQLite opens (creating if needed) a local catalog database.
func OpenSQLite(ctx context.Context, path, table string) (Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: database path is not set (backend.path)")
	}
	if table == "" {
		table = DefaultTable
	}
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One writer at a time; WAL lets readers proceed meanwhile.
	db.SetMaxOpenConns(1)

	if err := migrateSQLite(ctx, db, table); err != nil {
		_ = db.Close()
		return nil, err
	}
	return newSQLStore(db, table, sqliteDialect), nil
}

const sqliteSchemaVersion = 2

// migrateSQLite brings the schema up to sqliteSchemaVersion. Version 1 is
// the books table; version 2 adds the createdTime index used by List.
func migrateSQLite(ctx context.Context, db *sql.DB, table string) error {
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("sqlite: enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return fmt.Errorf("sqlite: create meta: %w", err)
	}

	// Versions are tracked per table; one file may hold several catalogs.
	versionKey := "schema_version:" + table
	var current int
	_ = db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key=?;`, versionKey).Scan(&current)
	if current >= sqliteSchemaVersion {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := sqliteDialect.quote
	steps := [][]string{
		1: {createTableSQL(sqliteDialect, table)},
		2: {fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s)`,
			q(table+"_created_time_idx"), q(table), q("createdTime"))},
	}
	for v := current + 1; v <= sqliteSchemaVersion; v++ {
		for _, stmt := range steps[v] {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("sqlite: migration %d: %w", v, err)
			}
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO meta(key,value) VALUES(?,?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, versionKey, sqliteSchemaVersion); err != nil {
		return fmt.Errorf("sqlite: record schema version: %w", err)
	}
	return tx.Commit()
}
