package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"
)

var postgresDialect = dialect{
	name:        "postgres",
	quote:       pq.QuoteIdentifier,
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
}

// OpenPostgres connects to a PostgreSQL database holding the catalog
// table, which may be the database behind a Supabase project.
func OpenPostgres(ctx context.Context, dsn, table string) (Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres: connection string is not set (backend.dsn)")
	}
	if table == "" {
		table = DefaultTable
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: connect: %w", describePQ(err))
	}

	if _, err := db.ExecContext(ctx, createTableSQL(postgresDialect, table)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ensure table %s: %w", table, describePQ(err))
	}
	return newSQLStore(db, table, postgresDialect), nil
}

// describePQ adds the server's detail and hint to driver errors.
func describePQ(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	msg := fmt.Sprintf("%s (SQLSTATE %s)", pqErr.Message, pqErr.Code)
	if pqErr.Detail != "" {
		msg += ": " + pqErr.Detail
	}
	if pqErr.Hint != "" {
		msg += " hint: " + pqErr.Hint
	}
	return fmt.Errorf("%s: %w", msg, err)
}
