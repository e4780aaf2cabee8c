package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id        TEXT PRIMARY KEY,
    name      TEXT NOT NULL,
    price     REAL NOT NULL CHECK(price >= 0),
    category  TEXT NOT NULL,
    stock     INTEGER NOT NULL DEFAULT 0,
    status    TEXT NOT NULL,
    added_on  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    id        TEXT PRIMARY KEY,
    customer  TEXT NOT NULL,
    total     REAL NOT NULL CHECK(total >= 0),
    status    TEXT NOT NULL,
    date      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS time_slots (
    id          TEXT PRIMARY KEY,
    day         TEXT NOT NULL CHECK(day IN ('Mon','Tue','Wed','Thu','Fri','Sat','Sun')),
    start_time  TEXT NOT NULL,
    end_time    TEXT NOT NULL,
    slot_date   TEXT,
    position    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(date DESC);
`

const dateLayout = "2006-01-02"

// Open opens or creates the SQLite database, initializes the schema and
// seeds the demo catalog when it is empty.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Another process may hold the write lock while it seeds the same file.
	err = retry.Do(
		func() error { return initialize(ctx, db) },
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(50*time.Millisecond),
		retry.RetryIf(isBusy),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func initialize(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return seed(ctx, db)
}

// isBusy reports whether err is SQLite lock contention worth retrying.
func isBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
