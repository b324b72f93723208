// Package eventstore owns the sqlite file shared by the event-log writer and
// the analytics reader. Every table is append-only: rows carry the local date
// and the seconds since local midnight at which the event happened.
package eventstore

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	DateLayout = "2006-01-02"

	DeactivateTable  = "deactivate_log"
	RequirementTable = "requirement_log"
	UnlockTable      = "unlock_log"
	LockTable        = "lock_log"
)

const schema = `
CREATE TABLE IF NOT EXISTS deactivate_log (
  date TEXT NOT NULL,
  time INTEGER NOT NULL,
  state TEXT NOT NULL,
  reason TEXT NOT NULL,
  details TEXT
) STRICT;
CREATE TABLE IF NOT EXISTS requirement_log (
  date TEXT NOT NULL,
  time INTEGER NOT NULL,
  name TEXT NOT NULL
) STRICT;
CREATE TABLE IF NOT EXISTS unlock_log (
  date TEXT NOT NULL,
  time INTEGER NOT NULL
) STRICT;
CREATE TABLE IF NOT EXISTS lock_log (
  date TEXT NOT NULL,
  time INTEGER NOT NULL
) STRICT;
CREATE INDEX IF NOT EXISTS deactivate_log_date ON deactivate_log(date);
CREATE INDEX IF NOT EXISTS requirement_log_date ON requirement_log(date);
`

// Open opens (creating if needed) the store at path. WAL and a busy timeout
// let independent CLI invocations append concurrently.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create analytics dir: %w", err)
	}
	query := url.Values{}
	query.Add("_pragma", "busy_timeout(5000)")
	query.Add("_pragma", "journal_mode(WAL)")
	db, err := sql.Open("sqlite", "file:"+path+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create log tables: %w", err)
	}
	return nil
}

// Stamp splits t into the (date, seconds since midnight) pair stored in every table.
func Stamp(t time.Time) (string, int) {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.Format(DateLayout), int(t.Sub(midnight) / time.Second)
}
