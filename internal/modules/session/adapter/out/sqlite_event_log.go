package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"diagonator/internal/modules/session/domain"
	sessionout "diagonator/internal/modules/session/port/out"
	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/eventstore"
)

// SQLiteEventLog appends one row per event. Each insert is its own statement
// so concurrent invocations only contend on the busy timeout.
type SQLiteEventLog struct {
	db *sql.DB
}

func NewSQLiteEventLog(db *sql.DB) sessionout.EventLog {
	return &SQLiteEventLog{db: db}
}

func (l *SQLiteEventLog) Enabled() bool { return true }

func (l *SQLiteEventLog) AppendDeactivation(ctx context.Context, record domain.DeactivationRecord) error {
	date, secs := eventstore.Stamp(record.At)
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO `+eventstore.DeactivateTable+`(date, time, state, reason, details) VALUES(?, ?, ?, ?, ?)`,
		date, secs, string(record.State), string(record.Reason), nullable(record.Details),
	)
	if err != nil {
		return fmt.Errorf("%w: insert deactivation: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

func (l *SQLiteEventLog) AppendRequirement(ctx context.Context, record domain.RequirementRecord) error {
	date, secs := eventstore.Stamp(record.At)
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO `+eventstore.RequirementTable+`(date, time, name) VALUES(?, ?, ?)`,
		date, secs, record.Name,
	)
	if err != nil {
		return fmt.Errorf("%w: insert requirement: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

func (l *SQLiteEventLog) AppendTimer(ctx context.Context, record domain.TimerRecord) error {
	table := eventstore.UnlockTable
	if record.Kind == domain.TimerLocked {
		table = eventstore.LockTable
	}
	date, secs := eventstore.Stamp(record.At)
	if _, err := l.db.ExecContext(ctx, `INSERT INTO `+table+`(date, time) VALUES(?, ?)`, date, secs); err != nil {
		return fmt.Errorf("%w: insert %s: %v", apperrors.ErrStoreUnavailable, table, err)
	}
	return nil
}

func (l *SQLiteEventLog) RequirementsCompletedOn(ctx context.Context, day time.Time) ([]string, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT DISTINCT name FROM `+eventstore.RequirementTable+` WHERE date = ? ORDER BY name`,
		day.Format(eventstore.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query requirements: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
