package out

import (
	"context"
	"database/sql"
	"fmt"

	"diagonator/internal/modules/analytics/domain"
	analyticsout "diagonator/internal/modules/analytics/port/out"
	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/eventstore"
	"diagonator/internal/platform/protocol"
)

type SQLiteLogReader struct {
	db *sql.DB
}

func NewSQLiteLogReader(db *sql.DB) analyticsout.LogReader {
	return &SQLiteLogReader{db: db}
}

func (r *SQLiteLogReader) Deactivations(ctx context.Context, dates domain.DateRange) ([]domain.DeactivationRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, time, state, reason FROM `+eventstore.DeactivateTable+` WHERE date BETWEEN ? AND ? ORDER BY date, time`,
		dates.FromDate(), dates.ToDate(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query deactivations: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	out := []domain.DeactivationRow{}
	for rows.Next() {
		var row domain.DeactivationRow
		var state, reason string
		if err := rows.Scan(&row.Date, &row.Seconds, &state, &reason); err != nil {
			return nil, fmt.Errorf("scan deactivation: %w", err)
		}
		row.State, row.Reason = protocol.State(state), protocol.ReasonType(reason)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteLogReader) Requirements(ctx context.Context, dates domain.DateRange) ([]domain.RequirementRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, time, name FROM `+eventstore.RequirementTable+` WHERE date BETWEEN ? AND ? ORDER BY date, time`,
		dates.FromDate(), dates.ToDate(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query requirements: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	out := []domain.RequirementRow{}
	for rows.Next() {
		var row domain.RequirementRow
		if err := rows.Scan(&row.Date, &row.Seconds, &row.Name); err != nil {
			return nil, fmt.Errorf("scan requirement: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// UnavailableLogReader stands in when no analytics file is configured.
type UnavailableLogReader struct{}

func (UnavailableLogReader) Deactivations(context.Context, domain.DateRange) ([]domain.DeactivationRow, error) {
	return nil, fmt.Errorf("%w: no analytics file configured", apperrors.ErrStoreUnavailable)
}

func (UnavailableLogReader) Requirements(context.Context, domain.DateRange) ([]domain.RequirementRow, error) {
	return nil, fmt.Errorf("%w: no analytics file configured", apperrors.ErrStoreUnavailable)
}
