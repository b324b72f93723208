package out

import (
	"context"

	"diagonator/internal/modules/analytics/domain"
)

// LogReader reads rows whose date falls inside the inclusive range.
type LogReader interface {
	Deactivations(ctx context.Context, r domain.DateRange) ([]domain.DeactivationRow, error)
	Requirements(ctx context.Context, r domain.DateRange) ([]domain.RequirementRow, error)
}
