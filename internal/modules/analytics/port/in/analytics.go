package in

import (
	"context"

	"diagonator/internal/modules/analytics/dto"
)

type Usecase interface {
	Deactivations(ctx context.Context, input dto.RangeInput) (dto.DeactivationsOutput, error)
	Requirements(ctx context.Context, input dto.RangeInput) (dto.RequirementsOutput, error)
}
