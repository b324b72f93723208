package in

import (
	"context"

	"diagonator/internal/modules/challenge/dto"
)

type Usecase interface {
	// Confirm returns nil only when the operator typed the expected answer.
	Confirm(ctx context.Context, input dto.ConfirmInput) error
}
