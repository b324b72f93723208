package in

import (
	"context"

	"diagonator/internal/modules/session/dto"
)

type Usecase interface {
	StartSession(ctx context.Context) error
	EndSession(ctx context.Context) error
	GetInfo(ctx context.Context) (dto.InfoOutput, error)
	RemainingTime(ctx context.Context) (dto.RemainingTimeOutput, error)
	AddRequirement(ctx context.Context, input dto.AddRequirementInput) error
	CompleteRequirement(ctx context.Context, input dto.CompleteRequirementInput) (dto.CompleteRequirementOutput, error)
	Deactivate(ctx context.Context, input dto.DeactivateInput) error
	UnlockTimer(ctx context.Context, input dto.UnlockTimerInput) error
	LockTimer(ctx context.Context) error
	SyncRequirements(ctx context.Context) (dto.SyncRequirementsOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
}
