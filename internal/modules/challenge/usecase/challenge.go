package usecase

import (
	"context"

	"diagonator/internal/modules/challenge/dto"
	challengein "diagonator/internal/modules/challenge/port/in"
	"diagonator/internal/modules/challenge/service"
)

type Interactor struct {
	svc *service.ChallengeService
}

func NewInteractor(svc *service.ChallengeService) challengein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Confirm(ctx context.Context, input dto.ConfirmInput) error {
	return i.svc.Verify(ctx, input.Prompts)
}
