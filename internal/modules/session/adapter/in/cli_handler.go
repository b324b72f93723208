package in

import (
	"context"

	sessiondto "diagonator/internal/modules/session/dto"
	sessionin "diagonator/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) StartSession(ctx context.Context) error {
	return h.usecase.StartSession(ctx)
}

func (h CLIHandler) EndSession(ctx context.Context) error {
	return h.usecase.EndSession(ctx)
}

func (h CLIHandler) GetInfo(ctx context.Context) (sessiondto.InfoOutput, error) {
	return h.usecase.GetInfo(ctx)
}

func (h CLIHandler) RemainingTime(ctx context.Context) (sessiondto.RemainingTimeOutput, error) {
	return h.usecase.RemainingTime(ctx)
}

func (h CLIHandler) AddRequirement(ctx context.Context, name, due string) error {
	return h.usecase.AddRequirement(ctx, sessiondto.AddRequirementInput{Name: name, Due: due})
}

func (h CLIHandler) CompleteRequirement(ctx context.Context, prompts []string, sortByDue bool) (sessiondto.CompleteRequirementOutput, error) {
	return h.usecase.CompleteRequirement(ctx, sessiondto.CompleteRequirementInput{Prompts: prompts, SortByDue: sortByDue})
}

func (h CLIHandler) Deactivate(ctx context.Context, seconds int64, prompts []string) error {
	return h.usecase.Deactivate(ctx, sessiondto.DeactivateInput{DurationSeconds: seconds, Prompts: prompts})
}

func (h CLIHandler) UnlockTimer(ctx context.Context, confirm bool, prompts []string) error {
	return h.usecase.UnlockTimer(ctx, sessiondto.UnlockTimerInput{Confirm: confirm, Prompts: prompts})
}

func (h CLIHandler) LockTimer(ctx context.Context) error {
	return h.usecase.LockTimer(ctx)
}

func (h CLIHandler) SyncRequirements(ctx context.Context) (sessiondto.SyncRequirementsOutput, error) {
	return h.usecase.SyncRequirements(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}
