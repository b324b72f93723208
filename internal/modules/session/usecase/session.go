package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	challengedto "diagonator/internal/modules/challenge/dto"
	challengein "diagonator/internal/modules/challenge/port/in"
	"diagonator/internal/modules/session/domain"
	sessiondto "diagonator/internal/modules/session/dto"
	sessionin "diagonator/internal/modules/session/port/in"
	sessionout "diagonator/internal/modules/session/port/out"
	"diagonator/internal/modules/session/service"
	"diagonator/internal/platform/clock"
	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/logging"
	"diagonator/internal/platform/protocol"
)

type Interactor struct {
	svc       *service.CommandService
	challenge challengein.Usecase
	picker    sessionout.RequirementPicker
	events    sessionout.EventLog
	clock     clock.Clock
	logger    hclog.Logger
}

func NewInteractor(
	svc *service.CommandService,
	challenge challengein.Usecase,
	picker sessionout.RequirementPicker,
	events sessionout.EventLog,
	clk clock.Clock,
	logger hclog.Logger,
) sessionin.Usecase {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Interactor{svc: svc, challenge: challenge, picker: picker, events: events, clock: clk, logger: logger.Named("session")}
}

func (i *Interactor) StartSession(ctx context.Context) error {
	return i.svc.Do(ctx, protocol.StartSession{})
}

func (i *Interactor) EndSession(ctx context.Context) error {
	return i.svc.Do(ctx, protocol.EndSession{})
}

func (i *Interactor) GetInfo(ctx context.Context) (sessiondto.InfoOutput, error) {
	info, err := i.svc.Info(ctx)
	if err != nil {
		return sessiondto.InfoOutput{}, err
	}
	return sessiondto.InfoOutput{Info: info}, nil
}

func (i *Interactor) RemainingTime(ctx context.Context) (sessiondto.RemainingTimeOutput, error) {
	info, err := i.svc.Query(ctx, protocol.GetRemainingTime{})
	if err != nil {
		return sessiondto.RemainingTimeOutput{}, err
	}
	remaining, scheduled := domain.Remaining(info, i.clock.Now())
	return sessiondto.RemainingTimeOutput{Info: info, Remaining: remaining, Scheduled: scheduled}, nil
}

func (i *Interactor) AddRequirement(ctx context.Context, input sessiondto.AddRequirementInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: requirement name is required", apperrors.ErrUsage)
	}
	due, err := protocol.ParseTimeOfDay(input.Due)
	if err != nil {
		return fmt.Errorf("%w: due %q must be H:MM", apperrors.ErrUsage, input.Due)
	}
	return i.svc.Do(ctx, protocol.AddRequirement{Name: name, Due: due})
}

func (i *Interactor) CompleteRequirement(ctx context.Context, input sessiondto.CompleteRequirementInput) (sessiondto.CompleteRequirementOutput, error) {
	info, err := i.svc.Info(ctx)
	if err != nil {
		return sessiondto.CompleteRequirementOutput{}, err
	}
	incomplete := info.Incomplete()
	if len(incomplete) == 0 {
		return sessiondto.CompleteRequirementOutput{}, nil
	}
	if input.SortByDue {
		domain.SortByDue(incomplete)
	}
	choice, err := i.picker.Pick(ctx, domain.Names(incomplete), input.Prompts)
	if err != nil {
		return sessiondto.CompleteRequirementOutput{}, fmt.Errorf("pick requirement: %w", err)
	}
	req, err := domain.ResolveRequirement(incomplete, choice)
	if err != nil {
		return sessiondto.CompleteRequirementOutput{}, err
	}
	if err := i.svc.Do(ctx, protocol.CompleteRequirement{ID: req.ID}); err != nil {
		return sessiondto.CompleteRequirementOutput{}, err
	}
	out := sessiondto.CompleteRequirementOutput{Completed: true, ID: req.ID, Name: req.Name}
	record := domain.RequirementRecord{At: i.clock.Now(), Name: req.Name}
	if err := i.events.AppendRequirement(ctx, record); err != nil {
		i.logger.Warn("requirement completed but not logged", "name", req.Name, "error", err)
		return out, fmt.Errorf("log requirement %q: %w", req.Name, err)
	}
	return out, nil
}

func (i *Interactor) Deactivate(ctx context.Context, input sessiondto.DeactivateInput) error {
	if input.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration must be a positive number of seconds", apperrors.ErrUsage)
	}
	if err := i.confirm(ctx, input.Prompts); err != nil {
		return err
	}
	if err := i.svc.Do(ctx, protocol.Deactivate{Duration: input.DurationSeconds}); err != nil {
		return err
	}
	if !i.events.Enabled() {
		return nil
	}
	snapshot, err := i.svc.Info(ctx)
	if err != nil {
		i.logger.Warn("deactivated but snapshot failed", "error", err)
		return fmt.Errorf("snapshot after deactivate: %w", err)
	}
	if err := i.events.AppendDeactivation(ctx, domain.NewDeactivationRecord(i.clock.Now(), snapshot)); err != nil {
		i.logger.Warn("deactivated but not logged", "error", err)
		return fmt.Errorf("log deactivation: %w", err)
	}
	return nil
}

func (i *Interactor) UnlockTimer(ctx context.Context, input sessiondto.UnlockTimerInput) error {
	if input.Confirm {
		if err := i.confirm(ctx, input.Prompts); err != nil {
			return err
		}
	}
	if err := i.svc.Do(ctx, protocol.UnlockTimer{}); err != nil {
		return err
	}
	return i.logTimer(ctx, domain.TimerUnlocked)
}

func (i *Interactor) LockTimer(ctx context.Context) error {
	if err := i.svc.Do(ctx, protocol.LockTimer{}); err != nil {
		return err
	}
	return i.logTimer(ctx, domain.TimerLocked)
}

func (i *Interactor) SyncRequirements(ctx context.Context) (sessiondto.SyncRequirementsOutput, error) {
	if !i.events.Enabled() {
		return sessiondto.SyncRequirementsOutput{}, fmt.Errorf("%w: syncing requirements needs an analytics file", apperrors.ErrInvalidInput)
	}
	logged, err := i.events.RequirementsCompletedOn(ctx, i.clock.Now())
	if err != nil {
		return sessiondto.SyncRequirementsOutput{}, fmt.Errorf("read requirement log: %w", err)
	}
	done := make(map[string]struct{}, len(logged))
	for _, name := range logged {
		done[name] = struct{}{}
	}
	info, err := i.svc.Info(ctx)
	if err != nil {
		return sessiondto.SyncRequirementsOutput{}, err
	}
	out := sessiondto.SyncRequirementsOutput{Completed: []string{}}
	for _, req := range info.Incomplete() {
		if _, ok := done[req.Name]; !ok {
			continue
		}
		if err := i.svc.Do(ctx, protocol.CompleteRequirement{ID: req.ID}); err != nil {
			return out, fmt.Errorf("complete %q: %w", req.Name, err)
		}
		out.Completed = append(out.Completed, req.Name)
	}
	return out, nil
}

func (i *Interactor) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	info, err := i.svc.Info(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return sessiondto.StatusOutput{Line: domain.StatusLine(info, i.clock.Now()), Info: info}, nil
}

func (i *Interactor) confirm(ctx context.Context, prompts []string) error {
	if i.challenge == nil {
		return fmt.Errorf("%w: confirmation challenge is not configured", apperrors.ErrChallengeFailed)
	}
	return i.challenge.Confirm(ctx, challengedto.ConfirmInput{Prompts: prompts})
}

func (i *Interactor) logTimer(ctx context.Context, kind domain.TimerKind) error {
	if err := i.events.AppendTimer(ctx, domain.TimerRecord{At: i.clock.Now(), Kind: kind}); err != nil {
		i.logger.Warn("timer changed but not logged", "kind", string(kind), "error", err)
		return fmt.Errorf("log %s timer: %w", kind, err)
	}
	return nil
}
