package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"diagonator/internal/modules/challenge/domain"
	"diagonator/internal/modules/challenge/dto"
	"diagonator/internal/modules/challenge/service"
	"diagonator/internal/modules/challenge/usecase"
	"diagonator/internal/platform/clock"
	apperrors "diagonator/internal/platform/errors"
)

type fakeAnswers struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeAnswers) ReadAnswer(_ context.Context, prompts []string) (string, error) {
	f.prompts = prompts
	return f.answer, f.err
}

func newInteractor(t *testing.T, now time.Time, answers *fakeAnswers, policy domain.Policy) *usecase.Interactor {
	t.Helper()
	svc, err := service.NewChallengeService(clock.Fixed(now), answers, policy)
	if err != nil {
		t.Fatalf("new challenge service: %v", err)
	}
	return usecase.NewInteractor(svc).(*usecase.Interactor)
}

func TestConfirmAcceptsPlainAnswer(t *testing.T) {
	t.Parallel()
	answers := &fakeAnswers{answer: "14:30"}
	uc := newInteractor(t, time.Date(2026, 5, 1, 14, 12, 0, 0, time.Local), answers, domain.DefaultPolicy())
	if err := uc.Confirm(context.Background(), dto.ConfirmInput{Prompts: []string{"-p", "time?"}}); err != nil {
		t.Fatalf("expected confirmation, got %v", err)
	}
	if len(answers.prompts) != 2 || answers.prompts[1] != "time?" {
		t.Fatalf("prompts must reach the selector, got %v", answers.prompts)
	}
}

func TestConfirmRejectsWrongAnswer(t *testing.T) {
	t.Parallel()
	uc := newInteractor(t, time.Date(2026, 5, 1, 14, 12, 0, 0, time.Local), &fakeAnswers{answer: "14:00"}, domain.DefaultPolicy())
	if err := uc.Confirm(context.Background(), dto.ConfirmInput{}); !errors.Is(err, apperrors.ErrChallengeFailed) {
		t.Fatalf("expected challenge failure, got %v", err)
	}
}

func TestConfirmCountdownPolicy(t *testing.T) {
	t.Parallel()
	policy := domain.Policy{Mode: domain.ModeCountdown, WakeHour: 8, BedtimeHour: 23}
	uc := newInteractor(t, time.Date(2026, 5, 1, 19, 0, 0, 0, time.Local), &fakeAnswers{answer: "4 hours until bedtime"}, policy)
	if err := uc.Confirm(context.Background(), dto.ConfirmInput{}); err != nil {
		t.Fatalf("expected countdown answer to pass, got %v", err)
	}
}

func TestConfirmPropagatesSelectorError(t *testing.T) {
	t.Parallel()
	boom := errors.New("dmenu missing")
	uc := newInteractor(t, time.Now(), &fakeAnswers{err: boom}, domain.DefaultPolicy())
	err := uc.Confirm(context.Background(), dto.ConfirmInput{})
	if !errors.Is(err, boom) || errors.Is(err, apperrors.ErrChallengeFailed) {
		t.Fatalf("expected selector error, got %v", err)
	}
}

func TestNewChallengeServiceRejectsInvalidPolicy(t *testing.T) {
	t.Parallel()
	if _, err := service.NewChallengeService(clock.SystemClock{}, &fakeAnswers{}, domain.Policy{Mode: "plain", WakeHour: 9, BedtimeHour: 3}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
