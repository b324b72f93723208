package service

import (
	"context"
	"fmt"

	"diagonator/internal/modules/challenge/domain"
	challengeout "diagonator/internal/modules/challenge/port/out"
	"diagonator/internal/platform/clock"
	apperrors "diagonator/internal/platform/errors"
)

type ChallengeService struct {
	clock   clock.Clock
	answers challengeout.AnswerSource
	policy  domain.Policy
}

func NewChallengeService(clock clock.Clock, answers challengeout.AnswerSource, policy domain.Policy) (*ChallengeService, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return &ChallengeService{clock: clock, answers: answers, policy: policy}, nil
}

// Verify reads an answer and checks it against the clock read after the
// operator finished typing.
func (s *ChallengeService) Verify(ctx context.Context, prompts []string) error {
	answer, err := s.answers.ReadAnswer(ctx, prompts)
	if err != nil {
		return fmt.Errorf("read challenge answer: %w", err)
	}
	if !domain.Accepts(answer, s.clock.Now(), s.policy.Answerer()) {
		return apperrors.ErrChallengeFailed
	}
	return nil
}
