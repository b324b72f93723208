package out

import (
	"context"
	"time"

	"diagonator/internal/modules/session/domain"
	sessionout "diagonator/internal/modules/session/port/out"
)

// DisabledEventLog is used when no analytics file is configured.
type DisabledEventLog struct{}

func NewDisabledEventLog() sessionout.EventLog { return DisabledEventLog{} }

func (DisabledEventLog) Enabled() bool { return false }

func (DisabledEventLog) AppendDeactivation(context.Context, domain.DeactivationRecord) error {
	return nil
}

func (DisabledEventLog) AppendRequirement(context.Context, domain.RequirementRecord) error {
	return nil
}

func (DisabledEventLog) AppendTimer(context.Context, domain.TimerRecord) error { return nil }

func (DisabledEventLog) RequirementsCompletedOn(context.Context, time.Time) ([]string, error) {
	return nil, nil
}
