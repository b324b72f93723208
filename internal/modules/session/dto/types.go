package dto

import (
	"time"

	"diagonator/internal/platform/protocol"
)

type AddRequirementInput struct {
	Name string
	// Due is the operator-typed H:MM deadline.
	Due string
}

type CompleteRequirementInput struct {
	Prompts   []string
	SortByDue bool
}

type CompleteRequirementOutput struct {
	// Completed is false when there was nothing left to complete.
	Completed bool
	ID        uint64
	Name      string
}

type DeactivateInput struct {
	DurationSeconds int64
	Prompts         []string
}

type UnlockTimerInput struct {
	Confirm bool
	Prompts []string
}

type InfoOutput struct {
	Info protocol.SessionInfo
}

type RemainingTimeOutput struct {
	Info      protocol.SessionInfo
	Remaining time.Duration
	Scheduled bool
}

type SyncRequirementsOutput struct {
	Completed []string
}

type StatusOutput struct {
	Line string
	Info protocol.SessionInfo
}
