package out

import (
	"context"
	"time"

	"diagonator/internal/modules/session/domain"
	"diagonator/internal/platform/protocol"
)

// Transport carries one request and waits for its paired response.
type Transport interface {
	RoundTrip(ctx context.Context, req protocol.Request) (protocol.Response, error)
	Close() error
}

type EventLog interface {
	// Enabled reports whether rows are actually persisted.
	Enabled() bool
	AppendDeactivation(ctx context.Context, record domain.DeactivationRecord) error
	AppendRequirement(ctx context.Context, record domain.RequirementRecord) error
	AppendTimer(ctx context.Context, record domain.TimerRecord) error
	// RequirementsCompletedOn lists requirement names logged on day's local date.
	RequirementsCompletedOn(ctx context.Context, day time.Time) ([]string, error)
}

type RequirementPicker interface {
	Pick(ctx context.Context, names []string, prompts []string) (string, error)
}
