package protocol

import (
	"encoding/json"
	"fmt"

	apperrors "diagonator/internal/platform/errors"
)

type State string

const (
	StateUnlockable State = "Unlockable"
	StateLocked     State = "Locked"
	StateUnlocked   State = "Unlocked"
)

func (s State) Validate() error {
	switch s {
	case StateUnlockable, StateLocked, StateUnlocked:
		return nil
	default:
		return fmt.Errorf("%w: unknown session state %q", apperrors.ErrProtocol, string(s))
	}
}

type ReasonType string

const (
	ReasonBreakTimer        ReasonType = "BreakTimer"
	ReasonRequirementNotMet ReasonType = "RequirementNotMet"
	ReasonLockedTimeRange   ReasonType = "LockedTimeRange"
	ReasonNoConstraints     ReasonType = "NoConstraints"
)

// Reason explains the current state. ID is set for RequirementNotMet and LockedTimeRange.
type Reason struct {
	Type ReasonType `json:"type"`
	ID   *uint64    `json:"id,omitempty"`
}

func (r Reason) Validate() error {
	switch r.Type {
	case ReasonBreakTimer, ReasonNoConstraints:
		return nil
	case ReasonRequirementNotMet, ReasonLockedTimeRange:
		if r.ID == nil {
			return fmt.Errorf("%w: reason %s requires an id", apperrors.ErrProtocol, r.Type)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown reason type %q", apperrors.ErrProtocol, string(r.Type))
	}
}

// Blocking reports whether the reason keeps the session from being unlockable.
func (r Reason) Blocking() bool {
	return r.Type == ReasonRequirementNotMet || r.Type == ReasonLockedTimeRange
}

func (r Reason) String() string {
	if r.ID != nil {
		return fmt.Sprintf("%s(%d)", r.Type, *r.ID)
	}
	return string(r.Type)
}

type Requirement struct {
	ID       uint64     `json:"id"`
	Name     string     `json:"name"`
	Due      *TimeOfDay `json:"due"`
	Complete bool       `json:"complete"`
}

type LockedTimeRange struct {
	ID    uint64     `json:"id"`
	Start *TimeOfDay `json:"start"`
	End   *TimeOfDay `json:"end"`
}

type SessionInfo struct {
	State            State             `json:"state"`
	Reason           Reason            `json:"reason"`
	Until            *Timestamp        `json:"until"`
	Requirements     []Requirement     `json:"requirements"`
	LockedTimeRanges []LockedTimeRange `json:"locked_time_ranges"`
}

// Validate checks the cross-field invariants of a server snapshot.
func (s SessionInfo) Validate() error {
	if err := s.State.Validate(); err != nil {
		return err
	}
	if err := s.Reason.Validate(); err != nil {
		return err
	}
	if s.State == StateUnlockable && s.Reason.Blocking() {
		return fmt.Errorf("%w: unlockable session carries blocking reason %s", apperrors.ErrProtocol, s.Reason)
	}
	switch s.Reason.Type {
	case ReasonRequirementNotMet:
		if _, ok := s.Requirement(*s.Reason.ID); !ok {
			return fmt.Errorf("%w: reason references unknown requirement %d", apperrors.ErrProtocol, *s.Reason.ID)
		}
	case ReasonLockedTimeRange:
		if _, ok := s.LockedTimeRange(*s.Reason.ID); !ok {
			return fmt.Errorf("%w: reason references unknown locked time range %d", apperrors.ErrProtocol, *s.Reason.ID)
		}
	}
	return nil
}

func (s SessionInfo) Requirement(id uint64) (Requirement, bool) {
	for _, req := range s.Requirements {
		if req.ID == id {
			return req, true
		}
	}
	return Requirement{}, false
}

func (s SessionInfo) LockedTimeRange(id uint64) (LockedTimeRange, bool) {
	for _, ltr := range s.LockedTimeRanges {
		if ltr.ID == id {
			return ltr, true
		}
	}
	return LockedTimeRange{}, false
}

// Incomplete returns the requirements still pending, in server order.
func (s SessionInfo) Incomplete() []Requirement {
	out := make([]Requirement, 0, len(s.Requirements))
	for _, req := range s.Requirements {
		if !req.Complete {
			out = append(out, req)
		}
	}
	return out
}

// JSON renders the snapshot for audit rows.
func (s SessionInfo) JSON() string {
	payload, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(payload)
}
