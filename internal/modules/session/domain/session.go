package domain

import (
	"fmt"
	"sort"
	"time"

	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/protocol"
)

type TimerKind string

const (
	TimerUnlocked TimerKind = "unlock"
	TimerLocked   TimerKind = "lock"
)

// DeactivationRecord is the audit row written after a successful deactivation.
type DeactivationRecord struct {
	At      time.Time
	State   protocol.State
	Reason  protocol.ReasonType
	Details string
}

type RequirementRecord struct {
	At   time.Time
	Name string
}

type TimerRecord struct {
	At   time.Time
	Kind TimerKind
}

func NewDeactivationRecord(at time.Time, snapshot protocol.SessionInfo) DeactivationRecord {
	return DeactivationRecord{
		At:      at,
		State:   snapshot.State,
		Reason:  snapshot.Reason.Type,
		Details: snapshot.JSON(),
	}
}

// SortByDue orders requirements by due time; requirements without one go last.
func SortByDue(reqs []protocol.Requirement) {
	sort.SliceStable(reqs, func(i, j int) bool {
		a, b := reqs[i].Due, reqs[j].Due
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

func Names(reqs []protocol.Requirement) []string {
	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		names = append(names, req.Name)
	}
	return names
}

// ResolveRequirement maps the picked text back to a requirement by exact name.
func ResolveRequirement(reqs []protocol.Requirement, choice string) (protocol.Requirement, error) {
	for _, req := range reqs {
		if req.Name == choice {
			return req, nil
		}
	}
	return protocol.Requirement{}, fmt.Errorf("%w: requirement with name %q", apperrors.ErrNotFound, choice)
}

// Remaining is the time until the next scheduled state change, if any.
func Remaining(info protocol.SessionInfo, now time.Time) (time.Duration, bool) {
	if info.Until == nil {
		return 0, false
	}
	d := info.Until.Time().Sub(now)
	if d < 0 {
		d = 0
	}
	return d.Truncate(time.Second), true
}

// FormatClock renders a duration as M:SS.
func FormatClock(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// StatusLine is the one-line rendering used by status bars.
func StatusLine(info protocol.SessionInfo, now time.Time) string {
	remaining := "no scheduled change"
	if d, ok := Remaining(info, now); ok {
		remaining = FormatClock(d) + " remaining"
	}
	switch info.State {
	case protocol.StateUnlockable:
		return "Session is unlockable"
	case protocol.StateLocked:
		return "Session is locked: " + remaining
	default:
		return "Session is unlocked: " + remaining
	}
}
