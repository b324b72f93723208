package domain_test

import (
	"errors"
	"testing"
	"time"

	"diagonator/internal/modules/session/domain"
	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/protocol"
)

func due(t *testing.T, raw string) *protocol.TimeOfDay {
	t.Helper()
	v, err := protocol.ParseTimeOfDay(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return &v
}

func TestSortByDueKeepsUndatedLast(t *testing.T) {
	t.Parallel()
	reqs := []protocol.Requirement{
		{ID: 1, Name: "journal"},
		{ID: 2, Name: "dishes", Due: due(t, "20:00")},
		{ID: 3, Name: "walk", Due: due(t, "9:00")},
		{ID: 4, Name: "plants"},
	}
	domain.SortByDue(reqs)
	got := domain.Names(reqs)
	want := []string{"walk", "dishes", "journal", "plants"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSortByDueUsesServerInstants(t *testing.T) {
	t.Parallel()
	evening := time.Date(2026, 5, 1, 20, 0, 0, 0, time.Local)
	afterMidnight := time.Date(2026, 5, 2, 0, 30, 0, 0, time.Local)
	late := protocol.TimeOfDayFromUnix(afterMidnight.Unix(), time.Local)
	early := protocol.TimeOfDayFromUnix(evening.Unix(), time.Local)
	reqs := []protocol.Requirement{
		{ID: 1, Name: "lights out", Due: &late},
		{ID: 2, Name: "dishes", Due: &early},
	}
	domain.SortByDue(reqs)
	if got := domain.Names(reqs); got[0] != "dishes" || got[1] != "lights out" {
		t.Fatalf("expected evening deadline first, got %v", got)
	}
	if at, ok := late.Instant(); !ok || !at.Equal(afterMidnight) {
		t.Fatalf("expected instant %v, got %v %v", afterMidnight, at, ok)
	}
}

func TestResolveRequirementExactMatch(t *testing.T) {
	t.Parallel()
	reqs := []protocol.Requirement{{ID: 1, Name: "walk"}, {ID: 2, Name: "walk dog"}}
	req, err := domain.ResolveRequirement(reqs, "walk dog")
	if err != nil || req.ID != 2 {
		t.Fatalf("expected id 2, got %+v %v", req, err)
	}
	if _, err := domain.ResolveRequirement(reqs, "Walk"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for case mismatch, got %v", err)
	}
	if _, err := domain.ResolveRequirement(reqs, ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for empty choice, got %v", err)
	}
}

func TestStatusLine(t *testing.T) {
	t.Parallel()
	now := time.Unix(1_800_000_000, 0)
	until := protocol.Timestamp(now.Add(3*time.Minute + 7*time.Second).Unix())
	locked := protocol.SessionInfo{State: protocol.StateLocked, Until: &until}
	if got := domain.StatusLine(locked, now); got != "Session is locked: 3:07 remaining" {
		t.Fatalf("unexpected locked line %q", got)
	}
	unlocked := protocol.SessionInfo{State: protocol.StateUnlocked}
	if got := domain.StatusLine(unlocked, now); got != "Session is unlocked: no scheduled change" {
		t.Fatalf("unexpected unlocked line %q", got)
	}
	if got := domain.StatusLine(protocol.SessionInfo{State: protocol.StateUnlockable}, now); got != "Session is unlockable" {
		t.Fatalf("unexpected unlockable line %q", got)
	}
}

func TestNewDeactivationRecordCapturesSnapshot(t *testing.T) {
	t.Parallel()
	info := protocol.SessionInfo{State: protocol.StateUnlocked, Reason: protocol.Reason{Type: protocol.ReasonBreakTimer}}
	rec := domain.NewDeactivationRecord(time.Now(), info)
	if rec.State != protocol.StateUnlocked || rec.Reason != protocol.ReasonBreakTimer || rec.Details == "" {
		t.Fatalf("unexpected record %+v", rec)
	}
}
