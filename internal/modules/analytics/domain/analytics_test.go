package domain_test

import (
	"errors"
	"testing"

	"diagonator/internal/modules/analytics/domain"
	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/protocol"
)

func TestParseDateRange(t *testing.T) {
	t.Parallel()
	r, err := domain.ParseDateRange("2026-04-01", "2026-04-30")
	if err != nil {
		t.Fatalf("parse range: %v", err)
	}
	if r.FromDate() != "2026-04-01" || r.ToDate() != "2026-04-30" {
		t.Fatalf("unexpected range %s..%s", r.FromDate(), r.ToDate())
	}
	if _, err := domain.ParseDateRange("2026-04-01", "2026-04-01"); err != nil {
		t.Fatalf("single day range must be valid: %v", err)
	}
	for _, tc := range [][2]string{
		{"", "2026-04-30"},
		{"2026-04-01", ""},
		{"  ", " "},
		{"04/01/2026", "2026-04-30"},
		{"2026-04-01", "2026-13-01"},
		{"2026-05-01", "2026-04-30"},
	} {
		if _, err := domain.ParseDateRange(tc[0], tc[1]); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%q..%q: expected invalid input, got %v", tc[0], tc[1], err)
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	t.Parallel()
	cases := []struct {
		state  protocol.State
		reason protocol.ReasonType
		want   domain.Bucket
	}{
		{protocol.StateUnlockable, protocol.ReasonBreakTimer, domain.BucketUnlockable},
		{protocol.StateUnlockable, protocol.ReasonRequirementNotMet, domain.BucketUnlockable},
		{protocol.StateUnlockable, protocol.ReasonNoConstraints, domain.BucketUnlockable},
		{protocol.StateLocked, protocol.ReasonBreakTimer, domain.BucketBreakTimer},
		{protocol.StateUnlocked, protocol.ReasonBreakTimer, domain.BucketBreakTimer},
		{protocol.StateLocked, protocol.ReasonRequirementNotMet, domain.BucketRequirementNotMet},
		{protocol.StateLocked, protocol.ReasonLockedTimeRange, domain.BucketOther},
		{protocol.StateUnlocked, protocol.ReasonNoConstraints, domain.BucketOther},
		{protocol.State("Mystery"), protocol.ReasonType(""), domain.BucketOther},
	}
	for _, tc := range cases {
		if got := domain.Classify(tc.state, tc.reason); got != tc.want {
			t.Fatalf("%s/%s: expected %s, got %s", tc.state, tc.reason, tc.want, got)
		}
	}
}

func TestHistogramBucketsSumToRowCount(t *testing.T) {
	t.Parallel()
	states := []protocol.State{protocol.StateUnlockable, protocol.StateLocked, protocol.StateUnlocked}
	reasons := []protocol.ReasonType{
		protocol.ReasonBreakTimer,
		protocol.ReasonRequirementNotMet,
		protocol.ReasonLockedTimeRange,
		protocol.ReasonNoConstraints,
	}
	var rows []domain.DeactivationRow
	for i := 0; i < 200; i++ {
		rows = append(rows, domain.DeactivationRow{
			Date:    "2026-04-01",
			Seconds: (i * 977) % 86400,
			State:   states[i%len(states)],
			Reason:  reasons[i%len(reasons)],
		})
	}
	rows = append(rows, domain.DeactivationRow{Seconds: 86400 + 30}, domain.DeactivationRow{Seconds: -5})
	h := domain.BuildHistogram(rows)
	if h.Total() != len(rows) {
		t.Fatalf("expected %d rows in histogram, got %d", len(rows), h.Total())
	}
	sum := 0
	for _, b := range domain.Buckets {
		sum += h.BucketTotal(b)
	}
	if sum != len(rows) {
		t.Fatalf("bucket totals %d do not match row count %d", sum, len(rows))
	}
	if h.Bins[23][domain.BucketOther] == 0 || h.Bins[0][domain.BucketOther] == 0 {
		t.Fatalf("out of range times must be clamped into the first and last bins")
	}
}

func TestHistogramHourBins(t *testing.T) {
	t.Parallel()
	rows := []domain.DeactivationRow{
		{Seconds: 13*3600 + 59*60, State: protocol.StateLocked, Reason: protocol.ReasonBreakTimer},
		{Seconds: 14 * 3600, State: protocol.StateUnlockable, Reason: protocol.ReasonBreakTimer},
	}
	h := domain.BuildHistogram(rows)
	if h.Bins[13][domain.BucketBreakTimer] != 1 || h.Bins[14][domain.BucketUnlockable] != 1 {
		t.Fatalf("unexpected bins %v %v", h.Bins[13], h.Bins[14])
	}
	if h.HourTotal(12) != 0 {
		t.Fatalf("expected empty 12:00 bin")
	}
}

func TestBuildRequirementSeries(t *testing.T) {
	t.Parallel()
	rows := []domain.RequirementRow{
		{Date: "2026-04-03", Seconds: 9 * 3600, Name: "walk"},
		{Date: "2026-04-01", Seconds: 7 * 3600, Name: "walk"},
		{Date: "2026-04-02", Seconds: 20 * 3600, Name: "dishes"},
		{Date: "2026-04-02", Seconds: 8 * 3600, Name: "walk"},
		{Date: "2026-04-04", Seconds: 11 * 3600, Name: "walk"},
	}
	series := domain.BuildRequirementSeries(rows)
	if len(series) != 2 || series[0].Name != "dishes" || series[1].Name != "walk" {
		t.Fatalf("unexpected series %+v", series)
	}
	walk := series[1]
	if walk.Points[0].Date != "2026-04-01" || walk.Points[3].Date != "2026-04-04" {
		t.Fatalf("points must be sorted by date, got %+v", walk.Points)
	}
	if walk.MedianHours != 8.5 {
		t.Fatalf("expected median 8.5, got %v", walk.MedianHours)
	}
	if series[0].MedianHours != 20 {
		t.Fatalf("expected median 20, got %v", series[0].MedianHours)
	}
}

func TestMedianAndFormatHours(t *testing.T) {
	t.Parallel()
	if domain.Median(nil) != 0 {
		t.Fatalf("median of nothing must be zero")
	}
	if got := domain.Median([]float64{3, 1, 2}); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
	if got := domain.FormatHours(8.5); got != "08:30" {
		t.Fatalf("expected 08:30, got %s", got)
	}
	if got := domain.FormatHours(21.0 + 59.0/60); got != "21:59" {
		t.Fatalf("expected 21:59, got %s", got)
	}
}
