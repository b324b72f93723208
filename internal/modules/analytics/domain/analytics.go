package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/protocol"
)

const (
	DateLayout  = "2006-01-02"
	HoursPerDay = 24
)

// DateRange is an inclusive pair of local calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDateRange requires both bounds; a missing bound is a caller error.
func ParseDateRange(from, to string) (DateRange, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return DateRange{}, fmt.Errorf("%w: both from and to dates are required", apperrors.ErrInvalidInput)
	}
	start, err := time.ParseInLocation(DateLayout, from, time.Local)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: from date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, from)
	}
	end, err := time.ParseInLocation(DateLayout, to, time.Local)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: to date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, to)
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("%w: from %s is after to %s", apperrors.ErrInvalidInput, from, to)
	}
	return DateRange{From: start, To: end}, nil
}

func (r DateRange) FromDate() string { return r.From.Format(DateLayout) }
func (r DateRange) ToDate() string   { return r.To.Format(DateLayout) }

type DeactivationRow struct {
	Date    string
	Seconds int
	State   protocol.State
	Reason  protocol.ReasonType
}

type RequirementRow struct {
	Date    string
	Seconds int
	Name    string
}

type Bucket int

const (
	BucketUnlockable Bucket = iota
	BucketBreakTimer
	BucketRequirementNotMet
	BucketOther
	bucketCount
)

// Buckets lists every bucket in stacking order.
var Buckets = [bucketCount]Bucket{BucketUnlockable, BucketBreakTimer, BucketRequirementNotMet, BucketOther}

func (b Bucket) String() string {
	switch b {
	case BucketUnlockable:
		return "Unlockable"
	case BucketBreakTimer:
		return "Break Timer"
	case BucketRequirementNotMet:
		return "Requirement Not Met"
	default:
		return "Locked Time Range"
	}
}

// Classify assigns exactly one bucket. Unlockable wins over any reason, then
// BreakTimer, then RequirementNotMet; everything else is Other.
func Classify(state protocol.State, reason protocol.ReasonType) Bucket {
	switch {
	case state == protocol.StateUnlockable:
		return BucketUnlockable
	case reason == protocol.ReasonBreakTimer:
		return BucketBreakTimer
	case reason == protocol.ReasonRequirementNotMet:
		return BucketRequirementNotMet
	default:
		return BucketOther
	}
}

// Histogram counts deactivations per clock hour, stacked by bucket.
type Histogram struct {
	Bins [HoursPerDay][bucketCount]int
}

func HourOf(seconds int) int {
	hour := seconds / 3600
	if hour < 0 {
		return 0
	}
	if hour >= HoursPerDay {
		return HoursPerDay - 1
	}
	return hour
}

func BuildHistogram(rows []DeactivationRow) Histogram {
	var h Histogram
	for _, row := range rows {
		h.Bins[HourOf(row.Seconds)][Classify(row.State, row.Reason)]++
	}
	return h
}

func (h Histogram) Total() int {
	total := 0
	for hour := range h.Bins {
		total += h.HourTotal(hour)
	}
	return total
}

func (h Histogram) HourTotal(hour int) int {
	total := 0
	for _, n := range h.Bins[hour] {
		total += n
	}
	return total
}

func (h Histogram) BucketTotal(b Bucket) int {
	total := 0
	for hour := range h.Bins {
		total += h.Bins[hour][b]
	}
	return total
}

type Point struct {
	Date  string
	Hours float64
}

type RequirementSeries struct {
	Name        string
	Points      []Point
	MedianHours float64
}

// BuildRequirementSeries groups completions by name; series are sorted by
// name and points by date then time.
func BuildRequirementSeries(rows []RequirementRow) []RequirementSeries {
	byName := map[string][]RequirementRow{}
	for _, row := range rows {
		byName[row.Name] = append(byName[row.Name], row)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	series := make([]RequirementSeries, 0, len(names))
	for _, name := range names {
		group := byName[name]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Date != group[j].Date {
				return group[i].Date < group[j].Date
			}
			return group[i].Seconds < group[j].Seconds
		})
		points := make([]Point, 0, len(group))
		hours := make([]float64, 0, len(group))
		for _, row := range group {
			h := float64(row.Seconds) / 3600
			points = append(points, Point{Date: row.Date, Hours: h})
			hours = append(hours, h)
		}
		series = append(series, RequirementSeries{Name: name, Points: points, MedianHours: Median(hours)})
	}
	return series
}

// Median of an empty slice is 0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// FormatHours renders fractional hours as HH:MM.
func FormatHours(hours float64) string {
	minutes := int(hours*60 + 0.5)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
