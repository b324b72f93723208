package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// EarlyMorningHour is the first hour of a new day; earlier hours belong to the previous night.
	EarlyMorningHour = 4

	halfHour = 30 * 60
	day      = 24 * 3600
)

type Mode string

const (
	ModePlain     Mode = "plain"
	ModeCountdown Mode = "countdown"
)

// Answerer computes the expected answer for an instant.
type Answerer func(t time.Time) string

type Policy struct {
	Mode        Mode
	WakeHour    int
	BedtimeHour int
}

func DefaultPolicy() Policy {
	return Policy{Mode: ModePlain, WakeHour: 8, BedtimeHour: 23}
}

func (p Policy) Validate() error {
	switch p.Mode {
	case ModePlain, ModeCountdown:
	default:
		return fmt.Errorf("unknown challenge mode %q", p.Mode)
	}
	if p.WakeHour < EarlyMorningHour || p.WakeHour > 23 {
		return fmt.Errorf("wake hour must be between %d and 23, got %d", EarlyMorningHour, p.WakeHour)
	}
	if p.BedtimeHour <= p.WakeHour || p.BedtimeHour > 23 {
		return fmt.Errorf("bedtime hour must be after wake hour and at most 23, got %d", p.BedtimeHour)
	}
	return nil
}

func (p Policy) Answerer() Answerer {
	if p.Mode == ModeCountdown {
		return func(t time.Time) string { return CountdownAnswer(t, p.WakeHour, p.BedtimeHour) }
	}
	return PlainAnswer
}

// PlainAnswer is t rounded up to the next half-hour boundary at or after t, as HH:MM.
func PlainAnswer(t time.Time) string {
	s := secondsOfDay(t)
	rounded := (s + halfHour - 1) / halfHour * halfHour
	rounded %= day
	return fmt.Sprintf("%02d:%02d", rounded/3600, rounded%3600/60)
}

// CountdownAnswer describes the time left before wake-up or bedtime, falling
// back to PlainAnswer during the day.
func CountdownAnswer(t time.Time, wakeHour, bedtimeHour int) string {
	s := secondsOfDay(t)
	shifted := s
	if t.Hour() < EarlyMorningHour {
		shifted += day
	}
	wake := wakeHour * 3600
	bedtime := bedtimeHour * 3600
	wakeLabel := fmt.Sprintf("%02d:00", wakeHour)

	switch {
	case shifted >= bedtime:
		return describe(day+wake-shifted) + " until " + wakeLabel + " - no more work"
	case s > wake-3*3600 && s < wake:
		return describe(wake-s) + " until " + wakeLabel + " - no more work"
	case s >= bedtime-2*3600:
		return describe(bedtime-s) + " until bedtime - no more work"
	case s >= bedtime-4*3600:
		return describe(bedtime-s) + " until bedtime"
	default:
		return PlainAnswer(t)
	}
}

// Accepts checks the answer against t and t minus one minute, so an answer
// typed just before a boundary is still accepted after it.
func Accepts(answer string, t time.Time, expected Answerer) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	return answer == expected(t) || answer == expected(t.Add(-time.Minute))
}

// describe renders whole half-hour units, or minutes when less than one unit remains.
func describe(remaining int) string {
	units := remaining / halfHour
	if units == 0 {
		minutes := (remaining + 59) / 60
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := units / 2
	if units%2 == 1 {
		return fmt.Sprintf("%d.5 hours", hours)
	}
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

func secondsOfDay(t time.Time) int {
	s := t.Hour()*3600 + t.Minute()*60 + t.Second()
	if t.Nanosecond() > 0 {
		s++
	}
	return s
}
