package protocol

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var timeOfDayPattern = regexp.MustCompile(`^(\d?\d):(\d\d)$`)

// TimeOfDay is a local wall-clock time stored as minutes since midnight.
// Values decoded from server timestamps also keep the instant.
type TimeOfDay struct {
	minutes int
	unix    int64
	dated   bool
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time is out of range: %02d:%02d", hour, minute)
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay accepts "H:MM" and "HH:MM".
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	m := timeOfDayPattern.FindStringSubmatch(raw)
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("failed to parse time from string: %q", raw)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return NewTimeOfDay(hour, minute)
}

// TimeOfDayFromUnix converts a server timestamp into the local time of day.
func TimeOfDayFromUnix(sec int64, loc *time.Location) TimeOfDay {
	if loc == nil {
		loc = time.Local
	}
	t := time.Unix(sec, 0).In(loc)
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute(), unix: sec, dated: true}
}

// Instant returns the server timestamp this value was decoded from, if any.
func (t TimeOfDay) Instant() (time.Time, bool) {
	if !t.dated {
		return time.Time{}, false
	}
	return time.Unix(t.unix, 0), true
}

// Before orders two times of day. Instants are compared when both carry one,
// so a deadline after midnight sorts after the evening.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.dated && other.dated {
		return t.unix < other.unix
	}
	return t.minutes < other.minutes
}

func (t TimeOfDay) Hour() int   { return t.minutes / 60 }
func (t TimeOfDay) Minute() int { return t.minutes % 60 }

// Minutes returns the minutes since midnight.
func (t TimeOfDay) Minutes() int { return t.minutes }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the server's unix-seconds integers as well as "HH:MM" strings.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := ParseTimeOfDay(raw)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}
	var sec int64
	if err := json.Unmarshal(data, &sec); err != nil {
		return fmt.Errorf("time of day must be a string or unix seconds: %w", err)
	}
	*t = TimeOfDayFromUnix(sec, time.Local)
	return nil
}

// Timestamp is an instant encoded as unix seconds on the wire.
type Timestamp int64

func TimestampFrom(t time.Time) Timestamp { return Timestamp(t.Unix()) }

func (t Timestamp) Time() time.Time { return time.Unix(int64(t), 0) }
