package clock

import (
	"fmt"
	"strings"
	"time"
)

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60

	// UnknownLabel is shown instead of a countdown when the release instant
	// cannot be interpreted.
	UnknownLabel = "TO BE ANNOUNCED"
)

// RemainingTime is the time left until a release instant, decomposed for
// display. It is never stored; callers recompute it from (now, target).
type RemainingTime struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int

	// Known is false for the Unknown sentinel.
	Known bool
}

// Unknown is returned when the release instant is missing or unparseable.
var Unknown = RemainingTime{}

// Project computes the remaining time from now until target. Partial seconds
// are dropped, and anything at or past target is clamped to zero.
func Project(now, target time.Time) RemainingTime {
	if target.IsZero() {
		return Unknown
	}
	var delta int64
	if d := target.Sub(now); d > 0 {
		delta = int64(d / time.Second)
	}
	return fromSeconds(delta)
}

// ProjectString parses raw as a release instant and projects it. It never
// fails: bad input yields Unknown.
func ProjectString(now time.Time, raw string) RemainingTime {
	target, err := ParseInstant(raw)
	if err != nil {
		return Unknown
	}
	return Project(now, target)
}

func fromSeconds(delta int64) RemainingTime {
	r := RemainingTime{Known: true}
	r.Days = int(delta / secondsPerDay)
	delta %= secondsPerDay
	r.Hours = int(delta / secondsPerHour)
	delta %= secondsPerHour
	r.Minutes = int(delta / secondsPerMinute)
	r.Seconds = int(delta % secondsPerMinute)
	return r
}

// Total returns the remaining time as whole seconds.
func (r RemainingTime) Total() int64 {
	return int64(r.Days)*secondsPerDay +
		int64(r.Hours)*secondsPerHour +
		int64(r.Minutes)*secondsPerMinute +
		int64(r.Seconds)
}

// Released reports whether the countdown reached zero.
func (r RemainingTime) Released() bool {
	return r.Known && r.Total() == 0
}

// Urgent reports whether the release is less than a day away. A released
// countdown is also urgent; views check Released first to show it as out.
func (r RemainingTime) Urgent() bool {
	return r.Known && r.Days == 0 && r.Hours < 24
}

// String renders the countdown as "03d 04h 05m 06s", or UnknownLabel.
func (r RemainingTime) String() string {
	if !r.Known {
		return UnknownLabel
	}
	return fmt.Sprintf("%02dd %02dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}

var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseInstant parses an absolute release instant. Layouts without a zone
// are taken as UTC. The result is always in UTC.
func ParseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("clock: empty instant")
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("clock: unrecognised instant %q", raw)
}

// FormatInstant renders t the way release instants are exchanged.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
