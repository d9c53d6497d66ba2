package interval

import (
	"fmt"
	"strings"
	"time"
)

// StorageLayout is the canonical text form used for persisted instants. It
// sorts lexicographically in chronological order.
const StorageLayout = "2006-01-02 15:04:05.000"

const dateLayout = "2006-01-02"

var inputLayouts = []string{
	StorageLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// Format renders t in StorageLayout.
func Format(t time.Time) string {
	return t.Format(StorageLayout)
}

// Naive strips any zone information from t, keeping the wall-clock reading.
func Naive(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Stored reduces t to what StorageLayout persists: the naive wall-clock
// reading truncated to the millisecond.
func Stored(t time.Time) time.Time {
	return Naive(t).Truncate(time.Millisecond)
}

// Parse reads a persisted or operator-entered instant as a naive value.
func Parse(value string) (time.Time, error) {
	t, _, err := parse(value)
	return t, err
}

// ParseStart parses a lower bound. A bare date means midnight.
func ParseStart(value string) (time.Time, error) {
	t, _, err := parse(value)
	return t, err
}

// ParseEnd parses an upper bound. A bare date means the last stored
// millisecond of that day.
func ParseEnd(value string) (time.Time, error) {
	t, dateOnly, err := parse(value)
	if err != nil {
		return time.Time{}, err
	}
	if dateOnly {
		t = EndOfDay(t)
	}
	return t, nil
}

// ParseRange parses both bounds of an interval.
func ParseRange(start, end string) (Interval, error) {
	s, err := ParseStart(start)
	if err != nil {
		return Interval{}, fmt.Errorf("start: %w", err)
	}
	e, err := ParseEnd(end)
	if err != nil {
		return Interval{}, fmt.Errorf("end: %w", err)
	}
	return Interval{Start: s, End: e}, nil
}

// EndOfDay returns 23:59:59.999 on the day of t, the latest instant
// StorageLayout can represent.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

func parse(value string) (time.Time, bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false, fmt.Errorf("empty time value")
	}
	if t, err := time.ParseInLocation(dateLayout, trimmed, time.UTC); err == nil {
		return t, true, nil
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized time value %q", trimmed)
}
