package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"eventsort/internal/interval"
	"eventsort/internal/validation"
)

// displayLayout renders catalog instants without the stored milliseconds.
const displayLayout = "2006-01-02 15:04:05"

func parseID(arg, entity string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", entity, arg)
	}
	return id, nil
}

// parseBounds parses --start/--end flag values. A blank value stays zero so
// validation reports it as missing data instead of a parse error.
func parseBounds(start, end string) (interval.Interval, error) {
	var iv interval.Interval
	var err error
	if strings.TrimSpace(start) != "" {
		if iv.Start, err = interval.ParseStart(start); err != nil {
			return iv, fmt.Errorf("--start: %w", err)
		}
	}
	if strings.TrimSpace(end) != "" {
		if iv.End, err = interval.ParseEnd(end); err != nil {
			return iv, fmt.Errorf("--end: %w", err)
		}
	}
	return iv, nil
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(displayLayout)
}

func formatInterval(iv interval.Interval) (string, string) {
	return formatInstant(iv.Start), formatInstant(iv.End)
}

// rejection prefixes validation failures with their warning code.
func rejection(err error) error {
	if err == nil {
		return nil
	}
	if code, ok := validation.CodeFor(err); ok && code != validation.NoWarning {
		return fmt.Errorf("%s: %s: %w", code, validation.Message(code), err)
	}
	return err
}
