package stopwatch

import (
	"errors"
	"fmt"
	"time"

	"github.com/jwulff/tally/internal/task"
)

// manualLayouts are the accepted input formats for manual entry, tried
// in order: date plus time to the minute, then to the second.
var manualLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ErrStartNotBeforeEnd is returned when a manual interval's start time
// is equal to or after its end time.
var ErrStartNotBeforeEnd = errors.New("start time must be before end time")

// ParseManual builds an interval for d from two user-typed timestamps.
// Each field is parsed independently against the accepted formats; the
// result carries the same invariants as a stopwatch-emitted record.
func ParseManual(d task.Descriptor, startStr, endStr string) (Interval, error) {
	start, err := parseStamp(startStr)
	if err != nil {
		return Interval{}, fmt.Errorf("start time: %w", err)
	}
	end, err := parseStamp(endStr)
	if err != nil {
		return Interval{}, fmt.Errorf("end time: %w", err)
	}
	if !start.Before(end) {
		return Interval{}, ErrStartNotBeforeEnd
	}
	return newInterval(d, start, end), nil
}

// parseStamp tries each accepted layout in order and takes the first
// successful parse, in local time.
func parseStamp(s string) (time.Time, error) {
	for _, layout := range manualLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD HH:MM or YYYY-MM-DD HH:MM:SS", s)
}
