// Package stopwatch implements the time-recording state machine: a
// run/stop stopwatch bound to a task descriptor, manual dual-timestamp
// entry, and the immutable interval records both paths emit.
package stopwatch

import (
	"fmt"
	"math"
	"time"

	"github.com/jwulff/tally/internal/task"
	"gopkg.in/yaml.v3"
)

// stampLayout is the persisted timestamp format: local wall-clock time
// with millisecond precision, no zone offset.
const stampLayout = "2006-01-02T15:04:05.000"

// Timestamp is a local wall-clock time that round-trips through the
// record file with millisecond precision.
type Timestamp struct {
	time.Time
}

// MarshalYAML implements yaml.Marshaler.
func (t Timestamp) MarshalYAML() (any, error) {
	return t.Format(stampLayout), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseInLocation(stampLayout, node.Value, time.Local)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", node.Value, err)
	}
	t.Time = parsed
	return nil
}

// Interval is a completed span of tracked time. Records are append-only:
// once written they are never mutated or deleted by these tools.
type Interval struct {
	Type     string    `yaml:"type"`
	Tag      string    `yaml:"tag"`
	Name     string    `yaml:"name"`
	Start    Timestamp `yaml:"start"`
	End      Timestamp `yaml:"end"`
	Duration float64   `yaml:"duration"`
}

// newInterval builds a record for d spanning [start, end). The caller
// guarantees start < end; duration is seconds rounded to 3 decimals.
func newInterval(d task.Descriptor, start, end time.Time) Interval {
	return Interval{
		Type:     d.Type,
		Tag:      d.Tag,
		Name:     d.Name,
		Start:    Timestamp{start},
		End:      Timestamp{end},
		Duration: roundSeconds(end.Sub(start)),
	}
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
