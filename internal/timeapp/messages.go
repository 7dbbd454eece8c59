package timeapp

import (
	"time"

	"github.com/jwulff/tally/internal/stopwatch"
)

// tickMsg drives the live elapsed-time redraw once per configured tick.
type tickMsg time.Time

// intervalsLoadedMsg carries the record file contents read at startup.
// warn is set when the file existed but could not be parsed; the
// session continues with an empty list.
type intervalsLoadedMsg struct {
	intervals []stopwatch.Interval
	warn      string
}

// clearMessageMsg expires a transient status message. seq guards
// against a stale timer clearing a newer message.
type clearMessageMsg struct {
	seq int
}
