package stopwatch

import (
	"errors"
	"time"

	"github.com/jwulff/tally/internal/task"
)

var (
	// ErrRunning is returned when an operation requires a stopped
	// stopwatch: starting again, editing the descriptor, manual entry,
	// or quitting.
	ErrRunning = errors.New("stopwatch is running")

	// ErrNotRunning is returned by Stop when nothing was started.
	ErrNotRunning = errors.New("stopwatch is not running")

	// ErrIncompleteTask is returned when the current descriptor is
	// missing a field. Type, tag and name must all be set before any
	// time can be recorded against them.
	ErrIncompleteTask = errors.New("task type, tag and name must all be set")
)

// Session is the in-memory stopwatch state. It is never persisted;
// only the intervals it emits are. The zero value is a stopped session.
type Session struct {
	running      bool
	startTime    time.Time
	lastDuration time.Duration
	hasLast      bool
}

// Running reports whether the stopwatch is currently running.
func (s *Session) Running() bool { return s.running }

// Elapsed returns the time accumulated so far, zero when stopped.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if !s.running {
		return 0
	}
	return now.Sub(s.startTime)
}

// LastDuration returns the duration of the most recently recorded
// interval, for status display. ok is false until the first stop.
func (s *Session) LastDuration() (time.Duration, bool) {
	return s.lastDuration, s.hasLast
}

// Start begins timing against d. The descriptor must be complete and
// the stopwatch stopped; otherwise nothing changes.
func (s *Session) Start(d task.Descriptor, now time.Time) error {
	if s.running {
		return ErrRunning
	}
	if !d.Valid() {
		return ErrIncompleteTask
	}
	s.running = true
	s.startTime = now
	return nil
}

// Stop ends the running session and emits the completed interval for d.
// The session is reset to stopped with no start time; the interval's
// duration is remembered for status display.
func (s *Session) Stop(d task.Descriptor, now time.Time) (Interval, error) {
	if !s.running {
		return Interval{}, ErrNotRunning
	}
	duration := now.Sub(s.startTime)

	s.running = false
	s.startTime = time.Time{}
	s.lastDuration = duration
	s.hasLast = true

	return newInterval(d, now.Add(-duration), now), nil
}
