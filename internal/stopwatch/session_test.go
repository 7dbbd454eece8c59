package stopwatch

import (
	"errors"
	"testing"
	"time"

	"github.com/jwulff/tally/internal/task"
)

var testDesc = task.Descriptor{Type: "code", Tag: "sprint", Name: "refactor store"}

func TestSessionStartStop(t *testing.T) {
	var s Session
	t0 := time.Date(2023, 10, 27, 9, 0, 0, 0, time.Local)

	if err := s.Start(testDesc, t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.Running() {
		t.Error("session should be running after Start")
	}

	t1 := t0.Add(90 * time.Minute)
	iv, err := s.Stop(testDesc, t1)
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if s.Running() {
		t.Error("session should be stopped after Stop")
	}
	if iv.Duration != 5400.0 {
		t.Errorf("duration = %v, want 5400.0", iv.Duration)
	}
	if !iv.End.After(iv.Start.Time) {
		t.Error("end must be after start")
	}
	if iv.Type != "code" || iv.Tag != "sprint" || iv.Name != "refactor store" {
		t.Errorf("descriptor not carried into interval: %+v", iv)
	}

	last, ok := s.LastDuration()
	if !ok {
		t.Fatal("LastDuration should be set after Stop")
	}
	if last != 90*time.Minute {
		t.Errorf("last duration = %v, want 90m", last)
	}
}

func TestSessionStopImmediately(t *testing.T) {
	var s Session
	t0 := time.Date(2023, 10, 27, 9, 0, 0, 0, time.Local)

	if err := s.Start(testDesc, t0); err != nil {
		t.Fatalf("Start: %v", err)
	}

	iv, err := s.Stop(testDesc, t0.Add(time.Millisecond))
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if iv.Duration != 0.001 {
		t.Errorf("duration = %v, want 0.001", iv.Duration)
	}
	if !iv.End.After(iv.Start.Time) {
		t.Error("end must be after start even for near-zero intervals")
	}
}

func TestSessionStartWhileRunning(t *testing.T) {
	var s Session
	t0 := time.Now()

	if err := s.Start(testDesc, t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(testDesc, t0.Add(time.Second)); !errors.Is(err, ErrRunning) {
		t.Errorf("second Start = %v, want ErrRunning", err)
	}
	if s.Elapsed(t0.Add(time.Minute)) != time.Minute {
		t.Error("rejected Start must not move the start time")
	}
}

func TestSessionStartIncompleteDescriptor(t *testing.T) {
	var s Session

	incomplete := []task.Descriptor{
		{},
		{Type: "code"},
		{Type: "code", Tag: "sprint"},
		{Tag: "sprint", Name: "refactor"},
	}
	for _, d := range incomplete {
		if err := s.Start(d, time.Now()); !errors.Is(err, ErrIncompleteTask) {
			t.Errorf("Start(%+v) = %v, want ErrIncompleteTask", d, err)
		}
		if s.Running() {
			t.Errorf("Start(%+v) must not start the session", d)
		}
	}
}

func TestSessionStopWhileStopped(t *testing.T) {
	var s Session
	if _, err := s.Stop(testDesc, time.Now()); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Stop = %v, want ErrNotRunning", err)
	}
}

func TestSessionElapsed(t *testing.T) {
	var s Session
	t0 := time.Now()

	if got := s.Elapsed(t0); got != 0 {
		t.Errorf("Elapsed while stopped = %v, want 0", got)
	}

	s.Start(testDesc, t0)
	if got := s.Elapsed(t0.Add(42 * time.Second)); got != 42*time.Second {
		t.Errorf("Elapsed = %v, want 42s", got)
	}
}
