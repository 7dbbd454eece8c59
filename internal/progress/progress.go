// Package progress tracks discrete numeric progress against tasks
// identified by their 6-digit hash: bounded counters with clamped
// deltas, duplicate-rejecting inserts, and hash-prefix lookup.
package progress

import (
	"errors"
	"fmt"

	"github.com/jwulff/tally/internal/task"
)

// Task is a persisted unit of work with a bounded completion counter.
// The YAML field names match the original data files and must stay
// stable for round-trip compatibility.
type Task struct {
	Hash    string `yaml:"hash"`
	Type    string `yaml:"type"`
	Tag     string `yaml:"tag"`
	Name    string `yaml:"name"`
	Total   int    `yaml:"total_digit"`
	Current int    `yaml:"current_progress"`
}

// Descriptor returns the identity triple for the task.
func (t *Task) Descriptor() task.Descriptor {
	return task.Descriptor{Type: t.Type, Tag: t.Tag, Name: t.Name}
}

// ApplyDelta adds delta to the counter, clamping silently to
// [0, Total]. Out-of-range deltas are truncated to the bound rather
// than rejected, so slightly-off commands still land. Returns the new
// counter value.
func (t *Task) ApplyDelta(delta int) int {
	t.Current += delta
	if t.Current < 0 {
		t.Current = 0
	}
	if t.Current > t.Total {
		t.Current = t.Total
	}
	return t.Current
}

// DuplicateError reports an insert whose derived hash collides with an
// existing task. Identical (type, tag, name) triples collide by design.
type DuplicateError struct {
	Hash string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("a task with identical details already exists (hash %s)", e.Hash)
}

var (
	// ErrIncompleteTask is returned by Insert when any descriptor
	// field is empty.
	ErrIncompleteTask = errors.New("task type, tag and name must all be set")

	// ErrInvalidTotal is returned by Insert for a non-positive total.
	ErrInvalidTotal = errors.New("total must be a positive integer")
)

// List is the in-memory task list, the single source of truth for a
// session. It is reloaded from the store at startup and written back
// after every mutation.
type List struct {
	Tasks []Task
}

// Insert derives the hash for d and appends a new task with a zeroed
// counter. The insert is rejected if any existing task already has the
// same hash.
func (l *List) Insert(d task.Descriptor, total int) (*Task, error) {
	if !d.Valid() {
		return nil, ErrIncompleteTask
	}
	if total <= 0 {
		return nil, ErrInvalidTotal
	}

	hash := d.Hash()
	for i := range l.Tasks {
		if l.Tasks[i].Hash == hash {
			return nil, &DuplicateError{Hash: hash}
		}
	}

	l.Tasks = append(l.Tasks, Task{
		Hash:  hash,
		Type:  d.Type,
		Tag:   d.Tag,
		Name:  d.Name,
		Total: total,
	})
	return &l.Tasks[len(l.Tasks)-1], nil
}

// Delete removes the task with exactly the given full hash. Reports
// whether anything was removed.
func (l *List) Delete(hash string) bool {
	for i := range l.Tasks {
		if l.Tasks[i].Hash == hash {
			l.Tasks = append(l.Tasks[:i], l.Tasks[i+1:]...)
			return true
		}
	}
	return false
}
