package progressapp

import "github.com/jwulff/tally/internal/progress"

// tasksLoadedMsg carries the task file contents read at startup. warn
// is set when the file existed but could not be parsed; the session
// continues with an empty list.
type tasksLoadedMsg struct {
	tasks []progress.Task
	warn  string
}

// clearMessageMsg expires a transient status message. seq guards
// against a stale timer clearing a newer message.
type clearMessageMsg struct {
	seq int
}
