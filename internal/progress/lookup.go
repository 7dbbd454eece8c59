package progress

import "strings"

// Outcome classifies a hash-prefix lookup.
type Outcome int

const (
	NotFound Outcome = iota
	Unique
	Ambiguous
)

// Match is the three-way result of a prefix lookup. Callers must
// distinguish "no match" from "more than one match" to word their
// error; a plain optional loses that.
type Match struct {
	Outcome    Outcome
	Task       *Task   // set when Outcome == Unique
	Candidates []*Task // every task whose hash has the prefix
}

// FindByHashPrefix resolves a user-typed partial identifier against
// the list by literal string-prefix test on the 6-digit hash. The
// empty prefix matches every task; command handlers reject empty input
// before calling this.
func (l *List) FindByHashPrefix(prefix string) Match {
	var candidates []*Task
	for i := range l.Tasks {
		if strings.HasPrefix(l.Tasks[i].Hash, prefix) {
			candidates = append(candidates, &l.Tasks[i])
		}
	}

	switch len(candidates) {
	case 0:
		return Match{Outcome: NotFound}
	case 1:
		return Match{Outcome: Unique, Task: candidates[0], Candidates: candidates}
	default:
		return Match{Outcome: Ambiguous, Candidates: candidates}
	}
}
