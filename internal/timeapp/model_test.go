package timeapp

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/tally/internal/config"
	"github.com/jwulff/tally/internal/stopwatch"
	"github.com/jwulff/tally/internal/store"
	"github.com/jwulff/tally/internal/task"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(config.DefaultConfig(), store.TimeFile(t.TempDir()))
	m.width = 80
	m.height = 24
	return m
}

func pressKey(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// typeLine types text into the focused field and presses enter.
func typeLine(t *testing.T, m Model, text string) Model {
	t.Helper()
	if text != "" {
		m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	}
	return pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func withDescriptor(t *testing.T, m Model) Model {
	t.Helper()
	m.desc = task.Descriptor{Type: "code", Tag: "sprint", Name: "refactor store"}
	return m
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)

	if m.session.Running() {
		t.Error("new model should not be running")
	}
	if m.mode != modeStatus {
		t.Error("new model should be on the status screen")
	}
	if m.desc.Valid() {
		t.Error("new model should start with an empty descriptor")
	}
}

func TestStartRequiresCompleteDescriptor(t *testing.T) {
	m := newTestModel(t)

	m = pressKey(t, m, runeKey('s'))

	if m.session.Running() {
		t.Error("stopwatch must not start with an empty descriptor")
	}
	if m.message == "" {
		t.Error("rejected start should leave a status message")
	}
	if len(m.intervals) != 0 {
		t.Error("rejected start must not record anything")
	}
}

func TestStartStopRecordsInterval(t *testing.T) {
	m := withDescriptor(t, newTestModel(t))

	m = pressKey(t, m, runeKey('s'))
	if !m.session.Running() {
		t.Fatal("stopwatch should be running after s")
	}

	m = pressKey(t, m, runeKey('s'))
	if m.session.Running() {
		t.Fatal("stopwatch should be stopped after second s")
	}
	if len(m.intervals) != 1 {
		t.Fatalf("got %d intervals, want 1", len(m.intervals))
	}

	iv := m.intervals[0]
	if iv.Name != "refactor store" {
		t.Errorf("interval name = %q", iv.Name)
	}
	if !iv.End.After(iv.Start.Time) {
		t.Error("end must be after start")
	}
	if iv.Duration < 0 {
		t.Errorf("duration = %v, want non-negative", iv.Duration)
	}

	// The record must also be on disk.
	var saved []stopwatch.Interval
	if err := m.file.Load(&saved); err != nil {
		t.Fatalf("load saved file: %v", err)
	}
	if len(saved) != 1 {
		t.Errorf("file has %d intervals, want 1", len(saved))
	}
}

func TestQuitBlockedWhileRunning(t *testing.T) {
	m := withDescriptor(t, newTestModel(t))
	m = pressKey(t, m, runeKey('s'))

	updated, cmd := m.Update(runeKey('q'))
	m = updated.(Model)

	if !m.session.Running() {
		t.Error("q must not stop the stopwatch")
	}
	if m.message == "" {
		t.Error("blocked quit should leave a status message")
	}
	if cmd == nil {
		t.Fatal("expected a message-expiry command, got nil")
	}
}

func TestQuitWhileStopped(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q while stopped should quit")
	}
}

func TestInvalidCommand(t *testing.T) {
	m := newTestModel(t)
	m = pressKey(t, m, runeKey('x'))

	if !strings.Contains(m.message, "invalid command") {
		t.Errorf("message = %q, want invalid-command error", m.message)
	}
}

func TestTaskInputFlow(t *testing.T) {
	m := newTestModel(t)

	m = pressKey(t, m, runeKey('i'))
	if m.mode != modeTaskInput {
		t.Fatal("i should open the task input flow")
	}

	m = typeLine(t, m, "code")
	m = typeLine(t, m, "sprint")
	m = typeLine(t, m, "refactor store")

	if m.mode != modeStatus {
		t.Fatal("flow should return to the status screen")
	}
	want := task.Descriptor{Type: "code", Tag: "sprint", Name: "refactor store"}
	if m.desc != want {
		t.Errorf("descriptor = %+v, want %+v", m.desc, want)
	}
}

func TestTaskInputTrimsAndWarnsOnEmpty(t *testing.T) {
	m := newTestModel(t)

	m = pressKey(t, m, runeKey('i'))
	m = typeLine(t, m, "  code  ")
	m = typeLine(t, m, "")
	m = typeLine(t, m, "refactor")

	if m.desc.Type != "code" {
		t.Errorf("type = %q, want trimmed %q", m.desc.Type, "code")
	}
	if m.desc.Valid() {
		t.Error("descriptor with empty tag should not be valid")
	}
	if m.msgLevel != levelWarn {
		t.Errorf("message level = %v, want warning", m.msgLevel)
	}
}

func TestTaskInputEscCancels(t *testing.T) {
	m := withDescriptor(t, newTestModel(t))

	m = pressKey(t, m, runeKey('i'))
	m = typeLine(t, m, "other")
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != modeStatus {
		t.Error("esc should return to the status screen")
	}
	if m.desc.Type != "code" {
		t.Errorf("cancelled edit must not touch the descriptor, got %+v", m.desc)
	}
}

func TestTaskInputBlockedWhileRunning(t *testing.T) {
	m := withDescriptor(t, newTestModel(t))
	m = pressKey(t, m, runeKey('s'), runeKey('i'))

	if m.mode != modeStatus {
		t.Error("i must be rejected while the stopwatch is running")
	}
	if m.message == "" {
		t.Error("rejection should leave a status message")
	}
}

func TestManualEntryFlow(t *testing.T) {
	m := withDescriptor(t, newTestModel(t))

	m = pressKey(t, m, runeKey('a'))
	if m.mode != modeManualInput {
		t.Fatal("a should open the manual entry flow")
	}

	m = typeLine(t, m, "2023-10-27 09:00")
	m = typeLine(t, m, "2023-10-27 10:30")

	if m.mode != modeStatus {
		t.Fatal("flow should return to the status screen")
	}
	if len(m.intervals) != 1 {
		t.Fatalf("got %d intervals, want 1", len(m.intervals))
	}
	if m.intervals[0].Duration != 5400.0 {
		t.Errorf("duration = %v, want 5400.0", m.intervals[0].Duration)
	}
}

func TestManualEntryRejectsBadOrder(t *testing.T) {
	m := withDescriptor(t, newTestModel(t))

	m = pressKey(t, m, runeKey('a'))
	m = typeLine(t, m, "2023-10-27 10:30")
	m = typeLine(t, m, "2023-10-27 09:00")

	if len(m.intervals) != 0 {
		t.Error("reversed interval must not be recorded")
	}
	if m.msgLevel != levelError {
		t.Errorf("message level = %v, want error", m.msgLevel)
	}
}

func TestManualEntryRequiresDescriptor(t *testing.T) {
	m := newTestModel(t)
	m = pressKey(t, m, runeKey('a'))

	if m.mode != modeStatus {
		t.Error("a must be rejected without a complete descriptor")
	}
}

func TestManualEntryBlockedWhileRunning(t *testing.T) {
	m := withDescriptor(t, newTestModel(t))
	m = pressKey(t, m, runeKey('s'), runeKey('a'))

	if m.mode != modeStatus {
		t.Error("a must be rejected while the stopwatch is running")
	}
}

func TestLoadWarningSurfaced(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(intervalsLoadedMsg{warn: "load: bad file; starting empty"})
	m = updated.(Model)

	if m.msgLevel != levelWarn || m.message == "" {
		t.Error("load warning should surface as a warning message")
	}
	if cmd == nil {
		t.Error("warning should arm an expiry timer")
	}
}

func TestClearMessageIgnoresStaleSeq(t *testing.T) {
	m := newTestModel(t)
	m.setMessage(levelInfo, "first")
	m.setMessage(levelInfo, "second")

	updated, _ := m.Update(clearMessageMsg{seq: m.msgSeq - 1})
	m = updated.(Model)
	if m.message != "second" {
		t.Errorf("stale clear removed %q", m.message)
	}

	updated, _ = m.Update(clearMessageMsg{seq: m.msgSeq})
	m = updated.(Model)
	if m.message != "" {
		t.Errorf("current clear left %q", m.message)
	}
}

func TestTodayTotal(t *testing.T) {
	m := newTestModel(t)
	m.now = time.Date(2023, 10, 27, 12, 0, 0, 0, time.Local)

	mk := func(day int, seconds float64) stopwatch.Interval {
		start := time.Date(2023, 10, day, 9, 0, 0, 0, time.Local)
		return stopwatch.Interval{
			Start:    stopwatch.Timestamp{Time: start},
			End:      stopwatch.Timestamp{Time: start.Add(time.Duration(seconds) * time.Second)},
			Duration: seconds,
		}
	}
	m.intervals = []stopwatch.Interval{mk(27, 3600), mk(27, 1800), mk(26, 7200)}

	if got := m.todayTotal(); got != 90*time.Minute {
		t.Errorf("todayTotal = %v, want 1h30m", got)
	}
}

func TestViewRendersWithSize(t *testing.T) {
	m := withDescriptor(t, newTestModel(t))

	view := m.View()
	if view == "" || view == "Initializing..." {
		t.Errorf("view = %q", view)
	}
	if !strings.Contains(view, "STOPPED") {
		t.Error("status view should show the stopped stopwatch")
	}

	m = pressKey(t, m, runeKey('s'))
	if !strings.Contains(m.View(), "RUNNING") {
		t.Error("status view should show the running stopwatch")
	}
}

func TestViewWithoutSize(t *testing.T) {
	m := New(config.DefaultConfig(), store.TimeFile(t.TempDir()))
	if m.View() != "Initializing..." {
		t.Errorf("view without size = %q", m.View())
	}
}
