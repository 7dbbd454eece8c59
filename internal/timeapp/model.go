// Package timeapp is the terminal UI for tally-time: a stopwatch and
// manual-entry time tracker recording intervals against the current
// task descriptor.
package timeapp

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/tally/internal/config"
	"github.com/jwulff/tally/internal/stopwatch"
	"github.com/jwulff/tally/internal/store"
	"github.com/jwulff/tally/internal/task"
	"github.com/jwulff/tally/internal/ui"
)

// mode selects which screen the key loop feeds.
type mode int

const (
	modeStatus mode = iota
	modeTaskInput
	modeManualInput
)

// level classifies a transient status message.
type level int

const (
	levelInfo level = iota
	levelWarn
	levelError
)

// taskPrompts are the staged descriptor-entry field labels, in order.
var taskPrompts = [3]string{"Task Type", "Task Tag", "Task Name"}

// Model is the root bubbletea model for tally-time.
type Model struct {
	file store.File
	tick time.Duration
	ttl  time.Duration

	// Tracking state
	desc      task.Descriptor
	session   stopwatch.Session
	intervals []stopwatch.Interval

	// Input flow state
	mode        mode
	step        int
	input       textinput.Model
	pending     task.Descriptor
	manualStart string

	// Transient status message
	message  string
	msgLevel level
	msgSeq   int

	// UI state
	now    time.Time
	keys   keyMap
	help   help.Model
	width  int
	height int
}

// New creates the model for the given config and record file.
func New(cfg *config.Config, file store.File) Model {
	ti := textinput.New()
	ti.CharLimit = 120

	h := help.New()
	h.Styles.ShortKey = ui.FooterKeyStyle
	h.Styles.ShortDesc = ui.FooterDescStyle

	return Model{
		file:  file,
		tick:  cfg.Tick(),
		ttl:   cfg.MessageTTL(),
		input: ti,
		keys:  defaultKeyMap(),
		help:  h,
		now:   time.Now(),
	}
}

// Init loads existing records and starts the redraw tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.file), tickCmd(m.tick))
}

// loadCmd reads the record file. Missing and corrupt files both yield
// an empty list; corruption additionally surfaces a warning.
func loadCmd(f store.File) tea.Cmd {
	return func() tea.Msg {
		var intervals []stopwatch.Interval
		if err := f.Load(&intervals); err != nil {
			return intervalsLoadedMsg{warn: fmt.Sprintf("load: %v; starting empty", err)}
		}
		return intervalsLoadedMsg{intervals: intervals}
	}
}

// tickCmd schedules the next live-display refresh.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// setMessage swaps in a transient status message and arms its expiry.
func (m *Model) setMessage(lvl level, text string) tea.Cmd {
	m.message = text
	m.msgLevel = lvl
	m.msgSeq++
	seq := m.msgSeq
	return tea.Tick(m.ttl, func(time.Time) tea.Msg {
		return clearMessageMsg{seq: seq}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd(m.tick)

	case intervalsLoadedMsg:
		m.intervals = msg.intervals
		if msg.warn != "" {
			cmd := m.setMessage(levelWarn, msg.warn)
			return m, cmd
		}
		return m, nil

	case clearMessageMsg:
		if msg.seq == m.msgSeq {
			m.message = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeTaskInput:
			return m.updateTaskInput(msg)
		case modeManualInput:
			return m.updateManualInput(msg)
		default:
			return m.updateStatus(msg)
		}
	}

	if m.mode != modeStatus {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateStatus handles the single-key command surface.
func (m Model) updateStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.session.Running() {
			cmd := m.setMessage(levelError, "stopwatch is running; stop it (s) before quitting")
			return m, cmd
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Task):
		if m.session.Running() {
			cmd := m.setMessage(levelError, "cannot edit the task while the stopwatch is running; stop it (s) first")
			return m, cmd
		}
		m.mode = modeTaskInput
		m.step = 0
		m.pending = task.Descriptor{}
		m.input.Placeholder = taskPrompts[0]
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Toggle):
		return m.toggleStopwatch()

	case key.Matches(msg, m.keys.Manual):
		if m.session.Running() {
			cmd := m.setMessage(levelError, "cannot add a manual interval while the stopwatch is running; stop it (s) first")
			return m, cmd
		}
		if !m.desc.Valid() {
			cmd := m.setMessage(levelError, "task type, tag and name must all be set; use i first")
			return m, cmd
		}
		m.mode = modeManualInput
		m.step = 0
		m.manualStart = ""
		m.input.Placeholder = "YYYY-MM-DD HH:MM"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	}

	cmd := m.setMessage(levelError, fmt.Sprintf("invalid command %q; use i, s, a or q", msg.String()))
	return m, cmd
}

// toggleStopwatch runs the start/stop transition for the s key.
func (m Model) toggleStopwatch() (tea.Model, tea.Cmd) {
	now := time.Now()

	if m.session.Running() {
		iv, err := m.session.Stop(m.desc, now)
		if err != nil {
			cmd := m.setMessage(levelError, err.Error())
			return m, cmd
		}
		m.now = now
		cmd := m.appendInterval(iv, fmt.Sprintf("stopwatch stopped; recorded %q (%s)", iv.Name, formatElapsed(now.Sub(iv.Start.Time))))
		return m, cmd
	}

	if err := m.session.Start(m.desc, now); err != nil {
		if err == stopwatch.ErrIncompleteTask {
			cmd := m.setMessage(levelError, "task type, tag and name must all be set; use i first")
			return m, cmd
		}
		cmd := m.setMessage(levelError, err.Error())
		return m, cmd
	}
	m.now = now
	cmd := m.setMessage(levelInfo, "stopwatch started")
	return m, cmd
}

// appendInterval appends a completed record and persists the list. A
// failed save keeps the record in memory; the next successful save
// writes it out.
func (m *Model) appendInterval(iv stopwatch.Interval, okMsg string) tea.Cmd {
	m.intervals = append(m.intervals, iv)
	if err := m.file.Save(m.intervals); err != nil {
		return m.setMessage(levelError, fmt.Sprintf("save failed: %v; records kept in memory", err))
	}
	return m.setMessage(levelInfo, okMsg)
}

// updateTaskInput drives the three-field descriptor entry flow.
func (m Model) updateTaskInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v := strings.TrimSpace(m.input.Value())
		switch m.step {
		case 0:
			m.pending.Type = v
		case 1:
			m.pending.Tag = v
		case 2:
			m.pending.Name = v
			m.desc = m.pending
			m.mode = modeStatus
			m.input.Blur()
			if !m.desc.Valid() {
				cmd := m.setMessage(levelWarn, "task fields empty; fill all three before recording time")
				return m, cmd
			}
			cmd := m.setMessage(levelInfo, "task updated")
			return m, cmd
		}
		m.step++
		m.input.Placeholder = taskPrompts[m.step]
		m.input.SetValue("")
		return m, nil

	case "esc":
		m.mode = modeStatus
		m.input.Blur()
		cmd := m.setMessage(levelInfo, "task edit cancelled")
		return m, cmd

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateManualInput drives the two-timestamp manual entry flow.
func (m Model) updateManualInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v := strings.TrimSpace(m.input.Value())
		if m.step == 0 {
			m.manualStart = v
			m.step = 1
			m.input.SetValue("")
			return m, nil
		}

		m.mode = modeStatus
		m.input.Blur()
		iv, err := stopwatch.ParseManual(m.desc, m.manualStart, v)
		if err != nil {
			cmd := m.setMessage(levelError, err.Error())
			return m, cmd
		}
		cmd := m.appendInterval(iv, fmt.Sprintf("manual interval recorded for %q (%s)", iv.Name, formatElapsed(iv.End.Sub(iv.Start.Time))))
		return m, cmd

	case "esc":
		m.mode = modeStatus
		m.input.Blur()
		cmd := m.setMessage(levelInfo, "manual entry cancelled")
		return m, cmd

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// todayTotal sums the durations of intervals whose start falls on the
// same local day as now.
func (m Model) todayTotal() time.Duration {
	y, mo, d := m.now.Date()
	var total time.Duration
	for _, iv := range m.intervals {
		iy, imo, id := iv.Start.Date()
		if iy == y && imo == mo && id == d {
			total += time.Duration(iv.Duration * float64(time.Second))
		}
	}
	return total
}

// View renders the full screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, ui.TitleStyle.Render("TALLY — TIME"))
	sections = append(sections, "")
	sections = append(sections, m.renderTask())
	sections = append(sections, "")
	sections = append(sections, m.renderStopwatch())
	sections = append(sections, m.renderSummary())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", max(1, m.width))))

	switch m.mode {
	case modeTaskInput:
		sections = append(sections, m.renderTaskInput())
	case modeManualInput:
		sections = append(sections, m.renderManualInput())
	default:
		sections = append(sections, m.renderMessage())
	}

	sections = append(sections, "")
	sections = append(sections, m.help.View(m.keys))

	return strings.Join(sections, "\n")
}

func (m Model) renderTask() string {
	field := func(label, v string) string {
		if v == "" {
			return ui.LabelStyle.Render(label+": ") + ui.DimStyle.Render("N/A")
		}
		return ui.LabelStyle.Render(label+": ") + ui.ValueStyle.Render(v)
	}

	return ui.LabelStyle.Render("Current task") + "\n" +
		"  " + field("Type", m.desc.Type) + "\n" +
		"  " + field("Tag ", m.desc.Tag) + "\n" +
		"  " + field("Name", m.desc.Name)
}

func (m Model) renderStopwatch() string {
	if m.session.Running() {
		elapsed := formatElapsed(m.session.Elapsed(m.now))
		return ui.RunningDotStyle.Render("● RUNNING") + " " + ui.ElapsedStyle.Render("("+elapsed+")")
	}

	out := ui.StoppedDotStyle.Render("○ STOPPED")
	if last, ok := m.session.LastDuration(); ok {
		out += ui.DimStyle.Render(" (last: " + formatElapsed(last) + ")")
	}
	return out
}

func (m Model) renderSummary() string {
	n := len(m.intervals)
	noun := "intervals"
	if n == 1 {
		noun = "interval"
	}
	return ui.DimStyle.Render(fmt.Sprintf("%d %s on file · %s recorded today", n, noun, formatElapsed(m.todayTotal())))
}

func (m Model) renderTaskInput() string {
	var lines []string
	lines = append(lines, ui.PromptStyle.Render("Enter task details:"))
	if m.step > 0 {
		lines = append(lines, "  "+ui.DimStyle.Render("Type: "+m.pending.Type))
	}
	if m.step > 1 {
		lines = append(lines, "  "+ui.DimStyle.Render("Tag:  "+m.pending.Tag))
	}
	lines = append(lines, "  "+ui.PromptStyle.Render(taskPrompts[m.step]+": ")+m.input.View())
	lines = append(lines, ui.DimStyle.Render("enter confirm · esc cancel"))
	return strings.Join(lines, "\n")
}

func (m Model) renderManualInput() string {
	var lines []string
	lines = append(lines, ui.PromptStyle.Render("Manual interval — format: YYYY-MM-DD HH:MM (seconds optional)"))
	if m.step == 0 {
		lines = append(lines, "  "+ui.PromptStyle.Render("Start Time: ")+m.input.View())
	} else {
		lines = append(lines, "  "+ui.DimStyle.Render("Start Time: "+m.manualStart))
		lines = append(lines, "  "+ui.PromptStyle.Render("End Time:   ")+m.input.View())
	}
	lines = append(lines, ui.DimStyle.Render("enter confirm · esc cancel"))
	return strings.Join(lines, "\n")
}

func (m Model) renderMessage() string {
	if m.message == "" {
		return ""
	}
	switch m.msgLevel {
	case levelError:
		return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.message)
	case levelWarn:
		return ui.WarnTextStyle.Render(m.message)
	default:
		return ui.StatusTextStyle.Render(m.message)
	}
}

// formatElapsed renders a duration as h:mm:ss with whole seconds.
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
