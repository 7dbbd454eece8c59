// Package progressapp is the terminal UI for tally-progress: a list of
// hash-identified tasks with bounded progress counters.
package progressapp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/tally/internal/config"
	"github.com/jwulff/tally/internal/progress"
	"github.com/jwulff/tally/internal/store"
	"github.com/jwulff/tally/internal/task"
	"github.com/jwulff/tally/internal/ui"
)

// mode selects which screen the key loop feeds.
type mode int

const (
	modeList mode = iota
	modeInsert
	modeDelta
	modeDelete
)

// level classifies a transient status message.
type level int

const (
	levelInfo level = iota
	levelWarn
	levelError
)

// insertPrompts are the staged insert-flow field labels, in order.
var insertPrompts = [4]string{"Task Type", "Task Tag", "Task Name", "Total (e.g. 100)"}

// Model is the root bubbletea model for tally-progress.
type Model struct {
	file store.File
	ttl  time.Duration

	list progress.List

	// Input flow state
	mode      mode
	step      int
	input     textinput.Model
	pending   task.Descriptor
	deltaHash string

	// Transient status message
	message  string
	msgLevel level
	msgSeq   int

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
		ttl:   cfg.MessageTTL(),
		input: ti,
		keys:  defaultKeyMap(),
		help:  h,
	}
}

// Init loads the task list from the store.
func (m Model) Init() tea.Cmd {
	return loadCmd(m.file)
}

func loadCmd(f store.File) tea.Cmd {
	return func() tea.Msg {
		var tasks []progress.Task
		if err := f.Load(&tasks); err != nil {
			return tasksLoadedMsg{warn: fmt.Sprintf("load: %v; starting empty", err)}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
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

// save persists the current list; a failure becomes a status message
// and the in-memory list stays authoritative.
func (m *Model) save(okMsg string) tea.Cmd {
	if err := m.file.Save(m.list.Tasks); err != nil {
		return m.setMessage(levelError, fmt.Sprintf("save failed: %v; changes kept in memory", err))
	}
	return m.setMessage(levelInfo, okMsg)
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tasksLoadedMsg:
		m.list.Tasks = msg.tasks
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
		case modeInsert:
			return m.updateInsert(msg)
		case modeDelta:
			return m.updateDelta(msg)
		case modeDelete:
			return m.updateDelete(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.mode != modeList {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateList handles the single-key command surface.
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Insert):
		m.mode = modeInsert
		m.step = 0
		m.pending = task.Descriptor{}
		cmd := m.focusInput(insertPrompts[0])
		return m, cmd

	case key.Matches(msg, m.keys.Delta):
		m.mode = modeDelta
		m.step = 0
		m.deltaHash = ""
		cmd := m.focusInput("Task hash (partial allowed)")
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		m.mode = modeDelete
		m.step = 0
		cmd := m.focusInput("Task hash to delete (partial allowed)")
		return m, cmd
	}

	cmd := m.setMessage(levelError, fmt.Sprintf("invalid command %q; use i, a, d or q", msg.String()))
	return m, cmd
}

func (m *Model) focusInput(placeholder string) tea.Cmd {
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
	return textinput.Blink
}

func (m *Model) leaveInput() {
	m.mode = modeList
	m.input.Blur()
}

// resolvePrefix runs the three-way lookup and converts the two failure
// outcomes into status messages. Returns nil when no unique task
// matched.
func (m *Model) resolvePrefix(prefix string) (*progress.Task, tea.Cmd) {
	match := m.list.FindByHashPrefix(prefix)
	switch match.Outcome {
	case progress.NotFound:
		return nil, m.setMessage(levelError, fmt.Sprintf("no task found for hash %q", prefix))
	case progress.Ambiguous:
		return nil, m.setMessage(levelError,
			fmt.Sprintf("ambiguous hash %q matches %d tasks; be more specific", prefix, len(match.Candidates)))
	}
	return match.Task, nil
}

// updateInsert drives the four-field insert flow.
func (m Model) updateInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		case 3:
			m.leaveInput()
			cmd := m.commitInsert(v)
			return m, cmd
		}
		m.step++
		m.input.Placeholder = insertPrompts[m.step]
		m.input.SetValue("")
		return m, nil

	case "esc":
		m.leaveInput()
		cmd := m.setMessage(levelInfo, "insert cancelled")
		return m, cmd

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) commitInsert(totalStr string) tea.Cmd {
	if !m.pending.Valid() || totalStr == "" {
		return m.setMessage(levelError, "all task fields must be filled")
	}
	total, err := strconv.Atoi(totalStr)
	if err != nil {
		return m.setMessage(levelError, "total must be an integer")
	}

	inserted, err := m.list.Insert(m.pending, total)
	if err != nil {
		return m.setMessage(levelError, err.Error())
	}
	return m.save(fmt.Sprintf("task %q added with hash %s", inserted.Name, inserted.Hash))
}

// updateDelta drives the hash-then-delta flow.
func (m Model) updateDelta(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v := strings.TrimSpace(m.input.Value())
		if m.step == 0 {
			if v == "" {
				m.leaveInput()
				cmd := m.setMessage(levelError, "hash cannot be empty")
				return m, cmd
			}
			m.deltaHash = v
			m.step = 1
			m.input.Placeholder = "Change (+N or -N)"
			m.input.SetValue("")
			return m, nil
		}

		m.leaveInput()
		cmd := m.commitDelta(v)
		return m, cmd

	case "esc":
		m.leaveInput()
		cmd := m.setMessage(levelInfo, "progress change cancelled")
		return m, cmd

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) commitDelta(deltaStr string) tea.Cmd {
	if deltaStr == "" {
		return m.setMessage(levelError, "change value cannot be empty")
	}

	matched, cmd := m.resolvePrefix(m.deltaHash)
	if matched == nil {
		return cmd
	}

	delta, err := strconv.Atoi(deltaStr)
	if err != nil {
		return m.setMessage(levelError, "change must be an integer like +5 or -2")
	}

	matched.ApplyDelta(delta)
	return m.save(fmt.Sprintf("progress updated for %q (hash %s): %d/%d",
		matched.Name, matched.Hash, matched.Current, matched.Total))
}

// updateDelete drives the single-field delete flow.
func (m Model) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v := strings.TrimSpace(m.input.Value())
		m.leaveInput()
		if v == "" {
			cmd := m.setMessage(levelError, "hash cannot be empty")
			return m, cmd
		}

		matched, cmd := m.resolvePrefix(v)
		if matched == nil {
			return m, cmd
		}

		name, hash := matched.Name, matched.Hash
		m.list.Delete(hash)
		cmd = m.save(fmt.Sprintf("task %q (hash %s) deleted", name, hash))
		return m, cmd

	case "esc":
		m.leaveInput()
		cmd := m.setMessage(levelInfo, "delete cancelled")
		return m, cmd

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the full screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, ui.TitleStyle.Render("TALLY — PROGRESS"))
	sections = append(sections, "")
	sections = append(sections, m.renderTable())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", max(1, m.width))))

	switch m.mode {
	case modeInsert:
		sections = append(sections, m.renderInsertInput())
	case modeDelta:
		sections = append(sections, m.renderDeltaInput())
	case modeDelete:
		sections = append(sections, m.renderDeleteInput())
	default:
		sections = append(sections, m.renderMessage())
	}

	sections = append(sections, "")
	sections = append(sections, m.help.View(m.keys))

	return strings.Join(sections, "\n")
}

func (m Model) renderTable() string {
	var lines []string
	lines = append(lines, ui.LabelStyle.Render(fmt.Sprintf("%-6s %-12s %-12s %s", "Hash", "Type", "Tag", "Name")))

	if len(m.list.Tasks) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No tasks yet. Press i to insert one."))
		return strings.Join(lines, "\n")
	}

	// Two rows per task plus header, message and footer space.
	maxTasks := len(m.list.Tasks)
	if m.height > 0 {
		if visible := (m.height - 8) / 2; visible < maxTasks {
			maxTasks = max(1, visible)
		}
	}

	for i := 0; i < maxTasks; i++ {
		t := m.list.Tasks[i]
		name := t.Name
		if nameWidth := m.width - 33; nameWidth > 0 && len(name) > nameWidth {
			name = name[:nameWidth]
		}
		lines = append(lines, fmt.Sprintf("%s %-12s %-12s %s",
			ui.HashStyle.Render(fmt.Sprintf("%-6s", t.Hash)),
			t.Type, t.Tag, name))
		lines = append(lines, ui.BarStyle.Render(progress.DrawBar(t.Current, t.Total, m.width)))
	}

	if hidden := len(m.list.Tasks) - maxTasks; hidden > 0 {
		lines = append(lines, ui.DimStyle.Render(fmt.Sprintf("… %d more not shown", hidden)))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderInsertInput() string {
	var lines []string
	lines = append(lines, ui.PromptStyle.Render("Insert task:"))
	if m.step > 0 {
		lines = append(lines, "  "+ui.DimStyle.Render("Type: "+m.pending.Type))
	}
	if m.step > 1 {
		lines = append(lines, "  "+ui.DimStyle.Render("Tag:  "+m.pending.Tag))
	}
	if m.step > 2 {
		lines = append(lines, "  "+ui.DimStyle.Render("Name: "+m.pending.Name))
	}
	lines = append(lines, "  "+ui.PromptStyle.Render(insertPrompts[m.step]+": ")+m.input.View())
	lines = append(lines, ui.DimStyle.Render("enter confirm · esc cancel"))
	return strings.Join(lines, "\n")
}

func (m Model) renderDeltaInput() string {
	var lines []string
	lines = append(lines, ui.PromptStyle.Render("Add progress:"))
	if m.step == 0 {
		lines = append(lines, "  "+ui.PromptStyle.Render("Hash: ")+m.input.View())
	} else {
		lines = append(lines, "  "+ui.DimStyle.Render("Hash: "+m.deltaHash))
		lines = append(lines, "  "+ui.PromptStyle.Render("Change: ")+m.input.View())
	}
	lines = append(lines, ui.DimStyle.Render("enter confirm · esc cancel"))
	return strings.Join(lines, "\n")
}

func (m Model) renderDeleteInput() string {
	return ui.PromptStyle.Render("Delete task:") + "\n" +
		"  " + ui.PromptStyle.Render("Hash: ") + m.input.View() + "\n" +
		ui.DimStyle.Render("enter confirm · esc cancel")
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
