package timeapp

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the single-key command surface of the time tool.
type keyMap struct {
	Task   key.Binding
	Toggle key.Binding
	Manual key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Task: key.NewBinding(
			key.WithKeys("i", "I"),
			key.WithHelp("i", "task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "start/stop"),
		),
		Manual: key.NewBinding(
			key.WithKeys("a", "A"),
			key.WithHelp("a", "add manual"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Task, k.Toggle, k.Manual, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Task, k.Toggle}, {k.Manual, k.Quit}}
}
