package progressapp

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the single-key command surface of the progress tool.
type keyMap struct {
	Insert key.Binding
	Delta  key.Binding
	Delete key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Insert: key.NewBinding(
			key.WithKeys("i", "I"),
			key.WithHelp("i", "insert"),
		),
		Delta: key.NewBinding(
			key.WithKeys("a", "A"),
			key.WithHelp("a", "add progress"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "D"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.Delta, k.Delete, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Insert, k.Delta}, {k.Delete, k.Quit}}
}
