package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Start    key.Binding
	End      key.Binding
	AStar    key.Binding
	Dijkstra key.Binding
	Generate key.Binding
	Find     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "set start")),
		End:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "set end")),
		AStar:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "use A*")),
		Dijkstra: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "use Dijkstra")),
		Generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate grid")),
		Find:     key.NewBinding(key.WithKeys("f", "enter"), key.WithHelp("f", "find path")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.End, k.AStar, k.Dijkstra, k.Generate, k.Find, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		k.ShortHelp(),
	}
}
