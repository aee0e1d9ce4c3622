package preview

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle key.Binding
	Clear  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle mode")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "follow system")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Toggle, k.Clear}, {k.Help, k.Quit}}
}
