package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the full keyboard surface of the TUI.
type KeyMap struct {
	Down     key.Binding
	Up       key.Binding
	Pin      key.Binding
	Search   key.Binding
	Open     key.Binding
	Memory   key.Binding
	Remove   key.Binding
	ClearAll key.Binding
	Copy     key.Binding
	Mode     key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding

	// Search bar: letters go to the input, so only non-printing keys navigate.
	SearchDown key.Binding
	SearchUp   key.Binding
	SearchDone key.Binding
	SearchExit key.Binding
}

func Default() KeyMap {
	return KeyMap{
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "next")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "prev")),
		Pin:      key.NewBinding(key.WithKeys("p", "P"), key.WithHelp("p", "pin")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Memory:   key.NewBinding(key.WithKeys("m", "tab"), key.WithHelp("m", "memory")),
		Remove:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove pin")),
		ClearAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear pins")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Mode:     key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "fuzzy/substring")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		SearchDown: key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓/ctrl+n", "next")),
		SearchUp:   key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/ctrl+p", "prev")),
		SearchDone: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep filter")),
		SearchExit: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Pin, k.Search, k.Memory, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Open, k.Back},
		{k.Pin, k.Memory, k.Remove, k.ClearAll},
		{k.Search, k.SearchDown, k.SearchUp, k.SearchDone, k.SearchExit, k.Mode},
		{k.Copy, k.Help, k.Quit},
	}
}
