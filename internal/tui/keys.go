package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap covers the host UI keys. Review shortcuts (a/d/y/n/s and
// ctrl+z) are owned by the review dispatcher, not this map.
type keyMap struct {
	Search key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
