package check

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI
type KeyMap struct {
	Help        key.Binding
	Quit        key.Binding
	StartCheck  key.Binding
	NextProblem key.Binding
	PrevProblem key.Binding
	Summary     key.Binding
	Yank        key.Binding
}

// DefaultKeyMap returns the default key map
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		StartCheck: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "start check"),
		),
		NextProblem: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "next problem"),
		),
		PrevProblem: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "previous problem"),
		),
		Summary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle summary"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy location"),
		),
	}
}

// Keys is a global instance of the keymap for use in the model
var Keys = DefaultKeyMap()

// ShortHelp returns the short help text for the help bubble
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.NextProblem, k.PrevProblem}
}

// FullHelp returns the full help text for the help bubble
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Help, k.Quit},
		{k.StartCheck, k.NextProblem, k.PrevProblem, k.Summary, k.Yank},
	}
}
