package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit       key.Binding
	NextPane   key.Binding
	PrevPane   key.Binding
	Generate   key.Binding
	Preview    key.Binding
	ToggleMode key.Binding
	Save       key.Binding
	Copy       key.Binding
	Replay     key.Binding
	Stop       key.Binding
	Help       key.Binding

	Up        key.Binding
	Down      key.Binding
	Gender    key.Binding
	Favorite  key.Binding
	NextFav   key.Binding
	NewStyle  key.Binding
	EditStyle key.Binding
	DelStyle  key.Binding
	Play      key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	Submit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextPane:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Generate:   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "generate")),
		Preview:    key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "preview")),
		ToggleMode: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "manual mode")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save clip")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy path")),
		Replay:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "replay")),
		Stop:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Gender:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gender")),
		Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		NextFav:   key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "next favorite")),
		NewStyle:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new style")),
		EditStyle: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit style")),
		DelStyle:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete style")),
		Play:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),

		Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Generate, k.Preview, k.ToggleMode, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.Preview, k.ToggleMode, k.Replay, k.Stop},
		{k.Save, k.Copy, k.NextPane, k.PrevPane, k.Quit},
		{k.Up, k.Down, k.Gender, k.Favorite, k.NextFav},
		{k.NewStyle, k.EditStyle, k.DelStyle, k.Play},
	}
}
