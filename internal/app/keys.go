package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard bindings for the control deck.
type KeyMap struct {
	Forward   key.Binding
	Backward  key.Binding
	Left      key.Binding
	Right     key.Binding
	Stop      key.Binding
	Mode      key.Binding
	Roller    key.Binding
	Status    key.Binding
	Axis      key.Binding
	SpeedUp   key.Binding
	SpeedDown key.Binding
	LogUp     key.Binding
	LogDown   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "forward"),
		),
		Backward: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "backward"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "right"),
		),
		Stop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "stop"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "auto/manual"),
		),
		Roller: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "roller"),
		),
		Status: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "status"),
		),
		Axis: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "select wheel"),
		),
		SpeedUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "speed up"),
		),
		SpeedDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "speed down"),
		),
		LogUp: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "older events"),
		),
		LogDown: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "newer events"),
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
}
