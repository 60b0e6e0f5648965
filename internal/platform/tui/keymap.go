package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/overlay-arena/internal/core"
)

// KeyMap holds the arena key bindings. It implements help.KeyMap.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	UpLeft    key.Binding
	UpRight   key.Binding
	DownLeft  key.Binding
	DownRight key.Binding
	Fire      key.Binding
	Copy      key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns arrows/WASD for movement, vi-style corners for
// diagonals and space to fire.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "w", "k", "8"), key.WithHelp("↑/w", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "s", "j", "2"), key.WithHelp("↓/s", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "a", "h", "4"), key.WithHelp("←/a", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "d", "l", "6"), key.WithHelp("→/d", "right")),
		UpLeft:    key.NewBinding(key.WithKeys("y", "7"), key.WithHelp("y", "up-left")),
		UpRight:   key.NewBinding(key.WithKeys("u", "9"), key.WithHelp("u", "up-right")),
		DownLeft:  key.NewBinding(key.WithKeys("b", "1"), key.WithHelp("b", "down-left")),
		DownRight: key.NewBinding(key.WithKeys("n", "3"), key.WithHelp("n", "down-right")),
		Fire:      key.NewBinding(key.WithKeys(" ", "f", "5"), key.WithHelp("space", "fire")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy frame")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save frame")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Fire, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped in columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.UpLeft, k.UpRight, k.DownLeft, k.DownRight},
		{k.Fire, k.Copy, k.Save},
		{k.Help, k.Quit},
	}
}

// Command translates a key message to an arena command.
// Returns CommandNone for keys that are not game commands.
func (k KeyMap) Command(msg tea.KeyMsg) core.Command {
	switch {
	case key.Matches(msg, k.Quit):
		return core.CommandExit
	case key.Matches(msg, k.Up):
		return core.CommandUp
	case key.Matches(msg, k.Down):
		return core.CommandDown
	case key.Matches(msg, k.Left):
		return core.CommandLeft
	case key.Matches(msg, k.Right):
		return core.CommandRight
	case key.Matches(msg, k.UpLeft):
		return core.CommandUpLeft
	case key.Matches(msg, k.UpRight):
		return core.CommandUpRight
	case key.Matches(msg, k.DownLeft):
		return core.CommandDownLeft
	case key.Matches(msg, k.DownRight):
		return core.CommandDownRight
	case key.Matches(msg, k.Fire):
		return core.CommandAbility
	}
	return core.CommandNone
}
