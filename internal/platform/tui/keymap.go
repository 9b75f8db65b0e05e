package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/array-heist/internal/core"
)

// KeyMap holds the game's key bindings. It implements help.KeyMap so the
// footer help stays in sync with what the keys actually do.
type KeyMap struct {
	Submit      key.Binding
	Delete      key.Binding
	QuickDelete key.Binding
	Clear       key.Binding
	Restart     key.Binding
	NextLevel   key.Binding
	Hint        key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings. Letter keys are only bound on
// the board, since the text fields need them.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "insert/search"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete at index"),
		),
		QuickDelete: key.NewBinding(
			key.WithKeys("x", "delete", "backspace"),
			key.WithHelp("x", "delete cell"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "restart"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next level"),
		),
		Hint: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "hint"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		CursorLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "move cursor"),
		),
		CursorRight: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Delete, k.NextField, k.Hint, k.Restart, k.Back}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Delete, k.Clear},
		{k.NextField, k.PrevField, k.CursorLeft, k.QuickDelete},
		{k.Hint, k.Restart, k.NextLevel},
		{k.Back, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings for help rendering.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to a game action. Board-only bindings
// apply when onBoard is true; otherwise those keys belong to the focused
// text field and map to ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, onBoard bool) core.Action {
	k := km.keys

	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Submit):
		return core.ActionSubmit
	case key.Matches(msg, k.Delete):
		return core.ActionDelete
	case key.Matches(msg, k.Clear):
		return core.ActionClear
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.NextLevel):
		return core.ActionNextLevel
	case key.Matches(msg, k.Hint):
		return core.ActionHint
	case key.Matches(msg, k.NextField):
		return core.ActionNextField
	case key.Matches(msg, k.PrevField):
		return core.ActionPrevField
	}

	if !onBoard {
		return core.ActionNone
	}

	switch {
	case key.Matches(msg, k.QuickDelete):
		return core.ActionQuickDelete
	case key.Matches(msg, k.CursorLeft):
		return core.ActionCursorLeft
	case key.Matches(msg, k.CursorRight):
		return core.ActionCursorRight
	}

	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScores
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScores
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
