package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mdlunited/arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message into the actions it triggers. Arrow
// keys carry both a steering action (grid games) and a runner action so
// each game reads the one it understands. isQuit is set for quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	case " ":
		return []core.Action{core.ActionJump}, false
	case "up", "w":
		return []core.Action{core.ActionUp}, false
	case "down", "s":
		return []core.Action{core.ActionDown}, false
	case "left", "a":
		return []core.Action{core.ActionLeft}, false
	case "right", "d":
		return []core.Action{core.ActionRight}, false
	case "enter":
		return []core.Action{core.ActionConfirm}, false
	case "v":
		return []core.Action{core.ActionRevive}, false
	case "r":
		return []core.Action{core.ActionRestart}, false
	case "p":
		return []core.Action{core.ActionPause}, false
	case "b", "esc":
		return []core.Action{core.ActionBack}, false
	}
	return nil, false
}

// MapKeyToFrame adds the key's actions to frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	actions, isQuit := km.MapKey(msg)
	for _, a := range actions {
		frame.Set(a)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
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
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
