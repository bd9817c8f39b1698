package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hookshot/internal/core"
)

// nudgeStep is how far, in display pixels, an arrow key moves the pointer.
const nudgeStep = 40

// KeyMapper translates Bubble Tea key messages to sandbox actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "p", "esc":
		return core.ActionPause, false
	case "d":
		return core.ActionDebug, false
	case "r":
		return core.ActionRestart, false
	case "tab":
		return core.ActionBoard, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// Nudge returns the pointer offset for arrow keys, for terminals without
// mouse reporting.
func (km *KeyMapper) Nudge(msg tea.KeyMsg) (core.Vec2, bool) {
	switch msg.String() {
	case "up":
		return core.V(0, -nudgeStep), true
	case "down":
		return core.V(0, nudgeStep), true
	case "left":
		return core.V(-nudgeStep, 0), true
	case "right":
		return core.V(nudgeStep, 0), true
	}
	return core.Vec2{}, false
}

// IsTrigger reports whether the key stands in for the primary button.
func (km *KeyMapper) IsTrigger(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeySpace || msg.String() == " "
}
