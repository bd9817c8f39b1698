package core

// Action represents a semantic sandbox action, abstracted from physical key presses.
// Platforms map their own keys and buttons onto these.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // P - toggle pause
	ActionDebug          // D - toggle debug overlay
	ActionRestart        // R - rebuild the world from the level description
	ActionBoard          // Tab - show recent runs
	ActionQuit           // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionDebug:
		return "Debug"
	case ActionRestart:
		return "Restart"
	case ActionBoard:
		return "Board"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input edges collected during one frame.
// Pointer is in display pixels; the button fields are edges, not levels.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	Pointer         Vec2
	PrimaryPressed  bool
	PrimaryReleased bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Press records a primary-button press edge at the given pointer position.
func (f *InputFrame) Press(p Vec2) {
	f.Pointer = p
	f.PrimaryPressed = true
}

// Release records a primary-button release edge at the given pointer position.
func (f *InputFrame) Release(p Vec2) {
	f.Pointer = p
	f.PrimaryReleased = true
}

// Clear resets actions and button edges for the next frame.
// The pointer position is kept since it is a level, not an edge.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.PrimaryPressed = false
	f.PrimaryReleased = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = f.Pointer
	clone.PrimaryPressed = f.PrimaryPressed
	clone.PrimaryReleased = f.PrimaryReleased
	return clone
}
