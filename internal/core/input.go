package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // Up arrow - steer up (grid games)
	ActionDown               // Down arrow - steer down (grid games)
	ActionLeft               // Left arrow - steer left
	ActionRight              // Right arrow - steer right
	ActionJump               // Space, Up - jump pressed (runner); also start/restart
	ActionJumpRelease        // Jump key released
	ActionDuck               // Down - crouch pressed (runner)
	ActionDuckRelease        // Crouch key released
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B, Escape - go back to menu
	ActionRestart            // R key - restart game
	ActionRevive             // V key - one-time revive after game over
	ActionQuit               // Q, Ctrl+C - exit game/session
	ActionPause              // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionJumpRelease:
		return "JumpRelease"
	case ActionDuck:
		return "Duck"
	case ActionDuckRelease:
		return "DuckRelease"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionRevive:
		return "Revive"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// steer keeps steering presses in arrival order, since several can land
	// in one frame.
	steer []Action
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
	if a.IsSteering() {
		f.steer = append(f.steer, a)
	}
}

// IsSteering reports whether a is one of the four direction actions.
func (a Action) IsSteering() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

// Steering returns the direction actions pressed this frame, oldest first.
// Repeated presses appear once per press.
func (f InputFrame) Steering() []Action {
	return f.steer
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.steer = f.steer[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.steer = append([]Action(nil), f.steer...)
	return clone
}
