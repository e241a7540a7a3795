package core

// Action is a semantic input, abstracted from physical keys.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Space, W, Up
	ActionLeft              // A, Left
	ActionRight             // D, Right
	ActionUp                // Menu navigation
	ActionDown              // Menu navigation
	ActionConfirm           // Enter
	ActionBack              // Escape, B
	ActionRestart           // R
	ActionQuit              // Q, Ctrl+C
	ActionPause             // P
	ActionVolumeUp          // +
	ActionVolumeDown        // -
	ActionMute              // M
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionVolumeUp:
		return "VolumeUp"
	case ActionVolumeDown:
		return "VolumeDown"
	case ActionMute:
		return "Mute"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered during one simulation frame.
// Actions are applied in the order they were pressed.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action. Repeats within a frame are kept so that two quick
// lane changes both apply.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the recorded actions in press order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Empty reports whether nothing was pressed.
func (f InputFrame) Empty() bool {
	return len(f.actions) == 0
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}
