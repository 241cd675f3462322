package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // Left arrow, h - shift piece left
	ActionRight            // Right arrow, l - shift piece right
	ActionSoftDrop         // Down arrow, j - soft drop while held
	ActionHardDrop         // Up arrow, Space - hard drop
	ActionRotateCW         // x - rotate clockwise
	ActionRotateCCW        // w, z - rotate counterclockwise
	ActionHold             // c - swap with hold slot
	ActionPause            // p, Esc - pause/unpause game
	ActionRestart          // r - restart the session
	ActionDebug            // d - toggle debug overlay
	ActionQuit             // q, Ctrl+C - exit game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionHold:
		return "Hold"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionDebug:
		return "Debug"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Holdable reports whether the action has a continuous "is held" state
// in addition to its press event.
func (a Action) Holdable() bool {
	return a == ActionLeft || a == ActionRight || a == ActionSoftDrop
}

// InputFrame represents the input state for one simulation tick.
// Pressed holds discrete events in arrival order; Held holds the
// continuous state of directional keys polled by the platform.
type InputFrame struct {
	Pressed []Action
	Held    map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Held: make(map[Action]bool),
	}
}

// Set queues a discrete press of the action for this frame.
func (f *InputFrame) Set(a Action) {
	f.Pressed = append(f.Pressed, a)
}

// Has returns true if the action was pressed during this frame.
func (f InputFrame) Has(a Action) bool {
	for _, p := range f.Pressed {
		if p == a {
			return true
		}
	}
	return false
}

// SetHeld records whether a holdable action is currently held down.
func (f *InputFrame) SetHeld(a Action, held bool) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	if held {
		f.Held[a] = true
		return
	}
	delete(f.Held, a)
}

// IsHeld returns true if the action is currently held down.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// Clear drops the queued presses. Held state is owned by the platform
// and is left untouched.
func (f *InputFrame) Clear() {
	f.Pressed = f.Pressed[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.Pressed = append(clone.Pressed, f.Pressed...)
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}
