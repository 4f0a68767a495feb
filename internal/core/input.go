package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // W, Up arrow - move pointer / menu cursor up
	ActionDown                // S, Down arrow - move pointer / menu cursor down
	ActionLeft                // A, Left arrow - move pointer left
	ActionRight               // D, Right arrow - move pointer right
	ActionSuckToggle          // Space - toggle suction at the pointer
	ActionSuckStart           // Mouse press - start suction at the pointer
	ActionSuckStop            // Mouse release - stop suction
	ActionSpit                // F, Enter, right click - release next inventory ball
	ActionConfirm             // Enter - confirm selection in menu
	ActionBack                // B, Escape - go back to menu
	ActionRestart             // R key - restart game after game over
	ActionQuit                // Q, Ctrl+C - exit game/session
	ActionPause               // P - pause/unpause game
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
	case ActionSuckToggle:
		return "SuckToggle"
	case ActionSuckStart:
		return "SuckStart"
	case ActionSuckStop:
		return "SuckStop"
	case ActionSpit:
		return "Spit"
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
	default:
		return "Unknown"
	}
}

// Pointer is a mouse position in screen cells.
type Pointer struct {
	X, Y int
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame and the
// latest pointer position, if the pointer moved.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer is the most recent mouse position; valid only when HasPointer is set.
	Pointer    Pointer
	HasPointer bool
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

// SetPointer records the pointer position for this frame.
func (f *InputFrame) SetPointer(x, y int) {
	f.Pointer = Pointer{X: x, Y: y}
	f.HasPointer = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions and the pointer for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.HasPointer = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = f.Pointer
	clone.HasPointer = f.HasPointer
	return clone
}
