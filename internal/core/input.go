package core

// Action is a player intent, independent of the key that produced it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionUp             // Move the cursor up
	ActionDown           // Move the cursor down
	ActionLeft           // Move the cursor left
	ActionRight          // Move the cursor right
	ActionConfirm        // Click the cell under the cursor
	ActionCancel         // Drop the selection
	ActionRestart        // Deal a new board
	ActionQuit           // Leave the game
	ActionPause          // Toggle pause

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Confirm", "Cancel", "Restart", "Quit", "Pause",
}

// String returns the action name.
func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the input gathered during one tick. The zero value is an
// empty frame ready for use.
type InputFrame struct {
	actions uint16 // One bit per Action

	// Clicks holds mouse presses in screen coordinates, in arrival order.
	Clicks []Point
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records that a was triggered.
func (f *InputFrame) Set(a Action) {
	if a != ActionNone && a < actionCount {
		f.actions |= 1 << a
	}
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.actions&(1<<a) != 0
}

// Click records a mouse press at (x, y).
func (f *InputFrame) Click(x, y int) {
	f.Clicks = append(f.Clicks, Point{X: x, Y: y})
}

// Empty reports whether nothing happened.
func (f InputFrame) Empty() bool {
	return f.actions == 0 && len(f.Clicks) == 0
}

// Clear resets the frame for the next tick, reusing the click buffer.
func (f *InputFrame) Clear() {
	f.actions = 0
	f.Clicks = f.Clicks[:0]
}
