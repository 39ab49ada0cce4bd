package core

// ButtonID is a stable identifier for an on-screen button.
// It comes from configuration, never from a runtime-assigned widget handle.
type ButtonID string

// ClickType describes what happened to a button, abstracted from the
// physical input device.
type ClickType int

const (
	ClickNone  ClickType = iota
	ClickStart           // Press began (Enter/Space on a focused button, digit key)
	ClickStop            // Press released
	HoverStart           // Focus moved onto the button
	HoverStop            // Focus moved away from the button
)

// String returns a human-readable name for the click type.
func (c ClickType) String() string {
	switch c {
	case ClickNone:
		return "None"
	case ClickStart:
		return "ClickStart"
	case ClickStop:
		return "ClickStop"
	case HoverStart:
		return "HoverStart"
	case HoverStop:
		return "HoverStop"
	default:
		return "Unknown"
	}
}

// Click is a single button event delivered by the presentation layer.
type Click struct {
	Button ButtonID
	Type   ClickType
}

// InputFrame holds the clicks delivered during one simulation tick,
// in delivery order.
type InputFrame struct {
	Clicks []Click
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Add appends a click to the frame.
func (f *InputFrame) Add(c Click) {
	f.Clicks = append(f.Clicks, c)
}

// Press is shorthand for adding a ClickStart on the given button.
func (f *InputFrame) Press(id ButtonID) {
	f.Add(Click{Button: id, Type: ClickStart})
}

// Empty reports whether no clicks were delivered this frame.
func (f InputFrame) Empty() bool {
	return len(f.Clicks) == 0
}

// Clear resets the frame for the next tick, keeping the backing array.
func (f *InputFrame) Clear() {
	f.Clicks = f.Clicks[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Clicks: make([]Click, len(f.Clicks))}
	copy(clone.Clicks, f.Clicks)
	return clone
}
