package dom

import "github.com/matzehuels/lsr/pkg/engine"

// Event names the effect subscribes to.
const (
	EventMouseMove  = "mousemove"
	EventMouseEnter = "mouseenter"
	EventMouseLeave = "mouseleave"
	EventFocus      = "focus"
	EventBlur       = "blur"
	EventTouchMove  = "touchmove"
	EventTouchStart = "touchstart"
	EventTouchEnd   = "touchend"
)

// Event is an input event delivered to listeners.
type Event struct {
	Type string

	// Position is the pointer in page coordinates; nil for events without
	// coordinates such as focus and blur.
	Position *engine.Pointer

	// Touches holds the active touch points of a touch event.
	Touches []engine.Pointer

	defaultPrevented bool
}

// NewEvent returns an event without coordinates.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// NewMouseEvent returns a pointer event at page position (x, y).
func NewMouseEvent(typ string, x, y float64) *Event {
	return &Event{Type: typ, Position: &engine.Pointer{PageX: x, PageY: y}}
}

// NewTouchEvent returns a touch event with the given touch points.
func NewTouchEvent(typ string, touches ...engine.Pointer) *Event {
	return &Event{Type: typ, Touches: touches}
}

// PreventDefault suppresses the host's default action, e.g. scrolling.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// IsTouch reports whether typ is one of the touch event names.
func IsTouch(typ string) bool {
	switch typ {
	case EventTouchMove, EventTouchStart, EventTouchEnd:
		return true
	}
	return false
}

// IsKnown reports whether typ is an event name the effect handles.
func IsKnown(typ string) bool {
	switch typ {
	case EventMouseMove, EventMouseEnter, EventMouseLeave, EventFocus, EventBlur:
		return true
	}
	return IsTouch(typ)
}

// HandlerFunc handles one event.
type HandlerFunc func(*Event)

// Listener is a subscription handle. Its identity is what an element
// matches on removal.
type Listener struct {
	fn HandlerFunc
}

// NewListener wraps fn in a handle.
func NewListener(fn HandlerFunc) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes the listener.
func (l *Listener) Handle(e *Event) {
	if l != nil && l.fn != nil {
		l.fn(e)
	}
}
