package tessera

import "fmt"

// Input is a raw event produced by a display device: a MouseAction or a
// KeyStroke.
type Input interface {
	isInput()
}

// MouseActionType is the kind of pointer event a device reports.
type MouseActionType uint8

const (
	MousePressed   MouseActionType = iota // a button went down
	MouseReleased                         // a button went up
	MouseMoved                            // the pointer moved, buttons held or not
	MouseWheelUp                          // wheel scrolled away from the user
	MouseWheelDown                        // wheel scrolled toward the user
)

func (t MouseActionType) String() string {
	switch t {
	case MousePressed:
		return "pressed"
	case MouseReleased:
		return "released"
	case MouseMoved:
		return "moved"
	case MouseWheelUp:
		return "wheel-up"
	case MouseWheelDown:
		return "wheel-down"
	default:
		return fmt.Sprintf("MouseActionType(%d)", t)
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// MouseAction is a pointer event at an absolute grid position.
type MouseAction struct {
	Type      MouseActionType
	Button    MouseButton
	Position  Position
	Modifiers KeyModifiers
}

func (MouseAction) isInput() {}

func (m MouseAction) String() string {
	return fmt.Sprintf("MouseAction(%v %d at %v)", m.Type, m.Button, m.Position)
}

// Key identifies a non-character key. Character keys use KeyRune with the
// character in KeyStroke.Char.
type Key uint16

const (
	KeyRune Key = iota
	KeyEnter
	KeyTab
	KeyBacktab
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// KeyStroke is a single key press.
type KeyStroke struct {
	Key       Key
	Char      rune
	Modifiers KeyModifiers
}

func (KeyStroke) isInput() {}

// CharStroke returns the key stroke for typing r.
func CharStroke(r rune) KeyStroke {
	return KeyStroke{Key: KeyRune, Char: r}
}

func (k KeyStroke) String() string {
	if k.Key == KeyRune {
		return fmt.Sprintf("KeyStroke(%q)", k.Char)
	}
	return fmt.Sprintf("KeyStroke(key=%d mods=%d)", k.Key, k.Modifiers)
}

// EventType identifies the category a listener subscribes to.
type EventType uint8

const (
	EventMousePressed  EventType = iota // a button went down over the component
	EventMouseReleased                  // a button went up over the component
	EventMouseMoved                     // the pointer moved over the component
	EventMouseClicked                   // press then release over the same component
	EventMouseDragged                   // the pointer moved while pressed on the component
	EventMouseEntered                   // the pointer entered the component's bounds
	EventMouseExited                    // the pointer left the component's bounds
	EventMouseWheel                     // the wheel turned over the component
	EventKeyPressed                     // a key was pressed while the component had focus
	EventFocusGiven                     // the component gained focus
	EventFocusTaken                     // the component lost focus
	eventTypeCount
)

// InputContext carries a dispatched event. The same context travels from the
// target up through its ancestors; any listener may stop that by calling
// Consume.
type InputContext struct {
	Type  EventType
	Input Input

	// Target is the component the event was resolved to. Component is the one
	// whose listeners are running now (Target or one of its ancestors).
	Target    *Component
	Component *Component

	// Position is the absolute pointer position for mouse events.
	// LocalPosition is Position relative to Component.
	Position      Position
	LocalPosition Position

	Button    MouseButton
	Key       Key
	Char      rune
	Modifiers KeyModifiers

	consumed bool
}

// Consume stops the event from bubbling further.
func (c *InputContext) Consume() {
	c.consumed = true
}

// Consumed reports whether a listener consumed the event.
func (c *InputContext) Consumed() bool {
	return c.consumed
}

func newInputContext(typ EventType, in Input, target *Component) *InputContext {
	ctx := &InputContext{Type: typ, Input: in, Target: target}
	switch in := in.(type) {
	case MouseAction:
		ctx.Position = in.Position
		ctx.Button = in.Button
		ctx.Modifiers = in.Modifiers
	case KeyStroke:
		ctx.Key = in.Key
		ctx.Char = in.Char
		ctx.Modifiers = in.Modifiers
	}
	return ctx
}

// at points ctx at receiver c.
func (ctx *InputContext) at(c *Component) *InputContext {
	ctx.Component = c
	if c != nil {
		ctx.LocalPosition = ctx.Position.Sub(c.AbsolutePosition())
	}
	return ctx
}
