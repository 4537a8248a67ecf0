package tessera

// ComponentState is the visual state a component is drawn in.
type ComponentState uint8

const (
	StateDefault   ComponentState = iota // no other condition holds
	StateActive                          // pressed or selected
	StateDisabled                        // not accepting input
	StateFocused                         // holds keyboard focus
	StateMouseOver                       // pointer is over the component
)

func (s ComponentState) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StateDisabled:
		return "DISABLED"
	case StateFocused:
		return "FOCUSED"
	case StateMouseOver:
		return "MOUSE_OVER"
	default:
		return "DEFAULT"
	}
}

// ComponentStyleSet holds one StyleSet per ComponentState. It is an immutable
// value; components swap whole sets rather than editing one in place.
type ComponentStyleSet struct {
	Default   StyleSet
	Active    StyleSet
	Disabled  StyleSet
	Focused   StyleSet
	MouseOver StyleSet
}

// UniformStyleSet returns a set using style for every state.
func UniformStyleSet(style StyleSet) ComponentStyleSet {
	return ComponentStyleSet{style, style, style, style, style}
}

// Style returns the style for state.
func (cs ComponentStyleSet) Style(state ComponentState) StyleSet {
	switch state {
	case StateActive:
		return cs.Active
	case StateDisabled:
		return cs.Disabled
	case StateFocused:
		return cs.Focused
	case StateMouseOver:
		return cs.MouseOver
	default:
		return cs.Default
	}
}

// stateFlags is the set of conditions that currently hold for a component.
// Several may hold at once; resolve picks the one that is drawn.
type stateFlags uint32

const (
	flagDisabled stateFlags = 1 << iota
	flagActive
	flagFocused
	flagMouseOver
)

// resolve applies DISABLED > ACTIVE > FOCUSED > MOUSE_OVER > DEFAULT.
func (f stateFlags) resolve() ComponentState {
	switch {
	case f&flagDisabled != 0:
		return StateDisabled
	case f&flagActive != 0:
		return StateActive
	case f&flagFocused != 0:
		return StateFocused
	case f&flagMouseOver != 0:
		return StateMouseOver
	default:
		return StateDefault
	}
}
