package termdisplay

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/tessera"
)

var specialKeys = map[tcell.Key]tessera.Key{
	tcell.KeyEnter:      tessera.KeyEnter,
	tcell.KeyTab:        tessera.KeyTab,
	tcell.KeyBacktab:    tessera.KeyBacktab,
	tcell.KeyEscape:     tessera.KeyEscape,
	tcell.KeyBackspace:  tessera.KeyBackspace,
	tcell.KeyBackspace2: tessera.KeyBackspace,
	tcell.KeyDelete:     tessera.KeyDelete,
	tcell.KeyInsert:     tessera.KeyInsert,
	tcell.KeyUp:         tessera.KeyUp,
	tcell.KeyDown:       tessera.KeyDown,
	tcell.KeyLeft:       tessera.KeyLeft,
	tcell.KeyRight:      tessera.KeyRight,
	tcell.KeyHome:       tessera.KeyHome,
	tcell.KeyEnd:        tessera.KeyEnd,
	tcell.KeyPgUp:       tessera.KeyPageUp,
	tcell.KeyPgDn:       tessera.KeyPageDown,
	tcell.KeyF1:         tessera.KeyF1,
	tcell.KeyF2:         tessera.KeyF2,
	tcell.KeyF3:         tessera.KeyF3,
	tcell.KeyF4:         tessera.KeyF4,
	tcell.KeyF5:         tessera.KeyF5,
	tcell.KeyF6:         tessera.KeyF6,
	tcell.KeyF7:         tessera.KeyF7,
	tcell.KeyF8:         tessera.KeyF8,
	tcell.KeyF9:         tessera.KeyF9,
	tcell.KeyF10:        tessera.KeyF10,
	tcell.KeyF11:        tessera.KeyF11,
	tcell.KeyF12:        tessera.KeyF12,
}

func translateMods(m tcell.ModMask) tessera.KeyModifiers {
	var out tessera.KeyModifiers
	if m&tcell.ModShift != 0 {
		out |= tessera.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= tessera.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= tessera.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= tessera.ModMeta
	}
	return out
}

// translateKey converts a tcell key event. Control letters become the lower
// case rune with ModCtrl. Keys tessera has no name for are dropped.
func translateKey(ev *tcell.EventKey) (tessera.KeyStroke, bool) {
	mods := translateMods(ev.Modifiers())
	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		return tessera.KeyStroke{Key: tessera.KeyRune, Char: ev.Rune(), Modifiers: mods}, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return tessera.KeyStroke{Key: tessera.KeyRune, Char: r, Modifiers: mods | tessera.ModCtrl}, true
	}
	if key, ok := specialKeys[k]; ok {
		return tessera.KeyStroke{Key: key, Modifiers: mods}, true
	}
	return tessera.KeyStroke{}, false
}

// mouseState turns tcell's button-mask snapshots into press, release and
// move transitions.
type mouseState struct {
	buttons tcell.ButtonMask
	button  tessera.MouseButton
}

const buttonMask = tcell.Button1 | tcell.Button2 | tcell.Button3

func (m *mouseState) translate(ev *tcell.EventMouse) tessera.MouseAction {
	x, y := ev.Position()
	action := tessera.MouseAction{
		Position:  tessera.Pos(x, y),
		Modifiers: translateMods(ev.Modifiers()),
		Button:    m.button,
	}
	btns := ev.Buttons()
	switch {
	case btns&tcell.WheelUp != 0:
		action.Type = tessera.MouseWheelUp
		return action
	case btns&tcell.WheelDown != 0:
		action.Type = tessera.MouseWheelDown
		return action
	}

	held := btns & buttonMask
	switch {
	case m.buttons == 0 && held != 0:
		action.Type = tessera.MousePressed
		action.Button = buttonOf(held)
		m.button = action.Button
	case m.buttons != 0 && held == 0:
		action.Type = tessera.MouseReleased
	default:
		action.Type = tessera.MouseMoved
	}
	m.buttons = held
	return action
}

func buttonOf(mask tcell.ButtonMask) tessera.MouseButton {
	switch {
	case mask&tcell.Button1 != 0:
		return tessera.MouseButtonLeft
	case mask&tcell.Button2 != 0:
		return tessera.MouseButtonRight
	default:
		return tessera.MouseButtonMiddle
	}
}
