package ebitendisplay

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/tessera"
)

// readModifiers reads the current keyboard modifier state.
func readModifiers() tessera.KeyModifiers {
	var mods tessera.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= tessera.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= tessera.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= tessera.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= tessera.ModMeta
	}
	return mods
}

var specialKeys = map[ebiten.Key]tessera.Key{
	ebiten.KeyEnter:       tessera.KeyEnter,
	ebiten.KeyNumpadEnter: tessera.KeyEnter,
	ebiten.KeyTab:         tessera.KeyTab,
	ebiten.KeyEscape:      tessera.KeyEscape,
	ebiten.KeyBackspace:   tessera.KeyBackspace,
	ebiten.KeyDelete:      tessera.KeyDelete,
	ebiten.KeyInsert:      tessera.KeyInsert,
	ebiten.KeyArrowUp:     tessera.KeyUp,
	ebiten.KeyArrowDown:   tessera.KeyDown,
	ebiten.KeyArrowLeft:   tessera.KeyLeft,
	ebiten.KeyArrowRight:  tessera.KeyRight,
	ebiten.KeyHome:        tessera.KeyHome,
	ebiten.KeyEnd:         tessera.KeyEnd,
	ebiten.KeyPageUp:      tessera.KeyPageUp,
	ebiten.KeyPageDown:    tessera.KeyPageDown,
	ebiten.KeyF1:          tessera.KeyF1,
	ebiten.KeyF2:          tessera.KeyF2,
	ebiten.KeyF3:          tessera.KeyF3,
	ebiten.KeyF4:          tessera.KeyF4,
	ebiten.KeyF5:          tessera.KeyF5,
	ebiten.KeyF6:          tessera.KeyF6,
	ebiten.KeyF7:          tessera.KeyF7,
	ebiten.KeyF8:          tessera.KeyF8,
	ebiten.KeyF9:          tessera.KeyF9,
	ebiten.KeyF10:         tessera.KeyF10,
	ebiten.KeyF11:         tessera.KeyF11,
	ebiten.KeyF12:         tessera.KeyF12,
}

// translateKey converts a physical key press. Letters only translate while
// Ctrl, Alt or Meta is held; plain typing arrives as input characters.
func translateKey(k ebiten.Key, mods tessera.KeyModifiers) (tessera.KeyStroke, bool) {
	if key, ok := specialKeys[k]; ok {
		return tessera.KeyStroke{Key: key, Modifiers: mods}, true
	}
	if mods&commandMods != 0 && k >= ebiten.KeyA && k <= ebiten.KeyZ {
		return tessera.KeyStroke{Key: tessera.KeyRune, Char: 'a' + rune(k-ebiten.KeyA), Modifiers: mods}, true
	}
	return tessera.KeyStroke{}, false
}

// commandMods are the modifiers that turn a typed character into a command
// key, handled by translateKey instead.
const commandMods = tessera.ModCtrl | tessera.ModAlt | tessera.ModMeta

// pollKeys returns the key strokes of this tick: special and command keys
// first, then typed characters.
func (d *Display) pollKeys(mods tessera.KeyModifiers) []tessera.Input {
	d.keyBuf = inpututil.AppendJustPressedKeys(d.keyBuf[:0])
	var out []tessera.Input
	for _, k := range d.keyBuf {
		if ks, ok := translateKey(k, mods); ok {
			out = append(out, ks)
		}
	}
	if mods&commandMods != 0 {
		return out
	}
	d.charBuf = ebiten.AppendInputChars(d.charBuf[:0])
	for _, r := range d.charBuf {
		out = append(out, tessera.KeyStroke{Key: tessera.KeyRune, Char: r, Modifiers: mods &^ tessera.ModShift})
	}
	return out
}

// pointerState turns per-tick pointer samples into tessera mouse actions.
type pointerState struct {
	known  bool
	cell   tessera.Position
	down   bool
	button tessera.MouseButton
}

// sample compares the pointer at cell with the previous tick. A move is
// reported before a press or release at the new cell.
func (p *pointerState) sample(cell tessera.Position, pressed bool, button tessera.MouseButton, mods tessera.KeyModifiers) []tessera.Input {
	var out []tessera.Input
	if !p.known || cell != p.cell {
		out = append(out, tessera.MouseAction{Type: tessera.MouseMoved, Button: p.button, Position: cell, Modifiers: mods})
		p.known, p.cell = true, cell
	}
	switch {
	case pressed && !p.down:
		p.down, p.button = true, button
		out = append(out, tessera.MouseAction{Type: tessera.MousePressed, Button: button, Position: cell, Modifiers: mods})
	case !pressed && p.down:
		p.down = false
		out = append(out, tessera.MouseAction{Type: tessera.MouseReleased, Button: p.button, Position: cell, Modifiers: mods})
	}
	return out
}

// wheel reports a scroll at the pointer cell, if any.
func (p *pointerState) wheel(dy float64, mods tessera.KeyModifiers) (tessera.MouseAction, bool) {
	a := tessera.MouseAction{Button: p.button, Position: p.cell, Modifiers: mods}
	switch {
	case dy > 0:
		a.Type = tessera.MouseWheelUp
	case dy < 0:
		a.Type = tessera.MouseWheelDown
	default:
		return a, false
	}
	return a, true
}

// cellAt converts window pixels to a grid cell.
func cellAt(px, py, tileW, tileH int) tessera.Position {
	if px < 0 {
		px -= tileW - 1
	}
	if py < 0 {
		py -= tileH - 1
	}
	return tessera.Pos(px/tileW, py/tileH)
}

// pollMouse samples the real mouse.
func (d *Display) pollMouse(mods tessera.KeyModifiers) []tessera.Input {
	mx, my := ebiten.CursorPosition()
	cell := cellAt(mx, my, d.tileW, d.tileH)

	// Keep the button that started a press until it ends.
	var pressed bool
	var button tessera.MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = tessera.MouseButtonLeft
		case right:
			button = tessera.MouseButtonRight
		default:
			button = tessera.MouseButtonMiddle
		}
	}

	out := d.pointer.sample(cell, pressed, button, mods)
	_, dy := ebiten.Wheel()
	if w, ok := d.pointer.wheel(dy, mods); ok {
		out = append(out, w)
	}
	return out
}
