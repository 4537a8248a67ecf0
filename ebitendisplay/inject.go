package ebitendisplay

import (
	"math"

	"github.com/phanxgames/tessera"
)

// syntheticEvent is one queued input: a pointer sample in grid cells or a key
// stroke. Pointer samples go through the same state machine as the real mouse.
type syntheticEvent struct {
	key     *tessera.KeyStroke
	cell    tessera.Position
	pressed bool
	button  tessera.MouseButton
}

// InjectPress queues a left button press at cell. Each queued event is
// consumed on its own tick, in place of the real mouse.
func (d *Display) InjectPress(cell tessera.Position) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{cell: cell, pressed: true, button: tessera.MouseButtonLeft})
}

// InjectMove queues a pointer move to cell with the button held. Use it
// between InjectPress and InjectRelease to drag.
func (d *Display) InjectMove(cell tessera.Position) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{cell: cell, pressed: true, button: tessera.MouseButtonLeft})
}

// InjectRelease queues a button release at cell.
func (d *Display) InjectRelease(cell tessera.Position) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{cell: cell, button: tessera.MouseButtonLeft})
}

// InjectClick queues a press and a release at cell. Consumes two ticks.
func (d *Display) InjectClick(cell tessera.Position) {
	d.InjectPress(cell)
	d.InjectRelease(cell)
}

// InjectDrag queues a press at from, ticks-2 evenly spaced moves and a release
// at to. ticks below 2 is raised to 2.
func (d *Display) InjectDrag(from, to tessera.Position, ticks int) {
	if ticks < 2 {
		ticks = 2
	}
	d.InjectPress(from)
	steps := ticks - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := from.X + int(math.Round(float64(to.X-from.X)*t))
		y := from.Y + int(math.Round(float64(to.Y-from.Y)*t))
		d.InjectMove(tessera.Pos(x, y))
	}
	d.InjectRelease(to)
}

// InjectKey queues a key stroke.
func (d *Display) InjectKey(k tessera.KeyStroke) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{key: &k})
}

// processInjectedInput pops one queued event and converts it to input.
// It reports false when the queue is empty and the real devices should be
// polled instead.
func (d *Display) processInjectedInput(mods tessera.KeyModifiers) ([]tessera.Input, bool) {
	if len(d.injectQueue) == 0 {
		return nil, false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	if evt.key != nil {
		return []tessera.Input{*evt.key}, true
	}
	return d.pointer.sample(evt.cell, evt.pressed, evt.button, mods), true
}
