package ebitendisplay

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/tessera"
)

// scriptStep is a single action in a script. Coordinates are grid cells.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	FromX  int    `json:"fromX,omitempty"`
	FromY  int    `json:"fromY,omitempty"`
	ToX    int    `json:"toX,omitempty"`
	ToY    int    `json:"toY,omitempty"`
	Ticks  int    `json:"ticks,omitempty"`
	Text   string `json:"text,omitempty"`
	Key    string `json:"key,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// namedKeys are the key names a "key" step accepts.
var namedKeys = map[string]tessera.Key{
	"enter":     tessera.KeyEnter,
	"tab":       tessera.KeyTab,
	"backtab":   tessera.KeyBacktab,
	"escape":    tessera.KeyEscape,
	"backspace": tessera.KeyBackspace,
	"delete":    tessera.KeyDelete,
	"up":        tessera.KeyUp,
	"down":      tessera.KeyDown,
	"left":      tessera.KeyLeft,
	"right":     tessera.KeyRight,
	"home":      tessera.KeyHome,
	"end":       tessera.KeyEnd,
	"pageup":    tessera.KeyPageUp,
	"pagedown":  tessera.KeyPageDown,
}

// ScriptRunner plays a script of injected input and screenshots, one step per
// tick, for automated visual checks. Attach it with Display.SetScriptRunner.
//
// Actions: "click" (x, y), "drag" (fromX, fromY, toX, toY, ticks),
// "type" (text), "key" (key), "wait" (ticks) and "screenshot" (label).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "click", "drag", "type", "wait", "screenshot":
		case "key":
			if _, ok := namedKeys[st.Key]; !ok {
				return nil, fmt.Errorf("parse script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches r to the display. Its step runs at the start of
// every Update.
func (d *Display) SetScriptRunner(r *ScriptRunner) {
	d.script = r
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick.
func (r *ScriptRunner) step(d *Display) {
	if r.done {
		return
	}
	// Let pending injections drain first.
	if len(d.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		d.Screenshot(st.Label)
	case "click":
		d.InjectClick(tessera.Pos(st.X, st.Y))
	case "drag":
		d.InjectDrag(tessera.Pos(st.FromX, st.FromY), tessera.Pos(st.ToX, st.ToY), st.Ticks)
	case "type":
		for _, c := range st.Text {
			d.InjectKey(tessera.CharStroke(c))
		}
	case "key":
		d.InjectKey(tessera.KeyStroke{Key: namedKeys[st.Key]})
	case "wait":
		if st.Ticks > 0 {
			r.waitCount = st.Ticks - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(d.injectQueue) == 0 {
		r.done = true
	}
}
