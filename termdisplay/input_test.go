package termdisplay

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/tessera"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want tessera.KeyStroke
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), tessera.CharStroke('q')},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), tessera.KeyStroke{Key: tessera.KeyRune, Char: 'x', Modifiers: tessera.ModAlt}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), tessera.KeyStroke{Key: tessera.KeyEnter}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), tessera.KeyStroke{Key: tessera.KeyTab}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), tessera.KeyStroke{Key: tessera.KeyBacktab, Modifiers: tessera.ModShift}},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), tessera.KeyStroke{Key: tessera.KeyBackspace}},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), tessera.KeyStroke{Key: tessera.KeyLeft}},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), tessera.KeyStroke{Key: tessera.KeyPageDown}},
		{"f12", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), tessera.KeyStroke{Key: tessera.KeyF12}},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), tessera.KeyStroke{Key: tessera.KeyRune, Char: 's', Modifiers: tessera.ModCtrl}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateKey(tt.ev)
			if !ok {
				t.Fatal("key dropped")
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslateKeyDropsUnknown(t *testing.T) {
	if _, ok := translateKey(tcell.NewEventKey(tcell.KeyF40, 0, tcell.ModNone)); ok {
		t.Error("F40 should have no translation")
	}
}

func TestMouseTransitions(t *testing.T) {
	var m mouseState
	steps := []struct {
		ev     *tcell.EventMouse
		typ    tessera.MouseActionType
		button tessera.MouseButton
		pos    tessera.Position
	}{
		{tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone), tessera.MouseMoved, tessera.MouseButtonLeft, tessera.Pos(1, 1)},
		{tcell.NewEventMouse(2, 1, tcell.Button2, tcell.ModNone), tessera.MousePressed, tessera.MouseButtonRight, tessera.Pos(2, 1)},
		{tcell.NewEventMouse(3, 1, tcell.Button2, tcell.ModNone), tessera.MouseMoved, tessera.MouseButtonRight, tessera.Pos(3, 1)},
		{tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone), tessera.MouseReleased, tessera.MouseButtonRight, tessera.Pos(3, 2)},
		{tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone), tessera.MouseWheelDown, tessera.MouseButtonRight, tessera.Pos(0, 0)},
		{tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone), tessera.MouseWheelUp, tessera.MouseButtonRight, tessera.Pos(0, 0)},
		{tcell.NewEventMouse(5, 5, tcell.Button3, tcell.ModNone), tessera.MousePressed, tessera.MouseButtonMiddle, tessera.Pos(5, 5)},
	}
	for i, s := range steps {
		got := m.translate(s.ev)
		if got.Type != s.typ || got.Button != s.button || got.Position != s.pos {
			t.Errorf("step %d: got %v button %d, want %v button %d at %v", i, got.Type, got.Button, s.typ, s.button, s.pos)
		}
	}
}

func TestMouseModifiers(t *testing.T) {
	var m mouseState
	got := m.translate(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModCtrl|tcell.ModShift))
	if got.Modifiers != tessera.ModCtrl|tessera.ModShift {
		t.Errorf("modifiers = %v", got.Modifiers)
	}
}
