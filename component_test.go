package tessera

import "testing"

var (
	testSize        = NewSize(4, 4)
	testPosition    = Pos(2, 3)
	testNewPosition = Pos(6, 7)
)

func newTestComponent(name string, pos Position, size Size) *Component {
	return NewComponent(ComponentConfig{
		Name:     name,
		Position: pos,
		Size:     size,
		Styles:   testStyles,
		Tileset:  TilesetWanderlust16,
		Renderer: DefaultRenderingStrategy{Renderer: ComponentRendererFunc(func(g *TileGraphics, ctx RenderContext) {
			g.Fill(NewTile('#', ctx.Style))
		})},
	})
}

// --- Constructor defaults ---

func TestNewComponentDefaults(t *testing.T) {
	c := NewComponent(ComponentConfig{Name: "plain", Size: testSize})
	if c.ID() == 0 {
		t.Error("ID should be non-zero")
	}
	if c.Name() != "plain" {
		t.Errorf("Name = %q", c.Name())
	}
	if !c.Tileset().Same(DefaultTileset) {
		t.Errorf("Tileset = %v, want default", c.Tileset())
	}
	if c.ComponentStyleSet() != DefaultStyleSetForTheme(DefaultColorTheme) {
		t.Error("zero Styles should fall back to the default theme")
	}
	if !c.IsVisible() || !c.IsEnabled() || !c.IsDirty() {
		t.Error("new component should be visible, enabled and dirty")
	}
	if c.CurrentState() != StateDefault {
		t.Errorf("CurrentState = %v", c.CurrentState())
	}
}

func TestUniqueComponentIDs(t *testing.T) {
	a := NewComponent(ComponentConfig{Size: SizeOne})
	b := NewComponent(ComponentConfig{Size: SizeOne})
	if a.ID() == b.ID() {
		t.Error("IDs should be unique")
	}
}

func TestNewComponentNegativeSizePanics(t *testing.T) {
	expectPanic(t, "negative size", func() {
		NewComponent(ComponentConfig{Size: Size{-1, 2}})
	})
}

// --- Geometry ---

func TestComponentMoveTo(t *testing.T) {
	c := newTestComponent("c", testPosition, testSize)
	c.MoveTo(testNewPosition)
	if c.Position() != testNewPosition {
		t.Errorf("Position = %v, want %v", c.Position(), testNewPosition)
	}
	if c.Bounds() != NewBounds(testNewPosition, testSize) {
		t.Errorf("Bounds = %v", c.Bounds())
	}
}

func TestComponentMoveMustStayInside(t *testing.T) {
	parent := newTestComponent("parent", PositionZero, NewSize(10, 10))
	child := newTestComponent("child", PositionZero, testSize)
	parent.AddChild(child)

	child.MoveTo(Pos(6, 6))
	child.MoveBy(Pos(-1, 0))
	if child.Position() != Pos(5, 6) {
		t.Errorf("Position = %v, want (5,6)", child.Position())
	}
	expectPanic(t, "does not fit", func() { child.MoveTo(Pos(7, 0)) })
	expectPanic(t, "does not fit", func() { child.MoveBy(Pos(0, 1)) })
	expectPanic(t, "does not fit", func() { child.MoveTo(Pos(-1, 0)) })
	if child.Position() != Pos(5, 6) {
		t.Errorf("failed move changed Position to %v", child.Position())
	}

	ct := newTestContainer()
	ct.AddComponent(parent)
	expectPanic(t, "does not fit", func() { parent.MoveTo(Pos(11, 0)) })

	// A detached component may go anywhere.
	loose := newTestComponent("loose", PositionZero, testSize)
	loose.MoveTo(Pos(-3, 100))
}

func TestComponentContains(t *testing.T) {
	c := newTestComponent("c", testPosition, testSize)
	if !c.ContainsPosition(testPosition) {
		t.Error("should contain its own position")
	}
	if c.ContainsPosition(testPosition.Sub(Offset1x1())) {
		t.Error("should not contain the cell before its position")
	}
	inner := NewBounds(testPosition.Add(Offset1x1()), NewSize(2, 2))
	if !c.ContainsBoundable(inner) {
		t.Errorf("should contain %v", inner)
	}
	if c.ContainsBoundable(NewBounds(testPosition, NewSize(5, 4))) {
		t.Error("should not contain a wider rectangle")
	}
}

func TestAbsolutePositionThroughParents(t *testing.T) {
	root := newTestComponent("root", Pos(1, 1), NewSize(20, 20))
	mid := newTestComponent("mid", Pos(2, 2), NewSize(10, 10))
	leaf := newTestComponent("leaf", Pos(3, 3), NewSize(2, 2))
	root.AddChild(mid)
	mid.AddChild(leaf)
	if got := leaf.AbsolutePosition(); got != Pos(6, 6) {
		t.Errorf("AbsolutePosition = %v, want (6,6)", got)
	}
	if got := leaf.AbsoluteBounds(); got != NewBounds(Pos(6, 6), NewSize(2, 2)) {
		t.Errorf("AbsoluteBounds = %v", got)
	}
}

// --- Tree ---

func TestAddChildBasic(t *testing.T) {
	parent := newTestComponent("parent", PositionZero, NewSize(10, 10))
	child := newTestComponent("child", Pos(1, 1), testSize)
	parent.AddChild(child)
	if child.Parent() != parent {
		t.Error("child.Parent() should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("child not in parent's children")
	}
	if child.Root() != parent {
		t.Error("Root should be parent")
	}
}

func TestAddChildReparent(t *testing.T) {
	a := newTestComponent("a", PositionZero, NewSize(10, 10))
	b := newTestComponent("b", PositionZero, NewSize(10, 10))
	child := newTestComponent("child", PositionZero, testSize)
	a.AddChild(child)
	b.AddChild(child)
	if a.NumChildren() != 0 {
		t.Error("child should be removed from old parent")
	}
	if child.Parent() != b {
		t.Error("child.Parent() should be b")
	}
}

func TestAddChildSameParentMovesToTop(t *testing.T) {
	p := newTestComponent("p", PositionZero, NewSize(10, 10))
	a := newTestComponent("a", PositionZero, SizeOne)
	b := newTestComponent("b", PositionZero, SizeOne)
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(a)
	if p.NumChildren() != 2 || p.ChildAt(1) != a {
		t.Errorf("children = %v, want [b a]", p.Children())
	}
}

func TestAddChildPanics(t *testing.T) {
	parent := newTestComponent("parent", PositionZero, NewSize(10, 10))
	child := newTestComponent("child", PositionZero, testSize)
	parent.AddChild(child)

	tests := []struct {
		name     string
		contains string
		fn       func()
	}{
		{"nil", "nil child", func() { parent.AddChild(nil) }},
		{"self", "cycle", func() { parent.AddChild(parent) }},
		{"cycle", "cycle", func() { child.AddChild(parent) }},
		{"too big", "does not fit", func() {
			parent.AddChild(newTestComponent("big", PositionZero, NewSize(11, 1)))
		}},
		{"outside", "does not fit", func() {
			parent.AddChild(newTestComponent("off", Pos(8, 8), testSize))
		}},
		{"index", "out of range", func() {
			parent.AddChildAt(newTestComponent("x", PositionZero, SizeOne), 5)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectPanic(t, tt.contains, tt.fn)
		})
	}
}

func TestAddChildAt(t *testing.T) {
	p := newTestComponent("p", PositionZero, NewSize(10, 10))
	a := newTestComponent("a", PositionZero, SizeOne)
	b := newTestComponent("b", PositionZero, SizeOne)
	c := newTestComponent("c", PositionZero, SizeOne)
	p.AddChild(a)
	p.AddChild(c)
	p.AddChildAt(b, 1)
	want := []*Component{a, b, c}
	for i, w := range want {
		if p.ChildAt(i) != w {
			t.Errorf("child %d = %v, want %v", i, p.ChildAt(i), w)
		}
	}
}

func TestRemoveChild(t *testing.T) {
	p := newTestComponent("p", PositionZero, NewSize(10, 10))
	c := newTestComponent("c", PositionZero, SizeOne)
	p.AddChild(c)
	p.RemoveChild(c)
	if c.Parent() != nil || p.NumChildren() != 0 {
		t.Error("child still attached")
	}
	expectPanic(t, "not this component", func() { p.RemoveChild(c) })
	c.RemoveFromParent() // no-op
}

func TestSetChildIndex(t *testing.T) {
	p := newTestComponent("p", PositionZero, NewSize(10, 10))
	a := newTestComponent("a", PositionZero, SizeOne)
	b := newTestComponent("b", PositionZero, SizeOne)
	c := newTestComponent("c", PositionZero, SizeOne)
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)
	p.SetChildIndex(a, 2)
	if got := p.Children(); got[0] != b || got[1] != c || got[2] != a {
		t.Errorf("children = %v, want [b c a]", got)
	}
}

func TestDescendantsPainterOrder(t *testing.T) {
	root := newTestComponent("root", PositionZero, NewSize(10, 10))
	a := newTestComponent("a", PositionZero, NewSize(5, 5))
	a1 := newTestComponent("a1", PositionZero, SizeOne)
	b := newTestComponent("b", PositionZero, NewSize(5, 5))
	root.AddChild(a)
	a.AddChild(a1)
	root.AddChild(b)
	got := root.Descendants()
	want := []*Component{a, a1, b}
	if len(got) != len(want) {
		t.Fatalf("Descendants = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Descendants[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// --- Layers ---

func TestTransformToLayersLeaf(t *testing.T) {
	c := newTestComponent("leaf", testPosition, testSize)
	layers := c.TransformToLayers()
	if len(layers) != 1 {
		t.Fatalf("len(layers) = %d, want 1", len(layers))
	}
	l := layers[0]
	if l.Size() != testSize {
		t.Errorf("layer size = %v, want %v", l.Size(), testSize)
	}
	if l.Position() != testPosition {
		t.Errorf("layer position = %v, want %v", l.Position(), testPosition)
	}
	if !l.CurrentTileset().Same(TilesetWanderlust16) {
		t.Errorf("layer tileset = %v, want %v", l.CurrentTileset(), TilesetWanderlust16)
	}
	if tile, _ := l.TileAt(PositionZero); tile.Char != '#' || tile.Style != styleDefault {
		t.Errorf("layer content = %v", tile)
	}
}

func TestTransformToLayersIdempotent(t *testing.T) {
	c := newTestComponent("leaf", testPosition, testSize)
	first := c.TransformToLayers()
	second := c.TransformToLayers()
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a == b {
			t.Errorf("layer %d shared between calls", i)
		}
		if a.Size() != b.Size() || a.Position() != b.Position() || !a.Graphics().Equal(b.Graphics()) {
			t.Errorf("layer %d differs between calls", i)
		}
	}
}

func TestTransformToLayersNested(t *testing.T) {
	root := newTestComponent("root", Pos(1, 1), NewSize(10, 10))
	child := newTestComponent("child", Pos(2, 2), testSize)
	hidden := newTestComponent("hidden", PositionZero, SizeOne)
	hidden.SetVisible(false)
	root.AddChild(child)
	root.AddChild(hidden)

	layers := root.TransformToLayers()
	if len(layers) != 2 {
		t.Fatalf("len(layers) = %d, want 2", len(layers))
	}
	if layers[0].Position() != Pos(1, 1) || layers[1].Position() != Pos(3, 3) {
		t.Errorf("positions = %v, %v", layers[0].Position(), layers[1].Position())
	}

	// A child flattened on its own keeps its absolute position.
	if got := child.TransformToLayers()[0].Position(); got != Pos(3, 3) {
		t.Errorf("child layer position = %v, want (3,3)", got)
	}
}

func TestDrawOnto(t *testing.T) {
	c := newTestComponent("c", testPosition, testSize)
	target := NewTileGraphics(NewSize(10, 10), DefaultTileset)
	c.DrawOnto(target, testPosition)
	for q := range testSize.Positions() {
		got, _ := target.TileAt(q.Add(testPosition))
		if got.Char != '#' {
			t.Errorf("target(%v) = %v", q.Add(testPosition), got)
		}
	}
	if got, _ := target.TileAt(testPosition.Sub(Offset1x1())); !got.IsEmpty() {
		t.Errorf("tile before offset = %v", got)
	}
}

func TestRenderFollowsState(t *testing.T) {
	c := newTestComponent("c", PositionZero, SizeOne)
	c.Press()
	tile, _ := c.TileGraphics().TileAt(PositionZero)
	if tile.Style != styleActive {
		t.Errorf("rendered style = %+v, want active", tile.Style)
	}
	c.Release()
	tile, _ = c.TileGraphics().TileAt(PositionZero)
	if tile.Style != styleDefault {
		t.Errorf("rendered style = %+v, want default", tile.Style)
	}
}

// --- Hit testing ---

func TestComponentFetchComponentByPosition(t *testing.T) {
	root := newTestComponent("root", PositionZero, NewSize(10, 10))
	child := newTestComponent("child", testPosition, testSize)
	root.AddChild(child)

	got, ok := root.FetchComponentByPosition(testPosition)
	if !ok || got != child {
		t.Errorf("fetch(%v) = %v, %v; want child", testPosition, got, ok)
	}
	got, ok = root.FetchComponentByPosition(PositionZero)
	if !ok || got != root {
		t.Errorf("fetch(0,0) = %v, %v; want root", got, ok)
	}
	if _, ok := root.FetchComponentByPosition(Pos(10, 10)); ok {
		t.Error("fetch outside reported a component")
	}
	if got, ok := child.FetchComponentByPosition(testNewPosition); ok {
		t.Errorf("fetch outside child = %v", got)
	}
}

// --- Direct input ---

func TestComponentInputEmitted(t *testing.T) {
	c := newTestComponent("c", testPosition, testSize)
	var got *InputContext
	c.OnMousePressed(func(ctx *InputContext) {
		got = ctx
		ctx.Consume()
	})
	in := MouseAction{Type: MousePressed, Button: MouseButtonLeft, Position: testPosition.Add(Offset1x1())}
	if !c.InputEmitted(in) {
		t.Error("InputEmitted = false, want consumed")
	}
	if got == nil {
		t.Fatal("handler not called")
	}
	if got.Component != c || got.LocalPosition != Offset1x1() {
		t.Errorf("ctx = %+v", got)
	}

	c.Disable()
	got = nil
	if c.InputEmitted(in) || got != nil {
		t.Error("disabled component received input")
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	c := newTestComponent("c", PositionZero, SizeOne)
	calls := 0
	h := c.OnKeyPressed(func(*InputContext) { calls++ })
	c.InputEmitted(CharStroke('a'))
	h.Remove()
	h.Remove()
	c.InputEmitted(CharStroke('b'))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	CallbackHandle{}.Remove()
}

func TestFocusListeners(t *testing.T) {
	c := NewComponent(ComponentConfig{Size: SizeOne, Focusable: true})
	var events []EventType
	c.OnFocusGiven(func(ctx *InputContext) { events = append(events, ctx.Type) })
	c.OnFocusTaken(func(ctx *InputContext) { events = append(events, ctx.Type) })
	c.GiveFocus(None[Input]())
	c.GiveFocus(None[Input]()) // already focused: no second event
	c.TakeFocus(None[Input]())
	if len(events) != 2 || events[0] != EventFocusGiven || events[1] != EventFocusTaken {
		t.Errorf("events = %v", events)
	}
}

func TestBoxDecorationContentBounds(t *testing.T) {
	var inner Size
	c := NewComponent(ComponentConfig{
		Size: NewSize(6, 4),
		Renderer: DefaultRenderingStrategy{
			Decorations: []DecorationRenderer{BoxDecoration{Title: "T"}},
			Renderer: ComponentRendererFunc(func(g *TileGraphics, ctx RenderContext) {
				inner = g.Size()
				g.Fill(NewTile('.', ctx.Style))
			}),
		},
	})
	if got := c.ContentBounds(); got != NewBounds(Pos(1, 1), NewSize(4, 2)) {
		t.Errorf("ContentBounds = %v", got)
	}
	g := c.TileGraphics()
	if inner != NewSize(4, 2) {
		t.Errorf("content size = %v, want 4x2", inner)
	}
	checks := map[Position]rune{
		Pos(0, 0): '┌', Pos(5, 0): '┐', Pos(0, 3): '└', Pos(5, 3): '┘',
		Pos(2, 0): 'T', Pos(1, 1): '.', Pos(4, 2): '.', Pos(0, 1): '│',
	}
	for p, want := range checks {
		if tile, _ := g.TileAt(p); tile.Char != want {
			t.Errorf("TileAt(%v) = %q, want %q", p, tile.Char, want)
		}
	}
}

func TestShadowDecoration(t *testing.T) {
	c := NewComponent(ComponentConfig{
		Size:     NewSize(3, 3),
		Styles:   UniformStyleSet(StyleSet{}),
		Renderer: DefaultRenderingStrategy{Decorations: []DecorationRenderer{ShadowDecoration{}}},
	})
	g := c.TileGraphics()
	if tile, _ := g.TileAt(Pos(2, 2)); tile.Char != '░' {
		t.Errorf("shadow corner = %v", tile)
	}
	if tile, _ := g.TileAt(Pos(2, 0)); !tile.IsEmpty() {
		t.Errorf("top-right = %v, want empty", tile)
	}
}
