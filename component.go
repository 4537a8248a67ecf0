package tessera

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Focusable is implemented by anything that can hold keyboard focus.
type Focusable interface {
	AcceptsFocus() bool
	GiveFocus(input Maybe[Input]) bool
	TakeFocus(input Maybe[Input])
}

// Styleable is implemented by anything drawn with a ComponentStyleSet.
type Styleable interface {
	ComponentStyleSet() ComponentStyleSet
	CurrentStyle() StyleSet
	ApplyColorTheme(theme ColorTheme) ComponentStyleSet
}

// Renderable is implemented by anything that can be flattened into layers.
type Renderable interface {
	Render()
	TransformToLayers() []*Layer
}

var (
	_ Boundable  = (*Component)(nil)
	_ Focusable  = (*Component)(nil)
	_ Styleable  = (*Component)(nil)
	_ Renderable = (*Component)(nil)
)

var componentIDCounter atomic.Uint32

// ComponentConfig configures NewComponent. Name, Size, Tileset and Styles are
// fixed for the component's lifetime (Styles can be replaced wholesale through
// ApplyColorTheme).
type ComponentConfig struct {
	Name     string
	Position Position
	Size     Size

	// Styles defaults to DefaultStyleSetForTheme(DefaultColorTheme) when zero.
	Styles ComponentStyleSet
	// Tileset defaults to DefaultTileset.
	Tileset Tileset
	// Renderer defaults to a DefaultRenderingStrategy without decorations.
	Renderer RenderingStrategy
	// StyleSetForTheme maps a theme to this component's styles in
	// ApplyColorTheme. Defaults to DefaultStyleSetForTheme.
	StyleSetForTheme func(ColorTheme) ComponentStyleSet

	Focusable bool
	Disabled  bool
	Hidden    bool
}

// Component is a positioned, styleable, focusable unit that owns the
// TileGraphics holding its appearance. Components form trees; a child's
// Position is relative to its parent.
//
// State flags and the style set are atomics, so CurrentStyle may be read from
// any goroutine while input handling changes state.
type Component struct {
	listeners

	id        uint32
	name      string
	size      Size
	tileset   Tileset
	renderer  RenderingStrategy
	themer    func(ColorTheme) ComponentStyleSet
	focusable bool

	mu       sync.RWMutex
	position Position
	parent   *Component
	children []*Component
	owner    *Container // set on roots only
	visible  bool

	renderMu sync.Mutex
	graphics *TileGraphics

	styles atomic.Pointer[ComponentStyleSet]
	flags  atomic.Uint32
	dirty  atomic.Bool

	// UserData is free for the application.
	UserData any
}

// NewComponent builds a component from cfg. Panics if cfg.Size is negative.
func NewComponent(cfg ComponentConfig) *Component {
	size := NewSize(cfg.Size.Width, cfg.Size.Height)
	c := &Component{
		id:        componentIDCounter.Add(1),
		name:      cfg.Name,
		size:      size,
		tileset:   orDefaultTileset(cfg.Tileset),
		renderer:  cfg.Renderer,
		themer:    cfg.StyleSetForTheme,
		focusable: cfg.Focusable,
		position:  cfg.Position,
		visible:   !cfg.Hidden,
	}
	if c.renderer == nil {
		c.renderer = DefaultRenderingStrategy{}
	}
	if c.themer == nil {
		c.themer = DefaultStyleSetForTheme
	}
	styles := cfg.Styles
	if styles == (ComponentStyleSet{}) {
		styles = DefaultStyleSetForTheme(DefaultColorTheme)
	}
	c.styles.Store(&styles)
	if cfg.Disabled {
		c.flags.Store(uint32(flagDisabled))
	}
	c.graphics = NewTileGraphics(size, c.tileset)
	c.dirty.Store(true)
	return c
}

// ID returns a process-unique identifier.
func (c *Component) ID() uint32 { return c.id }

// Name returns the name given at construction.
func (c *Component) Name() string { return c.name }

// Size returns the component's extent. It never changes.
func (c *Component) Size() Size { return c.size }

// Tileset returns the component's tileset.
func (c *Component) Tileset() Tileset { return c.tileset }

// Position returns the top-left cell relative to the parent (or to the grid
// for root components).
func (c *Component) Position() Position {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position
}

// MoveTo sets the position relative to the parent. Panics if the component
// would no longer fit inside its parent, or inside the container's grid for a
// root component.
func (c *Component) MoveTo(p Position) {
	c.checkFits(Bounds{Pos: p, Area: c.size})
	c.mu.Lock()
	c.position = p
	c.mu.Unlock()
	c.markDirty()
}

// MoveBy translates the component by d. It panics like MoveTo.
func (c *Component) MoveBy(d Position) {
	c.MoveTo(c.Position().Add(d))
}

// checkFits applies the attach-time fit rule to b, a candidate for c's bounds.
func (c *Component) checkFits(b Bounds) {
	var frame Size
	if parent := c.Parent(); parent != nil {
		frame = parent.Size()
	} else if owner := c.rootOwner(); owner != nil {
		frame = owner.Grid().Size()
	} else {
		return
	}
	if !(Bounds{Area: frame}).ContainsBoundable(b) {
		panic(fmt.Sprintf("tessera: component %q (%v) does not fit inside its parent (%v)", c.name, b, frame))
	}
}

// AbsolutePosition returns the position on the grid: the sum of this
// component's position and every ancestor's.
func (c *Component) AbsolutePosition() Position {
	var abs Position
	for n := c; n != nil; n = n.Parent() {
		abs = abs.Add(n.Position())
	}
	return abs
}

// Bounds returns the rectangle in the parent's frame.
func (c *Component) Bounds() Bounds {
	return Bounds{Pos: c.Position(), Area: c.size}
}

// AbsoluteBounds returns the rectangle on the grid.
func (c *Component) AbsoluteBounds() Bounds {
	return Bounds{Pos: c.AbsolutePosition(), Area: c.size}
}

// ContainsPosition reports whether p, in the parent's frame, is inside c.
func (c *Component) ContainsPosition(p Position) bool {
	return c.Bounds().ContainsPosition(p)
}

// ContainsBoundable reports whether b, in the parent's frame, lies within c.
func (c *Component) ContainsBoundable(b Boundable) bool {
	return c.Bounds().ContainsBoundable(b)
}

// ContentBounds returns the area inside the decorations, relative to c.
func (c *Component) ContentBounds() Bounds {
	if s, ok := c.renderer.(DefaultRenderingStrategy); ok {
		return s.contentBounds(c.size)
	}
	return Bounds{Area: c.size}
}

// IsVisible reports whether the component is drawn and hit-testable.
func (c *Component) IsVisible() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visible
}

// SetVisible shows or hides the component and its subtree.
func (c *Component) SetVisible(v bool) {
	c.mu.Lock()
	c.visible = v
	c.mu.Unlock()
	c.markDirty()
}

// --- State machine ---

func (c *Component) setFlag(f stateFlags, on bool) bool {
	for {
		old := c.flags.Load()
		next := old &^ uint32(f)
		if on {
			next |= uint32(f)
		}
		if old == next {
			return false
		}
		if c.flags.CompareAndSwap(old, next) {
			c.markDirty()
			return true
		}
	}
}

func (c *Component) hasFlag(f stateFlags) bool {
	return stateFlags(c.flags.Load())&f != 0
}

// CurrentState returns the state the component is drawn in.
func (c *Component) CurrentState() ComponentState {
	return stateFlags(c.flags.Load()).resolve()
}

// ComponentStyleSet returns the current style set.
func (c *Component) ComponentStyleSet() ComponentStyleSet {
	return *c.styles.Load()
}

// CurrentStyle returns the style for CurrentState.
func (c *Component) CurrentStyle() StyleSet {
	return c.styles.Load().Style(c.CurrentState())
}

// ApplyColorTheme replaces the style set with one derived from theme and
// returns it. State flags are unchanged.
func (c *Component) ApplyColorTheme(theme ColorTheme) ComponentStyleSet {
	set := c.themer(theme)
	c.styles.Store(&set)
	c.markDirty()
	return set
}

// SetComponentStyleSet replaces the style set.
func (c *Component) SetComponentStyleSet(set ComponentStyleSet) {
	c.styles.Store(&set)
	c.markDirty()
}

// IsEnabled reports whether the component accepts input.
func (c *Component) IsEnabled() bool {
	return !c.hasFlag(flagDisabled)
}

// Enable lets the component accept input again.
func (c *Component) Enable() {
	c.setFlag(flagDisabled, false)
}

// Disable stops the component from accepting input. Disabled styling takes
// precedence over every other state.
func (c *Component) Disable() {
	c.setFlag(flagDisabled, true)
}

// AcceptsFocus reports whether GiveFocus would succeed.
func (c *Component) AcceptsFocus() bool {
	return c.focusable && c.IsEnabled() && c.IsVisible()
}

// GiveFocus focuses the component, reporting false when it refuses.
func (c *Component) GiveFocus(input Maybe[Input]) bool {
	if !c.AcceptsFocus() {
		return false
	}
	if c.setFlag(flagFocused, true) {
		c.fireState(EventFocusGiven, input)
	}
	return true
}

// TakeFocus removes focus. It never fails.
func (c *Component) TakeFocus(input Maybe[Input]) {
	if c.setFlag(flagFocused, false) {
		c.fireState(EventFocusTaken, input)
	}
}

// IsFocused reports whether the component holds focus.
func (c *Component) IsFocused() bool {
	return c.hasFlag(flagFocused)
}

// Press marks the component as pressed.
func (c *Component) Press() {
	c.setFlag(flagActive, true)
}

// Release clears the pressed mark.
func (c *Component) Release() {
	c.setFlag(flagActive, false)
}

// IsActive reports whether the component is pressed.
func (c *Component) IsActive() bool {
	return c.hasFlag(flagActive)
}

// MouseEntered marks the pointer as over the component.
func (c *Component) MouseEntered() {
	c.setFlag(flagMouseOver, true)
}

// MouseExited clears the pointer-over mark.
func (c *Component) MouseExited() {
	c.setFlag(flagMouseOver, false)
}

// IsMouseOver reports whether the pointer is over the component.
func (c *Component) IsMouseOver() bool {
	return c.hasFlag(flagMouseOver)
}

// fireState reports a focus change to the owning container's listeners, then
// to c's own.
func (c *Component) fireState(typ EventType, input Maybe[Input]) {
	in, _ := input.Get()
	ctx := newInputContext(typ, in, c)
	if ct, ok := c.Container(); ok {
		ct.handlers.fire(ctx.at(nil))
	}
	c.handlers.fire(ctx.at(c))
}

// --- Rendering ---

func (c *Component) markDirty() {
	c.dirty.Store(true)
}

// IsDirty reports whether the component changed since it was last rendered.
func (c *Component) IsDirty() bool {
	return c.dirty.Load()
}

// Render redraws the component's TileGraphics through its rendering strategy.
func (c *Component) Render() {
	c.renderMu.Lock()
	c.dirty.Store(false)
	c.renderer.Render(c, c.graphics)
	c.renderMu.Unlock()
}

func (c *Component) renderIfDirty() {
	if c.dirty.Load() {
		c.Render()
	}
}

// TileGraphics returns a copy of the component's rendered content.
func (c *Component) TileGraphics() *TileGraphics {
	c.renderIfDirty()
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	return c.graphics.Clone()
}

// DrawOnto draws the component's own content (not its children) onto g at
// offset.
func (c *Component) DrawOnto(g *TileGraphics, offset Position) {
	c.renderIfDirty()
	c.renderMu.Lock()
	g.Draw(c.graphics, offset)
	c.renderMu.Unlock()
}

// TransformToLayers flattens the component and its visible descendants into
// one layer per component, in draw order: a parent precedes its children and
// siblings keep their order. Each layer is a copy of the component's content
// placed at its absolute position, so the caller owns the result.
func (c *Component) TransformToLayers() []*Layer {
	var origin Position
	if p := c.Parent(); p != nil {
		origin = p.AbsolutePosition()
	}
	return layersOf(c.appendLayers(nil, origin))
}

// ownedLayer remembers which component a rendered layer came from.
type ownedLayer struct {
	layer *Layer
	owner *Component
}

func (c *Component) appendLayers(out []ownedLayer, origin Position) []ownedLayer {
	if !c.IsVisible() {
		return out
	}
	c.renderIfDirty()
	abs := origin.Add(c.Position())

	c.renderMu.Lock()
	g := c.graphics.Clone()
	c.renderMu.Unlock()

	out = append(out, ownedLayer{layer: NewLayer(abs, g), owner: c})
	for _, child := range c.Children() {
		out = child.appendLayers(out, abs)
	}
	return out
}

// InputEmitted delivers in straight to this component's listeners, without
// hit testing or bubbling, and reports whether a listener consumed it.
// Disabled components ignore input.
func (c *Component) InputEmitted(in Input) bool {
	if !c.IsEnabled() {
		return false
	}
	typ, ok := eventTypeOf(in)
	if !ok {
		return false
	}
	ctx := newInputContext(typ, in, c)
	c.handlers.fire(ctx.at(c))
	return ctx.Consumed()
}

func eventTypeOf(in Input) (EventType, bool) {
	switch in := in.(type) {
	case MouseAction:
		switch in.Type {
		case MousePressed:
			return EventMousePressed, true
		case MouseReleased:
			return EventMouseReleased, true
		case MouseMoved:
			return EventMouseMoved, true
		case MouseWheelUp, MouseWheelDown:
			return EventMouseWheel, true
		}
	case KeyStroke:
		return EventKeyPressed, true
	}
	return 0, false
}

func (c *Component) String() string {
	return "Component(" + c.name + ")"
}
