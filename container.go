package tessera

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// Container holds the root components shown on a TileGrid and routes input to
// them. It tracks which component has focus, which one is under the pointer
// and which one is pressed.
//
// Container-level listeners (OnMousePressed and friends) observe every event
// before the target component does; consuming there stops delivery.
//
// InputEmitted calls are serialized. Listeners run synchronously during
// dispatch and may mutate the tree, change focus or render, but must not call
// InputEmitted on the same container.
type Container struct {
	listeners

	grid *TileGrid

	dispatchMu sync.Mutex
	renderMu   sync.Mutex

	mu          sync.Mutex
	roots       []*Component
	focused     *Component
	hovered     *Component
	pressed     *Component
	lastLayers  []ownedLayer
	lastPointer Maybe[Position]
}

// NewContainer returns an empty container drawing onto grid.
// Panics if grid is nil.
func NewContainer(grid *TileGrid) *Container {
	if grid == nil {
		panic("tessera: container needs a grid")
	}
	return &Container{grid: grid}
}

// Grid returns the grid the container renders onto.
func (ct *Container) Grid() *TileGrid {
	return ct.grid
}

// Size returns the area available to root components.
func (ct *Container) Size() Size {
	return ct.grid.Size()
}

// --- Tree ---

// AddComponent attaches c as a root, drawn on top of the existing roots.
// Adding a root that is already attached here is a no-op. Panics if c is nil,
// has a parent, belongs to another container or does not fit on the grid.
func (ct *Container) AddComponent(c *Component) {
	if c == nil {
		panic("tessera: cannot add nil component")
	}
	if c.Parent() != nil {
		panic(fmt.Sprintf("tessera: component %q has a parent; remove it first", c.name))
	}
	switch owner := c.rootOwner(); owner {
	case ct:
		return
	case nil:
	default:
		panic(fmt.Sprintf("tessera: component %q belongs to another container", c.name))
	}
	if !(Bounds{Area: ct.grid.Size()}).ContainsBoundable(c.Bounds()) {
		panic(fmt.Sprintf("tessera: component %q (%v) does not fit inside the container (%v)",
			c.name, c.Bounds(), ct.grid.Size()))
	}

	ct.mu.Lock()
	ct.roots = append(ct.roots, c)
	ct.mu.Unlock()
	c.setOwner(ct)
	c.markDirty()
	if globalDebug {
		debugCheckTreeDepth(c)
	}
}

// RemoveComponent detaches c, which may be a root or any descendant of one,
// and drops every reference the container kept into its subtree: focus,
// hover, press, and the layers it pushed for it on the last render.
// It reports whether c was attached to this container.
func (ct *Container) RemoveComponent(c *Component) bool {
	if c == nil {
		return false
	}
	if owner, ok := c.Container(); !ok || owner != ct {
		return false
	}

	ct.renderMu.Lock()
	defer ct.renderMu.Unlock()

	if c.Parent() != nil {
		c.RemoveFromParent()
	} else {
		ct.mu.Lock()
		ct.roots = removeComponentByPtr(ct.roots, c)
		ct.mu.Unlock()
		c.setOwner(nil)
	}

	ct.mu.Lock()
	var stale []*Layer
	kept := ct.lastLayers[:0]
	for _, ol := range ct.lastLayers {
		if isAncestor(c, ol.owner) {
			stale = append(stale, ol.layer)
			continue
		}
		kept = append(kept, ol)
	}
	clear(ct.lastLayers[len(kept):])
	ct.lastLayers = kept

	var lostFocus, lostHover, lostPress *Component
	if ct.focused != nil && isAncestor(c, ct.focused) {
		lostFocus, ct.focused = ct.focused, nil
	}
	if ct.hovered != nil && isAncestor(c, ct.hovered) {
		lostHover, ct.hovered = ct.hovered, nil
	}
	if ct.pressed != nil && isAncestor(c, ct.pressed) {
		lostPress, ct.pressed = ct.pressed, nil
	}
	ct.mu.Unlock()

	ct.grid.SwapLayers(stale, nil)
	if lostFocus != nil {
		lostFocus.TakeFocus(None[Input]())
	}
	if lostHover != nil {
		lostHover.MouseExited()
	}
	if lostPress != nil {
		lostPress.Release()
	}
	return true
}

// Components returns the root components, bottom first.
func (ct *Container) Components() []*Component {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return slices.Clone(ct.roots)
}

// AllComponents returns every attached component in painter order.
func (ct *Container) AllComponents() []*Component {
	var out []*Component
	for _, root := range ct.Components() {
		out = append(out, root)
		out = append(out, root.Descendants()...)
	}
	return out
}

// FetchComponentByPosition returns the deepest visible component whose
// absolute bounds contain p. Among overlapping components the one drawn last
// wins.
func (ct *Container) FetchComponentByPosition(p Position) (*Component, bool) {
	var targets []hitTarget
	for _, root := range ct.Components() {
		targets = collectHitTargets(root, PositionZero, targets)
	}
	return hitTest(targets, p)
}

// ApplyColorTheme restyles every attached component from theme.
func (ct *Container) ApplyColorTheme(theme ColorTheme) {
	for _, c := range ct.AllComponents() {
		c.ApplyColorTheme(theme)
	}
}

// --- Focus ---

// Focused returns the component holding keyboard focus.
func (ct *Container) Focused() (*Component, bool) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.pruneLocked()
	return ct.focused, ct.focused != nil
}

// Focus moves keyboard focus to c. It reports false, leaving focus where it
// was, when c is not attached here or refuses focus. A nil c clears focus.
func (ct *Container) Focus(c *Component) bool {
	return ct.moveFocus(c, None[Input]())
}

// FocusNext moves focus to the next component accepting it, in painter order,
// wrapping around. It reports false when no component accepts focus.
func (ct *Container) FocusNext() bool {
	return ct.cycleFocus(1, None[Input]())
}

// FocusPrevious moves focus to the previous component accepting it.
func (ct *Container) FocusPrevious() bool {
	return ct.cycleFocus(-1, None[Input]())
}

func (ct *Container) cycleFocus(step int, in Maybe[Input]) bool {
	var order []*Component
	for _, c := range ct.AllComponents() {
		if c.AcceptsFocus() && visibleChain(c) {
			order = append(order, c)
		}
	}
	if len(order) == 0 {
		return false
	}
	current, _ := ct.Focused()
	i := slices.Index(order, current)
	switch {
	case i < 0 && step > 0:
		i = 0
	case i < 0:
		i = len(order) - 1
	default:
		i = (i + step + len(order)) % len(order)
	}
	return ct.moveFocus(order[i], in)
}

func (ct *Container) moveFocus(next *Component, in Maybe[Input]) bool {
	if next != nil {
		if owner, ok := next.Container(); !ok || owner != ct {
			return false
		}
		if !next.AcceptsFocus() {
			return false
		}
	}
	ct.mu.Lock()
	prev := ct.focused
	ct.focused = next
	ct.mu.Unlock()

	if prev == next {
		if next != nil {
			next.GiveFocus(in)
		}
		return true
	}
	if prev != nil {
		prev.TakeFocus(in)
	}
	if next != nil && !next.GiveFocus(in) {
		ct.mu.Lock()
		if ct.focused == next {
			ct.focused = nil
		}
		ct.mu.Unlock()
		return false
	}
	return true
}

// visibleChain reports whether c and all its ancestors are visible.
func visibleChain(c *Component) bool {
	for n := c; n != nil; n = n.Parent() {
		if !n.IsVisible() {
			return false
		}
	}
	return true
}

// --- Input dispatch ---

// InputEmitted routes in and reports whether a listener consumed it.
//
// Pointer events go to the deepest component under the pointer and bubble up
// through its ancestors. Key events go to the focus holder and bubble the same
// way; an unconsumed Tab or Backtab then moves focus. Disabled components
// never receive events and bubbling skips them.
func (ct *Container) InputEmitted(in Input) bool {
	ct.dispatchMu.Lock()
	defer ct.dispatchMu.Unlock()

	ct.mu.Lock()
	ct.pruneLocked()
	ct.mu.Unlock()

	switch in := in.(type) {
	case MouseAction:
		return ct.dispatchMouse(in)
	case KeyStroke:
		return ct.dispatchKey(in)
	}
	return false
}

func (ct *Container) dispatchMouse(in MouseAction) bool {
	target, _ := ct.FetchComponentByPosition(in.Position)
	ct.updateHover(in, target)

	ct.mu.Lock()
	pressed := ct.pressed
	last, seen := ct.lastPointer.Get()
	moved := !seen || last != in.Position
	ct.lastPointer = Some(in.Position)
	ct.mu.Unlock()

	switch in.Type {
	case MousePressed:
		if pressed != nil {
			pressed.Release()
		}
		ct.mu.Lock()
		ct.pressed = nil
		if target != nil && target.IsEnabled() {
			ct.pressed = target
		}
		ct.mu.Unlock()
		if target != nil && target.IsEnabled() {
			target.Press()
			if f := focusTarget(target); f != nil {
				ct.moveFocus(f, Some[Input](in))
			}
		}
		return ct.deliver(EventMousePressed, in, target)

	case MouseReleased:
		ct.mu.Lock()
		ct.pressed = nil
		ct.mu.Unlock()
		if pressed != nil {
			pressed.Release()
		}
		consumed := ct.deliver(EventMouseReleased, in, target)
		if pressed != nil && pressed == target {
			if ct.deliver(EventMouseClicked, in, target) {
				consumed = true
			}
		}
		return consumed

	case MouseMoved:
		if !moved {
			return false
		}
		if pressed != nil {
			return ct.deliver(EventMouseDragged, in, target)
		}
		return ct.deliver(EventMouseMoved, in, target)

	case MouseWheelUp, MouseWheelDown:
		return ct.deliver(EventMouseWheel, in, target)
	}
	return false
}

// updateHover moves MOUSE_OVER from the previous hover target to target,
// firing exit before enter.
func (ct *Container) updateHover(in MouseAction, target *Component) {
	ct.mu.Lock()
	prev := ct.hovered
	if prev == target {
		ct.mu.Unlock()
		return
	}
	ct.hovered = target
	ct.mu.Unlock()

	if prev != nil {
		prev.MouseExited()
		ct.notify(EventMouseExited, in, prev)
	}
	if target != nil {
		target.MouseEntered()
		ct.notify(EventMouseEntered, in, target)
	}
}

func (ct *Container) dispatchKey(in KeyStroke) bool {
	focused, _ := ct.Focused()
	if ct.deliver(EventKeyPressed, in, focused) {
		return true
	}
	switch {
	case in.Key == KeyBacktab, in.Key == KeyTab && in.Modifiers&ModShift != 0:
		return ct.cycleFocus(-1, Some[Input](in))
	case in.Key == KeyTab:
		return ct.cycleFocus(1, Some[Input](in))
	}
	return false
}

// deliver fires typ at the container listeners and then at target and its
// enabled ancestors until one consumes it.
func (ct *Container) deliver(typ EventType, in Input, target *Component) bool {
	ctx := newInputContext(typ, in, target)
	ct.handlers.fire(ctx.at(nil))
	if ctx.Consumed() {
		return true
	}
	for c := target; c != nil; c = c.Parent() {
		if !c.IsEnabled() {
			continue
		}
		c.handlers.fire(ctx.at(c))
		if ctx.Consumed() {
			return true
		}
	}
	return false
}

// notify fires a non-bubbling event at the container listeners and at c.
func (ct *Container) notify(typ EventType, in Input, c *Component) {
	ctx := newInputContext(typ, in, c)
	ct.handlers.fire(ctx.at(nil))
	if ctx.Consumed() || !c.IsEnabled() {
		return
	}
	c.handlers.fire(ctx.at(c))
}

// focusTarget returns the nearest component, starting at c, that accepts
// focus.
func focusTarget(c *Component) *Component {
	for n := c; n != nil; n = n.Parent() {
		if n.AcceptsFocus() {
			return n
		}
	}
	return nil
}

// pruneLocked forgets focus, hover and press targets that were detached from
// the container behind its back. ct.mu must be held.
func (ct *Container) pruneLocked() {
	attached := func(c *Component) bool {
		owner, ok := c.Container()
		return ok && owner == ct
	}
	if ct.focused != nil && (!attached(ct.focused) || !ct.focused.IsFocused()) {
		ct.focused = nil
	}
	if ct.hovered != nil && !attached(ct.hovered) {
		ct.hovered = nil
	}
	if ct.pressed != nil && !attached(ct.pressed) {
		ct.pressed = nil
	}
}

// --- Rendering ---

// Render redraws dirty components and replaces the layers this container
// pushed on its previous render with fresh ones, in one swap. The fresh layers
// take the stack slot of the old ones, so layers pushed by anyone else stay
// above or below the components as they were.
func (ct *Container) Render() {
	ct.renderMu.Lock()
	defer ct.renderMu.Unlock()

	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	var next []ownedLayer
	for _, root := range ct.Components() {
		next = root.appendLayers(next, PositionZero)
	}

	ct.mu.Lock()
	old := ct.lastLayers
	ct.lastLayers = next
	ct.mu.Unlock()

	ct.grid.SwapLayers(layersOf(old), layersOf(next))

	if globalDebug {
		debugLog("render: %v | layers: %d", time.Since(t0), len(next))
	}
}

func layersOf(owned []ownedLayer) []*Layer {
	out := make([]*Layer, len(owned))
	for i, o := range owned {
		out[i] = o.layer
	}
	return out
}

// removeComponentByPtr removes c from s, preserving order.
func removeComponentByPtr(s []*Component, c *Component) []*Component {
	return slices.DeleteFunc(s, func(x *Component) bool { return x == c })
}
