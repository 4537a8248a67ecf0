package tessera

import (
	"fmt"
	"slices"
)

// --- Tree manipulation ---

// AddChild appends child to this component's children, on top of its
// siblings. If child already has a parent, it is removed from that parent
// first. Panics if child is nil, is an ancestor of c (cycle), is a container
// root, or does not fit inside c.
func (c *Component) AddChild(child *Component) {
	c.addChild(child, -1)
}

// AddChildAt inserts child at index. Same checks as AddChild; index refers to
// the child list after child has been detached from its previous parent.
func (c *Component) AddChildAt(child *Component, index int) {
	if index < 0 {
		panic("tessera: child index out of range")
	}
	c.addChild(child, index)
}

// addChild inserts child at index, or appends when index is -1.
func (c *Component) addChild(child *Component, index int) {
	if child == nil {
		panic("tessera: cannot add nil child")
	}
	if isAncestor(child, c) {
		panic("tessera: adding child would create a cycle")
	}
	if child.rootOwner() != nil && child.Parent() == nil {
		panic("tessera: child is a container root; remove it from the container first")
	}
	if !(Bounds{Area: c.size}).ContainsBoundable(child.Bounds()) {
		panic(fmt.Sprintf("tessera: child %q (%v) does not fit inside %q (%v)",
			child.name, child.Bounds(), c.name, c.size))
	}
	if old := child.Parent(); old != nil {
		old.removeChildByPtr(child)
	}

	c.mu.Lock()
	if index == -1 {
		index = len(c.children)
	}
	if index > len(c.children) {
		c.mu.Unlock()
		panic("tessera: child index out of range")
	}
	c.children = slices.Insert(c.children, index, child)
	c.mu.Unlock()

	child.mu.Lock()
	child.parent = c
	child.mu.Unlock()

	child.markDirty()
	c.markDirty()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(c)
	}
}

// RemoveChild detaches child from this component.
// Panics if child's parent is not c.
func (c *Component) RemoveChild(child *Component) {
	if child.Parent() != c {
		panic("tessera: child's parent is not this component")
	}
	c.removeChildByPtr(child)
	child.mu.Lock()
	child.parent = nil
	child.mu.Unlock()
	c.markDirty()
}

// RemoveFromParent detaches this component from its parent.
// No-op if it has none.
func (c *Component) RemoveFromParent() {
	if p := c.Parent(); p != nil {
		p.RemoveChild(c)
	}
}

// RemoveChildren detaches every child.
func (c *Component) RemoveChildren() {
	c.mu.Lock()
	children := c.children
	c.children = nil
	c.mu.Unlock()
	for _, child := range children {
		child.mu.Lock()
		child.parent = nil
		child.mu.Unlock()
	}
	c.markDirty()
}

// Parent returns the parent component, or nil for roots.
func (c *Component) Parent() *Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.parent
}

// Children returns a copy of the child list in draw order.
func (c *Component) Children() []*Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.children)
}

// NumChildren returns the number of children.
func (c *Component) NumChildren() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.children)
}

// ChildAt returns the child at index.
func (c *Component) ChildAt(index int) *Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.children[index]
}

// SetChildIndex moves child to a new index among its siblings, changing its
// draw and hit-test order.
func (c *Component) SetChildIndex(child *Component, index int) {
	if child.Parent() != c {
		panic("tessera: child's parent is not this component")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.children) {
		panic("tessera: child index out of range")
	}
	old := slices.Index(c.children, child)
	if old == index {
		return
	}
	c.children = slices.Delete(c.children, old, old+1)
	c.children = slices.Insert(c.children, index, child)
}

// Root returns the topmost ancestor (c itself for roots).
func (c *Component) Root() *Component {
	n := c
	for p := n.Parent(); p != nil; p = n.Parent() {
		n = p
	}
	return n
}

// Container returns the container c is attached to, through its root.
func (c *Component) Container() (*Container, bool) {
	owner := c.Root().rootOwner()
	return owner, owner != nil
}

// Descendants returns every descendant in draw order, excluding c.
func (c *Component) Descendants() []*Component {
	var out []*Component
	for _, child := range c.Children() {
		out = append(out, child)
		out = append(out, child.Descendants()...)
	}
	return out
}

// FetchComponentByPosition returns the deepest visible component of this
// subtree whose absolute bounds contain p. Among overlapping siblings the
// later one (drawn on top) wins.
func (c *Component) FetchComponentByPosition(p Position) (*Component, bool) {
	var origin Position
	if parent := c.Parent(); parent != nil {
		origin = parent.AbsolutePosition()
	}
	return hitTest(collectHitTargets(c, origin, nil), p)
}

func (c *Component) rootOwner() *Container {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.owner
}

func (c *Component) setOwner(owner *Container) {
	c.mu.Lock()
	c.owner = owner
	c.mu.Unlock()
}

// --- Hit testing ---

type hitTarget struct {
	component *Component
	bounds    Bounds
}

// collectHitTargets walks the subtree in painter order (parent first, then
// children in order), appending visible components with their absolute
// bounds. Hidden subtrees are skipped.
func collectHitTargets(c *Component, origin Position, buf []hitTarget) []hitTarget {
	if !c.IsVisible() {
		return buf
	}
	abs := origin.Add(c.Position())
	buf = append(buf, hitTarget{component: c, bounds: Bounds{Pos: abs, Area: c.size}})
	for _, child := range c.Children() {
		buf = collectHitTargets(child, abs, buf)
	}
	return buf
}

// hitTest returns the topmost target containing p: it walks painter order
// backwards, so the first hit is the last drawn, which is also the deepest.
func hitTest(targets []hitTarget, p Position) (*Component, bool) {
	for i := len(targets) - 1; i >= 0; i-- {
		if targets[i].bounds.ContainsPosition(p) {
			return targets[i].component, true
		}
	}
	return nil, false
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Component) bool {
	for p := node; p != nil; p = p.Parent() {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from c.children without clearing
// child.parent.
func (c *Component) removeChildByPtr(child *Component) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, ch := range c.children {
		if ch == child {
			copy(c.children[i:], c.children[i+1:])
			c.children[len(c.children)-1] = nil
			c.children = c.children[:len(c.children)-1]
			return
		}
	}
}
