package tessera

import (
	"sync"
	"sync/atomic"
	"time"
)

// TileGrid is the surface a display device reads: a base buffer (the backend)
// plus a layer stack. Reading a cell composites the backend and then every
// layer bottom to top; the last non-empty tile wins.
//
// All methods are safe for concurrent use. Readers (TileAt, Snapshot) see a
// consistent backend and layer list; UseContentsOf and Reset are exclusive.
type TileGrid struct {
	mu      sync.RWMutex
	size    Size
	tileset Tileset
	backend *TileGraphics
	layers  *LayerStack
	closed  bool

	animations *AnimationHandler
	version    atomic.Uint64
}

// NewTileGrid returns an empty grid.
func NewTileGrid(size Size, tileset Tileset) *TileGrid {
	g := &TileGrid{
		size:    NewSize(size.Width, size.Height),
		tileset: orDefaultTileset(tileset),
		layers:  NewLayerStack(),
	}
	g.backend = NewTileGraphics(g.size, g.tileset)
	g.animations = newAnimationHandler(g)
	return g
}

// Size returns the grid dimensions.
func (g *TileGrid) Size() Size {
	return g.size
}

// Position returns the grid origin; grids always sit at (0,0).
func (g *TileGrid) Position() Position {
	return PositionZero
}

// Tileset returns the grid's default tileset.
func (g *TileGrid) Tileset() Tileset {
	return g.tileset
}

// Animations returns the handler that drives animations on this grid.
func (g *TileGrid) Animations() *AnimationHandler {
	return g.animations
}

// Version returns a counter that increases whenever the grid content changes
// through the grid's own methods. Display devices compare it to skip redundant
// frames.
func (g *TileGrid) Version() uint64 {
	return g.version.Load()
}

// MarkDirty bumps Version. Call it after mutating a pushed Layer directly.
func (g *TileGrid) MarkDirty() {
	g.version.Add(1)
}

// TileAt returns the merged tile at p. Positions outside the grid report false.
func (g *TileGrid) TileAt(p Position) (Tile, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	base, ok := g.backend.TileAt(p)
	if !ok {
		return EmptyTile(), false
	}
	layers := g.layers.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		if t, ok := layers[i].absoluteTileAt(p); ok && !t.IsEmpty() {
			return t, true
		}
	}
	return base, true
}

// Snapshot returns the merged view of the grid as a single buffer. The layer
// list is fixed for the whole pass.
func (g *TileGrid) Snapshot() *TileGraphics {
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	g.mu.RLock()
	out := g.backend.Clone()
	layers := g.layers.Layers()
	for _, l := range layers {
		l.mergeInto(out)
	}
	g.mu.RUnlock()

	if globalDebug {
		debugLog("merge: %v | layers: %d | size: %v", time.Since(t0), len(layers), g.size)
	}
	return out
}

// SetTileAt writes t to the backend at p. Out-of-bounds writes are ignored.
func (g *TileGrid) SetTileAt(p Position, t Tile) {
	g.mu.Lock()
	g.backend.SetTileAt(p, t)
	g.mu.Unlock()
	g.MarkDirty()
}

// Draw copies src onto the backend at offset, clipping per cell.
func (g *TileGrid) Draw(src *TileGraphics, offset Position) {
	g.mu.Lock()
	g.backend.Draw(src, offset)
	g.mu.Unlock()
	g.MarkDirty()
}

// Clear blanks the backend. Layers are kept.
func (g *TileGrid) Clear() {
	g.mu.Lock()
	g.backend.Clear()
	g.mu.Unlock()
	g.MarkDirty()
}

// PushLayer places l on top of the stack.
func (g *TileGrid) PushLayer(l *Layer) {
	g.mu.Lock()
	g.layers.PushLayer(l)
	g.mu.Unlock()
	g.MarkDirty()
}

// PopLayer removes the topmost layer.
func (g *TileGrid) PopLayer() (*Layer, bool) {
	g.mu.Lock()
	l, ok := g.layers.PopLayer()
	g.mu.Unlock()
	if ok {
		g.MarkDirty()
	}
	return l, ok
}

// InsertLayerAt places l at index in the stack.
func (g *TileGrid) InsertLayerAt(index int, l *Layer) {
	g.mu.Lock()
	defer g.MarkDirty()
	defer g.mu.Unlock()
	g.layers.InsertLayerAt(index, l)
}

// RemoveLayer removes exactly l.
func (g *TileGrid) RemoveLayer(l *Layer) bool {
	g.mu.Lock()
	ok := g.layers.RemoveLayer(l)
	g.mu.Unlock()
	if ok {
		g.MarkDirty()
	}
	return ok
}

// SwapLayers replaces the layers of old with next in one step, at the stack
// position the lowest of old held (see LayerStack.ReplaceLayers). Readers never
// observe the stack with only part of the swap applied.
func (g *TileGrid) SwapLayers(old, next []*Layer) {
	g.mu.Lock()
	g.layers.ReplaceLayers(old, next)
	g.mu.Unlock()
	g.MarkDirty()
}

// Layers returns a snapshot of the layer stack, bottom first.
func (g *TileGrid) Layers() []*Layer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.layers.Layers()
}

// LayerCount returns the number of layers.
func (g *TileGrid) LayerCount() int {
	return g.layers.LayerCount()
}

// UseContentsOf replaces this grid's backend and layers with copies of other's.
// Backend content outside this grid's size is clipped. The copy of other is
// taken before this grid is locked, so two grids copying from each other
// cannot deadlock. Calls on a closed grid are ignored.
func (g *TileGrid) UseContentsOf(other *TileGrid) {
	if other == nil || other == g {
		return
	}

	backend := NewTileGraphics(g.size, g.tileset)
	other.mu.RLock()
	backend.Draw(other.backend, PositionZero)
	src := other.layers.Layers()
	layers := make([]*Layer, 0, len(src))
	for _, l := range src {
		layers = append(layers, l.Clone())
	}
	other.mu.RUnlock()

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.backend = backend
	g.layers.replace(layers)
	g.mu.Unlock()
	g.MarkDirty()
}

// Reset blanks the backend and drops every layer.
func (g *TileGrid) Reset() {
	g.mu.Lock()
	g.backend.Clear()
	g.layers.Clear()
	g.mu.Unlock()
	g.MarkDirty()
}

// Close stops the grid's animations and resets it. Closing twice is a no-op.
func (g *TileGrid) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.mu.Unlock()

	g.animations.Close()
	g.Reset()
}

// IsClosed reports whether Close was called.
func (g *TileGrid) IsClosed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.closed
}
