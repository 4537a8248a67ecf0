package tessera

import (
	"sync"
	"sync/atomic"
)

var layerIDCounter atomic.Uint32

// Layer is a TileGraphics anchored at an absolute grid position. Layers are
// compared by identity: two layers with equal content are still different
// layers. Moving a layer only updates its position.
//
// A Layer is safe for concurrent use, so an animation tick may move or redraw
// it while a render pass reads it.
type Layer struct {
	id uint32

	mu       sync.RWMutex
	position Position
	graphics *TileGraphics
}

// NewLayer returns a layer at position that takes ownership of g.
// A nil g panics.
func NewLayer(position Position, g *TileGraphics) *Layer {
	if g == nil {
		panic("tessera: cannot create a layer without graphics")
	}
	return &Layer{id: layerIDCounter.Add(1), position: position, graphics: g}
}

// NewEmptyLayer returns a layer with a blank buffer of the given size.
func NewEmptyLayer(position Position, size Size, tileset Tileset) *Layer {
	return NewLayer(position, NewTileGraphics(size, tileset))
}

// ID returns a process-unique identifier, useful in logs.
func (l *Layer) ID() uint32 {
	return l.id
}

// Position returns the layer's top-left cell on the grid.
func (l *Layer) Position() Position {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.position
}

// Size returns the layer's extent.
func (l *Layer) Size() Size {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.graphics.Size()
}

// Bounds returns the rectangle the layer covers on the grid.
func (l *Layer) Bounds() Bounds {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Bounds{Pos: l.position, Area: l.graphics.Size()}
}

// CurrentTileset returns the tileset the layer's content is drawn with.
func (l *Layer) CurrentTileset() Tileset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.graphics.Tileset()
}

// MoveTo places the layer at p.
func (l *Layer) MoveTo(p Position) {
	l.mu.Lock()
	l.position = p
	l.mu.Unlock()
}

// MoveBy translates the layer by d.
func (l *Layer) MoveBy(d Position) {
	l.mu.Lock()
	l.position = l.position.Add(d)
	l.mu.Unlock()
}

// TileAt returns the tile at p in layer-local coordinates.
func (l *Layer) TileAt(p Position) (Tile, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.graphics.TileAt(p)
}

// SetTileAt writes t at layer-local position p.
func (l *Layer) SetTileAt(p Position, t Tile) {
	l.mu.Lock()
	l.graphics.SetTileAt(p, t)
	l.mu.Unlock()
}

// Draw copies src into the layer's buffer at the layer-local offset.
func (l *Layer) Draw(src *TileGraphics, offset Position) {
	l.mu.Lock()
	l.graphics.Draw(src, offset)
	l.mu.Unlock()
}

// Fill sets every cell of the layer to t.
func (l *Layer) Fill(t Tile) {
	l.mu.Lock()
	l.graphics.Fill(t)
	l.mu.Unlock()
}

// Clear blanks the layer's content.
func (l *Layer) Clear() {
	l.mu.Lock()
	l.graphics.Clear()
	l.mu.Unlock()
}

// Graphics returns a copy of the layer's content.
func (l *Layer) Graphics() *TileGraphics {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.graphics.Clone()
}

// Clone returns a new layer with the same position and a copy of the content.
func (l *Layer) Clone() *Layer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return NewLayer(l.position, l.graphics.Clone())
}

// mergeInto composites the layer over dst, where dst's origin is the grid
// origin. Empty tiles are transparent.
func (l *Layer) mergeInto(dst *TileGraphics) {
	l.mu.RLock()
	dst.Merge(l.graphics, l.position)
	l.mu.RUnlock()
}

// absoluteTileAt returns the layer's tile at grid position p.
func (l *Layer) absoluteTileAt(p Position) (Tile, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.graphics.TileAt(p.Sub(l.position))
}

// setContent replaces the layer's content with a copy of g.
func (l *Layer) setContent(g *TileGraphics) {
	l.mu.Lock()
	l.graphics.copyFrom(g)
	l.mu.Unlock()
}
