package tessera

// TileGraphics is a rectangular buffer of tiles. Every in-bounds cell holds a
// tile, EmptyTile until something is drawn. Writes outside the buffer are
// clipped per cell and never fail.
//
// A TileGraphics is not safe for concurrent use; Layer adds locking for the
// buffers that take part in compositing.
type TileGraphics struct {
	size    Size
	tiles   []Tile // row-major, len = size.Area()
	tileset Tileset
}

// NewTileGraphics returns an empty buffer. A zero tileset selects
// DefaultTileset.
func NewTileGraphics(size Size, tileset Tileset) *TileGraphics {
	size = NewSize(size.Width, size.Height)
	return &TileGraphics{
		size:    size,
		tiles:   make([]Tile, size.Area()),
		tileset: orDefaultTileset(tileset),
	}
}

// Size returns the buffer dimensions. It never changes.
func (g *TileGraphics) Size() Size {
	return g.size
}

// Tileset returns the glyph atlas tiles in this buffer are drawn with.
func (g *TileGraphics) Tileset() Tileset {
	return g.tileset
}

// SetTileset changes the glyph atlas metadata.
func (g *TileGraphics) SetTileset(t Tileset) {
	g.tileset = orDefaultTileset(t)
}

func (g *TileGraphics) index(p Position) (int, bool) {
	if !g.size.Contains(p) {
		return 0, false
	}
	return p.Y*g.size.Width + p.X, true
}

// TileAt returns the tile at p. Positions outside the buffer report false and
// an EmptyTile; in-bounds positions with nothing drawn report EmptyTile and true.
func (g *TileGraphics) TileAt(p Position) (Tile, bool) {
	i, ok := g.index(p)
	if !ok {
		return EmptyTile(), false
	}
	return g.tiles[i], true
}

// SetTileAt writes t at p. Out-of-bounds writes are ignored.
func (g *TileGraphics) SetTileAt(p Position, t Tile) {
	if i, ok := g.index(p); ok {
		g.tiles[i] = t
	}
}

// Draw copies every tile of src into g with src's origin at offset.
// Source cells that land outside g are dropped; the overlapping part is drawn.
func (g *TileGraphics) Draw(src *TileGraphics, offset Position) {
	g.blit(src, offset, false)
}

// Merge is Draw except that empty source tiles leave g unchanged.
func (g *TileGraphics) Merge(src *TileGraphics, offset Position) {
	g.blit(src, offset, true)
}

func (g *TileGraphics) blit(src *TileGraphics, offset Position, skipEmpty bool) {
	if src == nil {
		return
	}
	dst := Bounds{Area: g.size}
	area, ok := dst.Intersection(Bounds{Pos: offset, Area: src.size})
	if !ok {
		return
	}
	for y := area.Pos.Y; y < area.Pos.Y+area.Area.Height; y++ {
		srcRow := (y - offset.Y) * src.size.Width
		dstRow := y * g.size.Width
		for x := area.Pos.X; x < area.Pos.X+area.Area.Width; x++ {
			t := src.tiles[srcRow+x-offset.X]
			if skipEmpty && t.IsEmpty() {
				continue
			}
			g.tiles[dstRow+x] = t
		}
	}
}

// Region returns a copy of the part of g covered by b. Parts of b outside g
// are clipped, so the result may be smaller than b (or empty).
func (g *TileGraphics) Region(b Bounds) *TileGraphics {
	area, ok := Bounds{Area: g.size}.Intersection(b)
	if !ok {
		return NewTileGraphics(SizeZero, g.tileset)
	}
	out := NewTileGraphics(area.Area, g.tileset)
	for p := range area.Area.Positions() {
		t, _ := g.TileAt(p.Add(area.Pos))
		out.tiles[p.Y*out.size.Width+p.X] = t
	}
	return out
}

// Fill sets every cell to t.
func (g *TileGraphics) Fill(t Tile) {
	for i := range g.tiles {
		g.tiles[i] = t
	}
}

// Clear resets every cell to EmptyTile.
func (g *TileGraphics) Clear() {
	clear(g.tiles)
}

// DrawText writes s starting at p, one rune per cell, left to right.
// Runes past the right edge are clipped.
func (g *TileGraphics) DrawText(p Position, s string, style StyleSet) {
	x := p.X
	for _, r := range s {
		g.SetTileAt(Position{x, p.Y}, NewTile(r, style))
		x++
	}
}

// Clone returns a deep copy.
func (g *TileGraphics) Clone() *TileGraphics {
	out := &TileGraphics{
		size:    g.size,
		tiles:   make([]Tile, len(g.tiles)),
		tileset: g.tileset,
	}
	copy(out.tiles, g.tiles)
	return out
}

// copyFrom overwrites g with src, taking its size when they differ.
func (g *TileGraphics) copyFrom(src *TileGraphics) {
	if g.size != src.size {
		g.tiles = make([]Tile, len(src.tiles))
		g.size = src.size
	}
	copy(g.tiles, src.tiles)
	g.tileset = src.tileset
}

// Equal reports whether g and o have the same size, tileset and tiles.
func (g *TileGraphics) Equal(o *TileGraphics) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.size != o.size || !g.tileset.Same(o.tileset) {
		return false
	}
	for i := range g.tiles {
		if g.tiles[i] != o.tiles[i] {
			return false
		}
	}
	return true
}
