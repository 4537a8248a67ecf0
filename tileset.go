package tessera

import (
	"log"
	"sync"
)

// Tileset identifies the glyph atlas used to draw tiles. Only ID takes part in
// equality checks; Width and Height are the glyph cell dimensions in pixels,
// consumed by graphical display devices.
type Tileset struct {
	ID     string
	Width  int
	Height int
}

// Built-in CP437 tilesets. The ID doubles as the resource name graphical
// devices resolve through a TilesetProvider.
var (
	TilesetRogueYun16x16 = Tileset{ID: "rogue_yun_16x16", Width: 16, Height: 16}
	TilesetWanderlust16  = Tileset{ID: "wanderlust_16x16", Width: 16, Height: 16}
	TilesetAnikki8x8     = Tileset{ID: "anikki_8x8", Width: 8, Height: 8}
)

// DefaultTileset is used by graphics and components constructed without one.
var DefaultTileset = TilesetRogueYun16x16

// Same reports whether t and o refer to the same glyph atlas.
func (t Tileset) Same(o Tileset) bool {
	return t.ID == o.ID
}

// IsZero reports whether t is unset.
func (t Tileset) IsZero() bool {
	return t.ID == ""
}

func orDefaultTileset(t Tileset) Tileset {
	if t.IsZero() {
		return DefaultTileset
	}
	return t
}

// TilesetProvider resolves tileset metadata by ID.
type TilesetProvider interface {
	Tileset(id string) (Tileset, bool)
}

// TilesetRegistry is an in-memory TilesetProvider.
type TilesetRegistry struct {
	mu       sync.RWMutex
	tilesets map[string]Tileset
}

// NewTilesetRegistry returns a registry preloaded with the built-in tilesets.
func NewTilesetRegistry() *TilesetRegistry {
	r := &TilesetRegistry{tilesets: make(map[string]Tileset)}
	for _, t := range []Tileset{TilesetRogueYun16x16, TilesetWanderlust16, TilesetAnikki8x8} {
		r.tilesets[t.ID] = t
	}
	return r
}

// Register adds or replaces t.
func (r *TilesetRegistry) Register(t Tileset) {
	r.mu.Lock()
	r.tilesets[t.ID] = t
	r.mu.Unlock()
}

// Tileset returns the tileset registered under id.
func (r *TilesetRegistry) Tileset(id string) (Tileset, bool) {
	r.mu.RLock()
	t, ok := r.tilesets[id]
	r.mu.RUnlock()
	return t, ok
}

// TilesetOrDefault returns the tileset registered under id, or DefaultTileset
// when none is. In debug mode a miss is logged.
func TilesetOrDefault(p TilesetProvider, id string) Tileset {
	if t, ok := p.Tileset(id); ok {
		return t
	}
	if globalDebug {
		log.Printf("tessera: tileset %q not found, using %q", id, DefaultTileset.ID)
	}
	return DefaultTileset
}
