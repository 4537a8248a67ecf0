package tessera

import (
	"sync"
	"sync/atomic"
)

// Display is a device that shows a TileGrid: a terminal, a window, or an
// in-memory buffer. Grid returns the live grid the device reads each frame.
// Displays are compared by identity, so implementations should be pointers.
type Display interface {
	Grid() *TileGrid
}

// screenRegistry records which Screen is active on each Display. Screen.Display
// is the only writer.
var screenRegistry = struct {
	mu     sync.Mutex
	active map[Display]*Screen
}{active: make(map[Display]*Screen)}

// Screen pairs a Container with an offscreen TileGrid sized to a Display.
// Many screens may be built for one display; Display makes one of them the
// visible one.
type Screen struct {
	display   Display
	grid      *TileGrid
	container *Container
	active    atomic.Bool
}

// NewScreen returns an inactive screen for d. Its grid matches the size and
// tileset of d's grid. Panics if d is nil or has no grid.
func NewScreen(d Display) *Screen {
	if d == nil {
		panic("tessera: screen needs a display")
	}
	live := d.Grid()
	if live == nil {
		panic("tessera: display has no grid")
	}
	grid := NewTileGrid(live.Size(), live.Tileset())
	return &Screen{
		display:   d,
		grid:      grid,
		container: NewContainer(grid),
	}
}

// Grid returns the screen's offscreen grid. Draw on it freely; Display copies
// it to the device.
func (s *Screen) Grid() *TileGrid {
	return s.grid
}

// Container returns the screen's component container.
func (s *Screen) Container() *Container {
	return s.container
}

// Target returns the display the screen belongs to.
func (s *Screen) Target() Display {
	return s.display
}

// IsActive reports whether this is the screen currently shown on its display.
func (s *Screen) IsActive() bool {
	return s.active.Load()
}

// Display renders the screen, copies its grid to the display's live grid and
// makes it the display's active screen. The previously active screen, if any,
// becomes inactive. Calling Display on the active screen refreshes it.
func (s *Screen) Display() {
	s.container.Render()

	screenRegistry.mu.Lock()
	prev := screenRegistry.active[s.display]
	screenRegistry.active[s.display] = s
	if prev != nil && prev != s {
		prev.active.Store(false)
	}
	s.active.Store(true)
	screenRegistry.mu.Unlock()

	s.display.Grid().UseContentsOf(s.grid)

	if globalDebug && prev != s {
		debugLog("screen: activated %p on display %p", s, s.display)
	}
}

// Close deactivates the screen, forgets it in the registry and releases its
// grid. If the screen was active, the display's grid is reset.
func (s *Screen) Close() {
	screenRegistry.mu.Lock()
	wasActive := screenRegistry.active[s.display] == s
	if wasActive {
		delete(screenRegistry.active, s.display)
	}
	s.active.Store(false)
	screenRegistry.mu.Unlock()
	if wasActive {
		s.display.Grid().Reset()
	}
	s.grid.Close()
}

// ActiveScreen returns the screen shown on d.
func ActiveScreen(d Display) (*Screen, bool) {
	screenRegistry.mu.Lock()
	defer screenRegistry.mu.Unlock()
	s, ok := screenRegistry.active[d]
	return s, ok
}

// DispatchInput routes in to the active screen on d, then redisplays it so
// state changes show. It reports whether a listener consumed the event; with
// no active screen it reports false.
func DispatchInput(d Display, in Input) bool {
	s, ok := ActiveScreen(d)
	if !ok {
		return false
	}
	consumed := s.container.InputEmitted(in)
	if s.IsActive() {
		s.Display()
	}
	return consumed
}

// MemoryDisplay is a Display with no device behind it. It is useful in tests
// and for rendering offscreen.
type MemoryDisplay struct {
	grid *TileGrid
}

// NewMemoryDisplay returns a display whose live grid has the given size.
func NewMemoryDisplay(size Size, tileset Tileset) *MemoryDisplay {
	return &MemoryDisplay{grid: NewTileGrid(size, tileset)}
}

// Grid implements Display.
func (d *MemoryDisplay) Grid() *TileGrid {
	return d.grid
}
