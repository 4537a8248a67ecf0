// Package termdisplay shows a tessera grid in a terminal through tcell.
//
// A Display owns a tcell.Screen and a live TileGrid of the terminal's size.
// Build screens for it with tessera.NewScreen, activate one, then call Run:
// it forwards keyboard and mouse events to the active screen and repaints the
// terminal whenever the grid changes.
package termdisplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/phanxgames/tessera"
)

// ErrClosed is returned by Flush and Run after Close.
var ErrClosed = errors.New("termdisplay: closed")

// DefaultFrameInterval is how often Run checks the grid for changes.
const DefaultFrameInterval = 16 * time.Millisecond

// Config configures a terminal Display.
type Config struct {
	// Screen is the tcell screen to draw on. When nil, New creates one for
	// the controlling terminal.
	Screen tcell.Screen

	// Tileset is recorded on the grid so components and themes agree on it.
	// Terminals draw with their own font. Defaults to tessera.DefaultTileset.
	Tileset tessera.Tileset

	// DisableMouse leaves terminal mouse reporting off.
	DisableMouse bool

	// FrameInterval is the repaint check period for Run.
	// Defaults to DefaultFrameInterval.
	FrameInterval time.Duration

	// Logger receives resize and lifecycle messages. Nil discards them.
	Logger *log.Logger
}

// Display is a tessera.Display backed by a terminal.
type Display struct {
	screen   tcell.Screen
	grid     *tessera.TileGrid
	logger   *log.Logger
	interval time.Duration

	mu      sync.Mutex
	closed  bool
	flushed uint64 // live grid version at the last flush
	mouse   mouseState

	shownScreen *tessera.Screen
	shown       uint64 // shownScreen's grid version after its last Display
}

// New initializes the terminal and returns a display whose grid matches the
// terminal size at that moment.
func New(cfg Config) (*Display, error) {
	screen := cfg.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("termdisplay: create screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("termdisplay: init screen: %w", err)
	}
	if !cfg.DisableMouse {
		screen.EnableMouse()
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	interval := cfg.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	w, h := screen.Size()
	return &Display{
		screen:   screen,
		grid:     tessera.NewTileGrid(tessera.NewSize(w, h), cfg.Tileset),
		logger:   logger,
		interval: interval,
	}, nil
}

// Grid implements tessera.Display.
func (d *Display) Grid() *tessera.TileGrid {
	return d.grid
}

// Screen returns the underlying tcell screen.
func (d *Display) Screen() tcell.Screen {
	return d.screen
}

// Flush copies the live grid to the terminal and shows it.
func (d *Display) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.flushLocked()
	return nil
}

func (d *Display) flushLocked() {
	d.flushed = d.grid.Version()
	snap := d.grid.Snapshot()
	size := snap.Size()
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			tile, _ := snap.TileAt(tessera.Pos(x, y))
			ch := tile.Char
			if tile.IsEmpty() || ch < ' ' {
				ch = ' '
			}
			d.screen.SetContent(x, y, ch, nil, toTcellStyle(tile.Style))
			// A double-width glyph covers the next cell too.
			if runewidth.RuneWidth(ch) == 2 {
				x++
			}
		}
	}
	d.screen.Show()
}

// Run pumps terminal events into the active screen and repaints on change
// until ctx is done or Close is called. It flushes once before waiting for
// events. Run returns ctx.Err() on cancellation and ErrClosed after Close.
func (d *Display) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	if err := d.refresh(); err != nil {
		return err
	}
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if err := d.handle(ev); err != nil {
				return err
			}
		case <-ticker.C:
			if err := d.refresh(); err != nil {
				return err
			}
		}
	}
}

// refresh redisplays the active screen when its grid changed (animations
// draw there) and flushes when the live grid changed.
func (d *Display) refresh() error {
	if s, ok := tessera.ActiveScreen(d); ok {
		d.mu.Lock()
		stale := s != d.shownScreen || s.Grid().Version() != d.shown
		d.mu.Unlock()
		if stale {
			s.Display()
			d.mu.Lock()
			d.shownScreen, d.shown = s, s.Grid().Version()
			d.mu.Unlock()
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if d.grid.Version() != d.flushed {
		d.flushLocked()
	}
	return nil
}

func (d *Display) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if in, ok := translateKey(ev); ok {
			tessera.DispatchInput(d, in)
		}
	case *tcell.EventMouse:
		d.mu.Lock()
		in := d.mouse.translate(ev)
		d.mu.Unlock()
		tessera.DispatchInput(d, in)
	case *tcell.EventResize:
		w, h := ev.Size()
		d.logger.Printf("termdisplay: terminal resized to %dx%d, grid stays %v", w, h, d.grid.Size())
		d.mu.Lock()
		if !d.closed {
			d.screen.Sync()
		}
		d.mu.Unlock()
	case *tcell.EventInterrupt:
		d.mu.Lock()
		closed := d.closed
		d.mu.Unlock()
		if closed {
			return ErrClosed
		}
	}
	return d.refresh()
}

// Close restores the terminal and releases the live grid. A Run in progress
// returns ErrClosed.
func (d *Display) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	_ = d.screen.PostEvent(tcell.NewEventInterrupt(nil))
	d.screen.Fini()
	d.grid.Close()
	d.logger.Printf("termdisplay: closed")
}

func toTcellColor(c tessera.Color) tcell.Color {
	if !c.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toTcellStyle(s tessera.StyleSet) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(toTcellColor(s.Foreground)).
		Background(toTcellColor(s.Background))
	if s.Attrs&tessera.AttrBold != 0 {
		st = st.Bold(true)
	}
	if s.Attrs&tessera.AttrItalic != 0 {
		st = st.Italic(true)
	}
	if s.Attrs&tessera.AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if s.Attrs&tessera.AttrReverse != 0 {
		st = st.Reverse(true)
	}
	if s.Attrs&tessera.AttrBlink != 0 {
		st = st.Blink(true)
	}
	if s.Attrs&tessera.AttrDim != 0 {
		st = st.Dim(true)
	}
	if s.Attrs&tessera.AttrStrikeThrough != 0 {
		st = st.StrikeThrough(true)
	}
	return st
}
