// Package ebitendisplay shows a tessera grid in an Ebitengine window.
//
// Each grid cell is drawn as a background rectangle and a tinted glyph taken
// from a [Glyphs] source: a CP437 [GlyphSheet], a TexturePacker [GlyphAtlas],
// or, with none configured, ebitenutil's built-in debug font. Mouse and
// keyboard input are polled every tick and routed to the display's active
// tessera.Screen.
package ebitendisplay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/tessera"
)

// Config configures a window Display.
type Config struct {
	// Title is the window title.
	Title string
	// Size is the grid size in cells. Defaults to 80x25.
	Size tessera.Size
	// Tileset is recorded on the grid. A GlyphSheet's tileset wins.
	Tileset tessera.Tileset
	// Glyphs draws characters. Nil uses the debug font.
	Glyphs Glyphs
	// Scale multiplies the window size. Defaults to 1.
	Scale int
	// Background fills cells whose tile has no background color.
	// Defaults to black.
	Background tessera.Color
	// Foreground tints glyphs whose tile has no foreground color.
	// Defaults to white.
	Foreground tessera.Color
	// ShowFPS draws the current FPS and TPS in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives screenshots. Defaults to "screenshots".
	ScreenshotDir string
	// ExitAfterScript ends Run on the tick after an attached ScriptRunner
	// finishes, once its last screenshot has been drawn.
	ExitAfterScript bool
	// Logger receives lifecycle and asset warnings. Nil discards them.
	Logger *log.Logger
}

// DefaultSize is the grid size used when Config.Size is zero.
var DefaultSize = tessera.NewSize(80, 25)

var placeholderColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Display is a tessera.Display drawn in a window. It implements ebiten.Game.
// Update, Draw and Layout run on Ebitengine's goroutine; the other methods
// may be called from anywhere.
type Display struct {
	grid         *tessera.TileGrid
	glyphs       Glyphs
	tileW, tileH int
	title        string
	scale        int
	bg, fg       color.RGBA
	logger       *log.Logger
	closed       atomic.Bool

	shownScreen *tessera.Screen
	shown       uint64
	missing     map[rune]bool

	pointer pointerState
	keyBuf  []ebiten.Key
	charBuf []rune

	injectQueue     []syntheticEvent
	script          *ScriptRunner
	exitAfterScript bool
	screenshotDir   string
	screenshotQueue []string

	fps *fpsOverlay
}

// New returns a display. Nothing is opened until Run.
func New(cfg Config) *Display {
	size := cfg.Size
	if size.IsZero() {
		size = DefaultSize
	}
	glyphs := cfg.Glyphs
	if glyphs == nil {
		glyphs = newDebugGlyphs()
	}
	tileset := cfg.Tileset
	if sheet, ok := glyphs.(*GlyphSheet); ok {
		tileset = sheet.Tileset()
	}
	scale := max(cfg.Scale, 1)
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	dir := cfg.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}

	d := &Display{
		grid:          tessera.NewTileGrid(size, tileset),
		glyphs:        glyphs,
		title:         cfg.Title,
		scale:         scale,
		bg:            toRGBA(cfg.Background, color.RGBA{A: 255}),
		fg:            toRGBA(cfg.Foreground, color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		logger:        logger,
		missing:       make(map[rune]bool),
		screenshotDir: dir,

		exitAfterScript: cfg.ExitAfterScript,
	}
	d.tileW, d.tileH = glyphs.TileSize()
	if cfg.ShowFPS {
		d.fps = newFPSOverlay()
	}
	return d
}

// Grid implements tessera.Display.
func (d *Display) Grid() *tessera.TileGrid {
	return d.grid
}

// WindowSize is the unscaled window size in pixels.
func (d *Display) WindowSize() (int, int) {
	size := d.grid.Size()
	return size.Width * d.tileW, size.Height * d.tileH
}

// Run opens the window and blocks until it is closed or Close is called.
func (d *Display) Run() error {
	w, h := d.WindowSize()
	ebiten.SetWindowTitle(d.title)
	ebiten.SetWindowSize(w*d.scale, h*d.scale)
	d.logger.Printf("ebitendisplay: opening %dx%d window for a %v grid", w*d.scale, h*d.scale, d.grid.Size())
	if err := ebiten.RunGame(d); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("ebitendisplay: run: %w", err)
	}
	return nil
}

// Close ends Run at the next tick and releases the grid.
func (d *Display) Close() {
	if d.closed.Swap(true) {
		return
	}
	d.grid.Close()
}

// Update implements ebiten.Game.
func (d *Display) Update() error {
	if d.closed.Load() {
		return ebiten.Termination
	}
	if d.scriptFinished() {
		d.logger.Printf("ebitendisplay: script finished, closing")
		d.Close()
		return ebiten.Termination
	}
	dt := tickSeconds()

	if d.script != nil {
		d.script.step(d)
	}
	mods := readModifiers()
	inputs, injected := d.processInjectedInput(mods)
	if !injected {
		inputs = append(d.pollMouse(mods), d.pollKeys(mods)...)
	}
	for _, in := range inputs {
		tessera.DispatchInput(d, in)
	}
	d.tick(dt)
	if d.fps != nil {
		d.fps.update(float64(dt))
	}
	return nil
}

func (d *Display) scriptFinished() bool {
	return d.exitAfterScript && d.script != nil && d.script.Done()
}

// tick advances the active screen's animations and redisplays it when its
// grid changed.
func (d *Display) tick(dt float32) {
	s, ok := tessera.ActiveScreen(d)
	if !ok {
		return
	}
	s.Grid().Animations().Update(dt)
	if s != d.shownScreen || s.Grid().Version() != d.shown {
		s.Display()
		d.shownScreen, d.shown = s, s.Grid().Version()
	}
}

func tickSeconds() float32 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return float32(1.0 / float64(tps))
}

// Draw implements ebiten.Game. Screenshots are taken before the FPS overlay.
func (d *Display) Draw(screen *ebiten.Image) {
	screen.Fill(d.bg)
	snap := d.grid.Snapshot()
	for p := range snap.Size().Positions() {
		tile, _ := snap.TileAt(p)
		d.drawTile(screen, p, tile)
	}
	d.flushScreenshots(screen, snap)
	if d.fps != nil {
		d.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The logical screen is always the grid.
func (d *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.WindowSize()
}

// cellRect is the pixel rectangle of cell p.
func (d *Display) cellRect(p tessera.Position) image.Rectangle {
	x, y := p.X*d.tileW, p.Y*d.tileH
	return image.Rect(x, y, x+d.tileW, y+d.tileH)
}

func (d *Display) drawTile(screen *ebiten.Image, p tessera.Position, tile tessera.Tile) {
	if tile.IsEmpty() {
		return
	}
	fg := toRGBA(tile.Style.Foreground, d.fg)
	bg := toRGBA(tile.Style.Background, d.bg)
	attrs := tile.Style.Attrs
	if attrs&tessera.AttrReverse != 0 {
		fg, bg = bg, fg
	}
	rect := d.cellRect(p)
	if bg != d.bg {
		screen.SubImage(rect).(*ebiten.Image).Fill(bg)
	}

	if tile.Char > ' ' {
		glyph, ok := d.glyphs.Glyph(tile.Char)
		if !ok {
			if !d.missing[tile.Char] {
				d.missing[tile.Char] = true
				d.logger.Printf("ebitendisplay: no glyph for %q, drawing placeholder", tile.Char)
			}
			screen.SubImage(rect.Inset(1)).(*ebiten.Image).Fill(placeholderColor)
		} else {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
			op.ColorScale.ScaleWithColor(fg)
			if attrs&tessera.AttrDim != 0 {
				op.ColorScale.ScaleAlpha(0.6)
			}
			screen.DrawImage(glyph, op)
		}
	}

	if attrs&(tessera.AttrUnderline|tessera.AttrStrikeThrough) != 0 {
		for _, line := range decorationLines(rect, attrs) {
			screen.SubImage(line).(*ebiten.Image).Fill(fg)
		}
	}
}

// decorationLines returns the one-pixel rows drawn for underline and strike
// through inside cell.
func decorationLines(cell image.Rectangle, attrs tessera.Attr) []image.Rectangle {
	var out []image.Rectangle
	if attrs&tessera.AttrUnderline != 0 {
		y := cell.Max.Y - 1
		out = append(out, image.Rect(cell.Min.X, y, cell.Max.X, y+1))
	}
	if attrs&tessera.AttrStrikeThrough != 0 {
		y := cell.Min.Y + cell.Dy()/2
		out = append(out, image.Rect(cell.Min.X, y, cell.Max.X, y+1))
	}
	return out
}

func toRGBA(c tessera.Color, fallback color.RGBA) color.RGBA {
	if !c.IsSet() {
		return fallback
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
