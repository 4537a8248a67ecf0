package ebitendisplay

import (
	"encoding/json"
	"fmt"
	"image"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/text/encoding/charmap"

	"github.com/phanxgames/tessera"
)

// Glyphs supplies the image drawn for a character. Glyph images are white on
// transparent; the display tints them with the tile's foreground color.
type Glyphs interface {
	// TileSize is the pixel size of one grid cell.
	TileSize() (w, h int)
	// Glyph returns the image for r, or false when the source has none.
	Glyph(r rune) (*ebiten.Image, bool)
}

// cp437Columns is the layout of a CP437 glyph sheet: 16 columns by 16 rows,
// glyph n at column n%16, row n/16.
const cp437Columns = 16

// cp437Index returns the code page 437 slot holding r.
func cp437Index(r rune) (int, bool) {
	b, ok := charmap.CodePage437.EncodeRune(r)
	if !ok {
		return 0, false
	}
	return int(b), true
}

// sheetRect is the pixel rectangle of glyph index on a sheet of the given
// cell size.
func sheetRect(index, tileW, tileH int) image.Rectangle {
	x := (index % cp437Columns) * tileW
	y := (index / cp437Columns) * tileH
	return image.Rect(x, y, x+tileW, y+tileH)
}

// GlyphSheet is a CP437 tileset image: 256 glyphs on a 16x16 grid of cells
// the size of the tileset's glyphs.
type GlyphSheet struct {
	image   *ebiten.Image
	tileset tessera.Tileset
	glyphs  map[rune]*ebiten.Image
}

// NewGlyphSheet wraps img as the glyph sheet for tileset. The image must be
// exactly 16 cells wide and 16 cells tall.
func NewGlyphSheet(img *ebiten.Image, tileset tessera.Tileset) (*GlyphSheet, error) {
	if tileset.Width <= 0 || tileset.Height <= 0 {
		return nil, fmt.Errorf("ebitendisplay: tileset %q has no glyph size", tileset.ID)
	}
	b := img.Bounds()
	wantW, wantH := cp437Columns*tileset.Width, cp437Columns*tileset.Height
	if b.Dx() != wantW || b.Dy() != wantH {
		return nil, fmt.Errorf("ebitendisplay: glyph sheet for %q is %dx%d, want %dx%d",
			tileset.ID, b.Dx(), b.Dy(), wantW, wantH)
	}
	return &GlyphSheet{image: img, tileset: tileset, glyphs: make(map[rune]*ebiten.Image)}, nil
}

// Tileset returns the tileset the sheet draws.
func (s *GlyphSheet) Tileset() tessera.Tileset {
	return s.tileset
}

// TileSize implements Glyphs.
func (s *GlyphSheet) TileSize() (int, int) {
	return s.tileset.Width, s.tileset.Height
}

// Rect returns the sheet rectangle holding r.
func (s *GlyphSheet) Rect(r rune) (image.Rectangle, bool) {
	i, ok := cp437Index(r)
	if !ok {
		return image.Rectangle{}, false
	}
	return sheetRect(i, s.tileset.Width, s.tileset.Height).Add(s.image.Bounds().Min), true
}

// Glyph implements Glyphs.
func (s *GlyphSheet) Glyph(r rune) (*ebiten.Image, bool) {
	if g, ok := s.glyphs[r]; ok {
		return g, g != nil
	}
	rect, ok := s.Rect(r)
	var g *ebiten.Image
	if ok {
		g = s.image.SubImage(rect).(*ebiten.Image)
	}
	s.glyphs[r] = g
	return g, ok
}

// GlyphAtlas holds glyphs packed by TexturePacker. Frames are named by the
// character they draw, either literally ("A") or as a code point ("U+2500").
type GlyphAtlas struct {
	page         *ebiten.Image
	tileW, tileH int
	regions      map[rune]image.Rectangle
	glyphs       map[rune]*ebiten.Image
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame jsonRect `json:"frame"`
}

// LoadGlyphAtlas parses TexturePacker hash-format JSON describing glyphs on
// page. Every frame must be the size of the tileset's glyphs.
func LoadGlyphAtlas(jsonData []byte, page *ebiten.Image, tileset tessera.Tileset) (*GlyphAtlas, error) {
	var doc struct {
		Frames map[string]jsonFrame `json:"frames"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("ebitendisplay: failed to parse glyph atlas JSON: %w", err)
	}
	if len(doc.Frames) == 0 {
		return nil, fmt.Errorf("ebitendisplay: glyph atlas has no frames")
	}

	a := &GlyphAtlas{
		page:    page,
		tileW:   tileset.Width,
		tileH:   tileset.Height,
		regions: make(map[rune]image.Rectangle, len(doc.Frames)),
		glyphs:  make(map[rune]*ebiten.Image),
	}
	for name, f := range doc.Frames {
		r, err := parseGlyphName(name)
		if err != nil {
			return nil, err
		}
		if f.Frame.W != a.tileW || f.Frame.H != a.tileH {
			return nil, fmt.Errorf("ebitendisplay: glyph %q is %dx%d, want %dx%d",
				name, f.Frame.W, f.Frame.H, a.tileW, a.tileH)
		}
		a.regions[r] = image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H)
	}
	return a, nil
}

func parseGlyphName(name string) (rune, error) {
	if rest, ok := strings.CutPrefix(name, "U+"); ok {
		v, err := strconv.ParseUint(rest, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("ebitendisplay: bad glyph name %q: %w", name, err)
		}
		return rune(v), nil
	}
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || size != len(name) {
		return 0, fmt.Errorf("ebitendisplay: glyph name %q is not a single character", name)
	}
	return r, nil
}

// TileSize implements Glyphs.
func (a *GlyphAtlas) TileSize() (int, int) {
	return a.tileW, a.tileH
}

// Region returns the page rectangle for r.
func (a *GlyphAtlas) Region(r rune) (image.Rectangle, bool) {
	rect, ok := a.regions[r]
	return rect, ok
}

// Glyph implements Glyphs.
func (a *GlyphAtlas) Glyph(r rune) (*ebiten.Image, bool) {
	if g, ok := a.glyphs[r]; ok {
		return g, true
	}
	rect, ok := a.regions[r]
	if !ok {
		return nil, false
	}
	g := a.page.SubImage(rect).(*ebiten.Image)
	a.glyphs[r] = g
	return g, true
}

// Debug font cell size, fixed by ebitenutil.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

// debugGlyphs draws with ebitenutil's built-in font. It covers Latin-1
// and needs no assets.
type debugGlyphs struct {
	glyphs map[rune]*ebiten.Image
}

func newDebugGlyphs() *debugGlyphs {
	return &debugGlyphs{glyphs: make(map[rune]*ebiten.Image)}
}

func (d *debugGlyphs) TileSize() (int, int) {
	return debugGlyphW, debugGlyphH
}

func (d *debugGlyphs) Glyph(r rune) (*ebiten.Image, bool) {
	if r <= ' ' || r > 0xff {
		return nil, false
	}
	if g, ok := d.glyphs[r]; ok {
		return g, true
	}
	g := ebiten.NewImage(debugGlyphW, debugGlyphH)
	ebitenutil.DebugPrintAt(g, string(r), 0, 0)
	d.glyphs[r] = g
	return g, true
}
