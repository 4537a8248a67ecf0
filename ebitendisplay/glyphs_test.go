package ebitendisplay

import (
	"image"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/tessera"
)

const glyphAtlasJSON = `{
  "frames": {
    "A": {
      "frame": {"x": 0, "y": 0, "w": 8, "h": 8},
      "rotated": false,
      "trimmed": false
    },
    "U+2500": {
      "frame": {"x": 8, "y": 0, "w": 8, "h": 8},
      "rotated": false,
      "trimmed": false
    },
    "@": {
      "frame": {"x": 0, "y": 8, "w": 8, "h": 8}
    }
  },
  "meta": {
    "image": "glyphs.png",
    "size": {"w": 64, "h": 64}
  }
}`

func TestCP437Index(t *testing.T) {
	tests := []struct {
		r    rune
		want int
		ok   bool
	}{
		{'A', 65, true},
		{' ', 32, true},
		{'─', 0xc4, true},
		{'█', 0xdb, true},
		{'世', 0, false},
	}
	for _, tt := range tests {
		got, ok := cp437Index(tt.r)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("cp437Index(%q) = %d, %v; want %d, %v", tt.r, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSheetRect(t *testing.T) {
	if got := sheetRect(0, 8, 8); got != image.Rect(0, 0, 8, 8) {
		t.Errorf("index 0 = %v", got)
	}
	if got := sheetRect(65, 16, 16); got != image.Rect(16, 64, 32, 80) {
		t.Errorf("index 65 = %v", got)
	}
	if got := sheetRect(255, 8, 12); got != image.Rect(120, 180, 128, 192) {
		t.Errorf("index 255 = %v", got)
	}
}

func TestNewGlyphSheet(t *testing.T) {
	sheet, err := NewGlyphSheet(ebiten.NewImage(256, 256), tessera.TilesetRogueYun16x16)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := sheet.TileSize(); w != 16 || h != 16 {
		t.Errorf("TileSize = %dx%d", w, h)
	}
	if rect, ok := sheet.Rect('A'); !ok || rect != image.Rect(16, 64, 32, 80) {
		t.Errorf("Rect('A') = %v, %v", rect, ok)
	}
	if _, ok := sheet.Glyph('世'); ok {
		t.Error("non-CP437 rune reported a glyph")
	}
	g1, ok := sheet.Glyph('A')
	if !ok {
		t.Fatal("no glyph for 'A'")
	}
	if g2, _ := sheet.Glyph('A'); g1 != g2 {
		t.Error("glyph not cached")
	}
}

func TestNewGlyphSheetErrors(t *testing.T) {
	if _, err := NewGlyphSheet(ebiten.NewImage(100, 128), tessera.TilesetAnikki8x8); err == nil ||
		!strings.Contains(err.Error(), "want 128x128") {
		t.Errorf("wrong size: %v", err)
	}
	if _, err := NewGlyphSheet(ebiten.NewImage(16, 16), tessera.Tileset{ID: "empty"}); err == nil {
		t.Error("expected an error for a tileset without glyph size")
	}
}

func TestLoadGlyphAtlas(t *testing.T) {
	atlas, err := LoadGlyphAtlas([]byte(glyphAtlasJSON), ebiten.NewImage(64, 64), tessera.TilesetAnikki8x8)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		r    rune
		want image.Rectangle
	}{
		{'A', image.Rect(0, 0, 8, 8)},
		{'─', image.Rect(8, 0, 16, 8)},
		{'@', image.Rect(0, 8, 8, 16)},
	}
	for _, tt := range tests {
		if got, ok := atlas.Region(tt.r); !ok || got != tt.want {
			t.Errorf("Region(%q) = %v, %v; want %v", tt.r, got, ok, tt.want)
		}
		if _, ok := atlas.Glyph(tt.r); !ok {
			t.Errorf("Glyph(%q) missing", tt.r)
		}
	}
	if _, ok := atlas.Glyph('z'); ok {
		t.Error("unpacked rune reported a glyph")
	}
}

func TestLoadGlyphAtlasErrors(t *testing.T) {
	page := ebiten.NewImage(64, 64)
	tests := []struct {
		name string
		json string
		want string
	}{
		{"invalid json", `not json`, "failed to parse"},
		{"no frames", `{"frames": {}}`, "no frames"},
		{"wrong size", `{"frames": {"A": {"frame": {"x": 0, "y": 0, "w": 8, "h": 9}}}}`, "is 8x9"},
		{"bad code point", `{"frames": {"U+ZZ": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}}}}`, "bad glyph name"},
		{"long name", `{"frames": {"hero.png": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}}}}`, "not a single character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGlyphAtlas([]byte(tt.json), page, tessera.TilesetAnikki8x8)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestDebugGlyphs(t *testing.T) {
	g := newDebugGlyphs()
	if w, h := g.TileSize(); w != debugGlyphW || h != debugGlyphH {
		t.Errorf("TileSize = %dx%d", w, h)
	}
	if _, ok := g.Glyph(' '); ok {
		t.Error("space reported a glyph")
	}
	if _, ok := g.Glyph('─'); ok {
		t.Error("rune outside Latin-1 reported a glyph")
	}
	a, ok := g.Glyph('a')
	if !ok {
		t.Fatal("no glyph for 'a'")
	}
	if b := a.Bounds(); b.Dx() != debugGlyphW || b.Dy() != debugGlyphH {
		t.Errorf("glyph bounds = %v", b)
	}
}
