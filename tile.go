package tessera

import "fmt"

// Color is an 8-bit RGBA color. A zero alpha means "not set": display
// devices fall back to their own default for that channel.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 0xff}
}

// ColorTransparent is the unset color.
var ColorTransparent = Color{}

// Basic ANSI-like palette, handy for tests and examples.
var (
	ColorBlack   = RGB(0, 0, 0)
	ColorRed     = RGB(205, 49, 49)
	ColorGreen   = RGB(13, 188, 121)
	ColorYellow  = RGB(229, 229, 16)
	ColorBlue    = RGB(36, 114, 200)
	ColorMagenta = RGB(188, 63, 188)
	ColorCyan    = RGB(17, 168, 205)
	ColorWhite   = RGB(229, 229, 229)
)

// IsSet reports whether c carries a color.
func (c Color) IsSet() bool {
	return c.A != 0
}

func (c Color) String() string {
	if !c.IsSet() {
		return "transparent"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Attr is a bitmask of glyph attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrItalic
	AttrUnderline
	AttrReverse
	AttrBlink
	AttrDim
	AttrStrikeThrough
	AttrNone Attr = 0
)

// StyleSet is the foreground, background and attributes of a tile.
type StyleSet struct {
	Foreground Color
	Background Color
	Attrs      Attr
}

// DefaultStyle is the zero style.
var DefaultStyle = StyleSet{}

// WithForeground returns s with its foreground replaced.
func (s StyleSet) WithForeground(c Color) StyleSet {
	s.Foreground = c
	return s
}

// WithBackground returns s with its background replaced.
func (s StyleSet) WithBackground(c Color) StyleSet {
	s.Background = c
	return s
}

// WithAttrs returns s with a added.
func (s StyleSet) WithAttrs(a Attr) StyleSet {
	s.Attrs |= a
	return s
}

// Tile is the content of a single grid cell.
type Tile struct {
	Char  rune
	Style StyleSet
}

// EmptyTile returns the sentinel meaning "nothing drawn here".
func EmptyTile() Tile {
	return Tile{}
}

// NewTile returns a tile drawing r with style.
func NewTile(r rune, style StyleSet) Tile {
	return Tile{Char: r, Style: style}
}

// IsEmpty reports whether t is the empty sentinel.
func (t Tile) IsEmpty() bool {
	return t == Tile{}
}

// WithChar returns t drawing r instead.
func (t Tile) WithChar(r rune) Tile {
	t.Char = r
	return t
}

// WithStyle returns t with style replaced.
func (t Tile) WithStyle(style StyleSet) Tile {
	t.Style = style
	return t
}

func (t Tile) String() string {
	if t.IsEmpty() {
		return "Tile(empty)"
	}
	return fmt.Sprintf("Tile(%q fg=%v bg=%v)", t.Char, t.Style.Foreground, t.Style.Background)
}
