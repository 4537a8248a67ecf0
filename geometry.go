package tessera

import (
	"fmt"
	"iter"
)

// Position is a grid cell coordinate. The origin is the top-left cell, with Y
// increasing downward.
type Position struct {
	X, Y int
}

// PositionZero is the grid origin.
var PositionZero = Position{}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Offset1x1 returns the (1, 1) offset.
func Offset1x1() Position {
	return Position{1, 1}
}

// Add returns p translated by o.
func (p Position) Add(o Position) Position {
	return Position{p.X + o.X, p.Y + o.Y}
}

// Sub returns p translated by -o.
func (p Position) Sub(o Position) Position {
	return Position{p.X - o.X, p.Y - o.Y}
}

// WithRelativeX returns p shifted horizontally by dx.
func (p Position) WithRelativeX(dx int) Position {
	return Position{p.X + dx, p.Y}
}

// WithRelativeY returns p shifted vertically by dy.
func (p Position) WithRelativeY(dy int) Position {
	return Position{p.X, p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a non-negative width and height measured in cells.
// Construct sizes with NewSize when the values are not known to be valid.
type Size struct {
	Width, Height int
}

// SizeZero is the empty size.
var SizeZero = Size{}

// SizeOne is a single cell.
var SizeOne = Size{1, 1}

// NewSize returns a Size. Panics if either component is negative.
func NewSize(width, height int) Size {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("tessera: negative size %dx%d", width, height))
	}
	return Size{width, height}
}

// Add returns the component-wise sum of s and o.
func (s Size) Add(o Size) Size {
	return NewSize(s.Width+o.Width, s.Height+o.Height)
}

// Sub returns the component-wise difference, clamped at zero.
func (s Size) Sub(o Size) Size {
	return Size{max(s.Width-o.Width, 0), max(s.Height-o.Height, 0)}
}

// Area returns the number of cells.
func (s Size) Area() int {
	return s.Width * s.Height
}

// IsZero reports whether s covers no cells.
func (s Size) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

// Fits reports whether o fits inside s when both share an origin.
func (s Size) Fits(o Size) bool {
	return o.Width <= s.Width && o.Height <= s.Height
}

// Contains reports whether p lies inside a zero-origin rectangle of size s.
func (s Size) Contains(p Position) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// Positions yields every position of a zero-origin rectangle of size s in
// row-major order. The sequence is lazy and may be ranged over repeatedly.
func (s Size) Positions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for y := 0; y < s.Height; y++ {
			for x := 0; x < s.Width; x++ {
				if !yield(Position{x, y}) {
					return
				}
			}
		}
	}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Boundable is implemented by anything occupying a rectangle of cells.
type Boundable interface {
	Position() Position
	Size() Size
}

// Bounds is an axis-aligned rectangle of cells. Cells on the right and bottom
// edges (X+Width, Y+Height) are outside.
type Bounds struct {
	Pos  Position
	Area Size
}

// NewBounds returns the rectangle at p with size s.
func NewBounds(p Position, s Size) Bounds {
	return Bounds{Pos: p, Area: s}
}

// BoundsOf returns the rectangle occupied by b.
func BoundsOf(b Boundable) Bounds {
	return Bounds{Pos: b.Position(), Area: b.Size()}
}

// Position returns the top-left cell.
func (b Bounds) Position() Position { return b.Pos }

// Size returns the extent.
func (b Bounds) Size() Size { return b.Area }

// ContainsPosition reports whether p lies inside b.
func (b Bounds) ContainsPosition(p Position) bool {
	return p.X >= b.Pos.X && p.X < b.Pos.X+b.Area.Width &&
		p.Y >= b.Pos.Y && p.Y < b.Pos.Y+b.Area.Height
}

// ContainsBoundable reports whether o lies fully within b.
func (b Bounds) ContainsBoundable(o Boundable) bool {
	op, os := o.Position(), o.Size()
	return op.X >= b.Pos.X && op.Y >= b.Pos.Y &&
		op.X+os.Width <= b.Pos.X+b.Area.Width &&
		op.Y+os.Height <= b.Pos.Y+b.Area.Height
}

// Intersects reports whether b and o share at least one cell.
func (b Bounds) Intersects(o Bounds) bool {
	return b.Pos.X < o.Pos.X+o.Area.Width && o.Pos.X < b.Pos.X+b.Area.Width &&
		b.Pos.Y < o.Pos.Y+o.Area.Height && o.Pos.Y < b.Pos.Y+b.Area.Height
}

// Intersection returns the overlap of b and o and whether it is non-empty.
func (b Bounds) Intersection(o Bounds) (Bounds, bool) {
	if !b.Intersects(o) {
		return Bounds{}, false
	}
	x0, y0 := max(b.Pos.X, o.Pos.X), max(b.Pos.Y, o.Pos.Y)
	x1 := min(b.Pos.X+b.Area.Width, o.Pos.X+o.Area.Width)
	y1 := min(b.Pos.Y+b.Area.Height, o.Pos.Y+o.Area.Height)
	return Bounds{Pos: Position{x0, y0}, Area: Size{x1 - x0, y1 - y0}}, true
}

// Offset returns b translated by p.
func (b Bounds) Offset(p Position) Bounds {
	return Bounds{Pos: b.Pos.Add(p), Area: b.Area}
}

func (b Bounds) String() string {
	return fmt.Sprintf("%v@%v", b.Area, b.Pos)
}
