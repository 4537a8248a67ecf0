package tessera

// RenderContext is what a renderer needs to know about the component it draws.
type RenderContext struct {
	Component *Component
	State     ComponentState
	Style     StyleSet
	Tileset   Tileset
}

// RenderingStrategy fills a component's TileGraphics from its current state.
type RenderingStrategy interface {
	Render(c *Component, g *TileGraphics)
}

// ComponentRenderer draws a widget's content into the area left after
// decorations. Concrete widgets supply one.
type ComponentRenderer interface {
	Render(g *TileGraphics, ctx RenderContext)
}

// ComponentRendererFunc adapts a function to ComponentRenderer.
type ComponentRendererFunc func(g *TileGraphics, ctx RenderContext)

// Render calls f.
func (f ComponentRendererFunc) Render(g *TileGraphics, ctx RenderContext) { f(g, ctx) }

// DecorationRenderer draws around a component's content, e.g. a border.
// Offset is where the wrapped area starts inside the decoration, SizeIncrement
// how much the decoration takes from the size in total.
type DecorationRenderer interface {
	Offset() Position
	SizeIncrement() Size
	Render(g *TileGraphics, ctx RenderContext)
}

// DefaultRenderingStrategy paints the background in the current style, then
// each decoration outermost first, then the content renderer in what is left.
type DefaultRenderingStrategy struct {
	Decorations []DecorationRenderer
	Renderer    ComponentRenderer
}

// Render implements RenderingStrategy.
func (s DefaultRenderingStrategy) Render(c *Component, g *TileGraphics) {
	ctx := RenderContext{
		Component: c,
		State:     c.CurrentState(),
		Style:     c.CurrentStyle(),
		Tileset:   c.Tileset(),
	}
	if ctx.Style.Background.IsSet() {
		g.Fill(NewTile(' ', ctx.Style))
	} else {
		g.Clear()
	}

	offset, area := PositionZero, g.Size()
	for _, d := range s.Decorations {
		if area.IsZero() {
			return
		}
		sub := g.Region(NewBounds(offset, area))
		d.Render(sub, ctx)
		g.Draw(sub, offset)
		offset = offset.Add(d.Offset())
		area = area.Sub(d.SizeIncrement())
	}
	if s.Renderer == nil || area.IsZero() {
		return
	}
	sub := g.Region(NewBounds(offset, area))
	s.Renderer.Render(sub, ctx)
	g.Draw(sub, offset)
}

// contentBounds returns the area left for the content renderer.
func (s DefaultRenderingStrategy) contentBounds(size Size) Bounds {
	offset := PositionZero
	for _, d := range s.Decorations {
		offset = offset.Add(d.Offset())
		size = size.Sub(d.SizeIncrement())
	}
	return NewBounds(offset, size)
}

// BoxDecoration draws a single or double line border with an optional title.
type BoxDecoration struct {
	Double bool
	Title  string
}

// Offset implements DecorationRenderer.
func (BoxDecoration) Offset() Position { return Position{1, 1} }

// SizeIncrement implements DecorationRenderer.
func (BoxDecoration) SizeIncrement() Size { return Size{2, 2} }

// Render implements DecorationRenderer.
func (b BoxDecoration) Render(g *TileGraphics, ctx RenderContext) {
	h, v, tl, tr, bl, br := '─', '│', '┌', '┐', '└', '┘'
	if b.Double {
		h, v, tl, tr, bl, br = '═', '║', '╔', '╗', '╚', '╝'
	}
	size := g.Size()
	if size.Width < 2 || size.Height < 2 {
		return
	}
	right, bottom := size.Width-1, size.Height-1
	for x := 1; x < right; x++ {
		g.SetTileAt(Position{x, 0}, NewTile(h, ctx.Style))
		g.SetTileAt(Position{x, bottom}, NewTile(h, ctx.Style))
	}
	for y := 1; y < bottom; y++ {
		g.SetTileAt(Position{0, y}, NewTile(v, ctx.Style))
		g.SetTileAt(Position{right, y}, NewTile(v, ctx.Style))
	}
	g.SetTileAt(Position{0, 0}, NewTile(tl, ctx.Style))
	g.SetTileAt(Position{right, 0}, NewTile(tr, ctx.Style))
	g.SetTileAt(Position{0, bottom}, NewTile(bl, ctx.Style))
	g.SetTileAt(Position{right, bottom}, NewTile(br, ctx.Style))

	if b.Title != "" && right > 2 {
		title := []rune(b.Title)
		if len(title) > right-2 {
			title = title[:right-2]
		}
		g.DrawText(Position{2, 0}, string(title), ctx.Style)
	}
}

// ShadowDecoration draws a one-cell drop shadow on the right and bottom edges.
type ShadowDecoration struct {
	Char  rune
	Color Color
}

// Offset implements DecorationRenderer.
func (ShadowDecoration) Offset() Position { return PositionZero }

// SizeIncrement implements DecorationRenderer.
func (ShadowDecoration) SizeIncrement() Size { return Size{1, 1} }

// Render implements DecorationRenderer.
func (s ShadowDecoration) Render(g *TileGraphics, ctx RenderContext) {
	ch := s.Char
	if ch == 0 {
		ch = '░'
	}
	style := StyleSet{Foreground: s.Color, Background: ctx.Style.Background}
	if !style.Foreground.IsSet() {
		style.Foreground = ColorBlack
	}
	size := g.Size()
	if size.Width < 2 || size.Height < 2 {
		return
	}
	for y := 1; y < size.Height; y++ {
		g.SetTileAt(Position{size.Width - 1, y}, NewTile(ch, style))
	}
	for x := 1; x < size.Width; x++ {
		g.SetTileAt(Position{x, size.Height - 1}, NewTile(ch, style))
	}
	// Transparent corners outside the shadow.
	g.SetTileAt(Position{size.Width - 1, 0}, EmptyTile())
	g.SetTileAt(Position{0, size.Height - 1}, EmptyTile())
}
