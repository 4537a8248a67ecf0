package tessera

import (
	"sync"
	"testing"
)

func TestGridMergesLayersTopWins(t *testing.T) {
	g := NewTileGrid(NewSize(4, 4), DefaultTileset)
	g.SetTileAt(Pos(1, 1), NewTile('b', DefaultStyle))

	low := NewLayer(Pos(0, 0), filledGraphics(NewSize(2, 2), 'l'))
	high := NewLayer(Pos(1, 1), NewTileGraphics(NewSize(2, 2), DefaultTileset))
	high.SetTileAt(Pos(1, 1), NewTile('h', DefaultStyle))
	g.PushLayer(low)
	g.PushLayer(high)

	tests := []struct {
		p    Position
		want rune
	}{
		{Pos(0, 0), 'l'},
		{Pos(1, 1), 'l'}, // high is empty here, low covers the backend
		{Pos(2, 2), 'h'},
		{Pos(3, 3), 0},
	}
	for _, tt := range tests {
		tile, ok := g.TileAt(tt.p)
		if !ok || tile.Char != tt.want {
			t.Errorf("TileAt(%v) = %v, %v; want %q", tt.p, tile, ok, tt.want)
		}
	}
	if _, ok := g.TileAt(Pos(4, 0)); ok {
		t.Error("TileAt outside grid reported ok")
	}

	snap := g.Snapshot()
	for _, tt := range tests {
		if tile, _ := snap.TileAt(tt.p); tile.Char != tt.want {
			t.Errorf("Snapshot(%v) = %v; want %q", tt.p, tile, tt.want)
		}
	}
}

func TestGridLayerMoveVisibleWithoutRepush(t *testing.T) {
	g := NewTileGrid(NewSize(5, 1), DefaultTileset)
	l := NewLayer(PositionZero, filledGraphics(SizeOne, '@'))
	g.PushLayer(l)
	l.MoveTo(Pos(3, 0))
	if tile, _ := g.TileAt(Pos(3, 0)); tile.Char != '@' {
		t.Errorf("moved layer not visible: %v", tile)
	}
	if tile, _ := g.TileAt(PositionZero); !tile.IsEmpty() {
		t.Errorf("old position still shows %v", tile)
	}
}

func TestGridUseContentsOf(t *testing.T) {
	src := NewTileGrid(NewSize(3, 3), DefaultTileset)
	src.SetTileAt(Pos(0, 0), NewTile('s', DefaultStyle))
	srcLayer := NewLayer(Pos(2, 2), filledGraphics(SizeOne, 'L'))
	src.PushLayer(srcLayer)

	dst := NewTileGrid(NewSize(3, 3), DefaultTileset)
	dst.SetTileAt(Pos(1, 1), NewTile('d', DefaultStyle))
	dst.PushLayer(NewLayer(PositionZero, filledGraphics(SizeOne, 'x')))

	dst.UseContentsOf(src)

	if !dst.Snapshot().Equal(src.Snapshot()) {
		t.Error("dst content differs from src after UseContentsOf")
	}
	if dst.LayerCount() != 1 {
		t.Fatalf("LayerCount = %d, want 1", dst.LayerCount())
	}
	if dst.Layers()[0] == srcLayer {
		t.Error("dst shares a layer with src; want a copy")
	}

	// Later changes to src do not leak.
	srcLayer.MoveTo(PositionZero)
	if tile, _ := dst.TileAt(Pos(2, 2)); tile.Char != 'L' {
		t.Errorf("dst followed src's layer move: %v", tile)
	}
}

func TestGridUseContentsOfMutualNoDeadlock(t *testing.T) {
	a := NewTileGrid(NewSize(8, 8), DefaultTileset)
	b := NewTileGrid(NewSize(8, 8), DefaultTileset)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); a.UseContentsOf(b) }()
		go func() { defer wg.Done(); b.UseContentsOf(a) }()
	}
	wg.Wait()
}

func TestGridResetAndClose(t *testing.T) {
	g := NewTileGrid(NewSize(2, 2), DefaultTileset)
	g.SetTileAt(PositionZero, NewTile('a', DefaultStyle))
	g.PushLayer(NewLayer(PositionZero, filledGraphics(SizeOne, 'b')))

	g.Reset()
	if g.LayerCount() != 0 {
		t.Errorf("LayerCount after Reset = %d", g.LayerCount())
	}
	if tile, _ := g.TileAt(PositionZero); !tile.IsEmpty() {
		t.Errorf("TileAt after Reset = %v", tile)
	}

	other := NewTileGrid(NewSize(2, 2), DefaultTileset)
	other.SetTileAt(PositionZero, NewTile('o', DefaultStyle))
	g.Close()
	if !g.IsClosed() {
		t.Fatal("IsClosed = false")
	}
	g.UseContentsOf(other)
	if tile, _ := g.TileAt(PositionZero); !tile.IsEmpty() {
		t.Errorf("closed grid accepted contents: %v", tile)
	}
	g.Close()
}

func TestGridVersionBumps(t *testing.T) {
	g := NewTileGrid(NewSize(2, 2), DefaultTileset)
	v := g.Version()
	g.SetTileAt(PositionZero, NewTile('a', DefaultStyle))
	if g.Version() <= v {
		t.Error("SetTileAt did not bump Version")
	}
	v = g.Version()
	g.SwapLayers(nil, []*Layer{NewEmptyLayer(PositionZero, SizeOne, DefaultTileset)})
	if g.Version() <= v {
		t.Error("SwapLayers did not bump Version")
	}
}

func TestGridSwapLayersKeepsForeignLayers(t *testing.T) {
	g := NewTileGrid(NewSize(2, 2), DefaultTileset)
	foreign := NewEmptyLayer(PositionZero, SizeOne, DefaultTileset)
	old := NewEmptyLayer(PositionZero, SizeOne, DefaultTileset)
	next := NewEmptyLayer(PositionZero, SizeOne, DefaultTileset)
	g.PushLayer(foreign)
	g.PushLayer(old)

	g.SwapLayers([]*Layer{old}, []*Layer{next})
	got := g.Layers()
	if len(got) != 2 || got[0] != foreign || got[1] != next {
		t.Errorf("Layers = %v, want [foreign next]", got)
	}
}
