package ebitendisplay

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay shows the current FPS and TPS, refreshed about every half second.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	stale   bool
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0".
	return &fpsOverlay{img: ebiten.NewImage(100, 32), stale: true}
}

func (f *fpsOverlay) update(dt float64) {
	f.elapsed += dt
	if f.elapsed < 0.5 {
		return
	}
	f.elapsed = 0
	f.stale = true
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if f.stale {
		f.stale = false
		f.img.Clear()
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(f.img, nil)
}
