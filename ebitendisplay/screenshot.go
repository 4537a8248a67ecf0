package ebitendisplay

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/tessera"
)

// Screenshot queues a capture of the next frame under label. Each capture is
// written to Config.ScreenshotDir as a PNG of the window and a .txt dump of
// the grid's characters, both with a timestamped name.
func (d *Display) Screenshot(label string) {
	d.screenshotQueue = append(d.screenshotQueue, label)
}

// flushScreenshots writes the queued captures of screen and the snapshot it
// was drawn from.
func (d *Display) flushScreenshots(screen *ebiten.Image, snap *tessera.TileGraphics) {
	if len(d.screenshotQueue) == 0 {
		return
	}
	labels := d.screenshotQueue
	d.screenshotQueue = d.screenshotQueue[:0]

	if err := os.MkdirAll(d.screenshotDir, 0o755); err != nil {
		d.logger.Printf("ebitendisplay: screenshot: %v", err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())
	dump := dumpText(snap)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		base := filepath.Join(d.screenshotDir, stamp+"_"+sanitizeLabel(label))
		if err := writePNG(base+".png", img); err != nil {
			d.logger.Printf("ebitendisplay: screenshot: %v", err)
		}
		if err := os.WriteFile(base+".txt", []byte(dump), 0o644); err != nil {
			d.logger.Printf("ebitendisplay: screenshot: %v", err)
		}
	}
}

// dumpText renders the characters of g one row per line. Empty tiles are
// spaces and trailing spaces are trimmed.
func dumpText(g *tessera.TileGraphics) string {
	size := g.Size()
	var sb strings.Builder
	row := make([]rune, size.Width)
	for y := range size.Height {
		for x := range size.Width {
			row[x] = ' '
			if tile, _ := g.TileAt(tessera.Pos(x, y)); !tile.IsEmpty() && tile.Char != 0 {
				row[x] = tile.Char
			}
		}
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// unpremultiply converts ebiten's premultiplied pixels to straight alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	for i := 0; i+3 < n; i += 4 {
		a := pixels[i+3]
		img.Pix[i+3] = a
		for c := range 3 {
			v := pixels[i+c]
			if a > 0 && a < 255 {
				v = uint8(min(int(v)*255/int(a), 255))
			}
			img.Pix[i+c] = v
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.'; anything else
// becomes '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r < 0x80 && labelSafe[r] {
			return r
		}
		return '_'
	}, label)
}

var labelSafe = func() (t [0x80]bool) {
	for _, span := range []string{"az", "AZ", "09", "--", ".."} {
		for r := span[0]; r <= span[1]; r++ {
			t[r] = true
		}
	}
	return t
}()
