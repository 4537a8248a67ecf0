package tessera

import (
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation is advanced by an AnimationHandler. Update moves it forward by dt
// seconds and reports whether it has finished.
type Animation interface {
	Update(dt float32) bool
}

// AnimationHandler drives the animations of one TileGrid. Call Update(dt)
// from a game loop, or Run to tick on a goroutine of its own. Finished
// animations are dropped after the tick they finish in.
type AnimationHandler struct {
	grid *TileGrid

	mu      sync.Mutex
	running []Animation
	closed  bool
	done    chan struct{}
}

func newAnimationHandler(g *TileGrid) *AnimationHandler {
	return &AnimationHandler{grid: g, done: make(chan struct{})}
}

// Start schedules a. Starting a running animation or starting on a closed
// handler is a no-op. Panics if a is nil.
func (h *AnimationHandler) Start(a Animation) {
	if a == nil {
		panic("tessera: cannot start nil animation")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || slices.Contains(h.running, a) {
		return
	}
	h.running = append(h.running, a)
}

// Stop unschedules a, reporting whether it was running.
func (h *AnimationHandler) Stop(a Animation) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := slices.Index(h.running, a)
	if i < 0 {
		return false
	}
	h.running = slices.Delete(h.running, i, i+1)
	return true
}

// IsRunning reports whether a is scheduled.
func (h *AnimationHandler) IsRunning(a Animation) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Contains(h.running, a)
}

// Len returns the number of scheduled animations.
func (h *AnimationHandler) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.running)
}

// Update advances every scheduled animation by dt seconds. Animations run
// outside the handler lock, so they may start or stop others.
func (h *AnimationHandler) Update(dt float32) {
	h.mu.Lock()
	if h.closed || len(h.running) == 0 {
		h.mu.Unlock()
		return
	}
	batch := slices.Clone(h.running)
	h.mu.Unlock()

	var finished []Animation
	for _, a := range batch {
		if a.Update(dt) {
			finished = append(finished, a)
		}
	}

	if len(finished) > 0 {
		h.mu.Lock()
		h.running = slices.DeleteFunc(h.running, func(a Animation) bool {
			return slices.Contains(finished, a)
		})
		h.mu.Unlock()
	}
	if h.grid != nil {
		h.grid.MarkDirty()
	}
}

// Run calls Update every tick until ctx is cancelled or the handler is
// closed. It returns ctx.Err() on cancellation and nil after Close.
func (h *AnimationHandler) Run(ctx context.Context, tick time.Duration) error {
	if tick <= 0 {
		panic("tessera: animation tick must be positive")
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.done:
			return nil
		case now := <-ticker.C:
			h.Update(float32(now.Sub(last).Seconds()))
			last = now
		}
	}
}

// Close drops every animation and stops Run. Later Start calls are ignored.
func (h *AnimationHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.running = nil
	close(h.done)
}

// LayerTween slides a layer to a target position with an easing curve.
// Positions are rounded to the nearest cell on every tick.
type LayerTween struct {
	layer  *Layer
	tx, ty *gween.Tween
	done   bool
}

// TweenLayer creates a LayerTween moving l from its current position to `to`
// over duration seconds. A nil fn means linear easing.
func TweenLayer(l *Layer, to Position, duration float32, fn ease.TweenFunc) *LayerTween {
	if fn == nil {
		fn = ease.Linear
	}
	from := l.Position()
	return &LayerTween{
		layer: l,
		tx:    gween.New(float32(from.X), float32(to.X), duration, fn),
		ty:    gween.New(float32(from.Y), float32(to.Y), duration, fn),
	}
}

// Update implements Animation.
func (t *LayerTween) Update(dt float32) bool {
	if t.done {
		return true
	}
	x, doneX := t.tx.Update(dt)
	y, doneY := t.ty.Update(dt)
	t.layer.MoveTo(Position{
		X: int(math.Round(float64(x))),
		Y: int(math.Round(float64(y))),
	})
	t.done = doneX && doneY
	return t.done
}

// Done reports whether the tween reached its target.
func (t *LayerTween) Done() bool {
	return t.done
}

// FrameAnimation flips a layer through a sequence of frames at a fixed rate.
// The layer is created by NewFrameAnimation and shows the first frame until
// the first tick; push it onto a grid to make the animation visible.
type FrameAnimation struct {
	layer     *Layer
	frames    []*TileGraphics
	frameTime float32
	loops     int

	mu      sync.Mutex
	current int
	elapsed float32
	loop    int
	done    bool
}

// NewFrameAnimation returns an animation at position playing frames at
// frameRate frames per second. loops is the number of times the sequence
// plays; zero or less repeats forever. The animation stops on its last frame.
// Panics if frames is empty or frameRate is not positive.
func NewFrameAnimation(position Position, frames []*TileGraphics, frameRate float32, loops int) *FrameAnimation {
	if len(frames) == 0 {
		panic("tessera: frame animation needs at least one frame")
	}
	if frameRate <= 0 {
		panic("tessera: frame rate must be positive")
	}
	own := make([]*TileGraphics, len(frames))
	for i, f := range frames {
		if f == nil {
			panic("tessera: nil animation frame")
		}
		own[i] = f.Clone()
	}
	return &FrameAnimation{
		layer:     NewLayer(position, own[0].Clone()),
		frames:    own,
		frameTime: 1 / frameRate,
		loops:     loops,
	}
}

// Layer returns the layer the animation draws into.
func (a *FrameAnimation) Layer() *Layer {
	return a.layer
}

// CurrentFrame returns the index of the frame on display.
func (a *FrameAnimation) CurrentFrame() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// LoopCount returns how many times the sequence completed.
func (a *FrameAnimation) LoopCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loop
}

// Update implements Animation.
func (a *FrameAnimation) Update(dt float32) bool {
	a.mu.Lock()
	if a.done {
		a.mu.Unlock()
		return true
	}
	start := a.current
	a.elapsed += dt
	for a.elapsed >= a.frameTime {
		a.elapsed -= a.frameTime
		if a.current+1 < len(a.frames) {
			a.current++
			continue
		}
		a.loop++
		if a.loops > 0 && a.loop >= a.loops {
			a.done = true
			break
		}
		a.current = 0
	}
	frame, changed, done := a.frames[a.current], a.current != start, a.done
	a.mu.Unlock()

	if changed {
		a.layer.setContent(frame)
	}
	return done
}
