package tessera

import (
	"slices"
	"sync"
)

// Layerable is implemented by anything holding an ordered layer stack.
type Layerable interface {
	PushLayer(l *Layer)
	PopLayer() (*Layer, bool)
	InsertLayerAt(index int, l *Layer)
	RemoveLayer(l *Layer) bool
	Layers() []*Layer
	LayerCount() int
}

// LayerStack is an ordered set of layers. Order is compositing order: later
// layers draw over earlier ones where their tiles are not empty. A layer
// appears at most once; membership is by identity.
type LayerStack struct {
	mu     sync.RWMutex
	layers []*Layer
}

// NewLayerStack returns an empty stack.
func NewLayerStack() *LayerStack {
	return &LayerStack{}
}

// PushLayer places l on top. If l is already in the stack it is moved to the top.
// Panics if l is nil.
func (s *LayerStack) PushLayer(l *Layer) {
	if l == nil {
		panic("tessera: cannot push nil layer")
	}
	s.mu.Lock()
	s.layers = removeLayerByPtr(s.layers, l)
	s.layers = append(s.layers, l)
	s.mu.Unlock()
}

// PopLayer removes and returns the topmost layer.
func (s *LayerStack) PopLayer() (*Layer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.layers)
	if n == 0 {
		return nil, false
	}
	l := s.layers[n-1]
	s.layers[n-1] = nil
	s.layers = s.layers[:n-1]
	return l, true
}

// InsertLayerAt places l at index, shifting layers at or above index up.
// An index equal to LayerCount appends. If l is already in the stack it is
// first removed, and index refers to the stack without it.
// Panics if l is nil or index is out of range.
func (s *LayerStack) InsertLayerAt(index int, l *Layer) {
	if l == nil {
		panic("tessera: cannot insert nil layer")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	limit := len(s.layers)
	if slices.Contains(s.layers, l) {
		limit--
	}
	if index < 0 || index > limit {
		panic("tessera: layer index out of range")
	}
	s.layers = removeLayerByPtr(s.layers, l)
	s.layers = slices.Insert(s.layers, index, l)
}

// RemoveLayer removes exactly l, reporting whether it was present.
// Other layers with identical content are untouched.
func (s *LayerStack) RemoveLayer(l *Layer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.layers)
	s.layers = removeLayerByPtr(s.layers, l)
	return len(s.layers) != n
}

// RemoveLayers removes each of ls that is present.
func (s *LayerStack) RemoveLayers(ls []*Layer) {
	if len(ls) == 0 {
		return
	}
	s.mu.Lock()
	for _, l := range ls {
		s.layers = removeLayerByPtr(s.layers, l)
	}
	s.mu.Unlock()
}

// ReplaceLayers removes every layer of old and puts next where the lowest of
// them was, so layers above or below old keep their place relative to next.
// When none of old is present, next goes on top.
func (s *LayerStack) ReplaceLayers(old, next []*Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at := len(s.layers)
	for _, l := range old {
		if i := slices.Index(s.layers, l); i >= 0 && i < at {
			at = i
		}
	}
	for _, l := range slices.Concat(old, next) {
		if i := slices.Index(s.layers, l); i >= 0 {
			s.layers = slices.Delete(s.layers, i, i+1)
			if i < at {
				at--
			}
		}
	}
	s.layers = slices.Insert(s.layers, at, next...)
}

// IndexOf returns l's position in the stack or -1.
func (s *LayerStack) IndexOf(l *Layer) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Index(s.layers, l)
}

// Layers returns a snapshot of the stack, bottom first. The slice is a copy;
// later mutations of the stack do not affect it.
func (s *LayerStack) Layers() []*Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.layers)
}

// LayerCount returns the number of layers.
func (s *LayerStack) LayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layers)
}

// Clear drops every layer.
func (s *LayerStack) Clear() {
	s.mu.Lock()
	clear(s.layers)
	s.layers = s.layers[:0]
	s.mu.Unlock()
}

// replace swaps the stack content for ls. The stack takes ownership of ls.
func (s *LayerStack) replace(ls []*Layer) {
	s.mu.Lock()
	s.layers = ls
	s.mu.Unlock()
}

// removeLayerByPtr removes l from layers without retaining a dangling pointer
// in the backing array.
func removeLayerByPtr(layers []*Layer, l *Layer) []*Layer {
	for i, c := range layers {
		if c == l {
			copy(layers[i:], layers[i+1:])
			layers[len(layers)-1] = nil
			return layers[:len(layers)-1]
		}
	}
	return layers
}
