package tessera

import (
	"slices"
	"sync"
)

// InputHandler receives a dispatched event.
type InputHandler func(ctx *InputContext)

type inputHandler struct {
	id uint32
	fn InputHandler
}

// handlerRegistry keeps one subscription list per event category. Handlers run
// synchronously, in registration order, outside the registry lock so they may
// add or remove handlers themselves.
type handlerRegistry struct {
	mu       sync.Mutex
	handlers [eventTypeCount][]inputHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// Removing twice, or removing a zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.event, h.id)
}

func (r *handlerRegistry) add(event EventType, fn InputHandler) CallbackHandle {
	if fn == nil {
		panic("tessera: nil input handler")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.handlers[event] = append(r.handlers[event], inputHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

func (r *handlerRegistry) remove(event EventType, id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.handlers[event]
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = inputHandler{}
			r.handlers[event] = s[:len(s)-1]
			return
		}
	}
}

// count returns the number of handlers for event.
func (r *handlerRegistry) count(event EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers[event])
}

// fire runs every handler for ctx.Type. A handler consuming the event does
// not stop the remaining handlers of the same registry; it stops bubbling.
func (r *handlerRegistry) fire(ctx *InputContext) {
	r.mu.Lock()
	hs := slices.Clone(r.handlers[ctx.Type])
	r.mu.Unlock()
	for _, h := range hs {
		h.fn(ctx)
	}
}

// clear drops every handler.
func (r *handlerRegistry) clear() {
	r.mu.Lock()
	for i := range r.handlers {
		r.handlers[i] = nil
	}
	r.mu.Unlock()
}

// listeners is embedded by Component and Container to expose the On* methods.
type listeners struct {
	handlers handlerRegistry
}

// OnMousePressed registers fn for button presses.
func (l *listeners) OnMousePressed(fn InputHandler) CallbackHandle {
	return l.handlers.add(EventMousePressed, fn)
}

// OnMouseReleased registers fn for button releases.
func (l *listeners) OnMouseReleased(fn InputHandler) CallbackHandle {
	return l.handlers.add(EventMouseReleased, fn)
}

// OnMouseMoved registers fn for pointer moves without a pressed button.
func (l *listeners) OnMouseMoved(fn InputHandler) CallbackHandle {
	return l.handlers.add(EventMouseMoved, fn)
}

// OnMouseClicked registers fn for press-then-release over the same component.
func (l *listeners) OnMouseClicked(fn InputHandler) CallbackHandle {
	return l.handlers.add(EventMouseClicked, fn)
}

// OnMouseDragged registers fn for pointer moves while a button is held.
func (l *listeners) OnMouseDragged(fn InputHandler) CallbackHandle {
	return l.handlers.add(EventMouseDragged, fn)
}

// OnMouseEntered registers fn for the pointer entering.
func (l *listeners) OnMouseEntered(fn InputHandler) CallbackHandle {
	return l.handlers.add(EventMouseEntered, fn)
}

// OnMouseExited registers fn for the pointer leaving.
func (l *listeners) OnMouseExited(fn InputHandler) CallbackHandle {
	return l.handlers.add(EventMouseExited, fn)
}

// OnMouseWheel registers fn for wheel turns.
func (l *listeners) OnMouseWheel(fn InputHandler) CallbackHandle {
	return l.handlers.add(EventMouseWheel, fn)
}

// OnKeyPressed registers fn for key strokes.
func (l *listeners) OnKeyPressed(fn InputHandler) CallbackHandle {
	return l.handlers.add(EventKeyPressed, fn)
}

// OnFocusGiven registers fn for gaining focus.
func (l *listeners) OnFocusGiven(fn InputHandler) CallbackHandle {
	return l.handlers.add(EventFocusGiven, fn)
}

// OnFocusTaken registers fn for losing focus.
func (l *listeners) OnFocusTaken(fn InputHandler) CallbackHandle {
	return l.handlers.add(EventFocusTaken, fn)
}
