package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/tessera"
)

// InputEvent is a dispatched tessera event. Events are queued in the world, so
// it carries copies of what listeners see rather than the live InputContext.
type InputEvent struct {
	Type tessera.EventType

	// TargetID and TargetName identify the component the event resolved to.
	// Both are zero for pointer events over empty space.
	TargetID   uint32
	TargetName string

	Position  tessera.Position
	Button    tessera.MouseButton
	Key       tessera.Key
	Char      rune
	Modifiers tessera.KeyModifiers
}

// InputEventType is the Donburi event type carrying tessera input. Subscribe to
// it to receive pointer, key and focus events.
var InputEventType = events.NewEventType[InputEvent]()

// Bridge publishes a container's events into a world until detached.
type Bridge struct {
	world   donburi.World
	handles []tessera.CallbackHandle
}

// Attach starts forwarding every event ct dispatches into world. Listeners
// registered by Attach observe events without consuming them.
func Attach(world donburi.World, ct *tessera.Container) *Bridge {
	b := &Bridge{world: world}
	for _, on := range []func(tessera.InputHandler) tessera.CallbackHandle{
		ct.OnMousePressed,
		ct.OnMouseReleased,
		ct.OnMouseMoved,
		ct.OnMouseClicked,
		ct.OnMouseDragged,
		ct.OnMouseEntered,
		ct.OnMouseExited,
		ct.OnMouseWheel,
		ct.OnKeyPressed,
		ct.OnFocusGiven,
		ct.OnFocusTaken,
	} {
		b.handles = append(b.handles, on(b.publish))
	}
	return b
}

// Detach stops forwarding. Events already published stay queued.
func (b *Bridge) Detach() {
	for _, h := range b.handles {
		h.Remove()
	}
	b.handles = nil
}

func (b *Bridge) publish(ctx *tessera.InputContext) {
	InputEventType.Publish(b.world, newInputEvent(ctx))
}

func newInputEvent(ctx *tessera.InputContext) InputEvent {
	e := InputEvent{
		Type:      ctx.Type,
		Position:  ctx.Position,
		Button:    ctx.Button,
		Key:       ctx.Key,
		Char:      ctx.Char,
		Modifiers: ctx.Modifiers,
	}
	if ctx.Target != nil {
		e.TargetID = ctx.Target.ID()
		e.TargetName = ctx.Target.Name()
	}
	return e
}
