// Package ecs forwards tessera input events into a [Donburi] world.
//
// [Attach] registers container-level listeners that publish every dispatched
// event as an [InputEvent]. Subscribe to [InputEventType] in your ECS systems
// and drain it with ProcessEvents once per tick.
//
// Usage:
//
//	bridge := ecs.Attach(world, screen.Container())
//	defer bridge.Detach()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
