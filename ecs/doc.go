// Package ecs provides ECS adapters for pinchview's gesture events.
//
// [NewDonburiStore] bridges viewer gestures (tap, pan, pinch, momentum,
// page change, close) into a [Donburi] world as typed events. Subscribe to
// [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	viewer.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
