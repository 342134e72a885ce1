// Package ecs provides ECS adapters for rowan's input event stream.
//
// The primary adapter is [NewDonburiSink], which bridges rowan input events
// (keys, mouse, wheel, gamepad) into a [Donburi] world as typed events.
// Subscribe to [InputEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
