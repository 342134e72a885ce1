package ecs

import (
	"github.com/phanxgames/rowan"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InputEventType is the Donburi event type for rowan input events.
// Subscribe to this in your ECS systems to receive key, mouse, wheel, and
// gamepad events.
var InputEventType = events.NewEventType[rowan.InputEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Input
// events are published to InputEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) rowan.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(ev rowan.InputEvent) {
	InputEventType.Publish(s.world, ev)
}
