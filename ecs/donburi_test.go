package ecs

import (
	"testing"

	"github.com/phanxgames/rowan"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSinkPublishesToWorld(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []rowan.InputEvent
	InputEventType.Subscribe(world, func(w donburi.World, e rowan.InputEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(rowan.InputEvent{
		Type:     rowan.EventMouseButtonPress,
		Button:   rowan.MouseButtonLeft,
		Position: rowan.Vec2{X: 100, Y: 200},
	})
	sink.EmitEvent(rowan.InputEvent{
		Type: rowan.EventKeyPress,
		Key:  rowan.Key(7),
	})

	// Published events queue until the world processes them.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	InputEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("events = %d, want 2", len(received))
	}
	if received[0].Type != rowan.EventMouseButtonPress || received[0].Button != rowan.MouseButtonLeft {
		t.Errorf("events[0] = %+v", received[0])
	}
	if received[0].Position.X != 100 || received[0].Position.Y != 200 {
		t.Errorf("events[0].Position = %+v", received[0].Position)
	}
	if received[1].Type != rowan.EventKeyPress || received[1].Key != rowan.Key(7) {
		t.Errorf("events[1] = %+v", received[1])
	}
}

func TestDonburiSinkFansOutToSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	InputEventType.Subscribe(world, func(w donburi.World, e rowan.InputEvent) { count1++ })
	InputEventType.Subscribe(world, func(w donburi.World, e rowan.InputEvent) { count2++ })

	sink.EmitEvent(rowan.InputEvent{Type: rowan.EventMouseWheel})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("subscriber calls = %d and %d, want 1 each", count1, count2)
	}
}
