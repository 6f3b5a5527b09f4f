package ecs

import (
	"github.com/phanxgames/pinchview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for pinchview gesture events.
var GestureEventType = events.NewEventType[pinchview.GestureEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Events
// are queued on GestureEventType and delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) pinchview.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event pinchview.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}
