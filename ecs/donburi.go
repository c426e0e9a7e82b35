// Package ecs provides ECS adapters for unveil.
package ecs

import (
	"github.com/phanxgames/unveil"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MotionEventType is the Donburi event type for unveil motion events.
// Subscribe to this in your ECS systems to receive visibility and animation
// milestones.
var MotionEventType = events.NewEventType[unveil.MotionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Motion events are published to MotionEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) unveil.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event unveil.MotionEvent) {
	MotionEventType.Publish(s.world, event)
}
