package ecs

import (
	"github.com/phanxgames/particlefield"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FrameEventType is the Donburi event type for particlefield render passes.
var FrameEventType = events.NewEventType[particlefield.FrameEvent]()

type donburiObserver struct {
	world donburi.World
}

// NewDonburiObserver creates a FrameObserver backed by a Donburi world.
// Events are queued on FrameEventType and delivered by ProcessEvents.
func NewDonburiObserver(world donburi.World) particlefield.FrameObserver {
	return &donburiObserver{world: world}
}

func (o *donburiObserver) ObserveFrame(ev particlefield.FrameEvent) {
	FrameEventType.Publish(o.world, ev)
}
