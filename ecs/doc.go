// Package ecs provides ECS adapters for particlefield.
//
// The primary adapter is [NewDonburiObserver], which publishes a
// [particlefield.FrameEvent] into a [Donburi] world after every render
// pass. Subscribe to [FrameEventType] in your ECS systems to react to
// frames (for example to spawn gameplay entities when a burst is drawn).
//
// Usage:
//
//	obs := ecs.NewDonburiObserver(world)
//	game.Renderer.AddObserver(obs)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
