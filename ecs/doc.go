// Package ecs provides ECS adapters for unveil's motion event system.
//
// The primary adapter is [NewDonburiStore], which bridges unveil motion
// events (enter, reveal start/end, count start/end) into a [Donburi] world
// as typed events. Subscribe to [MotionEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
