// Package ecs bridges sprite batch events into a [Donburi] world.
//
// [NewDonburiStore] returns a [sapling.EventStore] that publishes every
// [sapling.SpriteEvent] to [SpriteEventType] and mirrors batch membership as
// entities carrying a [SpriteComponent]. Subscribe to SpriteEventType in your
// ECS systems, or query SpriteComponent to iterate the batch's sprites.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	batch.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
