package ecs

import (
	"github.com/phanxgames/sapling"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SpriteEventType is the Donburi event type for sprite batch events.
var SpriteEventType = events.NewEventType[sapling.SpriteEvent]()

// SpriteData is the component stored on the entity mirroring a batch member.
type SpriteData struct {
	Sprite *sapling.Sprite
	X, Y   float32
}

// SpriteComponent marks entities that mirror a batch member.
var SpriteComponent = donburi.NewComponentType[SpriteData]()

// DonburiStore implements sapling.EventStore on top of a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[*sapling.Sprite]donburi.Entity
}

var _ sapling.EventStore = (*DonburiStore)(nil)

// NewDonburiStore creates an EventStore backed by world. Events are published
// to SpriteEventType and can be consumed with Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{
		world:    world,
		entities: make(map[*sapling.Sprite]donburi.Entity),
	}
}

// EmitEvent publishes event and updates the membership mirror.
func (s *DonburiStore) EmitEvent(event sapling.SpriteEvent) {
	SpriteEventType.Publish(s.world, event)

	switch event.Type {
	case sapling.SpriteAdded:
		e := s.world.Create(SpriteComponent)
		SpriteComponent.SetValue(s.world.Entry(e), SpriteData{Sprite: event.Sprite, X: event.X, Y: event.Y})
		s.entities[event.Sprite] = e
	case sapling.SpriteModified:
		if e, ok := s.entities[event.Sprite]; ok && s.world.Valid(e) {
			d := SpriteComponent.Get(s.world.Entry(e))
			d.X, d.Y = event.X, event.Y
		}
	case sapling.SpriteRemoved:
		if e, ok := s.entities[event.Sprite]; ok {
			if s.world.Valid(e) {
				s.world.Remove(e)
			}
			delete(s.entities, event.Sprite)
		}
	}
}

// Entity returns the entity mirroring sprite.
func (s *DonburiStore) Entity(sprite *sapling.Sprite) (donburi.Entity, bool) {
	e, ok := s.entities[sprite]
	return e, ok
}

// Len returns the number of mirrored sprites.
func (s *DonburiStore) Len() int {
	return len(s.entities)
}
