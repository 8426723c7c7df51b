package sapling

// SpriteEventType identifies a batch membership or sprite change.
type SpriteEventType uint8

const (
	SpriteAdded    SpriteEventType = iota // sprite joined the batch
	SpriteRemoved                         // sprite left the batch
	SpriteModified                        // a member's state actually changed
)

func (t SpriteEventType) String() string {
	switch t {
	case SpriteAdded:
		return "added"
	case SpriteRemoved:
		return "removed"
	case SpriteModified:
		return "modified"
	default:
		return "unknown"
	}
}

// SpriteEvent carries a batch change to an EventStore.
type SpriteEvent struct {
	Type   SpriteEventType
	Sprite *Sprite
	// Index is the sprite's position in the batch; for SpriteRemoved it is
	// the position it held before removal.
	Index int
	X, Y  float32
}

// EventStore is the interface for optional ECS integration. When set on a
// SpriteBatch, membership and modification events are forwarded to it.
type EventStore interface {
	EmitEvent(event SpriteEvent)
}
