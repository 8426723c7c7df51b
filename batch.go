package sapling

import "fmt"

// DefaultBatchCapacity is the number of sprites a batch holds unless
// NewSpriteBatchSize says otherwise.
const DefaultBatchCapacity = 100

type batchMember struct {
	sprite *Sprite
	remove func() // deregisters the batch's OnModified listener
}

// SpriteBatch is a bounded, duplicate-free, insertion-ordered set of sprites
// cut from one sprite sheet, drawn together. The batch owns the sheet.
type SpriteBatch struct {
	sheet    *SpriteSheet
	capacity int
	members  []batchMember
	index    map[*Sprite]int
	store    EventStore
	dirty    bool
	disposed bool
}

// NewSpriteBatch creates a batch with DefaultBatchCapacity that takes
// ownership of sheet.
func NewSpriteBatch(sheet *SpriteSheet) (*SpriteBatch, error) {
	return NewSpriteBatchSize(sheet, DefaultBatchCapacity)
}

// NewSpriteBatchSize creates a batch holding at most capacity sprites.
// A sheet can be owned by only one batch.
func NewSpriteBatchSize(sheet *SpriteSheet, capacity int) (*SpriteBatch, error) {
	if sheet == nil {
		return nil, fmt.Errorf("sapling: sprite batch sheet: %w", ErrNilArgument)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("sapling: sprite batch capacity %d: %w", capacity, ErrInvalidArgument)
	}
	if sheet.disposed {
		return nil, fmt.Errorf("sapling: sprite batch sheet is disposed: %w", ErrInvalidState)
	}
	if sheet.owner != nil {
		return nil, fmt.Errorf("sapling: sprite sheet already belongs to a batch: %w", ErrInvalidState)
	}
	b := &SpriteBatch{
		sheet:    sheet,
		capacity: capacity,
		members:  make([]batchMember, 0, capacity),
		index:    make(map[*Sprite]int, capacity),
	}
	sheet.owner = b
	return b, nil
}

// SpriteSheet returns the sheet the batch owns.
func (b *SpriteBatch) SpriteSheet() *SpriteSheet { return b.sheet }

// Capacity returns the maximum number of sprites.
func (b *SpriteBatch) Capacity() int { return b.capacity }

// Len returns the number of sprites in the batch.
func (b *SpriteBatch) Len() int { return len(b.members) }

// IsDisposed reports whether Dispose has been called.
func (b *SpriteBatch) IsDisposed() bool { return b.disposed }

// SetEventStore sets the optional ECS bridge. Pass nil to detach it.
func (b *SpriteBatch) SetEventStore(store EventStore) {
	b.store = store
}

// Contains reports whether s is a member of the batch.
func (b *SpriteBatch) Contains(s *Sprite) bool {
	_, ok := b.index[s]
	return ok
}

// Sprites returns the members in insertion order. The slice is a copy.
func (b *SpriteBatch) Sprites() []*Sprite {
	out := make([]*Sprite, len(b.members))
	for i, m := range b.members {
		out[i] = m.sprite
	}
	return out
}

// Add appends s to the batch. The sprite's vertices are already current, so
// no transform runs here; the batch is only marked dirty.
func (b *SpriteBatch) Add(s *Sprite) error {
	switch {
	case b.disposed:
		return fmt.Errorf("sapling: Add on sprite batch: %w", ErrDisposed)
	case s == nil:
		return fmt.Errorf("sapling: Add sprite: %w", ErrNilArgument)
	case b.Contains(s):
		return fmt.Errorf("sapling: Add: %w", ErrDuplicateSprite)
	case s.batch != nil:
		return fmt.Errorf("sapling: Add: sprite belongs to another batch: %w", ErrInvalidState)
	case !b.sheet.atlas.contains(s.region):
		return fmt.Errorf("sapling: Add: sprite region is not from this batch's sprite sheet: %w", ErrInvalidArgument)
	case len(b.members) >= b.capacity:
		return fmt.Errorf("sapling: Add: batch holds %d sprites: %w", b.capacity, ErrCapacityExceeded)
	}

	idx := len(b.members)
	remove := s.OnModified(b.spriteModified)
	b.members = append(b.members, batchMember{sprite: s, remove: remove})
	b.index[s] = idx
	s.batch = b
	b.dirty = true

	Logger().Debug("sapling: sprite added", "index", idx, "len", len(b.members))
	b.emit(SpriteAdded, s, idx)
	return nil
}

// Remove takes s out of the batch. Later members move down one position.
func (b *SpriteBatch) Remove(s *Sprite) error {
	if b.disposed {
		return fmt.Errorf("sapling: Remove on sprite batch: %w", ErrDisposed)
	}
	if s == nil {
		return fmt.Errorf("sapling: Remove sprite: %w", ErrNilArgument)
	}
	idx, ok := b.index[s]
	if !ok {
		return fmt.Errorf("sapling: Remove: sprite is not in this batch: %w", ErrNotFound)
	}

	b.members[idx].remove()
	copy(b.members[idx:], b.members[idx+1:])
	b.members[len(b.members)-1] = batchMember{}
	b.members = b.members[:len(b.members)-1]
	delete(b.index, s)
	for i := idx; i < len(b.members); i++ {
		b.index[b.members[i].sprite] = i
	}
	s.batch = nil
	b.dirty = true

	Logger().Debug("sapling: sprite removed", "index", idx, "len", len(b.members))
	b.emit(SpriteRemoved, s, idx)
	return nil
}

func (b *SpriteBatch) spriteModified(s *Sprite) {
	b.dirty = true
	b.emit(SpriteModified, s, b.index[s])
}

func (b *SpriteBatch) emit(t SpriteEventType, s *Sprite, idx int) {
	if b.store == nil {
		return
	}
	b.store.EmitEvent(SpriteEvent{Type: t, Sprite: s, Index: idx, X: s.state.X, Y: s.state.Y})
}

// Dirty reports whether the vertex stream changed since it was last consumed
// by a renderer.
func (b *SpriteBatch) Dirty() bool { return b.dirty }

// consumeDirty reports the dirty flag and clears it.
func (b *SpriteBatch) consumeDirty() bool {
	d := b.dirty
	b.dirty = false
	return d
}

// AppendVertexData appends the packed vertices of every member, in insertion
// order, to dst and returns the extended slice.
func (b *SpriteBatch) AppendVertexData(dst []float32) []float32 {
	for _, m := range b.members {
		for _, v := range m.sprite.vertices {
			dst = v.AppendTo(dst)
		}
	}
	return dst
}

// Dispose releases every member and disposes the sprite sheet. Each member is
// reported to the event store as removed, last first, so every Index is the
// position the sprite held at that moment. Calling it again does nothing.
func (b *SpriteBatch) Dispose() {
	if b.disposed {
		return
	}
	for i := len(b.members) - 1; i >= 0; i-- {
		m := b.members[i]
		m.remove()
		m.sprite.batch = nil
		b.emit(SpriteRemoved, m.sprite, i)
	}
	b.members = nil
	b.index = nil
	b.sheet.Dispose()
	b.disposed = true
	Logger().Debug("sapling: sprite batch disposed")
}
