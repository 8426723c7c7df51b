package ecs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/sapling"

	"github.com/yohamta/donburi"
)

const atlasJSON = `{
  "frames": {"hero": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}}},
  "meta": {"size": {"w": 16, "h": 16}}
}`

type texture struct{ disposed bool }

func (t *texture) Width() int       { return 16 }
func (t *texture) Height() int      { return 16 }
func (t *texture) IsDisposed() bool { return t.disposed }
func (t *texture) Dispose()         { t.disposed = true }

func newBatch(t *testing.T) *sapling.SpriteBatch {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atlas.json")
	if err := os.WriteFile(path, []byte(atlasJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	sheet, err := sapling.NewSpriteSheet(&texture{}, path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := sapling.NewSpriteBatch(sheet)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func newSprite(t *testing.T, b *sapling.SpriteBatch, x, y float32) *sapling.Sprite {
	t.Helper()
	s, err := sapling.NewSprite(b.SpriteSheet().Region("hero"), x, y)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}

func TestDonburiStore_PublishesBatchEvents(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	b := newBatch(t)
	b.SetEventStore(store)

	var received []sapling.SpriteEvent
	SpriteEventType.Subscribe(world, func(w donburi.World, e sapling.SpriteEvent) {
		received = append(received, e)
	})

	s := newSprite(t, b, 1, 2)
	if err := b.Add(s); err != nil {
		t.Fatal(err)
	}
	s.Modify(func(st *sapling.SpriteState) { st.X = 5 })
	if err := b.Remove(s); err != nil {
		t.Fatal(err)
	}

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	SpriteEventType.ProcessEvents(world)

	want := []sapling.SpriteEventType{sapling.SpriteAdded, sapling.SpriteModified, sapling.SpriteRemoved}
	if len(received) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(received))
	}
	for i, e := range received {
		if e.Type != want[i] || e.Sprite != s {
			t.Errorf("event %d: %+v", i, e)
		}
	}
	if received[1].X != 5 || received[1].Y != 2 {
		t.Errorf("modified event position: (%v,%v)", received[1].X, received[1].Y)
	}
}

func TestDonburiStore_MirrorsMembership(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	b := newBatch(t)
	b.SetEventStore(store)

	s1 := newSprite(t, b, 0, 0)
	s2 := newSprite(t, b, 3, 4)
	_ = b.Add(s1)
	_ = b.Add(s2)

	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}
	e, ok := store.Entity(s2)
	if !ok || !world.Valid(e) {
		t.Fatal("no entity for s2")
	}
	d := SpriteComponent.Get(world.Entry(e))
	if d.Sprite != s2 || d.X != 3 || d.Y != 4 {
		t.Errorf("component = %+v", *d)
	}

	s2.Modify(func(st *sapling.SpriteState) { st.Y = 9 })
	if d := SpriteComponent.Get(world.Entry(e)); d.Y != 9 {
		t.Errorf("component Y = %v after modify, want 9", d.Y)
	}

	_ = b.Remove(s2)
	if _, ok := store.Entity(s2); ok {
		t.Error("entity still mapped after Remove")
	}
	if world.Valid(e) {
		t.Error("entity still alive after Remove")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestDonburiStore_BatchDispose(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	b := newBatch(t)
	b.SetEventStore(store)

	s1 := newSprite(t, b, 0, 0)
	s2 := newSprite(t, b, 1, 1)
	_ = b.Add(s1)
	_ = b.Add(s2)
	e1, _ := store.Entity(s1)
	e2, _ := store.Entity(s2)

	b.Dispose()

	if store.Len() != 0 {
		t.Errorf("Len = %d after batch Dispose, want 0", store.Len())
	}
	if world.Valid(e1) || world.Valid(e2) {
		t.Error("entities still alive after batch Dispose")
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	SpriteEventType.Subscribe(world, func(w donburi.World, e sapling.SpriteEvent) {
		count1++
	})
	SpriteEventType.Subscribe(world, func(w donburi.World, e sapling.SpriteEvent) {
		count2++
	})

	store.EmitEvent(sapling.SpriteEvent{Type: sapling.SpriteModified})
	SpriteEventType.ProcessEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("count1=%d count2=%d, want 1 1", count1, count2)
	}
}
