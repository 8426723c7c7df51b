package sapling

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex indices within Sprite.Vertices.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// SpriteState is the mutable part of a sprite, handed to Modify callbacks.
type SpriteState struct {
	X, Y  float32
	Color Color
}

// equal compares states field by field. NaN positions compare equal to
// themselves so an unchanged NaN is not reported as a modification.
func (st SpriteState) equal(o SpriteState) bool {
	return sameFloat(st.X, o.X) && sameFloat(st.Y, o.Y) && st.Color == o.Color
}

func sameFloat(a, b float32) bool {
	return a == b || (a != a && b != b)
}

type modifiedListener struct {
	id uint64
	fn func(*Sprite)
}

// Sprite is a textured quad at a world position. Its four vertices are always
// consistent with its position, tint and region.
type Sprite struct {
	state    SpriteState
	region   TextureRegion
	vertices [4]PackedVertex

	batch     *SpriteBatch
	listeners []modifiedListener
	nextID    uint64
}

// NewSprite creates a sprite showing region at (x, y) with a white tint.
// The region is copied.
func NewSprite(region *TextureRegion, x, y float32) (*Sprite, error) {
	if region == nil {
		return nil, fmt.Errorf("sapling: sprite region: %w", ErrNilArgument)
	}
	s := &Sprite{
		state:  SpriteState{X: x, Y: y, Color: ColorWhite},
		region: *region,
	}
	s.computeVertices()
	return s, nil
}

// X returns the world X position.
func (s *Sprite) X() float32 { return s.state.X }

// Y returns the world Y position.
func (s *Sprite) Y() float32 { return s.state.Y }

// Color returns the tint.
func (s *Sprite) Color() Color { return s.state.Color }

// Region returns the atlas region the sprite shows.
func (s *Sprite) Region() TextureRegion { return s.region }

// Width returns the region width in atlas pixels.
func (s *Sprite) Width() int { return s.region.Width }

// Height returns the region height in atlas pixels.
func (s *Sprite) Height() int { return s.region.Height }

// Vertices returns a copy of the four vertices in top-left, top-right,
// bottom-right, bottom-left order.
func (s *Sprite) Vertices() [4]PackedVertex { return s.vertices }

// Batch returns the batch the sprite belongs to, or nil.
func (s *Sprite) Batch() *SpriteBatch { return s.batch }

// Modify applies fn to a copy of the sprite's state. If any field changed,
// the vertices are recomputed and every OnModified listener is called once.
// A call that leaves the state unchanged does nothing, so callers may write
// the same values every frame without triggering GPU re-uploads.
func (s *Sprite) Modify(fn func(st *SpriteState)) {
	if fn == nil {
		return
	}
	next := s.state
	fn(&next)
	if next.equal(s.state) {
		return
	}
	s.state = next
	s.computeVertices()
	s.notifyModified()
}

// OnModified registers fn to be called after every effective Modify. The
// returned function removes the registration; calling it more than once is
// harmless.
func (s *Sprite) OnModified(fn func(*Sprite)) (remove func()) {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, modifiedListener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				copy(s.listeners[i:], s.listeners[i+1:])
				s.listeners[len(s.listeners)-1] = modifiedListener{}
				s.listeners = s.listeners[:len(s.listeners)-1]
				return
			}
		}
	}
}

func (s *Sprite) notifyModified() {
	// Listeners may deregister themselves while being called.
	for _, l := range slices.Clone(s.listeners) {
		l.fn(s)
	}
}

// computeVertices rebuilds the quad. Texture coordinates are the region's
// corners divided by the atlas size. The quad's on-screen extent is one
// normalized atlas texel (1/atlasW by 1/atlasH) anchored at the sprite's
// position, so sprites are expected to be drawn with a projection that maps
// normalized atlas units to the screen.
func (s *Sprite) computeVertices() {
	atlasW, atlasH := s.region.atlasSize()
	sw := 1 / float32(atlasW)
	sh := 1 / float32(atlasH)

	r := &s.region
	left := float32(r.X) * sw
	right := float32(r.X+r.Width) * sw
	top := float32(r.Y+r.Height) * sh
	bottom := float32(r.Y) * sh

	x, y := s.state.X, s.state.Y
	c := s.state.Color.Normalized()

	s.vertices[TopLeft] = PackedVertex{mgl32.Vec2{x, y + sh}, c, mgl32.Vec2{left, top}}
	s.vertices[TopRight] = PackedVertex{mgl32.Vec2{x + sw, y + sh}, c, mgl32.Vec2{right, top}}
	s.vertices[BottomRight] = PackedVertex{mgl32.Vec2{x + sw, y}, c, mgl32.Vec2{right, bottom}}
	s.vertices[BottomLeft] = PackedVertex{mgl32.Vec2{x, y}, c, mgl32.Vec2{left, bottom}}
}
