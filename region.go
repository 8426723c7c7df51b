package sapling

import "fmt"

// TextureRegion describes a sub-rectangle of a texture atlas in atlas pixels.
// The origin is the bottom-left corner of the atlas, with Y increasing upward.
//
// Regions are values: two regions are equal when their rectangles match and
// they come from the same atlas.
type TextureRegion struct {
	X, Y          int
	Width, Height int

	atlas *TextureAtlas // nil for detached regions
}

// NewTextureRegion returns a detached region. Width and height must be
// positive and the origin must not be negative.
func NewTextureRegion(x, y, width, height int) (TextureRegion, error) {
	if err := validateRect(x, y, width, height); err != nil {
		return TextureRegion{}, err
	}
	return TextureRegion{X: x, Y: y, Width: width, Height: height}, nil
}

func validateRect(x, y, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("sapling: region size %dx%d: %w", width, height, ErrInvalidArgument)
	}
	if x < 0 || y < 0 {
		return fmt.Errorf("sapling: region origin (%d, %d): %w", x, y, ErrInvalidArgument)
	}
	return nil
}

// Atlas returns the atlas that issued the region, or nil if it is detached.
func (r TextureRegion) Atlas() *TextureAtlas {
	return r.atlas
}

// Detached reports whether the region was created outside of an atlas.
func (r TextureRegion) Detached() bool {
	return r.atlas == nil
}

// atlasSize returns the dimensions the region is normalized against.
// Detached regions are left in pixel space.
func (r TextureRegion) atlasSize() (w, h int) {
	if r.atlas == nil || r.atlas.width <= 0 || r.atlas.height <= 0 {
		return 1, 1
	}
	return r.atlas.width, r.atlas.height
}
