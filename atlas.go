package sapling

import (
	"fmt"
	"slices"
)

// Parser builds a TextureAtlas from an atlas description file.
type Parser interface {
	Parse(path string) (*TextureAtlas, error)
}

// TextureAtlas is a name-indexed table of regions inside one texture. The
// table is populated once at construction and never changes afterwards.
type TextureAtlas struct {
	width, height int
	regions       map[string]TextureRegion
}

// NewTextureAtlas builds an atlas of the given pixel size from regions. The
// map is copied and every region is bound to the new atlas. A size of 0x0
// means "unknown"; a SpriteSheet fills it in from its texture.
func NewTextureAtlas(width, height int, regions map[string]TextureRegion) (*TextureAtlas, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("sapling: atlas size %dx%d: %w", width, height, ErrInvalidArgument)
	}
	a := &TextureAtlas{
		width:   width,
		height:  height,
		regions: make(map[string]TextureRegion, len(regions)),
	}
	for name, r := range regions {
		if err := validateRect(r.X, r.Y, r.Width, r.Height); err != nil {
			return nil, fmt.Errorf("sapling: atlas region %q: %w", name, err)
		}
		r.atlas = a
		a.regions[name] = r
	}
	if width > 0 && height > 0 {
		if err := a.checkBounds(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// checkBounds reports the first region, by name, that does not fit inside
// the atlas.
func (a *TextureAtlas) checkBounds() error {
	for _, name := range a.Names() {
		r := a.regions[name]
		if r.X+r.Width > a.width || r.Y+r.Height > a.height {
			return fmt.Errorf("sapling: atlas region %q exceeds %dx%d atlas: %w",
				name, a.width, a.height, ErrInvalidArgument)
		}
	}
	return nil
}

// Width returns the atlas width in pixels.
func (a *TextureAtlas) Width() int { return a.width }

// Height returns the atlas height in pixels.
func (a *TextureAtlas) Height() int { return a.height }

// Len returns the number of regions.
func (a *TextureAtlas) Len() int { return len(a.regions) }

// Lookup returns the named region and whether it exists.
func (a *TextureAtlas) Lookup(name string) (TextureRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Region returns a copy of the named region, or nil if the atlas has no
// region by that name.
func (a *TextureAtlas) Region(name string) *TextureRegion {
	r, ok := a.regions[name]
	if !ok {
		Logger().Debug("sapling: atlas region not found", "name", name)
		return nil
	}
	return &r
}

// Names returns the region names in sorted order.
func (a *TextureAtlas) Names() []string {
	names := make([]string, 0, len(a.regions))
	for name := range a.regions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Regions returns a snapshot of every region, ordered by name.
func (a *TextureAtlas) Regions() []TextureRegion {
	out := make([]TextureRegion, 0, len(a.regions))
	for _, name := range a.Names() {
		out = append(out, a.regions[name])
	}
	return out
}

// contains reports whether r was issued by this atlas.
func (a *TextureAtlas) contains(r TextureRegion) bool {
	return r.atlas == a
}
