package sapling

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Texture is a disposable GPU texture. backend/ebitengine provides one backed
// by an *ebiten.Image.
type Texture interface {
	Width() int
	Height() int
	IsDisposed() bool
	Dispose()
}

// SpriteSheet pairs a texture with the atlas describing its regions. The
// sheet owns the texture and disposes it in Dispose.
type SpriteSheet struct {
	texture  Texture
	atlas    *TextureAtlas
	owner    *SpriteBatch
	disposed bool
}

// NewSpriteSheet loads the TexturePacker JSON at dataFilePath for texture.
func NewSpriteSheet(texture Texture, dataFilePath string) (*SpriteSheet, error) {
	return NewSpriteSheetWithParser(texture, dataFilePath, TexturePackerParser{})
}

// NewSpriteSheetWithParser is NewSpriteSheet with a custom atlas parser.
//
// The texture must be live and the data file must exist. If the parsed atlas
// reports a 0x0 size it adopts the texture's size, and every region must then
// fit inside the texture; any other size must match the texture.
func NewSpriteSheetWithParser(texture Texture, dataFilePath string, parser Parser) (*SpriteSheet, error) {
	if texture == nil {
		return nil, fmt.Errorf("sapling: sprite sheet texture: %w", ErrNilArgument)
	}
	if texture.IsDisposed() {
		return nil, fmt.Errorf("sapling: sprite sheet texture is disposed: %w", ErrInvalidState)
	}
	if parser == nil {
		return nil, fmt.Errorf("sapling: sprite sheet parser: %w", ErrNilArgument)
	}
	if _, err := os.Stat(dataFilePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("sapling: sprite sheet data file %s: %w", dataFilePath, ErrNotFound)
		}
		return nil, fmt.Errorf("sapling: sprite sheet data file: %w", err)
	}

	atlas, err := parser.Parse(dataFilePath)
	if err != nil {
		return nil, fmt.Errorf("sapling: parse %s: %w", dataFilePath, err)
	}
	if atlas == nil {
		return nil, fmt.Errorf("sapling: parser returned no atlas for %s: %w", dataFilePath, ErrInvalidState)
	}

	tw, th := texture.Width(), texture.Height()
	switch {
	case atlas.width == 0 && atlas.height == 0:
		atlas.width, atlas.height = tw, th
		if err := atlas.checkBounds(); err != nil {
			return nil, fmt.Errorf("sapling: %s: %w", dataFilePath, err)
		}
	case atlas.width != tw || atlas.height != th:
		return nil, fmt.Errorf("sapling: atlas %s is %dx%d but texture is %dx%d: %w",
			dataFilePath, atlas.width, atlas.height, tw, th, ErrInvalidState)
	}

	return &SpriteSheet{texture: texture, atlas: atlas}, nil
}

// Texture returns the sheet's texture.
func (s *SpriteSheet) Texture() Texture { return s.texture }

// Atlas returns the sheet's region table.
func (s *SpriteSheet) Atlas() *TextureAtlas { return s.atlas }

// Region returns a copy of the named region, or nil if there is none.
func (s *SpriteSheet) Region(name string) *TextureRegion {
	return s.atlas.Region(name)
}

// TextureRegions returns a snapshot of all regions, ordered by name.
// Modifying the returned slice does not affect the sheet.
func (s *SpriteSheet) TextureRegions() []TextureRegion {
	return s.atlas.Regions()
}

// IsDisposed reports whether Dispose has been called.
func (s *SpriteSheet) IsDisposed() bool { return s.disposed }

// Dispose disposes the texture. Calling it again does nothing.
func (s *SpriteSheet) Dispose() {
	if s.disposed {
		return
	}
	s.texture.Dispose()
	s.disposed = true
}
