package ebitengine

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/sapling"
)

// Texture is a sapling.Texture backed by an *ebiten.Image.
type Texture struct {
	img      *ebiten.Image
	disposed bool
}

var _ sapling.Texture = (*Texture)(nil)

// NewTexture wraps img. The texture takes ownership of the image.
func NewTexture(img *ebiten.Image) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("ebitengine: texture image: %w", sapling.ErrNilArgument)
	}
	return &Texture{img: img}, nil
}

// LoadTexture decodes the image file at path.
func LoadTexture(path string) (*Texture, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("ebitengine: load texture %s: %w", path, err)
	}
	return &Texture{img: img}, nil
}

// Image returns the underlying image.
func (t *Texture) Image() *ebiten.Image { return t.img }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.img.Bounds().Dx() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.img.Bounds().Dy() }

// IsDisposed reports whether Dispose has been called.
func (t *Texture) IsDisposed() bool { return t.disposed }

// Dispose releases the image's GPU memory. Calling it again does nothing.
func (t *Texture) Dispose() {
	if t.disposed {
		return
	}
	t.img.Deallocate()
	t.disposed = true
}
