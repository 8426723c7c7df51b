package sapling

import "github.com/go-gl/mathgl/mgl32"

// Color is an RGBA tint with 8-bit channels. Not premultiplied.
type Color struct {
	R, G, B, A uint8
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{255, 255, 255, 255}

// Normalized returns the color with each channel divided by 255.
func (c Color) Normalized() mgl32.Vec4 {
	return mgl32.Vec4{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
