package sapling

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/sapling/gpu"
)

// PackedVertex is one GPU-ready vertex: position, color and texture
// coordinate. Color and texture coordinate components are in [0, 1].
type PackedVertex struct {
	Position mgl32.Vec2
	Color    mgl32.Vec4
	TexCoord mgl32.Vec2
}

const (
	// vertexFloats is the number of float32 values in a packed vertex.
	vertexFloats = 8

	// VertexStride is the size of a PackedVertex in bytes.
	VertexStride = vertexFloats * 4
)

// AppendTo appends the vertex to dst in declaration order and returns the
// extended slice.
func (v PackedVertex) AppendTo(dst []float32) []float32 {
	return append(dst,
		v.Position[0], v.Position[1],
		v.Color[0], v.Color[1], v.Color[2], v.Color[3],
		v.TexCoord[0], v.TexCoord[1],
	)
}

// Attribute locations used by VertexDeclaration.
const (
	AttribPosition uint32 = iota
	AttribColor
	AttribTexCoord
)

// VertexDeclaration returns the interleaved layout of PackedVertex.
func VertexDeclaration() gpu.VertexDeclaration {
	return gpu.NewVertexDeclaration(VertexStride,
		gpu.VertexElement{Location: AttribPosition, Name: "position", Type: gpu.AttribFloat, Count: 2},
		gpu.VertexElement{Location: AttribColor, Name: "color", Type: gpu.AttribFloat, Count: 4},
		gpu.VertexElement{Location: AttribTexCoord, Name: "texCoord", Type: gpu.AttribFloat, Count: 2},
	)
}
