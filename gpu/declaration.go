package gpu

import "fmt"

// VertexElement describes one attribute inside an interleaved vertex.
type VertexElement struct {
	Location   uint32
	Name       string
	Type       AttribType
	Count      int32 // components, 1 to 4
	Normalized bool
}

// Size returns the element's size in bytes.
func (e VertexElement) Size() int32 {
	return e.Count * e.Type.Size()
}

// VertexDeclaration is the layout of an interleaved vertex: its stride and
// its elements in memory order.
type VertexDeclaration struct {
	Stride   int32
	Elements []VertexElement
}

// NewVertexDeclaration returns a declaration with a private copy of elements.
func NewVertexDeclaration(stride int32, elements ...VertexElement) VertexDeclaration {
	return VertexDeclaration{
		Stride:   stride,
		Elements: append([]VertexElement(nil), elements...),
	}
}

// Offset returns the byte offset of element i, accumulated from the sizes of
// the elements before it.
func (d VertexDeclaration) Offset(i int) int {
	offset := 0
	for _, e := range d.Elements[:i] {
		offset += int(e.Size())
	}
	return offset
}

// Apply records the layout on the currently bound vertex array: one enable
// and one attribute-pointer call per element.
func (d VertexDeclaration) Apply(adapter VertexArrayAdapter, program *ShaderProgram) error {
	if adapter == nil {
		return fmt.Errorf("gpu: apply vertex declaration: adapter: %w", ErrNilArgument)
	}
	if program == nil {
		return fmt.Errorf("gpu: apply vertex declaration: program: %w", ErrNilArgument)
	}
	if err := program.checkDisposed("ApplyVertexDeclaration"); err != nil {
		return err
	}

	offset := 0
	for _, e := range d.Elements {
		adapter.EnableVertexAttribArray(e.Location)
		adapter.VertexAttribPointer(e.Location, e.Count, e.Type, e.Normalized, d.Stride, offset)
		offset += int(e.Size())
	}
	return nil
}
