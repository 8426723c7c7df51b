package gpu

import "fmt"

// VertexArray owns a vertex array object, which records the attribute layout
// used by draw calls.
type VertexArray struct {
	resource
	adapter VertexArrayAdapter
}

// NewVertexArray generates a vertex array through adapter.
func NewVertexArray(adapter VertexArrayAdapter) (*VertexArray, error) {
	if adapter == nil {
		return nil, fmt.Errorf("gpu: vertex array adapter: %w", ErrNilArgument)
	}
	return &VertexArray{
		resource: resource{kind: "vertex array", handle: adapter.GenVertexArray()},
		adapter:  adapter,
	}, nil
}

// Bind makes this the current vertex array.
func (v *VertexArray) Bind() error {
	if err := v.checkDisposed("Bind"); err != nil {
		return err
	}
	v.adapter.BindVertexArray(v.handle)
	return nil
}

// SetUp binds the vertex array and records decl's attribute layout into it.
// The vertex buffer the attributes read from must already be bound.
func (v *VertexArray) SetUp(program *ShaderProgram, decl VertexDeclaration) error {
	if err := v.checkDisposed("SetUp"); err != nil {
		return err
	}
	v.adapter.BindVertexArray(v.handle)
	return decl.Apply(v.adapter, program)
}

// Dispose deletes the vertex array. Calling it again does nothing.
func (v *VertexArray) Dispose() {
	v.release(v.adapter.DeleteVertexArray)
}
