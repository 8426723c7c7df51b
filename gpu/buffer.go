package gpu

import "fmt"

// Buffer owns a buffer object bound to a fixed target.
type Buffer struct {
	resource
	adapter BufferAdapter
	target  BufferTarget
	usage   BufferUsage
	length  int
}

// NewBuffer generates a buffer for target with the given usage hint.
func NewBuffer(adapter BufferAdapter, target BufferTarget, usage BufferUsage) (*Buffer, error) {
	if adapter == nil {
		return nil, fmt.Errorf("gpu: buffer adapter: %w", ErrNilArgument)
	}
	return &Buffer{
		resource: resource{kind: "buffer", handle: adapter.GenBuffer()},
		adapter:  adapter,
		target:   target,
		usage:    usage,
	}, nil
}

// Target returns the binding point of the buffer.
func (b *Buffer) Target() BufferTarget {
	return b.target
}

// Len returns the number of elements uploaded by the last Set call.
func (b *Buffer) Len() int {
	return b.length
}

// Bind binds the buffer to its target.
func (b *Buffer) Bind() error {
	if err := b.checkDisposed("Bind"); err != nil {
		return err
	}
	b.adapter.BindBuffer(b.target, b.handle)
	return nil
}

// SetFloats binds the buffer and replaces its contents with data.
func (b *Buffer) SetFloats(data []float32) error {
	if err := b.checkDisposed("SetFloats"); err != nil {
		return err
	}
	b.adapter.BindBuffer(b.target, b.handle)
	b.adapter.BufferFloats(b.target, data, b.usage)
	b.length = len(data)
	return nil
}

// SetIndices binds the buffer and replaces its contents with data.
func (b *Buffer) SetIndices(data []uint32) error {
	if err := b.checkDisposed("SetIndices"); err != nil {
		return err
	}
	b.adapter.BindBuffer(b.target, b.handle)
	b.adapter.BufferIndices(b.target, data, b.usage)
	b.length = len(data)
	return nil
}

// Dispose deletes the buffer. Calling it again does nothing.
func (b *Buffer) Dispose() {
	b.release(b.adapter.DeleteBuffer)
}
