package sapling

import (
	"fmt"
	"time"

	"github.com/phanxgames/sapling/gpu"
)

const (
	verticesPerQuad = 4
	indicesPerQuad  = 6
)

// RenderStats counts the work a BatchRenderer has done since it was created.
type RenderStats struct {
	Uploads        int // frames that re-uploaded the vertex stream
	SkippedUploads int // frames that reused the previous upload
	DrawCalls      int
}

// BatchRenderer draws one SpriteBatch through a graphics adapter. It owns a
// vertex array, a vertex buffer and an index buffer sized for the batch's
// capacity. The batch and the shader program stay owned by the caller.
type BatchRenderer struct {
	adapter  gpu.Adapter
	batch    *SpriteBatch
	program  *gpu.ShaderProgram
	vao      *gpu.VertexArray
	vertices *gpu.Buffer
	indices  *gpu.Buffer

	scratch  []float32
	primed   bool
	stats    RenderStats
	disposed bool
}

// NewBatchRenderer creates the GPU objects for batch and records the
// PackedVertex layout into the vertex array.
func NewBatchRenderer(adapter gpu.Adapter, batch *SpriteBatch, program *gpu.ShaderProgram) (*BatchRenderer, error) {
	switch {
	case adapter == nil:
		return nil, fmt.Errorf("sapling: batch renderer adapter: %w", ErrNilArgument)
	case batch == nil:
		return nil, fmt.Errorf("sapling: batch renderer batch: %w", ErrNilArgument)
	case program == nil:
		return nil, fmt.Errorf("sapling: batch renderer program: %w", ErrNilArgument)
	case batch.disposed:
		return nil, fmt.Errorf("sapling: batch renderer batch: %w", ErrDisposed)
	case program.IsDisposed():
		return nil, fmt.Errorf("sapling: batch renderer program: %w", ErrDisposed)
	}

	r := &BatchRenderer{
		adapter: adapter,
		batch:   batch,
		program: program,
		scratch: make([]float32, 0, batch.capacity*verticesPerQuad*vertexFloats),
	}
	if err := r.init(); err != nil {
		r.Dispose()
		return nil, err
	}
	return r, nil
}

func (r *BatchRenderer) init() error {
	var err error
	if r.vao, err = gpu.NewVertexArray(r.adapter); err != nil {
		return err
	}
	if r.vertices, err = gpu.NewBuffer(r.adapter, gpu.ArrayBuffer, gpu.DynamicDraw); err != nil {
		return err
	}
	if r.indices, err = gpu.NewBuffer(r.adapter, gpu.ElementArrayBuffer, gpu.StaticDraw); err != nil {
		return err
	}

	// The element buffer binding and the attribute pointers are vertex array
	// state, so both are recorded with the vertex array bound.
	if err := r.vao.Bind(); err != nil {
		return err
	}
	if err := r.indices.SetIndices(quadIndices(r.batch.capacity)); err != nil {
		return err
	}
	if err := r.vertices.Bind(); err != nil {
		return err
	}
	return r.vao.SetUp(r.program, VertexDeclaration())
}

// quadIndices returns two triangles per quad following the top-left,
// top-right, bottom-right, bottom-left vertex order.
func quadIndices(quads int) []uint32 {
	out := make([]uint32, 0, quads*indicesPerQuad)
	for q := 0; q < quads; q++ {
		base := uint32(q * verticesPerQuad)
		out = append(out,
			base+TopLeft, base+TopRight, base+BottomRight,
			base+BottomRight, base+BottomLeft, base+TopLeft,
		)
	}
	return out
}

// Stats returns the renderer's counters.
func (r *BatchRenderer) Stats() RenderStats { return r.stats }

// IsDisposed reports whether Dispose has been called.
func (r *BatchRenderer) IsDisposed() bool { return r.disposed }

// Render uploads the batch's vertex stream if it changed since the last
// frame, then draws every member with one indexed draw call.
func (r *BatchRenderer) Render() error {
	if r.disposed {
		return fmt.Errorf("sapling: Render on batch renderer: %w", ErrDisposed)
	}
	if r.batch.disposed {
		return fmt.Errorf("sapling: Render: sprite batch: %w", ErrDisposed)
	}

	var stats debugStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	if r.batch.consumeDirty() || !r.primed {
		r.scratch = r.batch.AppendVertexData(r.scratch[:0])
		if err := r.vertices.SetFloats(r.scratch); err != nil {
			return err
		}
		r.primed = true
		r.stats.Uploads++
		stats.uploaded = true
	} else {
		r.stats.SkippedUploads++
	}

	if globalDebug {
		stats.uploadTime = time.Since(t0)
		t0 = time.Now()
	}

	n := r.batch.Len()
	if n > 0 {
		if err := r.vao.Bind(); err != nil {
			return err
		}
		if err := r.program.Use(); err != nil {
			return err
		}
		r.adapter.DrawElements(gpu.Triangles, int32(n*indicesPerQuad), 0)
		r.stats.DrawCalls++
	}

	if globalDebug {
		stats.drawTime = time.Since(t0)
		stats.sprites = n
		stats.floats = len(r.scratch)
		stats.log()
	}
	return nil
}

// Dispose releases the renderer's vertex array and buffers. Calling it again
// does nothing.
func (r *BatchRenderer) Dispose() {
	if r.disposed {
		return
	}
	if r.vao != nil {
		r.vao.Dispose()
	}
	if r.vertices != nil {
		r.vertices.Dispose()
	}
	if r.indices != nil {
		r.indices.Dispose()
	}
	r.disposed = true
}
