//go:build !js

// Package opengl implements gpu.Adapter on a native OpenGL 3.3 core context
// through go-gl. The caller owns the context: create it, make it current on
// the calling goroutine, then call Init before using the Adapter.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/phanxgames/sapling/gpu"
)

// Init loads the OpenGL function pointers for the current context.
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl: init: %w", err)
	}
	return nil
}

// Adapter forwards every call to the current OpenGL context.
type Adapter struct{}

var _ gpu.Adapter = Adapter{}

func (Adapter) GenVertexArray() uint32 {
	var h uint32
	gl.GenVertexArrays(1, &h)
	return h
}

func (Adapter) BindVertexArray(handle uint32) { gl.BindVertexArray(handle) }

func (Adapter) DeleteVertexArray(handle uint32) { gl.DeleteVertexArrays(1, &handle) }

func (Adapter) EnableVertexAttribArray(location uint32) { gl.EnableVertexAttribArray(location) }

func (Adapter) VertexAttribPointer(location uint32, count int32, typ gpu.AttribType, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(location, count, attribType(typ), normalized, stride, uintptr(offset))
}

func (Adapter) CreateShader(kind gpu.ShaderKind) uint32 {
	return gl.CreateShader(shaderType(kind))
}

func (Adapter) CompileShader(handle uint32, source string) error {
	csrc, free := gl.Strs(source + "\x00")
	gl.ShaderSource(handle, 1, csrc, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &n)
		return fmt.Errorf("opengl: compile shader %d: %s", handle, infoLog(n, func(buf *uint8) {
			gl.GetShaderInfoLog(handle, n, nil, buf)
		}))
	}
	return nil
}

func (Adapter) DeleteShader(handle uint32) { gl.DeleteShader(handle) }

func (Adapter) CreateProgram() uint32 { return gl.CreateProgram() }

func (Adapter) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (Adapter) LinkProgram(program uint32) error {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		return fmt.Errorf("opengl: link program %d: %s", program, infoLog(n, func(buf *uint8) {
			gl.GetProgramInfoLog(program, n, nil, buf)
		}))
	}
	return nil
}

func (Adapter) UseProgram(program uint32) { gl.UseProgram(program) }

func (Adapter) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (Adapter) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (Adapter) GenBuffer() uint32 {
	var h uint32
	gl.GenBuffers(1, &h)
	return h
}

func (Adapter) BindBuffer(target gpu.BufferTarget, handle uint32) {
	gl.BindBuffer(bufferTarget(target), handle)
}

func (Adapter) BufferFloats(target gpu.BufferTarget, data []float32, usage gpu.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(bufferTarget(target), len(data)*4, gl.Ptr(data), bufferUsage(usage))
}

func (Adapter) BufferIndices(target gpu.BufferTarget, data []uint32, usage gpu.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(bufferTarget(target), len(data)*4, gl.Ptr(data), bufferUsage(usage))
}

func (Adapter) DeleteBuffer(handle uint32) { gl.DeleteBuffers(1, &handle) }

func (Adapter) Clear(mask gpu.ClearMask) { gl.Clear(clearBits(mask)) }

func (Adapter) DrawElements(mode gpu.PrimitiveMode, count int32, offset int) {
	gl.DrawElementsWithOffset(primitiveMode(mode), count, gl.UNSIGNED_INT, uintptr(offset))
}

// SetClearColor sets the color used by Clear.
func (Adapter) SetClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

// SetViewport sets the framebuffer viewport in pixels.
func (Adapter) SetViewport(x, y, w, h int32) { gl.Viewport(x, y, w, h) }

func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "no info log"
	}
	log := strings.Repeat("\x00", int(n+1))
	read(gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

// --- enum translation ---

func shaderType(k gpu.ShaderKind) uint32 {
	if k == gpu.ShaderFragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func attribType(t gpu.AttribType) uint32 {
	switch t {
	case gpu.AttribUnsignedByte:
		return gl.UNSIGNED_BYTE
	case gpu.AttribUnsignedShort:
		return gl.UNSIGNED_SHORT
	case gpu.AttribInt:
		return gl.INT
	default:
		return gl.FLOAT
	}
}

func bufferTarget(t gpu.BufferTarget) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u gpu.BufferUsage) uint32 {
	switch u {
	case gpu.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case gpu.StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func clearBits(m gpu.ClearMask) uint32 {
	var bits uint32
	if m&gpu.ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if m&gpu.ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if m&gpu.ClearStencil != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	return bits
}

func primitiveMode(gpu.PrimitiveMode) uint32 {
	return gl.TRIANGLES
}
