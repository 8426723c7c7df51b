// Package gputest provides a recording [gpu.Adapter] for tests that need to
// verify which graphics calls were made, without a graphics context.
package gputest

import (
	"fmt"
	"strings"

	"github.com/phanxgames/sapling/gpu"
)

// Call is one recorded adapter invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Adapter records every call. Each Gen/Create method hands out handles from
// its own counter starting at 1.
type Adapter struct {
	Calls []Call

	// CompileErr and LinkErr, when set, are returned by CompileShader and
	// LinkProgram.
	CompileErr error
	LinkErr    error

	// Attribs maps attribute names to the locations AttribLocation reports.
	Attribs map[string]int32

	// Floats and Indices hold the last upload per buffer handle.
	Floats  map[uint32][]float32
	Indices map[uint32][]uint32

	vertexArrays uint32
	shaders      uint32
	programs     uint32
	buffers      uint32
	bound        map[gpu.BufferTarget]uint32
}

var _ gpu.Adapter = (*Adapter)(nil)

// New returns an empty recording adapter.
func New() *Adapter {
	return &Adapter{
		Attribs: make(map[string]int32),
		Floats:  make(map[uint32][]float32),
		Indices: make(map[uint32][]uint32),
		bound:   make(map[gpu.BufferTarget]uint32),
	}
}

func (a *Adapter) record(name string, args ...any) {
	a.Calls = append(a.Calls, Call{Name: name, Args: args})
}

// Count returns how many times the named method was called.
func (a *Adapter) Count(name string) int {
	n := 0
	for _, c := range a.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Named returns the recorded calls of the named method in order.
func (a *Adapter) Named(name string) []Call {
	var out []Call
	for _, c := range a.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the method names of all recorded calls in order.
func (a *Adapter) Names() []string {
	out := make([]string, len(a.Calls))
	for i, c := range a.Calls {
		out[i] = c.Name
	}
	return out
}

// Reset forgets recorded calls but keeps handle counters and uploads.
func (a *Adapter) Reset() {
	a.Calls = a.Calls[:0]
}

func (a *Adapter) GenVertexArray() uint32 {
	a.vertexArrays++
	a.record("GenVertexArray")
	return a.vertexArrays
}

func (a *Adapter) BindVertexArray(handle uint32) {
	a.record("BindVertexArray", handle)
}

func (a *Adapter) DeleteVertexArray(handle uint32) {
	a.record("DeleteVertexArray", handle)
}

func (a *Adapter) EnableVertexAttribArray(location uint32) {
	a.record("EnableVertexAttribArray", location)
}

func (a *Adapter) VertexAttribPointer(location uint32, count int32, typ gpu.AttribType, normalized bool, stride int32, offset int) {
	a.record("VertexAttribPointer", location, count, typ, normalized, stride, offset)
}

func (a *Adapter) CreateShader(kind gpu.ShaderKind) uint32 {
	a.shaders++
	a.record("CreateShader", kind)
	return a.shaders
}

func (a *Adapter) CompileShader(handle uint32, source string) error {
	a.record("CompileShader", handle, source)
	return a.CompileErr
}

func (a *Adapter) DeleteShader(handle uint32) {
	a.record("DeleteShader", handle)
}

func (a *Adapter) CreateProgram() uint32 {
	a.programs++
	a.record("CreateProgram")
	return a.programs
}

func (a *Adapter) AttachShader(program, shader uint32) {
	a.record("AttachShader", program, shader)
}

func (a *Adapter) LinkProgram(program uint32) error {
	a.record("LinkProgram", program)
	return a.LinkErr
}

func (a *Adapter) UseProgram(program uint32) {
	a.record("UseProgram", program)
}

func (a *Adapter) AttribLocation(program uint32, name string) int32 {
	a.record("AttribLocation", program, name)
	if loc, ok := a.Attribs[name]; ok {
		return loc
	}
	return -1
}

func (a *Adapter) DeleteProgram(program uint32) {
	a.record("DeleteProgram", program)
}

func (a *Adapter) GenBuffer() uint32 {
	a.buffers++
	a.record("GenBuffer")
	return a.buffers
}

func (a *Adapter) BindBuffer(target gpu.BufferTarget, handle uint32) {
	a.bound[target] = handle
	a.record("BindBuffer", target, handle)
}

func (a *Adapter) BufferFloats(target gpu.BufferTarget, data []float32, usage gpu.BufferUsage) {
	a.Floats[a.bound[target]] = append([]float32(nil), data...)
	a.record("BufferFloats", target, len(data), usage)
}

func (a *Adapter) BufferIndices(target gpu.BufferTarget, data []uint32, usage gpu.BufferUsage) {
	a.Indices[a.bound[target]] = append([]uint32(nil), data...)
	a.record("BufferIndices", target, len(data), usage)
}

func (a *Adapter) DeleteBuffer(handle uint32) {
	a.record("DeleteBuffer", handle)
}

func (a *Adapter) Clear(mask gpu.ClearMask) {
	a.record("Clear", mask)
}

func (a *Adapter) DrawElements(mode gpu.PrimitiveMode, count int32, offset int) {
	a.record("DrawElements", mode, count, offset)
}
