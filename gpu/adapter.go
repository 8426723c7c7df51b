package gpu

// ShaderKind selects the pipeline stage a shader is compiled for.
type ShaderKind uint8

const (
	ShaderVertex   ShaderKind = iota // vertex stage
	ShaderFragment                   // fragment (pixel) stage
)

func (k ShaderKind) String() string {
	switch k {
	case ShaderVertex:
		return "vertex"
	case ShaderFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// AttribType is the component type of a vertex attribute.
type AttribType uint8

const (
	AttribFloat         AttribType = iota // 32-bit float
	AttribUnsignedByte                    // 8-bit unsigned integer
	AttribUnsignedShort                   // 16-bit unsigned integer
	AttribInt                             // 32-bit signed integer
)

// Size returns the size of one component in bytes.
func (t AttribType) Size() int32 {
	switch t {
	case AttribUnsignedByte:
		return 1
	case AttribUnsignedShort:
		return 2
	default:
		return 4
	}
}

// BufferTarget is the binding point of a buffer object.
type BufferTarget uint8

const (
	ArrayBuffer        BufferTarget = iota // per-vertex attribute data
	ElementArrayBuffer                     // index data
)

// BufferUsage hints how often a buffer's contents change.
type BufferUsage uint8

const (
	StaticDraw  BufferUsage = iota // uploaded once
	DynamicDraw                    // re-uploaded occasionally
	StreamDraw                     // re-uploaded every frame
)

// ClearMask selects which framebuffer planes Clear resets.
// Values can be combined with bitwise OR.
type ClearMask uint8

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil
)

// PrimitiveMode is the primitive assembly mode of a draw call.
type PrimitiveMode uint8

const (
	Triangles PrimitiveMode = iota
)

// VertexArrayAdapter creates and configures vertex array objects.
type VertexArrayAdapter interface {
	GenVertexArray() uint32
	BindVertexArray(handle uint32)
	DeleteVertexArray(handle uint32)
	EnableVertexAttribArray(location uint32)
	// VertexAttribPointer describes the attribute at location using the
	// buffer currently bound to ArrayBuffer. offset is in bytes.
	VertexAttribPointer(location uint32, count int32, typ AttribType, normalized bool, stride int32, offset int)
}

// ShaderAdapter creates and compiles shader objects.
type ShaderAdapter interface {
	CreateShader(kind ShaderKind) uint32
	CompileShader(handle uint32, source string) error
	DeleteShader(handle uint32)
}

// ProgramAdapter links shaders into programs.
type ProgramAdapter interface {
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) error
	UseProgram(program uint32)
	// AttribLocation returns -1 when the program has no attribute called name.
	AttribLocation(program uint32, name string) int32
	DeleteProgram(program uint32)
}

// BufferAdapter creates buffer objects and uploads their contents.
type BufferAdapter interface {
	GenBuffer() uint32
	BindBuffer(target BufferTarget, handle uint32)
	BufferFloats(target BufferTarget, data []float32, usage BufferUsage)
	BufferIndices(target BufferTarget, data []uint32, usage BufferUsage)
	DeleteBuffer(handle uint32)
}

// DrawAdapter issues framebuffer clears and draw calls.
type DrawAdapter interface {
	Clear(mask ClearMask)
	// DrawElements draws count indices from the bound ElementArrayBuffer,
	// starting offset bytes into it.
	DrawElements(mode PrimitiveMode, count int32, offset int)
}

// Adapter is the full graphics adapter a renderer needs.
type Adapter interface {
	VertexArrayAdapter
	ShaderAdapter
	ProgramAdapter
	BufferAdapter
	DrawAdapter
}
