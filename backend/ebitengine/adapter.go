// Package ebitengine runs sapling on top of Ebitengine. The Adapter emulates
// the gpu.Adapter object model (vertex arrays, buffers, shaders, programs)
// with handle tables and turns each DrawElements into one DrawTriangles32
// call, and Host implements sapling.GameWindow with ebiten.RunGame.
package ebitengine

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sapling"
	"github.com/phanxgames/sapling/gpu"
)

type attribPointer struct {
	buffer     uint32
	count      int32
	typ        gpu.AttribType
	normalized bool
	stride     int32
	offset     int
}

type vertexArray struct {
	attribs  map[uint32]attribPointer
	enabled  map[uint32]bool
	elements uint32
}

type bufferData struct {
	floats  []float32
	indices []uint32
}

type shaderObject struct {
	kind     gpu.ShaderKind
	compiled *ebiten.Shader // fragment shaders only
}

type programObject struct {
	shaders  []uint32
	fragment *ebiten.Shader
	linked   bool
}

// Adapter implements gpu.Adapter by recording GL-style object state and
// drawing with Ebitengine. It is not safe for concurrent use.
//
// Vertex shaders are accepted and ignored: Kage has a fixed vertex stage.
// Fragment shaders are Kage sources compiled with ebiten.NewShader. A program
// without a fragment shader draws with the bound texture and vertex colors.
type Adapter struct {
	// ClearColor is the color Clear fills the target with. Nil clears to
	// transparent.
	ClearColor color.Color

	target     *ebiten.Image
	texture    *ebiten.Image
	projection mgl32.Mat3

	next         uint32
	vertexArrays map[uint32]*vertexArray
	buffers      map[uint32]*bufferData
	shaders      map[uint32]*shaderObject
	programs     map[uint32]*programObject

	boundVAO     uint32
	boundBuffers map[gpu.BufferTarget]uint32
	current      uint32

	verts []ebiten.Vertex
	inds  []uint32
	draws int

	deallocate func(*ebiten.Shader)
}

var _ gpu.Adapter = (*Adapter)(nil)

// NewAdapter returns an adapter with an identity projection.
func NewAdapter() *Adapter {
	return &Adapter{
		projection:   mgl32.Ident3(),
		vertexArrays: make(map[uint32]*vertexArray),
		buffers:      make(map[uint32]*bufferData),
		shaders:      make(map[uint32]*shaderObject),
		programs:     make(map[uint32]*programObject),
		boundBuffers: make(map[gpu.BufferTarget]uint32),
		deallocate:   (*ebiten.Shader).Deallocate,
	}
}

// SetTarget sets the image draw and clear calls render into.
func (a *Adapter) SetTarget(img *ebiten.Image) { a.target = img }

// SetTexture sets the texture sampled by draw calls.
func (a *Adapter) SetTexture(t *Texture) {
	if t == nil {
		a.texture = nil
		return
	}
	a.texture = t.img
}

// SetProjection sets the matrix that maps vertex positions to target pixels.
func (a *Adapter) SetProjection(m mgl32.Mat3) { a.projection = m }

// Draws returns the number of triangle batches submitted to Ebitengine.
func (a *Adapter) Draws() int { return a.draws }

// Projection returns a matrix mapping y-up world units to y-down target
// pixels: world (x, y) lands at (x*scaleX, viewHeight - y*scaleY).
func Projection(viewHeight int, scaleX, scaleY float32) mgl32.Mat3 {
	return mgl32.Mat3{
		scaleX, 0, 0,
		0, -scaleY, 0,
		0, float32(viewHeight), 1,
	}
}

func (a *Adapter) handle() uint32 {
	a.next++
	return a.next
}

// --- vertex arrays ---

func (a *Adapter) GenVertexArray() uint32 {
	h := a.handle()
	a.vertexArrays[h] = &vertexArray{
		attribs: make(map[uint32]attribPointer),
		enabled: make(map[uint32]bool),
	}
	return h
}

func (a *Adapter) BindVertexArray(handle uint32) { a.boundVAO = handle }

func (a *Adapter) DeleteVertexArray(handle uint32) {
	delete(a.vertexArrays, handle)
	if a.boundVAO == handle {
		a.boundVAO = 0
	}
}

func (a *Adapter) EnableVertexAttribArray(location uint32) {
	if vao := a.vertexArrays[a.boundVAO]; vao != nil {
		vao.enabled[location] = true
	}
}

func (a *Adapter) VertexAttribPointer(location uint32, count int32, typ gpu.AttribType, normalized bool, stride int32, offset int) {
	vao := a.vertexArrays[a.boundVAO]
	if vao == nil {
		sapling.Logger().Warn("ebitengine: attribute pointer without a bound vertex array", "location", location)
		return
	}
	vao.attribs[location] = attribPointer{
		buffer:     a.boundBuffers[gpu.ArrayBuffer],
		count:      count,
		typ:        typ,
		normalized: normalized,
		stride:     stride,
		offset:     offset,
	}
}

// --- shaders and programs ---

func (a *Adapter) CreateShader(kind gpu.ShaderKind) uint32 {
	h := a.handle()
	a.shaders[h] = &shaderObject{kind: kind}
	return h
}

func (a *Adapter) CompileShader(handle uint32, source string) error {
	sh := a.shaders[handle]
	if sh == nil {
		return fmt.Errorf("ebitengine: compile: unknown shader %d", handle)
	}
	if sh.kind != gpu.ShaderFragment {
		return nil
	}
	s, err := ebiten.NewShader([]byte(source))
	if err != nil {
		return fmt.Errorf("ebitengine: compile shader %d: %w", handle, err)
	}
	sh.compiled = s
	return nil
}

// DeleteShader frees the shader object. As in GL, a compiled Kage shader
// that a linked program still draws with lives until that program is deleted.
func (a *Adapter) DeleteShader(handle uint32) {
	sh := a.shaders[handle]
	delete(a.shaders, handle)
	if sh != nil {
		a.releaseKage(sh.compiled)
	}
}

func (a *Adapter) CreateProgram() uint32 {
	h := a.handle()
	a.programs[h] = &programObject{}
	return h
}

func (a *Adapter) AttachShader(program, shader uint32) {
	if p := a.programs[program]; p != nil {
		p.shaders = append(p.shaders, shader)
	}
}

func (a *Adapter) LinkProgram(program uint32) error {
	p := a.programs[program]
	if p == nil {
		return fmt.Errorf("ebitengine: link: unknown program %d", program)
	}
	p.fragment = nil
	for _, h := range p.shaders {
		sh := a.shaders[h]
		if sh == nil {
			return fmt.Errorf("ebitengine: link program %d: shader %d was deleted", program, h)
		}
		if sh.kind != gpu.ShaderFragment {
			continue
		}
		if p.fragment != nil {
			return fmt.Errorf("ebitengine: link program %d: more than one fragment shader", program)
		}
		p.fragment = sh.compiled
	}
	p.linked = true
	return nil
}

func (a *Adapter) UseProgram(program uint32) { a.current = program }

// AttribLocation reports the fixed locations of sapling.VertexDeclaration.
func (a *Adapter) AttribLocation(_ uint32, name string) int32 {
	switch name {
	case "position":
		return int32(sapling.AttribPosition)
	case "color":
		return int32(sapling.AttribColor)
	case "texCoord":
		return int32(sapling.AttribTexCoord)
	default:
		return -1
	}
}

func (a *Adapter) DeleteProgram(program uint32) {
	p := a.programs[program]
	delete(a.programs, program)
	if a.current == program {
		a.current = 0
	}
	if p != nil {
		a.releaseKage(p.fragment)
	}
}

// releaseKage deallocates k once no shader object or program refers to it.
func (a *Adapter) releaseKage(k *ebiten.Shader) {
	if k == nil {
		return
	}
	for _, sh := range a.shaders {
		if sh.compiled == k {
			return
		}
	}
	for _, p := range a.programs {
		if p.fragment == k {
			return
		}
	}
	a.deallocate(k)
}

// --- buffers ---

func (a *Adapter) GenBuffer() uint32 {
	h := a.handle()
	a.buffers[h] = &bufferData{}
	return h
}

func (a *Adapter) BindBuffer(target gpu.BufferTarget, handle uint32) {
	a.boundBuffers[target] = handle
	// The element buffer binding is vertex array state.
	if target == gpu.ElementArrayBuffer {
		if vao := a.vertexArrays[a.boundVAO]; vao != nil {
			vao.elements = handle
		}
	}
}

func (a *Adapter) BufferFloats(target gpu.BufferTarget, data []float32, _ gpu.BufferUsage) {
	if b := a.buffers[a.boundBuffers[target]]; b != nil {
		b.floats = append(b.floats[:0], data...)
	}
}

func (a *Adapter) BufferIndices(target gpu.BufferTarget, data []uint32, _ gpu.BufferUsage) {
	if b := a.buffers[a.boundBuffers[target]]; b != nil {
		b.indices = append(b.indices[:0], data...)
	}
}

func (a *Adapter) DeleteBuffer(handle uint32) {
	delete(a.buffers, handle)
	for t, h := range a.boundBuffers {
		if h == handle {
			a.boundBuffers[t] = 0
		}
	}
}

// --- drawing ---

// Clear fills the target with ClearColor. Depth and stencil have no
// Ebitengine equivalent and are ignored.
func (a *Adapter) Clear(mask gpu.ClearMask) {
	if a.target == nil || mask&gpu.ClearColor == 0 {
		return
	}
	if a.ClearColor == nil {
		a.target.Clear()
		return
	}
	a.target.Fill(a.ClearColor)
}

// DrawElements assembles count indices starting at byte offset from the
// bound vertex array's element buffer and draws them as triangles.
func (a *Adapter) DrawElements(_ gpu.PrimitiveMode, count int32, offset int) {
	if a.target == nil {
		sapling.Logger().Debug("ebitengine: draw skipped, no target")
		return
	}
	if err := a.assemble(count, offset); err != nil {
		sapling.Logger().Warn("ebitengine: draw skipped", "err", err)
		return
	}
	if len(a.inds) == 0 {
		return
	}

	var fragment *ebiten.Shader
	if p := a.programs[a.current]; p != nil {
		fragment = p.fragment
	}
	if fragment != nil {
		op := &ebiten.DrawTrianglesShaderOptions{}
		op.Images[0] = a.texture
		a.target.DrawTrianglesShader32(a.verts, a.inds, fragment, op)
	} else {
		a.target.DrawTriangles32(a.verts, a.inds, a.texture, &ebiten.DrawTrianglesOptions{})
	}
	a.draws++
}

// assemble fills a.verts and a.inds from the bound vertex array.
func (a *Adapter) assemble(count int32, offset int) error {
	a.verts = a.verts[:0]
	a.inds = a.inds[:0]

	vao := a.vertexArrays[a.boundVAO]
	if vao == nil {
		return errors.New("no vertex array bound")
	}
	elems := a.buffers[vao.elements]
	if elems == nil {
		return fmt.Errorf("vertex array %d has no element buffer", a.boundVAO)
	}
	first := offset / 4
	if first < 0 || first+int(count) > len(elems.indices) {
		return fmt.Errorf("indices [%d, %d) outside element buffer of %d", first, first+int(count), len(elems.indices))
	}

	pos, err := a.attrib(vao, sapling.AttribPosition, 2)
	if err != nil {
		return err
	}
	n := pos.vertices()

	var texW, texH float32
	if a.texture != nil {
		b := a.texture.Bounds()
		texW, texH = float32(b.Dx()), float32(b.Dy())
	}

	// Color and texture coordinates are optional.
	col, colErr := a.attrib(vao, sapling.AttribColor, 4)
	tex, texErr := a.attrib(vao, sapling.AttribTexCoord, 2)

	for i := 0; i < n; i++ {
		p := pos.at(i)
		dst := a.projection.Mul3x1(mgl32.Vec3{p[0], p[1], 1})
		v := ebiten.Vertex{DstX: dst[0], DstY: dst[1], ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}

		if colErr == nil && col.has(i) {
			cv := col.at(i)
			v.ColorR, v.ColorG, v.ColorB, v.ColorA = cv[0], cv[1], cv[2], cv[3]
		}
		if texErr == nil && tex.has(i) {
			tv := tex.at(i)
			// Bottom-left texture origin to Ebitengine's top-left source origin.
			v.SrcX = tv[0] * texW
			v.SrcY = (1 - tv[1]) * texH
		}
		a.verts = append(a.verts, v)
	}

	for _, idx := range elems.indices[first : first+int(count)] {
		if int(idx) >= n {
			return fmt.Errorf("index %d outside %d vertices", idx, n)
		}
		a.inds = append(a.inds, idx)
	}
	return nil
}

// attribReader reads one float attribute out of an interleaved buffer.
type attribReader struct {
	data   []float32
	count  int
	stride int // in floats
	offset int // in floats
}

func (a *Adapter) attrib(vao *vertexArray, location uint32, minCount int32) (attribReader, error) {
	ptr, ok := vao.attribs[location]
	if !ok || !vao.enabled[location] {
		return attribReader{}, fmt.Errorf("attribute %d not enabled", location)
	}
	if ptr.typ != gpu.AttribFloat {
		return attribReader{}, fmt.Errorf("attribute %d: only float attributes are supported", location)
	}
	if ptr.count < minCount {
		return attribReader{}, fmt.Errorf("attribute %d has %d components, want %d", location, ptr.count, minCount)
	}
	buf := a.buffers[ptr.buffer]
	if buf == nil {
		return attribReader{}, fmt.Errorf("attribute %d reads deleted buffer %d", location, ptr.buffer)
	}
	stride := int(ptr.stride) / 4
	if stride == 0 {
		stride = int(ptr.count)
	}
	return attribReader{data: buf.floats, count: int(ptr.count), stride: stride, offset: ptr.offset / 4}, nil
}

func (r attribReader) vertices() int {
	if r.stride == 0 || len(r.data) < r.offset+r.count {
		return 0
	}
	return (len(r.data)-r.offset-r.count)/r.stride + 1
}

func (r attribReader) has(i int) bool {
	return i*r.stride+r.offset+r.count <= len(r.data)
}

func (r attribReader) at(i int) []float32 {
	start := i*r.stride + r.offset
	return r.data[start : start+r.count]
}
