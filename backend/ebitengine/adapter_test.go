package ebitengine

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sapling"
	"github.com/phanxgames/sapling/gpu"
)

const atlasJSON = `{
  "frames": {"hero": {"frame": {"x": 2, "y": 28, "w": 15, "h": 20}}},
  "meta": {"size": {"w": 200, "h": 50}}
}`

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

// spriteRenderer builds a batch of one sprite at (10, 10) rendered through a.
func spriteRenderer(t *testing.T, a *Adapter) (*sapling.BatchRenderer, *sapling.SpriteBatch) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atlas.json")
	if err := os.WriteFile(path, []byte(atlasJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	img := ebiten.NewImage(200, 50)
	t.Cleanup(img.Deallocate)
	tex, err := NewTexture(img)
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := sapling.NewSpriteSheet(tex, path)
	if err != nil {
		t.Fatal(err)
	}
	batch, err := sapling.NewSpriteBatch(sheet)
	if err != nil {
		t.Fatal(err)
	}
	s, err := sapling.NewSprite(sheet.Region("hero"), 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := batch.Add(s); err != nil {
		t.Fatal(err)
	}

	vs, _ := gpu.NewShader(a, gpu.ShaderVertex)
	if err := vs.Compile("ignored"); err != nil {
		t.Fatalf("vertex shader compile: %v", err)
	}
	prog, err := gpu.NewShaderProgram(a, vs)
	if err != nil {
		t.Fatalf("NewShaderProgram: %v", err)
	}
	r, err := sapling.NewBatchRenderer(a, batch, prog)
	if err != nil {
		t.Fatalf("NewBatchRenderer: %v", err)
	}
	return r, batch
}

func TestAdapter_HandlesAreUnique(t *testing.T) {
	a := NewAdapter()
	seen := map[uint32]bool{}
	for _, h := range []uint32{
		a.GenVertexArray(), a.GenBuffer(), a.CreateShader(gpu.ShaderVertex), a.CreateProgram(), a.GenBuffer(),
	} {
		if h == 0 || seen[h] {
			t.Errorf("handle %d reused or zero", h)
		}
		seen[h] = true
	}
}

func TestAdapter_ElementBindingIsVertexArrayState(t *testing.T) {
	a := NewAdapter()
	vao := a.GenVertexArray()
	buf := a.GenBuffer()

	a.BindVertexArray(vao)
	a.BindBuffer(gpu.ElementArrayBuffer, buf)
	a.BindVertexArray(0)
	a.BindBuffer(gpu.ElementArrayBuffer, 0)

	if got := a.vertexArrays[vao].elements; got != buf {
		t.Errorf("vao element buffer = %d, want %d", got, buf)
	}
}

func TestAdapter_BufferUploads(t *testing.T) {
	a := NewAdapter()
	h := a.GenBuffer()
	a.BindBuffer(gpu.ArrayBuffer, h)
	src := []float32{1, 2, 3}
	a.BufferFloats(gpu.ArrayBuffer, src, gpu.DynamicDraw)
	src[0] = 9
	if got := a.buffers[h].floats; len(got) != 3 || got[0] != 1 {
		t.Errorf("floats = %v, want a private copy of [1 2 3]", got)
	}

	a.DeleteBuffer(h)
	if a.boundBuffers[gpu.ArrayBuffer] != 0 {
		t.Error("deleted buffer still bound")
	}
	// Uploading with nothing bound is ignored.
	a.BufferFloats(gpu.ArrayBuffer, src, gpu.DynamicDraw)
}

func TestAdapter_VertexShaderIsIgnored(t *testing.T) {
	a := NewAdapter()
	h := a.CreateShader(gpu.ShaderVertex)
	if err := a.CompileShader(h, "not kage at all"); err != nil {
		t.Errorf("CompileShader(vertex) = %v, want nil", err)
	}
	if err := a.CompileShader(999, ""); err == nil {
		t.Error("compiling an unknown shader should fail")
	}
}

func TestAdapter_LinkProgram(t *testing.T) {
	a := NewAdapter()
	if err := a.LinkProgram(42); err == nil {
		t.Error("linking an unknown program should fail")
	}

	p := a.CreateProgram()
	vs := a.CreateShader(gpu.ShaderVertex)
	a.AttachShader(p, vs)
	if err := a.LinkProgram(p); err != nil {
		t.Fatalf("LinkProgram: %v", err)
	}
	if !a.programs[p].linked || a.programs[p].fragment != nil {
		t.Errorf("program = %+v", *a.programs[p])
	}

	a.DeleteShader(vs)
	if err := a.LinkProgram(p); err == nil {
		t.Error("relinking with a deleted shader should fail")
	}
}

func TestAdapter_FragmentShaderOutlivesDelete(t *testing.T) {
	a := NewAdapter()
	var freed []*ebiten.Shader
	a.deallocate = func(k *ebiten.Shader) { freed = append(freed, k) }

	// A compiled Kage shader, without needing a graphics device.
	kage := new(ebiten.Shader)
	fs := a.CreateShader(gpu.ShaderFragment)
	a.shaders[fs].compiled = kage

	p := a.CreateProgram()
	a.AttachShader(p, fs)
	if err := a.LinkProgram(p); err != nil {
		t.Fatalf("LinkProgram: %v", err)
	}

	a.DeleteShader(fs)
	if len(freed) != 0 {
		t.Fatal("shader deallocated while a linked program uses it")
	}
	if a.programs[p].fragment != kage {
		t.Error("program lost its fragment shader")
	}

	a.DeleteProgram(p)
	if len(freed) != 1 || freed[0] != kage {
		t.Errorf("freed = %v after DeleteProgram, want the fragment shader once", freed)
	}

	unused := a.CreateShader(gpu.ShaderFragment)
	other := new(ebiten.Shader)
	a.shaders[unused].compiled = other
	a.DeleteShader(unused)
	if len(freed) != 2 || freed[1] != other {
		t.Errorf("unlinked shader not deallocated on delete: %v", freed)
	}
}

func TestAdapter_AttribLocation(t *testing.T) {
	a := NewAdapter()
	decl := sapling.VertexDeclaration()
	for _, e := range decl.Elements {
		if got := a.AttribLocation(0, e.Name); got != int32(e.Location) {
			t.Errorf("AttribLocation(%q) = %d, want %d", e.Name, got, e.Location)
		}
	}
	if got := a.AttribLocation(0, "normal"); got != -1 {
		t.Errorf("AttribLocation(normal) = %d, want -1", got)
	}
}

func TestAdapter_AssembleSprite(t *testing.T) {
	a := NewAdapter()
	r, batch := spriteRenderer(t, a)

	// No target: the upload happens but the draw is skipped.
	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if a.Draws() != 0 {
		t.Errorf("Draws = %d without a target, want 0", a.Draws())
	}

	a.SetTexture(batch.SpriteSheet().Texture().(*Texture))
	if err := a.assemble(6, 0); err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(a.verts) != 4 {
		t.Fatalf("vertices = %d, want 4", len(a.verts))
	}
	wantInds := []uint32{0, 1, 2, 2, 3, 0}
	for i, idx := range a.inds {
		if idx != wantInds[i] {
			t.Errorf("index %d = %d, want %d", i, idx, wantInds[i])
		}
	}

	sh := float32(1) / 50
	tl := a.verts[sapling.TopLeft]
	if !approx(tl.DstX, 10) || !approx(tl.DstY, 10+sh) {
		t.Errorf("TL dst = (%v, %v), want (10, %v)", tl.DstX, tl.DstY, 10+sh)
	}
	// Region top edge is atlas y = 22 measured from the bottom, which is
	// source y = 28 from the top of the 50px texture.
	if !approx(tl.SrcX, 2) || !approx(tl.SrcY, 28) {
		t.Errorf("TL src = (%v, %v), want (2, 28)", tl.SrcX, tl.SrcY)
	}
	br := a.verts[sapling.BottomRight]
	if !approx(br.SrcX, 17) || !approx(br.SrcY, 48) {
		t.Errorf("BR src = (%v, %v), want (17, 48)", br.SrcX, br.SrcY)
	}
	if tl.ColorR != 1 || tl.ColorA != 1 {
		t.Errorf("TL color = (%v, %v, %v, %v), want white", tl.ColorR, tl.ColorG, tl.ColorB, tl.ColorA)
	}
}

func TestAdapter_AssembleErrors(t *testing.T) {
	a := NewAdapter()
	if err := a.assemble(6, 0); err == nil {
		t.Error("assemble without a vertex array should fail")
	}

	spriteRenderer(t, a)
	// The renderer leaves its vertex array bound after setup.
	if err := a.assemble(6*101, 0); err == nil {
		t.Error("assemble past the element buffer should fail")
	}
}

func TestProjection(t *testing.T) {
	m := Projection(480, 2, 3)
	got := m.Mul3x1(mgl32.Vec3{10, 20, 1})
	if got[0] != 20 || got[1] != 420 {
		t.Errorf("projected = (%v, %v), want (20, 420)", got[0], got[1])
	}
}

func TestTexture(t *testing.T) {
	if _, err := NewTexture(nil); !errors.Is(err, sapling.ErrNilArgument) {
		t.Errorf("NewTexture(nil) err = %v, want ErrNilArgument", err)
	}

	tex, err := NewTexture(ebiten.NewImage(8, 4))
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width() != 8 || tex.Height() != 4 {
		t.Errorf("size = %dx%d, want 8x4", tex.Width(), tex.Height())
	}
	tex.Dispose()
	tex.Dispose()
	if !tex.IsDisposed() {
		t.Error("IsDisposed = false after Dispose")
	}
}

func TestNewHost(t *testing.T) {
	if _, err := NewHost(DefaultRunConfig(), nil); !errors.Is(err, sapling.ErrNilArgument) {
		t.Errorf("nil adapter err = %v, want ErrNilArgument", err)
	}
	bad := DefaultRunConfig()
	bad.Width = 0
	if _, err := NewHost(bad, NewAdapter()); !errors.Is(err, sapling.ErrInvalidArgument) {
		t.Errorf("bad config err = %v, want ErrInvalidArgument", err)
	}

	h, err := NewHost(DefaultRunConfig(), NewAdapter())
	if err != nil {
		t.Fatal(err)
	}
	if w, hh := h.Layout(1, 1); w != 640 || hh != 480 {
		t.Errorf("Layout = %dx%d, want 640x480", w, hh)
	}
	if h.Width() != 640 || h.Height() != 480 || h.Title() != "sapling" {
		t.Errorf("host = %dx%d %q, want 640x480 \"sapling\"", h.Width(), h.Height(), h.Title())
	}
	if err := h.Run(nil); !errors.Is(err, sapling.ErrNilArgument) {
		t.Errorf("Run(nil) err = %v, want ErrNilArgument", err)
	}
	_ = h.Close()
	if err := h.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Close = %v, want ebiten.Termination", err)
	}
}

func TestOverlay_Text(t *testing.T) {
	var o overlay
	if got := o.text(); !strings.HasPrefix(got, "FPS: ") || strings.Count(got, "\n") != 1 {
		t.Errorf("text = %q", got)
	}
	o.status = func() string { return "sprites: 3" }
	if got := o.text(); !strings.HasSuffix(got, "\nsprites: 3") {
		t.Errorf("text with status = %q", got)
	}
	o.status = func() string { return "" }
	if got := o.text(); strings.Count(got, "\n") != 1 {
		t.Errorf("empty status added a line: %q", got)
	}
}
