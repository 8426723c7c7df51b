package gpu

import "fmt"

// ShaderProgram owns a linked program object.
type ShaderProgram struct {
	resource
	adapter ProgramAdapter
}

// NewShaderProgram creates a program, attaches the given compiled shaders and
// links it. The shaders remain owned by the caller and may be disposed once
// the program is linked.
func NewShaderProgram(adapter ProgramAdapter, shaders ...*Shader) (*ShaderProgram, error) {
	if adapter == nil {
		return nil, fmt.Errorf("gpu: program adapter: %w", ErrNilArgument)
	}
	if len(shaders) == 0 {
		return nil, fmt.Errorf("gpu: program needs at least one shader: %w", ErrInvalidArgument)
	}
	for i, s := range shaders {
		switch {
		case s == nil:
			return nil, fmt.Errorf("gpu: program shader %d: %w", i, ErrNilArgument)
		case s.disposed:
			return nil, fmt.Errorf("gpu: program shader %d: %w", i, ErrDisposed)
		case !s.compiled:
			return nil, fmt.Errorf("gpu: program shader %d is not compiled: %w", i, ErrInvalidArgument)
		}
	}

	handle := adapter.CreateProgram()
	for _, s := range shaders {
		adapter.AttachShader(handle, s.handle)
	}
	if err := adapter.LinkProgram(handle); err != nil {
		adapter.DeleteProgram(handle)
		return nil, fmt.Errorf("gpu: link program %d: %w", handle, err)
	}
	return &ShaderProgram{
		resource: resource{kind: "program", handle: handle},
		adapter:  adapter,
	}, nil
}

// Use installs the program for subsequent draw calls.
func (p *ShaderProgram) Use() error {
	if err := p.checkDisposed("Use"); err != nil {
		return err
	}
	p.adapter.UseProgram(p.handle)
	return nil
}

// AttribLocation looks up a vertex attribute by name. It returns -1 and no
// error when the program has no such attribute.
func (p *ShaderProgram) AttribLocation(name string) (int32, error) {
	if err := p.checkDisposed("AttribLocation"); err != nil {
		return -1, err
	}
	return p.adapter.AttribLocation(p.handle, name), nil
}

// Dispose deletes the program. Calling it again does nothing.
func (p *ShaderProgram) Dispose() {
	p.release(p.adapter.DeleteProgram)
}
