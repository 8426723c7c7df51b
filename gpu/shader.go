package gpu

import (
	"fmt"
	"strings"
)

// Shader owns a single shader stage object.
type Shader struct {
	resource
	adapter  ShaderAdapter
	kind     ShaderKind
	compiled bool
}

// NewShader creates a shader object of the given kind.
func NewShader(adapter ShaderAdapter, kind ShaderKind) (*Shader, error) {
	if adapter == nil {
		return nil, fmt.Errorf("gpu: shader adapter: %w", ErrNilArgument)
	}
	return &Shader{
		resource: resource{kind: kind.String() + " shader", handle: adapter.CreateShader(kind)},
		adapter:  adapter,
		kind:     kind,
	}, nil
}

// Kind returns the pipeline stage of the shader.
func (s *Shader) Kind() ShaderKind {
	return s.kind
}

// Compiled reports whether the last Compile call succeeded.
func (s *Shader) Compiled() bool {
	return s.compiled
}

// Compile replaces the shader source and compiles it.
func (s *Shader) Compile(source string) error {
	if err := s.checkDisposed("Compile"); err != nil {
		return err
	}
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("gpu: compile %s: empty source: %w", s.kind, ErrInvalidArgument)
	}
	s.compiled = false
	if err := s.adapter.CompileShader(s.handle, source); err != nil {
		return fmt.Errorf("gpu: compile %s shader %d: %w", s.kind, s.handle, err)
	}
	s.compiled = true
	return nil
}

// Dispose deletes the shader object. Calling it again does nothing.
func (s *Shader) Dispose() {
	s.release(s.adapter.DeleteShader)
}
