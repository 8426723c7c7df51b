package sapling

import (
	"fmt"

	"github.com/phanxgames/sapling/gpu"
)

// GameWindow is the platform window and event loop a Window drives. Run blocks
// until the loop exits, calling back into the FrameHandler.
type GameWindow interface {
	Run(h FrameHandler) error
	SwapBuffers()
	Close() error

	Width() int
	Height() int
	Title() string
}

// FrameHandler receives the event loop's callbacks.
type FrameHandler interface {
	OnLoad()
	OnUnload()
	OnUpdateFrame(dt float64)
	OnRenderFrame(dt float64)
}

// Handlers are the optional per-stage callbacks of a Window. Nil slots are
// skipped.
type Handlers struct {
	Load   func()
	Update func(dt float64)
	Render func(dt float64)
	Unload func()
}

// Window adapts Handlers to a GameWindow and owns the frame contract: every
// render frame clears color and depth, runs Handlers.Render, then swaps.
type Window struct {
	gw       GameWindow
	clearer  gpu.DrawAdapter
	handlers Handlers
	disposed bool
}

var _ FrameHandler = (*Window)(nil)

// NewWindow creates a Window driving gw. clearer is used for the per-frame
// clear.
func NewWindow(gw GameWindow, clearer gpu.DrawAdapter, h Handlers) (*Window, error) {
	if gw == nil {
		return nil, fmt.Errorf("sapling: window game window: %w", ErrNilArgument)
	}
	if clearer == nil {
		return nil, fmt.Errorf("sapling: window clearer: %w", ErrNilArgument)
	}
	return &Window{gw: gw, clearer: clearer, handlers: h}, nil
}

// Run hands control to the game window until its loop exits.
func (w *Window) Run() error {
	if w.disposed {
		return fmt.Errorf("sapling: Run on window: %w", ErrDisposed)
	}
	return w.gw.Run(w)
}

// Width returns the game window's width in pixels.
func (w *Window) Width() int { return w.gw.Width() }

// Height returns the game window's height in pixels.
func (w *Window) Height() int { return w.gw.Height() }

// Title returns the game window's title.
func (w *Window) Title() string { return w.gw.Title() }

// OnLoad implements FrameHandler.
func (w *Window) OnLoad() {
	if w.handlers.Load != nil {
		w.handlers.Load()
	}
}

// OnUnload implements FrameHandler.
func (w *Window) OnUnload() {
	if w.handlers.Unload != nil {
		w.handlers.Unload()
	}
}

// OnUpdateFrame implements FrameHandler.
func (w *Window) OnUpdateFrame(dt float64) {
	if w.disposed {
		return
	}
	if w.handlers.Update != nil {
		w.handlers.Update(dt)
	}
}

// OnRenderFrame implements FrameHandler.
func (w *Window) OnRenderFrame(dt float64) {
	if w.disposed {
		return
	}
	w.clearer.Clear(gpu.ClearColor | gpu.ClearDepth)
	if w.handlers.Render != nil {
		w.handlers.Render(dt)
	}
	w.gw.SwapBuffers()
}

// IsDisposed reports whether Dispose has been called.
func (w *Window) IsDisposed() bool { return w.disposed }

// Dispose closes the game window. Calling it again does nothing.
func (w *Window) Dispose() {
	if w.disposed {
		return
	}
	if err := w.gw.Close(); err != nil {
		Logger().Warn("sapling: closing game window", "err", err)
	}
	w.disposed = true
}
