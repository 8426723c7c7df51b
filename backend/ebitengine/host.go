package ebitengine

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sapling"
)

// Host implements sapling.GameWindow with an Ebitengine game loop. Update
// ticks become OnUpdateFrame calls and each Draw becomes one OnRenderFrame,
// with the Adapter's target set to the screen.
type Host struct {
	cfg     RunConfig
	adapter *Adapter

	handler  sapling.FrameHandler
	screen   *ebiten.Image
	lastDraw time.Time
	frames   int
	closed   bool
	overlay  overlay

	screenshotQueue []string
}

var (
	_ sapling.GameWindow = (*Host)(nil)
	_ ebiten.Game        = (*Host)(nil)
)

// NewHost creates a host that renders through adapter.
func NewHost(cfg RunConfig, adapter *Adapter) (*Host, error) {
	if adapter == nil {
		return nil, fmt.Errorf("ebitengine: host adapter: %w", sapling.ErrNilArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Host{cfg: cfg, adapter: adapter}, nil
}

// Config returns the host's run configuration.
func (h *Host) Config() RunConfig { return h.cfg }

// Width returns the logical screen width.
func (h *Host) Width() int { return h.cfg.Width }

// Height returns the logical screen height.
func (h *Host) Height() int { return h.cfg.Height }

// Title returns the window title.
func (h *Host) Title() string { return h.cfg.Title }

// Frames returns the number of frames presented so far.
func (h *Host) Frames() int { return h.frames }

// Run opens the window and blocks until it is closed or Close is called.
func (h *Host) Run(fh sapling.FrameHandler) error {
	if fh == nil {
		return fmt.Errorf("ebitengine: run handler: %w", sapling.ErrNilArgument)
	}
	if h.closed {
		return fmt.Errorf("ebitengine: run closed host: %w", sapling.ErrDisposed)
	}
	h.handler = fh

	ebiten.SetWindowTitle(h.cfg.Title)
	ebiten.SetWindowSize(h.cfg.Width, h.cfg.Height)
	ebiten.SetTPS(h.cfg.TPS)
	if h.cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	fh.OnLoad()
	err := ebiten.RunGame(h)
	fh.OnUnload()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.closed {
		return ebiten.Termination
	}
	h.handler.OnUpdateFrame(1 / float64(ebiten.TPS()))
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	now := time.Now()
	var dt float64
	if !h.lastDraw.IsZero() {
		dt = now.Sub(h.lastDraw).Seconds()
	}
	h.lastDraw = now

	h.screen = screen
	h.adapter.SetTarget(screen)
	h.handler.OnRenderFrame(dt)
	if h.cfg.ShowFPS {
		h.overlay.draw(screen, dt)
	}
}

// Layout implements ebiten.Game.
func (h *Host) Layout(_, _ int) (int, int) {
	return h.cfg.Width, h.cfg.Height
}

// SwapBuffers marks the end of a rendered frame. Ebitengine presents the
// screen after Draw returns, so this only flushes queued screenshots.
func (h *Host) SwapBuffers() {
	h.frames++
	h.flushScreenshots(h.screen)
}

// Close stops the loop at the next update.
func (h *Host) Close() error {
	h.closed = true
	return nil
}
