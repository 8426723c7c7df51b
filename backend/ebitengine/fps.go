package ebitengine

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const overlayInterval = 0.5 // seconds between overlay refreshes

// overlay is a small FPS/TPS panel drawn over the top-left of the screen.
// The text is redrawn into its own image about twice a second.
type overlay struct {
	img     *ebiten.Image
	status  func() string
	elapsed float64
}

// SetStatus adds lines produced by fn below the FPS/TPS readout. Only used
// when RunConfig.ShowFPS is set.
func (h *Host) SetStatus(fn func() string) {
	h.overlay.status = fn
}

func (o *overlay) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if o.status != nil {
		if s := o.status(); s != "" {
			b.WriteByte('\n')
			b.WriteString(s)
		}
	}
	return b.String()
}

func (o *overlay) draw(screen *ebiten.Image, dt float64) {
	if o.img == nil {
		o.img = ebiten.NewImage(160, 64)
		o.elapsed = overlayInterval
	}
	o.elapsed += dt
	if o.elapsed >= overlayInterval {
		o.elapsed = 0
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, o.text())
	}
	screen.DrawImage(o.img, nil)
}
