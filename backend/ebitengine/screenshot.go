package ebitengine

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sapling"
)

// Screenshot queues a labeled screenshot of the next presented frame. The PNG
// is written to RunConfig.ScreenshotDir with a timestamped filename.
func (h *Host) Screenshot(label string) {
	h.screenshotQueue = append(h.screenshotQueue, label)
}

// flushScreenshots captures screen once for all queued labels. Called from
// SwapBuffers, after the frame has been rendered. The queue is kept while
// there is no screen to read from.
func (h *Host) flushScreenshots(screen *ebiten.Image) {
	if len(h.screenshotQueue) == 0 || screen == nil {
		return
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)

	paths, err := saveScreenshots(h.cfg.ScreenshotDir, time.Now(), h.screenshotQueue, pixels, b.Dx(), b.Dy())
	h.screenshotQueue = h.screenshotQueue[:0]
	for _, p := range paths {
		sapling.Logger().Debug("ebitengine: screenshot written", "path", p)
	}
	if err != nil {
		sapling.Logger().Warn("ebitengine: screenshot", "err", err)
	}
}

// saveScreenshots encodes the premultiplied RGBA pixels as one PNG and writes
// a copy for each label. It returns the paths written; per-label failures are
// joined into the error.
func saveScreenshots(dir string, at time.Time, labels []string, pixels []byte, w, h int) ([]string, error) {
	if len(pixels) < 4*w*h {
		return nil, fmt.Errorf("ebitengine: screenshot has %d bytes for %dx%d: %w",
			len(pixels), w, h, sapling.ErrInvalidArgument)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ebitengine: screenshot dir: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, straightAlpha(pixels, w, h)); err != nil {
		return nil, fmt.Errorf("ebitengine: encode screenshot: %w", err)
	}

	paths := make([]string, 0, len(labels))
	var errs []error
	for _, label := range labels {
		path := filepath.Join(dir, screenshotName(at, label))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			errs = append(errs, err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}

// straightAlpha wraps pixels as an NRGBA image, undoing the premultiplication
// Ebitengine applies. pixels is modified in place.
func straightAlpha(pixels []byte, w, h int) *image.NRGBA {
	img := &image.NRGBA{Pix: pixels[:4*w*h], Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	for i := 0; i < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	return img
}

// screenshotName is "<stamp>_<label>.png". The label keeps ASCII letters,
// digits, '-' and '.'; anything else becomes '_'.
func screenshotName(at time.Time, label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "unlabeled"
	}
	label = strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
	return at.Format("20060102_150405") + "_" + label + ".png"
}
