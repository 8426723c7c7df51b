package sapling

import (
	"os"
	"path/filepath"
	"testing"
)

// --- Test fixtures ---

// heroAtlasJSON describes a 200x50 texture. "hero" sits at (2, 2) 15x20 in
// bottom-left atlas space, which TexturePacker writes as y = 50-2-20 = 28.
const heroAtlasJSON = `{
  "frames": {
    "hero": {
      "frame": {"x": 2, "y": 28, "w": 15, "h": 20},
      "rotated": false,
      "trimmed": false
    },
    "coin": {
      "frame": {"x": 20, "y": 0, "w": 10, "h": 10},
      "rotated": false,
      "trimmed": false
    }
  },
  "meta": {
    "image": "hero.png",
    "size": {"w": 200, "h": 50}
  }
}`

type fakeTexture struct {
	w, h         int
	disposed     bool
	disposeCalls int
}

func (t *fakeTexture) Width() int       { return t.w }
func (t *fakeTexture) Height() int      { return t.h }
func (t *fakeTexture) IsDisposed() bool { return t.disposed }
func (t *fakeTexture) Dispose() {
	t.disposeCalls++
	t.disposed = true
}

type stubParser struct {
	atlas *TextureAtlas
	err   error
	calls int
}

func (p *stubParser) Parse(string) (*TextureAtlas, error) {
	p.calls++
	return p.atlas, p.err
}

type recordingStore struct {
	events []SpriteEvent
}

func (s *recordingStore) EmitEvent(e SpriteEvent) {
	s.events = append(s.events, e)
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func newTestSheet(t *testing.T) (*SpriteSheet, *fakeTexture) {
	t.Helper()
	tex := &fakeTexture{w: 200, h: 50}
	sheet, err := NewSpriteSheet(tex, writeTempFile(t, "hero.json", heroAtlasJSON))
	if err != nil {
		t.Fatalf("NewSpriteSheet: %v", err)
	}
	return sheet, tex
}

func newTestBatch(t *testing.T, capacity int) *SpriteBatch {
	t.Helper()
	sheet, _ := newTestSheet(t)
	b, err := NewSpriteBatchSize(sheet, capacity)
	if err != nil {
		t.Fatalf("NewSpriteBatchSize: %v", err)
	}
	return b
}

func newTestSprite(t *testing.T, sheet *SpriteSheet, name string, x, y float32) *Sprite {
	t.Helper()
	r := sheet.Region(name)
	if r == nil {
		t.Fatalf("region %q missing", name)
	}
	s, err := NewSprite(r, x, y)
	if err != nil {
		t.Fatalf("NewSprite: %v", err)
	}
	return s
}
