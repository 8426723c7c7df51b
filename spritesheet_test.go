package sapling

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestNewSpriteSheet(t *testing.T) {
	sheet, tex := newTestSheet(t)
	if sheet.Texture() != tex {
		t.Error("Texture() is not the given texture")
	}
	if sheet.Atlas().Len() != 2 {
		t.Errorf("atlas Len = %d, want 2", sheet.Atlas().Len())
	}
	if r := sheet.Region("hero"); r == nil || r.Atlas() != sheet.Atlas() {
		t.Error("Region(hero) not bound to the sheet's atlas")
	}
	if sheet.IsDisposed() {
		t.Error("new sheet is disposed")
	}
}

func TestNewSpriteSheet_Errors(t *testing.T) {
	valid := writeTempFile(t, "hero.json", heroAtlasJSON)
	missing := filepath.Join(t.TempDir(), "missing.json")
	broken := writeTempFile(t, "broken.json", `{"frames":`)
	wrongSize := writeTempFile(t, "small.json",
		`{"frames": {"a": {"frame": {"x": 0, "y": 0, "w": 1, "h": 1}}}, "meta": {"size": {"w": 8, "h": 8}}}`)

	tests := []struct {
		name    string
		tex     Texture
		path    string
		wantErr error
	}{
		{"nil texture", nil, valid, ErrNilArgument},
		{"disposed texture", &fakeTexture{w: 200, h: 50, disposed: true}, valid, ErrInvalidState},
		{"disposed texture checked before file", &fakeTexture{disposed: true}, missing, ErrInvalidState},
		{"missing file", &fakeTexture{w: 200, h: 50}, missing, ErrNotFound},
		{"atlas size mismatch", &fakeTexture{w: 200, h: 50}, wrongSize, ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpriteSheet(tt.tex, tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		if _, err := NewSpriteSheet(&fakeTexture{w: 200, h: 50}, broken); err == nil {
			t.Error("expected error")
		}
	})
}

func TestNewSpriteSheetWithParser(t *testing.T) {
	path := writeTempFile(t, "any.dat", "")

	t.Run("nil parser", func(t *testing.T) {
		_, err := NewSpriteSheetWithParser(&fakeTexture{w: 4, h: 4}, path, nil)
		if !errors.Is(err, ErrNilArgument) {
			t.Errorf("err = %v, want ErrNilArgument", err)
		}
	})

	t.Run("parser error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewSpriteSheetWithParser(&fakeTexture{w: 4, h: 4}, path, &stubParser{err: boom})
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want wrapped boom", err)
		}
	})

	t.Run("nil atlas", func(t *testing.T) {
		_, err := NewSpriteSheetWithParser(&fakeTexture{w: 4, h: 4}, path, &stubParser{})
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("err = %v, want ErrInvalidState", err)
		}
	})

	t.Run("missing file skips parser", func(t *testing.T) {
		p := &stubParser{}
		_, err := NewSpriteSheetWithParser(&fakeTexture{w: 4, h: 4}, filepath.Join(t.TempDir(), "nope"), p)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
		if p.calls != 0 {
			t.Errorf("parser calls = %d, want 0", p.calls)
		}
	})

	t.Run("unknown atlas size adopts texture size", func(t *testing.T) {
		atlas, err := NewTextureAtlas(0, 0, map[string]TextureRegion{"a": {X: 0, Y: 0, Width: 2, Height: 2}})
		if err != nil {
			t.Fatal(err)
		}
		sheet, err := NewSpriteSheetWithParser(&fakeTexture{w: 64, h: 16}, path, &stubParser{atlas: atlas})
		if err != nil {
			t.Fatalf("NewSpriteSheetWithParser: %v", err)
		}
		if sheet.Atlas().Width() != 64 || sheet.Atlas().Height() != 16 {
			t.Errorf("atlas size = %dx%d, want 64x16", sheet.Atlas().Width(), sheet.Atlas().Height())
		}
		s, _ := NewSprite(sheet.Region("a"), 0, 0)
		if got, want := s.Vertices()[TopRight].TexCoord[0], 2/float32(64); got != want {
			t.Errorf("TR u = %v, want %v", got, want)
		}
	})

	t.Run("adopted size rejects regions outside the texture", func(t *testing.T) {
		atlas, err := NewTextureAtlas(0, 0, map[string]TextureRegion{"big": {X: 40, Y: 40, Width: 100, Height: 100}})
		if err != nil {
			t.Fatal(err)
		}
		tex := &fakeTexture{w: 64, h: 64}
		sheet, err := NewSpriteSheetWithParser(tex, path, &stubParser{atlas: atlas})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("err = %v, want ErrInvalidArgument", err)
		}
		if sheet != nil {
			t.Error("sheet returned for an oversized region")
		}
		if tex.disposeCalls != 0 {
			t.Errorf("texture Dispose calls = %d, want 0", tex.disposeCalls)
		}
	})
}

func TestSpriteSheet_TextureRegions(t *testing.T) {
	sheet, _ := newTestSheet(t)
	regions := sheet.TextureRegions()
	if len(regions) != 2 {
		t.Fatalf("len = %d, want 2", len(regions))
	}
	regions[1].Width = 1
	if sheet.Region("hero").Width != 15 {
		t.Error("TextureRegions aliases the sheet")
	}
}

func TestSpriteSheet_Dispose(t *testing.T) {
	sheet, tex := newTestSheet(t)
	sheet.Dispose()
	sheet.Dispose()
	if !sheet.IsDisposed() {
		t.Error("IsDisposed = false after Dispose")
	}
	if tex.disposeCalls != 1 {
		t.Errorf("texture Dispose calls = %d, want 1", tex.disposeCalls)
	}
}
