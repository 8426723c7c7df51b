package sapling

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// TexturePackerParser reads TexturePacker JSON atlas descriptions. Both the
// hash format ("frames" is an object keyed by name) and the array format
// ("frames" is a list with a "filename" per entry) are supported.
//
// TexturePacker measures frames from the top-left corner of the texture;
// regions are converted to the bottom-left origin used by TextureRegion, which
// requires "meta.size" to be present.
type TexturePackerParser struct{}

var _ Parser = TexturePackerParser{}

// Parse reads and parses the file at path.
func (TexturePackerParser) Parse(path string) (*TextureAtlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("sapling: atlas file %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("sapling: read atlas %s: %w", path, err)
	}
	atlas, err := ParseTexturePacker(data)
	if err != nil {
		return nil, err
	}
	Logger().Debug("sapling: atlas loaded", "path", path, "regions", atlas.Len(),
		"width", atlas.Width(), "height", atlas.Height())
	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Filename string   `json:"filename"`
	Frame    jsonRect `json:"frame"`
	Rotated  bool     `json:"rotated"`
}

type jsonMeta struct {
	Image string   `json:"image"`
	Size  jsonSize `json:"size"`
}

// ParseTexturePacker parses TexturePacker JSON held in memory.
func ParseTexturePacker(data []byte) (*TextureAtlas, error) {
	var doc struct {
		Frames json.RawMessage `json:"frames"`
		Meta   jsonMeta        `json:"meta"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("sapling: failed to parse atlas JSON: %w", err)
	}
	if len(doc.Frames) == 0 {
		return nil, fmt.Errorf("sapling: atlas JSON has no \"frames\" key: %w", ErrInvalidArgument)
	}
	size := doc.Meta.Size
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("sapling: atlas JSON has no usable \"meta.size\": %w", ErrInvalidArgument)
	}

	frames, err := decodeFrames(doc.Frames)
	if err != nil {
		return nil, err
	}

	regions := make(map[string]TextureRegion, len(frames))
	for name, f := range frames {
		if f.Rotated {
			return nil, fmt.Errorf("sapling: atlas frame %q is rotated; rotated frames are not supported: %w",
				name, ErrInvalidArgument)
		}
		regions[name] = frameToRegion(f, size.H)
	}
	return NewTextureAtlas(size.W, size.H, regions)
}

// decodeFrames accepts either frame layout and returns frames keyed by name.
func decodeFrames(raw json.RawMessage) (map[string]jsonFrame, error) {
	var hash map[string]jsonFrame
	if err := json.Unmarshal(raw, &hash); err == nil {
		return hash, nil
	}

	var list []jsonFrame
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("sapling: failed to parse atlas frames: %w", err)
	}
	frames := make(map[string]jsonFrame, len(list))
	for i, f := range list {
		if f.Filename == "" {
			return nil, fmt.Errorf("sapling: atlas frame %d has no filename: %w", i, ErrInvalidArgument)
		}
		if _, dup := frames[f.Filename]; dup {
			return nil, fmt.Errorf("sapling: atlas frame %q listed twice: %w", f.Filename, ErrInvalidArgument)
		}
		frames[f.Filename] = f
	}
	return frames, nil
}

// frameToRegion flips a top-left-origin frame into bottom-left atlas space.
func frameToRegion(f jsonFrame, atlasH int) TextureRegion {
	return TextureRegion{
		X:      f.Frame.X,
		Y:      atlasH - f.Frame.Y - f.Frame.H,
		Width:  f.Frame.W,
		Height: f.Frame.H,
	}
}
