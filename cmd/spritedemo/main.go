// Spritedemo bounces a batch of sprites around an Ebitengine window. The
// atlas is generated at startup unless the config names one.
//
//	go run ./cmd/spritedemo -config demo.yaml
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/sapling"
	"github.com/phanxgames/sapling/backend/ebitengine"
	"github.com/phanxgames/sapling/ecs"
	"github.com/phanxgames/sapling/gpu"
)

// DemoConfig is the YAML document read by -config.
type DemoConfig struct {
	Run ebitengine.RunConfig `yaml:"run"`

	// AtlasImage and AtlasData name a texture and its TexturePacker JSON.
	// Both empty means a generated four-tile atlas.
	AtlasImage string `yaml:"atlas_image"`
	AtlasData  string `yaml:"atlas_data"`

	Sprites  int     `yaml:"sprites"`
	QuadSize float32 `yaml:"quad_size"` // on-screen pixels per sprite quad
	Debug    bool    `yaml:"debug"`
}

func defaultConfig() DemoConfig {
	run := ebitengine.DefaultRunConfig()
	run.Title = "sapling sprite demo"
	return DemoConfig{Run: run, Sprites: sapling.DefaultBatchCapacity, QuadSize: 32}
}

// loadConfig reads the demo document at path. The run section is decoded and
// validated by ebitengine.RunConfig itself.
func loadConfig(path string) (DemoConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Sprites <= 0 || cfg.QuadSize <= 0 {
		return cfg, errors.New("sprites and quad_size must be positive")
	}
	return cfg, nil
}

const fragmentShader = `//kage:unit pixels

package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return imageSrc0At(srcPos) * color
}
`

// Kage has a fixed vertex stage; the source only documents the layout.
const vertexShader = `in vec2 position; in vec4 color; in vec2 texCoord;`

type mover struct {
	sprite *sapling.Sprite
	vx, vy float32
}

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Debug {
		sapling.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		sapling.SetDebugMode(true)
	}
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg DemoConfig) error {
	adapter := ebitengine.NewAdapter()
	adapter.ClearColor = color.RGBA{R: 20, G: 16, B: 30, A: 255}

	host, err := ebitengine.NewHost(cfg.Run, adapter)
	if err != nil {
		return err
	}

	tex, dataPath, cleanup, err := loadAtlas(cfg)
	if err != nil {
		return err
	}
	sheet, err := sapling.NewSpriteSheet(tex, dataPath)
	cleanup()
	if err != nil {
		tex.Dispose()
		return err
	}
	batch, err := sapling.NewSpriteBatchSize(sheet, cfg.Sprites)
	if err != nil {
		sheet.Dispose()
		return err
	}
	defer batch.Dispose()

	world := donburi.NewWorld()
	store := ecs.NewDonburiStore(world)
	batch.SetEventStore(store)
	var events int
	ecs.SpriteEventType.Subscribe(world, func(donburi.World, sapling.SpriteEvent) { events++ })

	program, err := compileProgram(adapter)
	if err != nil {
		return err
	}
	defer program.Dispose()
	renderer, err := sapling.NewBatchRenderer(adapter, batch, program)
	if err != nil {
		return err
	}
	defer renderer.Dispose()

	host.SetStatus(func() string {
		st := renderer.Stats()
		return fmt.Sprintf("sprites: %d\nuploads: %d/%d", batch.Len(), st.Uploads, st.Uploads+st.SkippedUploads)
	})

	atlas := sheet.Atlas()
	scaleX := cfg.QuadSize * float32(atlas.Width())
	scaleY := cfg.QuadSize * float32(atlas.Height())
	adapter.SetTexture(tex)
	adapter.SetProjection(ebitengine.Projection(cfg.Run.Height, scaleX, scaleY))

	// World bounds in projected units, minus one quad.
	maxX := float32(cfg.Run.Width)/scaleX - 1/float32(atlas.Width())
	maxY := float32(cfg.Run.Height)/scaleY - 1/float32(atlas.Height())

	regions := sheet.TextureRegions()
	movers := make([]mover, 0, cfg.Sprites)
	for i := 0; i < cfg.Sprites; i++ {
		r := regions[i%len(regions)]
		s, err := sapling.NewSprite(&r, rand.Float32()*maxX, rand.Float32()*maxY)
		if err != nil {
			return err
		}
		if err := batch.Add(s); err != nil {
			return err
		}
		movers = append(movers, mover{
			sprite: s,
			vx:     (rand.Float32() - 0.5) * maxX / 2,
			vy:     (rand.Float32() - 0.5) * maxY / 2,
		})
	}

	win, err := sapling.NewWindow(host, adapter, sapling.Handlers{
		Update: func(dt float64) {
			step := float32(dt)
			for i := range movers {
				m := &movers[i]
				m.sprite.Modify(func(st *sapling.SpriteState) {
					st.X, m.vx = bounce(st.X+m.vx*step, m.vx, maxX)
					st.Y, m.vy = bounce(st.Y+m.vy*step, m.vy, maxY)
				})
			}
			ecs.SpriteEventType.ProcessEvents(world)
			if ebiten.IsKeyPressed(ebiten.KeyF12) {
				host.Screenshot("spritedemo")
			}
		},
		Render: func(float64) {
			if err := renderer.Render(); err != nil {
				sapling.Logger().Error("render", "err", err)
				_ = host.Close()
			}
		},
		Unload: func() {
			sapling.Logger().Info("spritedemo: done", "frames", host.Frames(), "events", events,
				"uploads", renderer.Stats().Uploads, "draws", adapter.Draws())
		},
	})
	if err != nil {
		return err
	}
	defer win.Dispose()
	return win.Run()
}

// compileProgram builds the sprite program. The shaders are released once
// linked, or on any failure.
func compileProgram(adapter gpu.Adapter) (*gpu.ShaderProgram, error) {
	vs, err := gpu.NewShader(adapter, gpu.ShaderVertex)
	if err != nil {
		return nil, err
	}
	defer vs.Dispose()
	fs, err := gpu.NewShader(adapter, gpu.ShaderFragment)
	if err != nil {
		return nil, err
	}
	defer fs.Dispose()

	if err := vs.Compile(vertexShader); err != nil {
		return nil, err
	}
	if err := fs.Compile(fragmentShader); err != nil {
		return nil, err
	}
	return gpu.NewShaderProgram(adapter, vs, fs)
}

func bounce(pos, vel, limit float32) (float32, float32) {
	switch {
	case pos < 0:
		return -pos, -vel
	case pos > limit:
		return 2*limit - pos, -vel
	}
	return pos, vel
}

// loadAtlas returns the configured texture and data file, or generates both.
// cleanup removes any generated files; the data file is only needed until the
// sprite sheet has parsed it.
func loadAtlas(cfg DemoConfig) (tex *ebitengine.Texture, dataPath string, cleanup func(), err error) {
	if cfg.AtlasImage != "" || cfg.AtlasData != "" {
		tex, err := ebitengine.LoadTexture(cfg.AtlasImage)
		if err != nil {
			return nil, "", nil, err
		}
		return tex, cfg.AtlasData, func() {}, nil
	}
	return generateAtlas()
}

// generateAtlas paints a 64x64 texture with four 32x32 colored tiles and
// writes the matching TexturePacker JSON to a temporary directory.
func generateAtlas() (*ebitengine.Texture, string, func(), error) {
	const size, tile = 64, 32
	colors := map[string]color.RGBA{
		"red":    {R: 230, G: 60, B: 60, A: 255},
		"green":  {R: 60, G: 200, B: 90, A: 255},
		"blue":   {R: 70, G: 110, B: 230, A: 255},
		"yellow": {R: 240, G: 210, B: 60, A: 255},
	}
	names := []string{"red", "green", "blue", "yellow"}

	type rect struct {
		X int `json:"x"`
		Y int `json:"y"`
		W int `json:"w"`
		H int `json:"h"`
	}
	type frame struct {
		Frame rect `json:"frame"`
	}
	doc := struct {
		Frames map[string]frame `json:"frames"`
		Meta   struct {
			Size struct {
				W int `json:"w"`
				H int `json:"h"`
			} `json:"size"`
		} `json:"meta"`
	}{Frames: make(map[string]frame, len(names))}
	doc.Meta.Size.W, doc.Meta.Size.H = size, size
	for i, name := range names {
		doc.Frames[name] = frame{Frame: rect{X: (i % 2) * tile, Y: (i / 2) * tile, W: tile, H: tile}}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, "", nil, err
	}
	dir, err := os.MkdirTemp("", "spritedemo")
	if err != nil {
		return nil, "", nil, err
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			sapling.Logger().Warn("spritedemo: remove temp atlas", "err", err)
		}
	}
	path := filepath.Join(dir, "atlas.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		cleanup()
		return nil, "", nil, err
	}

	img := ebiten.NewImage(size, size)
	for _, name := range names {
		r := doc.Frames[name].Frame
		img.SubImage(image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)).(*ebiten.Image).Fill(colors[name])
	}
	tex, err := ebitengine.NewTexture(img)
	if err != nil {
		img.Deallocate()
		cleanup()
		return nil, "", nil, err
	}
	return tex, path, cleanup, nil
}
