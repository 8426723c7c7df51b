package ebitengine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/sapling"
)

// RunConfig holds window and loop settings for a Host.
type RunConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	TPS           int    `yaml:"tps"`
	Resizable     bool   `yaml:"resizable"`
	ShowFPS       bool   `yaml:"show_fps"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// DefaultRunConfig returns the settings used for fields a config file
// leaves out.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:         "sapling",
		Width:         640,
		Height:        480,
		TPS:           60,
		ScreenshotDir: "screenshots",
	}
}

// LoadRunConfig reads a YAML RunConfig from path.
func LoadRunConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("ebitengine: read config: %w", err)
	}
	return ParseRunConfig(data)
}

// ParseRunConfig decodes YAML over DefaultRunConfig and validates the result.
func ParseRunConfig(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("ebitengine: parse config: %w", err)
	}
	// An empty document never reaches UnmarshalYAML.
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// UnmarshalYAML decodes over the receiver's current values and validates the
// result, so a RunConfig embedded in a larger document keeps whatever
// defaults the caller set and is checked the same way ParseRunConfig checks
// it. On error the receiver is left unchanged.
func (c *RunConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain RunConfig
	p := plain(*c)
	if err := value.Decode(&p); err != nil {
		return err
	}
	next := RunConfig(p)
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Validate reports whether the config can open a window.
func (c RunConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("ebitengine: window size %dx%d: %w", c.Width, c.Height, sapling.ErrInvalidArgument)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("ebitengine: tps %d: %w", c.TPS, sapling.ErrInvalidArgument)
	}
	return nil
}
