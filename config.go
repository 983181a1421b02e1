package particlefield

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldConfig is the YAML description of a particle field: its sprite
// sheet, alignment, opacity, blend mode and host window.
//
//	sheet:
//	  image: spark.png
//	  frameWidth: 21
//	origin: {x: 0, y: 0}
//	opacity: 0.8
//	blend: add
type FieldConfig struct {
	Sheet   SheetConfig  `yaml:"sheet"`
	Origin  *Vec2        `yaml:"origin,omitempty"`
	Anchor  *Vec2        `yaml:"anchor,omitempty"`
	Opacity *float64     `yaml:"opacity,omitempty"`
	Blend   BlendMode    `yaml:"blend,omitempty"`
	Window  WindowConfig `yaml:"window,omitempty"`
}

// SheetConfig mirrors SpriteSheetOptions plus the image reference.
type SheetConfig struct {
	Image       string  `yaml:"image"`
	FrameWidth  int     `yaml:"frameWidth,omitempty"`
	FrameHeight int     `yaml:"frameHeight,omitempty"`
	Length      int     `yaml:"length,omitempty"`
	Scale       float64 `yaml:"scale,omitempty"`
}

// WindowConfig mirrors RunConfig.
type WindowConfig struct {
	Title     string `yaml:"title,omitempty"`
	Width     int    `yaml:"width,omitempty"`
	Height    int    `yaml:"height,omitempty"`
	Resizable bool   `yaml:"resizable,omitempty"`
	ShowFPS   bool   `yaml:"showFPS,omitempty"`
}

// LoadConfig reads and validates a YAML field configuration.
func LoadConfig(path string) (*FieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("particlefield: failed to read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates YAML configuration data.
func ParseConfig(data []byte) (*FieldConfig, error) {
	var cfg FieldConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("particlefield: failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("particlefield: invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values that would otherwise fail later at load time.
func (c *FieldConfig) Validate() error {
	s := c.Sheet
	if s.Image == "" {
		return fmt.Errorf("sheet.image is required")
	}
	if s.FrameWidth < 0 || s.FrameHeight < 0 || s.Length < 0 {
		return fmt.Errorf("sheet frame spec must be non-negative (frameWidth=%d frameHeight=%d length=%d)",
			s.FrameWidth, s.FrameHeight, s.Length)
	}
	if s.Scale < 0 {
		return fmt.Errorf("sheet.scale must be non-negative, got %g", s.Scale)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size must be non-negative, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// SpriteSheet starts loading the configured sheet through loader.
func (c *FieldConfig) SpriteSheet(loader ImageLoader) *SpriteSheet {
	return NewSpriteSheet(c.Sheet.Image, loader, SpriteSheetOptions{
		FrameWidth:  c.Sheet.FrameWidth,
		FrameHeight: c.Sheet.FrameHeight,
		Length:      c.Sheet.Length,
		Scale:       c.Sheet.Scale,
	})
}

// ControllerOptions returns the options for NewController that reproduce
// this configuration. Unset fields keep the controller defaults.
func (c *FieldConfig) ControllerOptions() []ControllerOption {
	opts := []ControllerOption{WithBlendMode(c.Blend)}
	if c.Origin != nil {
		opts = append(opts, WithOrigin(*c.Origin))
	}
	if c.Anchor != nil {
		opts = append(opts, WithAnchor(*c.Anchor))
	}
	if c.Opacity != nil {
		opts = append(opts, WithOpacity(*c.Opacity))
	}
	return opts
}

// Apply overwrites the configured fields on an existing controller.
func (c *FieldConfig) Apply(ctrl *Controller) {
	ctrl.BlendMode = c.Blend
	if c.Origin != nil {
		ctrl.Origin = *c.Origin
	}
	if c.Anchor != nil {
		ctrl.Anchor = *c.Anchor
	}
	if c.Opacity != nil {
		ctrl.Opacity = *c.Opacity
	}
}

// RunConfig converts the window section for Run.
func (c *FieldConfig) RunConfig() RunConfig {
	return RunConfig{
		Title:     c.Window.Title,
		Width:     c.Window.Width,
		Height:    c.Window.Height,
		Resizable: c.Window.Resizable,
		ShowFPS:   c.Window.ShowFPS,
	}
}

// UnmarshalYAML decodes a blend mode from its name.
func (b *BlendMode) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	mode, err := ParseBlendMode(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*b = mode
	return nil
}

// MarshalYAML encodes a blend mode as its name.
func (b BlendMode) MarshalYAML() (any, error) {
	return b.String(), nil
}
