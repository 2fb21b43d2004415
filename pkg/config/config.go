// Package config loads blockdiag settings from TOML.
//
// Every field has a default, so a config file only needs the values it
// changes:
//
//	mode = "Dark"
//
//	[canvas]
//	width = 1600
//	grid = 10
//
//	[block]
//	corner_radius = 6
//
// [Config.SceneOptions] turns a loaded config into [scene.Options].
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/fonts"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/scene"
)

// Config holds all tunable settings.
type Config struct {
	Mode      string    `toml:"mode"`
	Canvas    Canvas    `toml:"canvas"`
	Block     Block     `toml:"block"`
	Connector Connector `toml:"connector"`
	Title     Title     `toml:"title"`
}

// Canvas configures the interactive area.
type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Grid   float64 `toml:"grid"`
	Margin float64 `toml:"margin"`
	NoGrid bool    `toml:"no_grid"`
}

// Block configures block geometry.
type Block struct {
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	Padding       float64 `toml:"padding"`
	CornerRadius  float64 `toml:"corner_radius"`
	SocketSpacing float64 `toml:"socket_spacing"`
}

// Connector configures connector size.
type Connector struct {
	SocketWidth     float64 `toml:"socket_width"`
	InternalPadding float64 `toml:"internal_padding"`
}

// Title configures the title band and the font titles are measured with.
type Title struct {
	Height   float64 `toml:"height"`
	FontSize float64 `toml:"font_size"`
	Font     string  `toml:"font"` // Optional TTF file; the Go regular font otherwise
}

// Default returns the built-in settings.
func Default() Config {
	p := block.DefaultParams()
	return Config{
		Mode: string(block.Light),
		Canvas: Canvas{
			Width:  1000,
			Height: 600,
			Grid:   scene.DefaultGrid,
			Margin: scene.DefaultMargin,
		},
		Block: Block{
			Width:         p.DefaultWidth,
			Height:        p.DefaultHeight,
			Padding:       p.Padding,
			CornerRadius:  p.CornerRadius,
			SocketSpacing: p.SocketSpacing,
		},
		Connector: Connector{
			SocketWidth:     block.DefaultSocketWidth,
			InternalPadding: block.DefaultInternalPadding,
		},
		Title: Title{
			Height:   p.TitleHeight,
			FontSize: fonts.DefaultSize,
		},
	}
}

// Load reads a TOML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s not found", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and the color mode.
func (c Config) Validate() error {
	if _, err := block.ParseMode(c.Mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "mode")
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"canvas.width", c.Canvas.Width},
		{"canvas.height", c.Canvas.Height},
		{"block.width", c.Block.Width},
		{"block.height", c.Block.Height},
		{"connector.socket_width", c.Connector.SocketWidth},
		{"title.font_size", c.Title.FontSize},
	}
	for _, f := range positive {
		if f.v <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %g", f.name, f.v)
		}
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"canvas.grid", c.Canvas.Grid},
		{"canvas.margin", c.Canvas.Margin},
		{"block.padding", c.Block.Padding},
		{"block.corner_radius", c.Block.CornerRadius},
		{"block.socket_spacing", c.Block.SocketSpacing},
		{"connector.internal_padding", c.Connector.InternalPadding},
		{"title.height", c.Title.Height},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %g", f.name, f.v)
		}
	}
	if 2*c.Canvas.Margin >= min(c.Canvas.Width, c.Canvas.Height) {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas.margin %g leaves no room on a %gx%g canvas",
			c.Canvas.Margin, c.Canvas.Width, c.Canvas.Height)
	}
	return nil
}

// Params returns the block geometry parameters.
func (c Config) Params() geometry.Params {
	return geometry.Params{
		DefaultWidth:  c.Block.Width,
		DefaultHeight: c.Block.Height,
		Padding:       c.Block.Padding,
		CornerRadius:  c.Block.CornerRadius,
		TitleHeight:   c.Title.Height,
		SocketSpacing: c.Block.SocketSpacing,
	}
}

// Measurer returns the title measurer: the configured font file, the Go
// regular font at a custom size, or the shared default face.
func (c Config) Measurer() (*fonts.Face, error) {
	if c.Title.Font == "" {
		if c.Title.FontSize == fonts.DefaultSize {
			return fonts.Default(), nil
		}
		return fonts.Regular(c.Title.FontSize)
	}
	data, err := os.ReadFile(c.Title.Font)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read font")
	}
	face, err := fonts.NewFace(data, c.Title.FontSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse font %s", c.Title.Font)
	}
	return face, nil
}

// SceneOptions converts the config to scene options. Logger, sink and the
// other runtime collaborators are left for the caller.
func (c Config) SceneOptions() (scene.Options, error) {
	if err := c.Validate(); err != nil {
		return scene.Options{}, err
	}
	face, err := c.Measurer()
	if err != nil {
		return scene.Options{}, err
	}
	mode, _ := block.ParseMode(c.Mode)
	return scene.Options{
		Bounds:          geometry.Rect{W: c.Canvas.Width, H: c.Canvas.Height},
		Grid:            c.Canvas.Grid,
		Margin:          c.Canvas.Margin,
		Mode:            mode,
		BlockParams:     c.Params(),
		SocketWidth:     c.Connector.SocketWidth,
		InternalPadding: c.Connector.InternalPadding,
		NoGrid:          c.Canvas.NoGrid || c.Canvas.Grid == 0,
		Measurer:        face,
	}, nil
}
