package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/fonts"
	"github.com/matzehuels/blockdiag/pkg/geometry"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockdiag.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.Params(); got != block.DefaultParams() {
		t.Errorf("Params() = %+v, want block defaults", got)
	}
	if got := cfg.Params().Spacer(); got != 40 {
		t.Errorf("Spacer() = %v, want 40", got)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
mode = "dark"

[canvas]
width = 1600
grid = 10

[block]
corner_radius = 6

[title]
height = 20
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Canvas.Width != 1600 || cfg.Canvas.Height != 600 {
		t.Errorf("canvas = %+v, want width overridden and height default", cfg.Canvas)
	}

	opts, err := cfg.SceneOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Mode != block.Dark {
		t.Errorf("Mode = %v, want Dark", opts.Mode)
	}
	if opts.Bounds != (geometry.Rect{W: 1600, H: 600}) || opts.Grid != 10 {
		t.Errorf("Bounds/Grid = %v/%v", opts.Bounds, opts.Grid)
	}
	if opts.BlockParams.CornerRadius != 6 || opts.BlockParams.TitleHeight != 20 || opts.BlockParams.Padding != 5 {
		t.Errorf("BlockParams = %+v", opts.BlockParams)
	}
	if opts.Measurer != fonts.Default() {
		t.Error("default font size should reuse the shared face")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `mode = `},
		{"unknown key", "[canvas]\ndepth = 3\n"},
		{"bad mode", `mode = "Purple"`},
		{"negative grid", "[canvas]\ngrid = -5\n"},
		{"zero width", "[block]\nwidth = 0\n"},
		{"margin too large", "[canvas]\nwidth = 30\nheight = 30\nmargin = 20\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestNoGrid(t *testing.T) {
	cfg, err := Parse("[canvas]\ngrid = 0\n")
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.SceneOptions()
	if err != nil {
		t.Fatal(err)
	}
	if !opts.NoGrid {
		t.Error("grid 0 should disable snapping")
	}
}

func TestMeasurerFontSize(t *testing.T) {
	cfg := Default()
	cfg.Title.FontSize = 20
	face, err := cfg.Measurer()
	if err != nil {
		t.Fatal(err)
	}
	if face.Size() != 20 {
		t.Errorf("Size() = %v", face.Size())
	}
	if small := fonts.Default().Width("Mixer"); face.Width("Mixer") <= small {
		t.Errorf("20pt width %d not larger than 10pt width %d", face.Width("Mixer"), small)
	}

	cfg.Title.Font = filepath.Join(t.TempDir(), "nope.ttf")
	if _, err := cfg.Measurer(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("missing font error = %v", err)
	}
}
