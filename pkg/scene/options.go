package scene

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/fonts"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/render"
)

// Canvas defaults.
const (
	DefaultGrid   = 20.0
	DefaultMargin = 20.0
)

// ParamWindow shows or hides the parameter editor of a block.
type ParamWindow interface {
	Toggle(blockID string)
}

// ParamWindowFunc adapts a function to [ParamWindow].
type ParamWindowFunc func(blockID string)

// Toggle calls f(blockID).
func (f ParamWindowFunc) Toggle(blockID string) { f(blockID) }

type noParamWindow struct{}

func (noParamWindow) Toggle(string) {}

// Options configures a [Scene]. Zero fields take defaults in
// [Options.ValidateAndSetDefaults].
type Options struct {
	Bounds geometry.Rect // Required
	Grid   float64       // Minor grid cell; defaults to DefaultGrid
	Margin float64       // Edge margin; defaults to DefaultMargin
	Mode   block.Mode    // Defaults to Light

	// BlockParams is applied to blocks created with AddBlock whose spec
	// carries no params. Defaults to block.DefaultParams.
	BlockParams geometry.Params

	// SocketWidth and InternalPadding size new connectors.
	SocketWidth     float64
	InternalPadding float64

	// NoGrid disables snapping while keeping the other defaults.
	NoGrid bool

	Logger      *log.Logger    // Defaults to log.Default()
	Measurer    block.Measurer // Defaults to fonts.Default()
	Sink        render.Sink    // Defaults to render.Discard
	ParamWindow ParamWindow    // Defaults to a no-op
	IDs         IDGenerator    // Defaults to UUIDs
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	o.Bounds = o.Bounds.Normalized()
	if o.Bounds.W <= 0 || o.Bounds.H <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas bounds must have positive size, got %v", o.Bounds)
	}
	if o.Grid < 0 || o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "grid and margin must not be negative, got %g/%g", o.Grid, o.Margin)
	}
	if o.Grid == 0 && !o.NoGrid {
		o.Grid = DefaultGrid
	}
	if o.NoGrid {
		o.Grid = 0
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Mode == "" {
		o.Mode = block.Light
	}
	if !o.Mode.Valid() {
		return errors.InvalidMode(string(o.Mode))
	}
	if o.BlockParams == (geometry.Params{}) {
		o.BlockParams = block.DefaultParams()
	}
	if o.SocketWidth == 0 {
		o.SocketWidth = block.DefaultSocketWidth
	}
	if o.InternalPadding == 0 {
		o.InternalPadding = block.DefaultInternalPadding
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Measurer == nil {
		o.Measurer = fonts.Default()
	}
	if o.Sink == nil {
		o.Sink = render.Discard
	}
	if o.ParamWindow == nil {
		o.ParamWindow = noParamWindow{}
	}
	if o.IDs == nil {
		o.IDs = UUIDs
	}
	return nil
}

func (o Options) constraints() geometry.Constraints {
	return geometry.Constraints{Bounds: o.Bounds, Grid: o.Grid, Margin: o.Margin}
}
