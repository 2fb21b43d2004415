package block

import (
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
)

// Connector defaults.
const (
	DefaultSocketWidth     = 20.0
	DefaultInternalPadding = 2.5
)

// ConnectorSpec describes a connector to create.
type ConnectorSpec struct {
	ID       string
	Position geometry.Point

	// SocketWidth is the nominal socket width W; zero means DefaultSocketWidth.
	SocketWidth float64
	// InternalPadding widens the hit region; zero means DefaultInternalPadding.
	InternalPadding float64
}

// Connector is a pass-through routing point: one input, one output, no
// title and no padding. It is drawn only as an outline while selected.
type Connector struct {
	node
	socketWidth     float64
	internalPadding float64
}

// NewConnector creates a selected connector.
func NewConnector(spec ConnectorSpec) (*Connector, error) {
	if err := errors.ValidateID(spec.ID); err != nil {
		return nil, err
	}
	w := spec.SocketWidth
	if w == 0 {
		w = DefaultSocketWidth
	}
	pad := spec.InternalPadding
	if pad == 0 {
		pad = DefaultInternalPadding
	}
	if w < 0 || pad < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"connector %s: socket width and padding must be positive, got %g/%g", spec.ID, w, pad)
	}

	// Only the width survives; padding, rounding and title band are zero.
	p := geometry.Params{DefaultWidth: w}
	c := &Connector{
		node:            newNode(spec.ID, p, 1, 1),
		socketWidth:     w,
		internalPadding: pad,
	}
	c.pos = spec.Position
	c.selected = true
	c.bind(c)
	return c, nil
}

// Kind returns KindConnector.
func (c *Connector) Kind() Kind { return KindConnector }

// SocketWidth returns the nominal socket width.
func (c *Connector) SocketWidth() float64 { return c.socketWidth }

// SetPortCounts accepts only one input and one output.
func (c *Connector) SetPortCounts(inputs, outputs int) error {
	if inputs != 1 || outputs != 1 {
		return errors.InvalidPortIndex("connector %s takes exactly 1 input and 1 output, got %d/%d",
			c.id, inputs, outputs)
	}
	return nil
}

// SetTitle fails: connectors have no title.
func (c *Connector) SetTitle(title string) error {
	return errors.New(errors.ErrCodeInvalidInput, "connector %s has no title", c.id)
}

// Layout clears the dirty flag; there is no title to place.
func (c *Connector) Layout(Measurer) { c.dirty = false }

// InteractionRegion returns the padded region around the socket pair.
func (c *Connector) InteractionRegion() geometry.Rect {
	return geometry.ConnectorRegion(c.socketWidth, c.internalPadding)
}

// Appearance returns the connector's render tokens: no fill, no title, and
// an outline around the interaction region only while selected.
func (c *Connector) Appearance() Appearance {
	region := c.InteractionRegion().Translate(c.pos)
	a := Appearance{
		ID:       c.id,
		Kind:     KindConnector,
		Mode:     c.mode,
		Selected: c.selected,
		Flipped:  c.flipped,
		Z:        c.z,
		Bounds:   region,
		Region:   region,
		Inputs:   portPositions(c.inputs),
		Outputs:  portPositions(c.outputs),
	}
	if c.selected {
		a.Outline = SelectedOutline
		a.Thickness = SelectedThickness
		a.CornerRadius = ConnectorRounding
	}
	return a
}
