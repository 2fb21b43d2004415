package block

import (
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
)

// DefaultParams returns the layout parameters of a regular block: 100×80,
// padding 5, corner radius 10, a 25 pixel title band and sockets 20 apart.
func DefaultParams() geometry.Params {
	return geometry.Params{
		DefaultWidth:  100,
		DefaultHeight: 80,
		Padding:       5,
		CornerRadius:  10,
		TitleHeight:   25,
		SocketSpacing: 20,
	}
}

// Spec describes a block to create.
type Spec struct {
	ID      string
	Title   string
	Width   float64 // Overrides Params.DefaultWidth when non-zero
	Height  float64 // Overrides Params.DefaultHeight when non-zero
	Inputs  int
	Outputs int
	Icon    Icon

	// Params is the layout parameter set. The zero value means DefaultParams.
	Params geometry.Params

	Position geometry.Point
}

// Block is a titled, rounded rectangle with input sockets on one side and
// output sockets on the other.
type Block struct {
	node
	icon Icon
}

// New creates an unselected block in Light mode. It returns INVALID_INPUT for
// a bad ID or title, negative port counts or a non-positive size.
func New(spec Spec) (*Block, error) {
	if err := errors.ValidateID(spec.ID); err != nil {
		return nil, err
	}
	if err := errors.ValidateTitle(spec.Title); err != nil {
		return nil, err
	}
	if spec.Inputs < 0 || spec.Outputs < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"block %s: port counts must be non-negative, got %d/%d", spec.ID, spec.Inputs, spec.Outputs)
	}

	p := spec.Params
	if p == (geometry.Params{}) {
		p = DefaultParams()
	}
	if spec.Width != 0 {
		p.DefaultWidth = spec.Width
	}
	if spec.Height != 0 {
		p.DefaultHeight = spec.Height
	}
	if p.DefaultWidth <= 0 || p.DefaultHeight <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"block %s: size must be positive, got %gx%g", spec.ID, p.DefaultWidth, p.DefaultHeight)
	}

	b := &Block{node: newNode(spec.ID, p, spec.Inputs, spec.Outputs), icon: spec.Icon}
	b.title = spec.Title
	b.pos = spec.Position
	b.bind(b)
	return b, nil
}

// Kind returns KindBlock.
func (b *Block) Kind() Kind { return KindBlock }

// Icon returns the block's icon handle.
func (b *Block) Icon() Icon { return b.icon }

// SetIcon replaces the icon handle.
func (b *Block) SetIcon(i Icon) { b.icon = i }

// Resize recomputes the height and socket offsets from the current port
// counts. Calling it again without a change has no effect on the geometry.
func (b *Block) Resize() { b.resize() }

// SetPortCounts changes the number of inputs and outputs and resizes.
// Existing ports below the new counts are kept; dropped ones are detached.
func (b *Block) SetPortCounts(inputs, outputs int) error {
	return b.setPortCounts(inputs, outputs)
}

// SetTitle records a new title and marks the title geometry dirty.
// The position is recomputed by the next [Block.Layout].
func (b *Block) SetTitle(title string) error {
	if err := errors.ValidateTitle(title); err != nil {
		return err
	}
	b.title = title
	b.dirty = true
	return nil
}

// Layout measures the title and re-centers it under the block. A nil
// measurer counts the title as zero width.
func (b *Block) Layout(m Measurer) {
	b.titleWidth = 0
	if m != nil && b.title != "" {
		b.titleWidth = m.Width(b.title)
	}
	b.titlePos = geometry.TitleOffset(b.width, b.height, b.params.Padding, b.titleWidth)
	b.dirty = false
}

// TitlePosition returns the title position relative to the block origin
// as of the last [Block.Layout].
func (b *Block) TitlePosition() geometry.Point { return b.titlePos }

// InteractionRegion returns (0, 0, width, height).
func (b *Block) InteractionRegion() geometry.Rect {
	return geometry.Rect{W: b.width, H: b.height}
}

// Appearance returns the block's render tokens.
func (b *Block) Appearance() Appearance {
	pal := PaletteFor(b.mode)
	a := Appearance{
		ID:           b.id,
		Kind:         KindBlock,
		Mode:         b.mode,
		Selected:     b.selected,
		Flipped:      b.flipped,
		Z:            b.z,
		Bounds:       b.Bounds(),
		Region:       b.InteractionRegion().Translate(b.pos),
		Fill:         pal.Fill,
		Outline:      pal.Outline,
		Thickness:    DefaultThickness,
		CornerRadius: b.params.CornerRadius,
		Title:        b.title,
		TitlePos:     b.pos.Add(b.titlePos),
		TitleColor:   pal.Title,
		Icon:         b.icon,
		Inputs:       portPositions(b.inputs),
		Outputs:      portPositions(b.outputs),
	}
	if b.selected {
		a.Outline = SelectedOutline
		a.Thickness = SelectedThickness
	}
	if !b.icon.IsZero() {
		w, h := b.icon.scaled()
		a.IconRect = geometry.Rect{
			X: b.pos.X + (b.width-w)/2,
			Y: b.pos.Y + (b.height-h)/2,
			W: w,
			H: h,
		}
	}
	return a
}

func portPositions(ports []*Port) []geometry.Point {
	out := make([]geometry.Point, len(ports))
	for i, p := range ports {
		out[i] = p.Position()
	}
	return out
}
