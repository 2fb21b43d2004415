package block

import "github.com/matzehuels/blockdiag/pkg/geometry"

// Interactive is the pointer-facing side of an entity.
type Interactive interface {
	ID() string
	Position() geometry.Point
	Size() (w, h float64)

	// InteractionRegion returns the hit region relative to Position.
	InteractionRegion() geometry.Rect

	// Constrain returns where target would land under c, without moving.
	Constrain(target geometry.Point, c geometry.Constraints) geometry.Point

	// Move places the entity at the constrained target and notifies s.
	Move(target geometry.Point, s Stage) geometry.Point

	Selected() bool
	SetSelected(selected bool)
	Z() int
	SetZ(z int)
}

// Drawable is the render-facing side of an entity.
type Drawable interface {
	Appearance() Appearance
	Mode() Mode
	SetColorMode(m Mode) error

	// Dirty reports whether Layout must run before the next frame.
	Dirty() bool
	Layout(m Measurer)
}

// Entity is anything a scene holds: a [Block] or a [Connector].
type Entity interface {
	Interactive
	Drawable

	Kind() Kind
	Title() string
	SetTitle(title string) error

	Inputs() []*Port
	Outputs() []*Port
	Input(i int) (*Port, error)
	Output(i int) (*Port, error)
	SetPortCounts(inputs, outputs int) error

	Flipped() bool
	Flip()

	// Destroy marks the entity and all its ports as gone.
	Destroy()
	Destroyed() bool
}

// Stage is what a moving entity needs from the scene it lives on.
type Stage interface {
	// Constraints returns the current canvas constraints.
	Constraints() geometry.Constraints

	// Moved is called after e changed position from from. Implementations
	// resynchronize the wires of e. When e is selected and being dragged,
	// the rest of the selection follows and is resynchronized too.
	Moved(e Entity, from geometry.Point)
}

// Measurer measures the rendered pixel width of a title.
type Measurer interface {
	Width(text string) int
}

// MeasurerFunc adapts a function to [Measurer].
type MeasurerFunc func(text string) int

// Width calls f(text).
func (f MeasurerFunc) Width(text string) int { return f(text) }

var (
	_ Entity = (*Block)(nil)
	_ Entity = (*Connector)(nil)
)
