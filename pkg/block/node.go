package block

import (
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
)

// node is the state shared by blocks and connectors.
type node struct {
	self Entity

	id     string
	title  string
	params geometry.Params
	width  float64
	height float64
	pos    geometry.Point

	inputs  []*Port
	outputs []*Port

	selected  bool
	flipped   bool
	destroyed bool
	mode      Mode
	z         int

	titleWidth int
	titlePos   geometry.Point // Relative to pos
	dirty      bool
}

func newNode(id string, p geometry.Params, inputs, outputs int) node {
	return node{
		id:      id,
		params:  p,
		width:   p.DefaultWidth,
		height:  p.DefaultHeight,
		mode:    Light,
		inputs:  makePorts(nil, inputs, In),
		outputs: makePorts(nil, outputs, Out),
		dirty:   true,
	}
}

// bind wires the back references once the enclosing entity exists.
func (n *node) bind(self Entity) {
	n.self = self
	for _, p := range n.inputs {
		p.owner = n
	}
	for _, p := range n.outputs {
		p.owner = n
	}
	n.resize()
}

// ID returns the entity's identifier.
func (n *node) ID() string { return n.id }

// Title returns the entity's title.
func (n *node) Title() string { return n.title }

// Position returns the top-left corner in scene coordinates.
func (n *node) Position() geometry.Point { return n.pos }

// Size returns the current width and height.
func (n *node) Size() (w, h float64) { return n.width, n.height }

// Bounds returns the outline rectangle in scene coordinates.
func (n *node) Bounds() geometry.Rect {
	return geometry.Rect{X: n.pos.X, Y: n.pos.Y, W: n.width, H: n.height}
}

// Params returns the parameters the layout is computed from.
func (n *node) Params() geometry.Params { return n.params }

func (n *node) Selected() bool     { return n.selected }
func (n *node) SetSelected(s bool) { n.selected = s }
func (n *node) Z() int             { return n.z }
func (n *node) SetZ(z int)         { n.z = z }
func (n *node) Mode() Mode         { return n.mode }
func (n *node) Flipped() bool      { return n.flipped }
func (n *node) Destroyed() bool    { return n.destroyed }
func (n *node) Dirty() bool        { return n.dirty }

// Inputs returns the input ports in index order.
func (n *node) Inputs() []*Port { return n.inputs }

// Outputs returns the output ports in index order.
func (n *node) Outputs() []*Port { return n.outputs }

// Input returns input port i.
func (n *node) Input(i int) (*Port, error) {
	if i < 0 || i >= len(n.inputs) {
		return nil, errors.InvalidPortIndex("%s has %d inputs, no input %d", n.id, len(n.inputs), i)
	}
	return n.inputs[i], nil
}

// Output returns output port i.
func (n *node) Output(i int) (*Port, error) {
	if i < 0 || i >= len(n.outputs) {
		return nil, errors.InvalidPortIndex("%s has %d outputs, no output %d", n.id, len(n.outputs), i)
	}
	return n.outputs[i], nil
}

// SetColorMode switches the palette. Unsupported modes are rejected with
// INVALID_MODE and leave the entity untouched.
func (n *node) SetColorMode(m Mode) error {
	if !m.Valid() {
		return errors.InvalidMode(string(m))
	}
	n.mode = m
	return nil
}

// Flip swaps the input and output sides.
func (n *node) Flip() { n.flipped = !n.flipped }

// Destroy marks the entity and its ports as gone. It is idempotent.
func (n *node) Destroy() {
	n.destroyed = true
	n.selected = false
}

// Constrain snaps target to the grid and clamps it into the canvas,
// reserving the title band below the entity.
func (n *node) Constrain(target geometry.Point, c geometry.Constraints) geometry.Point {
	return c.Place(target, n.width, n.height, n.params.TitleHeight)
}

// Move places the entity at the constrained target and tells s, which
// resynchronizes the wires. A nil Stage places the entity unconstrained
// without notification. The final position is returned.
func (n *node) Move(target geometry.Point, s Stage) geometry.Point {
	if s == nil {
		n.pos = target
		return n.pos
	}
	from := n.pos
	n.pos = n.Constrain(target, s.Constraints())
	s.Moved(n.self, from)
	return n.pos
}

// Place sets the position directly, bypassing constraints.
func (n *node) Place(p geometry.Point) { n.pos = p }

// resize recomputes height and port offsets from the current port counts.
// It is idempotent.
func (n *node) resize() {
	l := geometry.Compute(n.params, len(n.inputs), len(n.outputs))
	n.height = l.Height
	for i, p := range n.inputs {
		p.offset = l.Inputs[i]
	}
	for i, p := range n.outputs {
		p.offset = l.Outputs[i]
	}
	n.dirty = true
}

// setPortCounts grows or shrinks the port columns, keeping existing ports so
// that wires stay attached, then resizes. Dropped ports are detached.
func (n *node) setPortCounts(inputs, outputs int) error {
	if inputs < 0 || outputs < 0 {
		return errors.InvalidPortIndex("port counts must be non-negative, got %d/%d", inputs, outputs)
	}
	n.inputs = resizePorts(n, n.inputs, inputs, In)
	n.outputs = resizePorts(n, n.outputs, outputs, Out)
	n.resize()
	return nil
}

func makePorts(owner *node, count int, dir Direction) []*Port {
	ports := make([]*Port, count)
	for i := range ports {
		ports[i] = &Port{owner: owner, index: i, dir: dir}
	}
	return ports
}

func resizePorts(owner *node, ports []*Port, count int, dir Direction) []*Port {
	if count <= len(ports) {
		for _, p := range ports[count:] {
			p.detached = true
		}
		return ports[:count:count]
	}
	extra := makePorts(owner, count-len(ports), dir)
	for i, p := range extra {
		p.index = len(ports) + i
	}
	return append(ports, extra...)
}
