package block

import (
	"fmt"

	"github.com/matzehuels/blockdiag/pkg/geometry"
)

// Direction tells inputs from outputs.
type Direction int

const (
	In Direction = iota
	Out
)

func (d Direction) String() string {
	if d == Out {
		return "out"
	}
	return "in"
}

// Port is a connection point on an entity's edge. Ports are created and
// owned by their entity; wires only hold references to them.
//
// A port keeps a reference to its owner after the owner is destroyed or the
// port is dropped by [Block.SetPortCounts], so holders can detect that it
// went stale with [Port.Detached].
type Port struct {
	owner    *node
	index    int
	dir      Direction
	offset   float64
	detached bool
}

// Index returns the port's position in its column.
func (p *Port) Index() int { return p.index }

// Direction returns whether the port is an input or an output.
func (p *Port) Direction() Direction { return p.dir }

// Offset returns the vertical offset from the top of the owner.
func (p *Port) Offset() float64 { return p.offset }

// Owner returns the entity the port belongs to.
func (p *Port) Owner() Entity { return p.owner.self }

// OwnerID returns the ID of the owning entity.
func (p *Port) OwnerID() string { return p.owner.id }

// Detached reports whether the port no longer belongs to a live entity.
func (p *Port) Detached() bool { return p.detached || p.owner.destroyed }

// Position returns the absolute socket position. Inputs sit on the left
// edge and outputs on the right, swapped when the owner is flipped.
func (p *Port) Position() geometry.Point {
	n := p.owner
	x := 0.0
	if (p.dir == Out) != n.flipped {
		x = n.width
	}
	return n.pos.Add(geometry.Point{X: x, Y: p.offset})
}

func (p *Port) String() string {
	return fmt.Sprintf("%s.%s[%d]", p.owner.id, p.dir, p.index)
}
