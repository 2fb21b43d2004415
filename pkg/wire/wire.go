package wire

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
)

// Wire is a directed connection from an output port to an input port.
type Wire struct {
	ID        string
	From      *block.Port // Output port
	To        *block.Port // Input port
	Waypoints []geometry.Point

	start, end geometry.Point
}

// New creates a wire from an output port to an input port. It returns
// INVALID_WIRE when the ports are missing or point the wrong way.
func New(id string, from, to *block.Port) (*Wire, error) {
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, errors.New(errors.ErrCodeInvalidWire, "wire %s: both ports are required", id)
	}
	if from.Direction() != block.Out {
		return nil, errors.New(errors.ErrCodeInvalidWire, "wire %s: %s is not an output", id, from)
	}
	if to.Direction() != block.In {
		return nil, errors.New(errors.ErrCodeInvalidWire, "wire %s: %s is not an input", id, to)
	}
	return &Wire{ID: id, From: from, To: to}, nil
}

// Start returns the cached position of the output end.
func (w *Wire) Start() geometry.Point { return w.start }

// End returns the cached position of the input end.
func (w *Wire) End() geometry.Point { return w.end }

// Path returns start, the waypoints and end in drawing order.
func (w *Wire) Path() []geometry.Point {
	path := make([]geometry.Point, 0, len(w.Waypoints)+2)
	path = append(path, w.start)
	path = append(path, w.Waypoints...)
	return append(path, w.end)
}

// SplitAt divides the waypoints at the path segment closest to p: the
// waypoints before that segment go to the part ending at p, the rest to the
// part starting there. Ties go to the earlier segment.
func (w *Wire) SplitAt(p geometry.Point) (before, after []geometry.Point) {
	path := w.Path()
	best, bestDist := 0, math.Inf(1)
	for i := 0; i+1 < len(path); i++ {
		if d := geometry.SegmentDistance(p, path[i], path[i+1]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return slices.Clone(w.Waypoints[:best]), slices.Clone(w.Waypoints[best:])
}

// Touches reports whether either end belongs to the entity with the given ID.
func (w *Wire) Touches(entityID string) bool {
	return w.From.OwnerID() == entityID || w.To.OwnerID() == entityID
}

// Other returns the entity ID at the opposite end from entityID.
func (w *Wire) Other(entityID string) string {
	if w.From.OwnerID() == entityID {
		return w.To.OwnerID()
	}
	return w.From.OwnerID()
}

func (w *Wire) String() string {
	return fmt.Sprintf("%s: %s -> %s", w.ID, w.From, w.To)
}

// sync recomputes the cached endpoints from the current port positions.
func (w *Wire) sync() error {
	for _, p := range []*block.Port{w.From, w.To} {
		if p.Detached() {
			return errors.DanglingWire(w.ID, p.OwnerID())
		}
	}
	w.start = w.From.Position()
	w.end = w.To.Position()
	return nil
}

// Synchronizer owns the set of wires on a scene and keeps their endpoints
// current. The zero value is not usable; call [NewSynchronizer].
type Synchronizer struct {
	wires   []*Wire
	byID    map[string]*Wire
	byInput map[*block.Port]*Wire
}

// NewSynchronizer creates an empty synchronizer.
func NewSynchronizer() *Synchronizer {
	return &Synchronizer{
		byID:    make(map[string]*Wire),
		byInput: make(map[*block.Port]*Wire),
	}
}

// Add registers w and computes its endpoints. It fails with DUPLICATE_ID for
// a reused ID and INVALID_WIRE for a stale port or an input that already
// carries a wire.
func (s *Synchronizer) Add(w *Wire) error {
	if w == nil || w.From == nil || w.To == nil {
		return errors.New(errors.ErrCodeInvalidWire, "wire must have both ports")
	}
	if _, ok := s.byID[w.ID]; ok {
		return errors.New(errors.ErrCodeDuplicateID, "wire %s already exists", w.ID)
	}
	if w.From.Detached() || w.To.Detached() {
		return errors.New(errors.ErrCodeInvalidWire, "wire %s: port no longer exists", w.ID)
	}
	if prev, ok := s.byInput[w.To]; ok {
		return errors.New(errors.ErrCodeInvalidWire, "input %s already driven by wire %s", w.To, prev.ID)
	}
	if err := w.sync(); err != nil {
		return err
	}

	s.wires = append(s.wires, w)
	s.byID[w.ID] = w
	s.byInput[w.To] = w
	return nil
}

// Remove unregisters the wire with the given ID and returns it.
func (s *Synchronizer) Remove(id string) (*Wire, error) {
	w, ok := s.byID[id]
	if !ok {
		return nil, errors.NotFound("wire", id)
	}
	s.drop(w)
	return w, nil
}

func (s *Synchronizer) drop(w *Wire) {
	delete(s.byID, w.ID)
	if s.byInput[w.To] == w {
		delete(s.byInput, w.To)
	}
	s.wires = slices.DeleteFunc(s.wires, func(x *Wire) bool { return x == w })
}

// Detach removes every wire touching the entity and returns them in
// insertion order.
func (s *Synchronizer) Detach(entityID string) []*Wire {
	gone := s.Touching(entityID)
	for _, w := range gone {
		s.drop(w)
	}
	return gone
}

// DetachPorts removes every wire attached to a port for which drop returns
// true, and returns them.
func (s *Synchronizer) DetachPorts(entityID string, drop func(*block.Port) bool) []*Wire {
	var gone []*Wire
	for _, w := range s.Touching(entityID) {
		if (w.From.OwnerID() == entityID && drop(w.From)) || (w.To.OwnerID() == entityID && drop(w.To)) {
			gone = append(gone, w)
		}
	}
	for _, w := range gone {
		s.drop(w)
	}
	return gone
}

// Get returns the wire with the given ID.
func (s *Synchronizer) Get(id string) (*Wire, bool) {
	w, ok := s.byID[id]
	return w, ok
}

// Into returns the wire driving input port p, if any.
func (s *Synchronizer) Into(p *block.Port) (*Wire, bool) {
	w, ok := s.byInput[p]
	return w, ok
}

// Wires returns all wires in insertion order.
func (s *Synchronizer) Wires() []*Wire {
	return slices.Clone(s.wires)
}

// Len returns the number of wires.
func (s *Synchronizer) Len() int { return len(s.wires) }

// Touching returns the wires with an end on the entity, in insertion order.
func (s *Synchronizer) Touching(entityID string) []*Wire {
	var out []*Wire
	for _, w := range s.wires {
		if w.Touches(entityID) {
			out = append(out, w)
		}
	}
	return out
}

// Sync recomputes the endpoints of every wire touching the entity and
// returns how many were updated. Wires with a dangling end are skipped and
// reported with DANGLING_WIRE once the rest are updated.
func (s *Synchronizer) Sync(entityID string) (int, error) {
	var (
		n        int
		firstErr error
	)
	for _, w := range s.wires {
		if !w.Touches(entityID) {
			continue
		}
		if err := w.sync(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		n++
	}
	return n, firstErr
}

// SyncAll recomputes the endpoints of every wire.
func (s *Synchronizer) SyncAll() error {
	var firstErr error
	for _, w := range s.wires {
		if err := w.sync(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Validate checks that no wire references a destroyed entity or a dropped
// port, without touching any endpoint.
func (s *Synchronizer) Validate() error {
	for _, w := range s.wires {
		for _, p := range []*block.Port{w.From, w.To} {
			if p.Detached() {
				return errors.DanglingWire(w.ID, p.OwnerID())
			}
		}
	}
	return nil
}
