package scene

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/observability"
	"github.com/matzehuels/blockdiag/pkg/wire"
)

// Scene owns the entities and wires of one canvas.
type Scene struct {
	opts        Options
	logger      *log.Logger
	constraints geometry.Constraints
	mode        block.Mode

	entities []block.Entity // Back to front
	byID     map[string]block.Entity
	wires    *wire.Synchronizer
	topZ     int

	drag    *drag
	seq     int
	changed bool
	fault   error // First failed resync since the last report
}

// New creates an empty scene.
func New(opts Options) (*Scene, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Scene{
		opts:        opts,
		logger:      opts.Logger,
		constraints: opts.constraints(),
		mode:        opts.Mode,
		byID:        make(map[string]block.Entity),
		wires:       wire.NewSynchronizer(),
		changed:     true,
	}, nil
}

// =============================================================================
// Stage
// =============================================================================

// Constraints returns the canvas constraints entities are placed under.
func (s *Scene) Constraints() geometry.Constraints { return s.constraints }

// Moved resynchronizes the wires of e. When e is selected the wires of every
// other selected entity are resynced too, and during a drag of e those
// entities first follow it by the distance e actually moved. An unselected
// entity is dragged alone.
func (s *Scene) Moved(e block.Entity, from geometry.Point) {
	delta := e.Position().Sub(from)
	followers := 0
	if e.Selected() && s.drag != nil && s.drag.id == e.ID() && !delta.IsZero() {
		followers = s.follow(e, delta)
	}

	s.resync(e)
	if e.Selected() {
		for _, o := range s.entities {
			if o != e && o.Selected() {
				s.resync(o)
			}
		}
	}
	s.changed = true

	s.logger.Debug("moved", "id", e.ID(), "from", from, "to", e.Position(), "followers", followers)
}

// follow moves every other selected entity by delta, each under the canvas
// constraints. Wires are resynced by the caller.
func (s *Scene) follow(lead block.Entity, delta geometry.Point) int {
	quiet := quietStage{c: s.constraints}
	n := 0
	for _, o := range s.entities {
		if o == lead || !o.Selected() {
			continue
		}
		o.Move(o.Position().Add(delta), quiet)
		n++
	}
	return n
}

// quietStage constrains without notifying; used for followers and bulk
// re-placement, which resync once afterwards.
type quietStage struct{ c geometry.Constraints }

func (q quietStage) Constraints() geometry.Constraints { return q.c }
func (quietStage) Moved(block.Entity, geometry.Point)   {}

// resync recomputes the wire endpoints of e. A dangling wire is kept as the
// scene's fault until [Scene.takeFault] reports it.
func (s *Scene) resync(e block.Entity) {
	n, err := s.wires.Sync(e.ID())
	observability.Scene().OnResync(e.ID(), n, err)
	if err != nil {
		s.logger.Error("resync failed", "id", e.ID(), "err", err)
		if s.fault == nil {
			s.fault = err
		}
	}
}

// takeFault returns and clears the recorded resync failure.
func (s *Scene) takeFault() error {
	err := s.fault
	s.fault = nil
	return err
}

// =============================================================================
// Entities
// =============================================================================

// Add places e on the scene in the scene's color mode, constrained to the
// canvas and raised to the front.
func (s *Scene) Add(e block.Entity) error {
	if e == nil {
		return errors.New(errors.ErrCodeInvalidInput, "entity must not be nil")
	}
	if e.Destroyed() {
		return errors.New(errors.ErrCodeInvalidInput, "entity %s was destroyed", e.ID())
	}
	if _, ok := s.byID[e.ID()]; ok {
		return errors.New(errors.ErrCodeDuplicateID, "entity %s already exists", e.ID())
	}
	if err := e.SetColorMode(s.mode); err != nil {
		return err
	}

	e.Move(e.Position(), quietStage{c: s.constraints})
	s.entities = append(s.entities, e)
	s.byID[e.ID()] = e
	s.raise(e)
	s.changed = true

	s.logger.Debug("added", "kind", e.Kind(), "id", e.ID(), "at", e.Position())
	return nil
}

// AddBlock creates a block from spec and adds it. An empty ID is generated;
// zero params take the scene's block params.
func (s *Scene) AddBlock(spec block.Spec) (*block.Block, error) {
	if spec.ID == "" {
		spec.ID = s.opts.IDs("block")
	}
	if spec.Params == (geometry.Params{}) {
		spec.Params = s.opts.BlockParams
	}
	b, err := block.New(spec)
	if err != nil {
		return nil, err
	}
	if err := s.Add(b); err != nil {
		return nil, err
	}
	return b, nil
}

// AddConnector creates a selected connector at the given point and adds it.
func (s *Scene) AddConnector(at geometry.Point) (*block.Connector, error) {
	return s.addConnector(s.opts.IDs("connector"), at)
}

// AddConnectorID is AddConnector with a caller-chosen ID.
func (s *Scene) AddConnectorID(id string, at geometry.Point) (*block.Connector, error) {
	return s.addConnector(id, at)
}

func (s *Scene) addConnector(id string, at geometry.Point) (*block.Connector, error) {
	c, err := block.NewConnector(block.ConnectorSpec{
		ID:              id,
		Position:        at,
		SocketWidth:     s.opts.SocketWidth,
		InternalPadding: s.opts.InternalPadding,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Entity returns the entity with the given ID.
func (s *Scene) Entity(id string) (block.Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

func (s *Scene) lookup(id string) (block.Entity, error) {
	e, ok := s.byID[id]
	if !ok {
		return nil, errors.NotFound("entity", id)
	}
	return e, nil
}

// Entities returns the entities back to front.
func (s *Scene) Entities() []block.Entity {
	return slices.Clone(s.entities)
}

// Len returns the number of entities.
func (s *Scene) Len() int { return len(s.entities) }

// Remove destroys the entity after removing its wires. Connectors left
// without one of their wires are removed as well.
func (s *Scene) Remove(id string) error {
	if _, err := s.lookup(id); err != nil {
		return err
	}
	s.remove(id)
	s.changed = true
	return nil
}

func (s *Scene) remove(id string) {
	e, ok := s.byID[id]
	if !ok {
		return
	}
	// Unregister first so connector cascades cannot come back here.
	delete(s.byID, id)
	s.entities = slices.DeleteFunc(s.entities, func(x block.Entity) bool { return x == e })
	if s.drag != nil && s.drag.id == id {
		s.drag = nil
	}

	gone := s.wires.Detach(id)
	e.Destroy()
	s.logger.Debug("removed", "kind", e.Kind(), "id", id, "wires", len(gone))

	s.orphanConnectors(gone)
}

// orphanConnectors removes every connector at the far end of the given
// wires: a connector only exists to route one wire.
func (s *Scene) orphanConnectors(gone []*wire.Wire) {
	for _, w := range gone {
		for _, p := range []*block.Port{w.From, w.To} {
			if e, ok := s.byID[p.OwnerID()]; ok && e.Kind() == block.KindConnector {
				s.remove(e.ID())
			}
		}
	}
}

// SetPortCounts changes an entity's port counts, drops wires on removed
// ports and resyncs the rest.
func (s *Scene) SetPortCounts(id string, inputs, outputs int) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	if err := e.SetPortCounts(inputs, outputs); err != nil {
		return err
	}
	gone := s.wires.DetachPorts(id, (*block.Port).Detached)
	s.orphanConnectors(gone)
	s.reconstrain(e)
	s.changed = true
	return s.takeFault()
}

// SetTitle changes a block's title. Layout happens on the next repaint.
func (s *Scene) SetTitle(id, title string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	if err := e.SetTitle(title); err != nil {
		return err
	}
	s.changed = true
	return nil
}

// SetIcon replaces a block's icon. Connectors carry no icon.
func (s *Scene) SetIcon(id string, icon block.Icon) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	b, ok := e.(*block.Block)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "%s %s has no icon", e.Kind(), id)
	}
	b.SetIcon(icon)
	s.changed = true
	return nil
}

// Flip swaps an entity's input and output sides and resyncs its wires.
func (s *Scene) Flip(id string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.Flip()
	s.resync(e)
	s.changed = true
	return s.takeFault()
}

// MoveEntity moves an entity as a drag would, without followers, and
// returns its final position.
func (s *Scene) MoveEntity(id string, target geometry.Point) (geometry.Point, error) {
	e, err := s.lookup(id)
	if err != nil {
		return geometry.Point{}, err
	}
	p := e.Move(target, s)
	return p, s.takeFault()
}

// reconstrain re-places e after a size change and resyncs its wires.
func (s *Scene) reconstrain(e block.Entity) {
	e.Move(e.Position(), quietStage{c: s.constraints})
	s.resync(e)
}

// =============================================================================
// Selection and z-order
// =============================================================================

// Select sets an entity's selection flag. Selecting raises it.
func (s *Scene) Select(id string, selected bool) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.SetSelected(selected)
	if selected {
		s.raise(e)
	}
	s.changed = true
	return nil
}

// ClearSelection deselects everything and reports whether anything changed.
func (s *Scene) ClearSelection() bool {
	changed := false
	for _, e := range s.entities {
		if e.Selected() {
			e.SetSelected(false)
			changed = true
		}
	}
	s.changed = s.changed || changed
	return changed
}

// Selected returns the selected entities back to front.
func (s *Scene) Selected() []block.Entity {
	var out []block.Entity
	for _, e := range s.entities {
		if e.Selected() {
			out = append(out, e)
		}
	}
	return out
}

// Raise brings an entity to the front.
func (s *Scene) Raise(id string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	s.raise(e)
	s.changed = true
	return nil
}

func (s *Scene) raise(e block.Entity) {
	s.topZ++
	e.SetZ(s.topZ)
	i := slices.Index(s.entities, e)
	if i < 0 || i == len(s.entities)-1 {
		return
	}
	s.entities = append(slices.Delete(s.entities, i, i+1), e)
}

// HitTest returns the front-most entity whose interaction region contains p.
func (s *Scene) HitTest(p geometry.Point) (block.Entity, bool) {
	for i := len(s.entities) - 1; i >= 0; i-- {
		e := s.entities[i]
		if e.InteractionRegion().Translate(e.Position()).Contains(p) {
			return e, true
		}
	}
	return nil, false
}

// =============================================================================
// Canvas
// =============================================================================

// Mode returns the current color mode.
func (s *Scene) Mode() block.Mode { return s.mode }

// SetMode switches every entity to m. Unsupported modes are logged and
// rejected with INVALID_MODE; nothing changes.
func (s *Scene) SetMode(m block.Mode) error {
	if !m.Valid() {
		err := errors.InvalidMode(string(m))
		s.logger.Warn("color mode rejected", "mode", string(m))
		return err
	}
	for _, e := range s.entities {
		// Valid modes cannot fail.
		_ = e.SetColorMode(m)
	}
	s.mode = m
	s.changed = true
	return nil
}

// Bounds returns the canvas rectangle.
func (s *Scene) Bounds() geometry.Rect { return s.constraints.Bounds }

// SetBounds resizes the canvas, re-places every entity inside it and
// resyncs all wires.
func (s *Scene) SetBounds(r geometry.Rect) error {
	r = r.Normalized()
	if r.W <= 0 || r.H <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas bounds must have positive size, got %v", r)
	}
	s.constraints.Bounds = r
	quiet := quietStage{c: s.constraints}
	for _, e := range s.entities {
		e.Move(e.Position(), quiet)
	}
	if err := s.wires.SyncAll(); err != nil {
		return err
	}
	s.changed = true
	s.logger.Debug("canvas resized", "bounds", r, "entities", len(s.entities))
	return nil
}

// Validate checks the ownership invariants: every wire references live
// entities held by this scene.
func (s *Scene) Validate() error {
	if err := s.wires.Validate(); err != nil {
		return err
	}
	for _, w := range s.wires.Wires() {
		for _, p := range []*block.Port{w.From, w.To} {
			if _, ok := s.byID[p.OwnerID()]; !ok {
				return errors.DanglingWire(w.ID, p.OwnerID())
			}
		}
	}
	return nil
}
