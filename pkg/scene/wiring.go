package scene

import (
	"slices"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/wire"
)

// Connect wires output outIdx of entity from to input inIdx of entity to.
func (s *Scene) Connect(from string, outIdx int, to string, inIdx int) (*wire.Wire, error) {
	return s.connect(s.opts.IDs("wire"), from, outIdx, to, inIdx)
}

// ConnectID is Connect with a caller-chosen wire ID.
func (s *Scene) ConnectID(id, from string, outIdx int, to string, inIdx int) (*wire.Wire, error) {
	return s.connect(id, from, outIdx, to, inIdx)
}

func (s *Scene) connect(id, from string, outIdx int, to string, inIdx int) (*wire.Wire, error) {
	src, err := s.lookup(from)
	if err != nil {
		return nil, err
	}
	dst, err := s.lookup(to)
	if err != nil {
		return nil, err
	}
	out, err := src.Output(outIdx)
	if err != nil {
		return nil, err
	}
	in, err := dst.Input(inIdx)
	if err != nil {
		return nil, err
	}
	w, err := wire.New(id, out, in)
	if err != nil {
		return nil, err
	}
	if err := s.wires.Add(w); err != nil {
		return nil, err
	}
	s.changed = true
	s.logger.Debug("connected", "wire", id, "from", out, "to", in)
	return w, nil
}

// RemoveWire deletes a wire. Connectors on either end are removed too.
func (s *Scene) RemoveWire(id string) error {
	w, err := s.wires.Remove(id)
	if err != nil {
		return err
	}
	s.orphanConnectors([]*wire.Wire{w})
	s.changed = true
	s.logger.Debug("wire removed", "wire", id)
	return nil
}

// SplitWire inserts a connector at the given point and reroutes the wire
// through it. The original wire is replaced by two new ones that share its
// waypoints around the split point; the connector is returned. IDs and ports
// are checked before anything changes, so a failed split leaves the scene
// as it was.
func (s *Scene) SplitWire(id string, at geometry.Point) (*block.Connector, error) {
	w, ok := s.wires.Get(id)
	if !ok {
		return nil, errors.NotFound("wire", id)
	}

	cid := s.opts.IDs("connector")
	inID, outID := s.opts.IDs("wire"), s.opts.IDs("wire")
	if err := s.checkSplitIDs(id, cid, inID, outID); err != nil {
		return nil, err
	}
	c, err := block.NewConnector(block.ConnectorSpec{
		ID:              cid,
		Position:        at,
		SocketWidth:     s.opts.SocketWidth,
		InternalPadding: s.opts.InternalPadding,
	})
	if err != nil {
		return nil, err
	}
	cin, err := c.Input(0)
	if err != nil {
		return nil, err
	}
	cout, err := c.Output(0)
	if err != nil {
		return nil, err
	}
	in, err := wire.New(inID, w.From, cin)
	if err != nil {
		return nil, err
	}
	out, err := wire.New(outID, cout, w.To)
	if err != nil {
		return nil, err
	}
	in.Waypoints, out.Waypoints = w.SplitAt(at)

	if err := s.Add(c); err != nil {
		return nil, err
	}
	s.wires.Remove(id)
	for _, x := range []*wire.Wire{in, out} {
		if err := s.wires.Add(x); err != nil {
			s.undoSplit(w, c, in)
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "split wire %s", id)
		}
	}
	s.changed = true
	s.logger.Debug("wire split", "wire", id, "connector", cid, "at", c.Position(), "into", []string{inID, outID})
	return c, nil
}

// checkSplitIDs rejects generated IDs that collide with existing ones. The
// wire being split gives up its ID, so a new wire may reuse it.
func (s *Scene) checkSplitIDs(old, cid, inID, outID string) error {
	if _, taken := s.byID[cid]; taken {
		return errors.New(errors.ErrCodeDuplicateID, "entity %s already exists", cid)
	}
	if inID == outID {
		return errors.New(errors.ErrCodeDuplicateID, "wire %s generated twice", inID)
	}
	for _, wid := range []string{inID, outID} {
		if _, taken := s.wires.Get(wid); taken && wid != old {
			return errors.New(errors.ErrCodeDuplicateID, "wire %s already exists", wid)
		}
	}
	return nil
}

// undoSplit restores w after a split failed half way.
func (s *Scene) undoSplit(w *wire.Wire, c *block.Connector, in *wire.Wire) {
	if x, ok := s.wires.Get(in.ID); ok && x == in {
		s.wires.Remove(in.ID)
	}
	delete(s.byID, c.ID())
	s.entities = slices.DeleteFunc(s.entities, func(e block.Entity) bool { return e == c })
	c.Destroy()
	if err := s.wires.Add(w); err != nil {
		s.logger.Error("restoring split wire failed", "wire", w.ID, "err", err)
	}
}

// SetWaypoints replaces the bend points of a wire. Each point is snapped to
// the grid; the endpoints stay on their sockets.
func (s *Scene) SetWaypoints(id string, pts []geometry.Point) error {
	w, ok := s.wires.Get(id)
	if !ok {
		return errors.NotFound("wire", id)
	}
	snapped := make([]geometry.Point, len(pts))
	for i, p := range pts {
		snapped[i] = s.constraints.Snap(p)
	}
	w.Waypoints = snapped
	s.changed = true
	return nil
}

// Wire returns the wire with the given ID.
func (s *Scene) Wire(id string) (*wire.Wire, bool) {
	return s.wires.Get(id)
}

// Wires returns all wires in creation order.
func (s *Scene) Wires() []*wire.Wire {
	return s.wires.Wires()
}

// WiresOf returns the wires touching an entity.
func (s *Scene) WiresOf(id string) []*wire.Wire {
	return s.wires.Touching(id)
}
