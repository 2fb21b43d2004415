package scene

import (
	"time"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/observability"
	"github.com/matzehuels/blockdiag/pkg/render"
)

// NeedsRepaint reports whether anything changed since the last frame.
func (s *Scene) NeedsRepaint() bool { return s.changed }

// Frame resolves deferred layout and returns the current render tokens
// without sending them anywhere.
func (s *Scene) Frame() render.Frame {
	for _, e := range s.entities {
		if e.Dirty() {
			e.Layout(s.opts.Measurer)
		}
	}

	f := render.Frame{
		Seq:      s.seq,
		Bounds:   s.constraints.Bounds,
		Grid:     s.constraints.Grid,
		Mode:     s.mode,
		Entities: make([]block.Appearance, 0, len(s.entities)),
	}
	for _, e := range s.entities {
		f.Entities = append(f.Entities, e.Appearance())
	}
	for _, w := range s.wires.Wires() {
		f.Wires = append(f.Wires, render.Wire{
			ID:   w.ID,
			From: w.From.String(),
			To:   w.To.String(),
			Path: w.Path(),
		})
	}
	return f
}

// Repaint sends the current frame to the sink and clears the change flag.
func (s *Scene) Repaint() error {
	start := time.Now()
	s.seq++
	f := s.Frame()
	err := s.opts.Sink.Paint(f)
	s.changed = false

	observability.Scene().OnRepaint(len(f.Entities), len(f.Wires), time.Since(start), err)
	if err != nil {
		s.logger.Warn("repaint failed", "seq", f.Seq, "err", err)
		return err
	}
	s.logger.Debug("repainted", "seq", f.Seq, "entities", len(f.Entities), "wires", len(f.Wires))
	return nil
}
