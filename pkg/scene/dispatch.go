package scene

import (
	"context"
	"time"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/observability"
)

// drag is the state between a press on an entity and the release.
type drag struct {
	id   string
	grab geometry.Point // Pointer minus entity position at press
	// collapse is set when a plain left press hit an already selected
	// block: the selection shrinks to that block if no move follows.
	collapse bool
	moved    bool
}

// Dragging returns the ID of the entity being dragged, if any.
func (s *Scene) Dragging() (string, bool) {
	if s.drag == nil {
		return "", false
	}
	return s.drag.id, true
}

// Dispatch handles one event and repaints if it changed anything. A wire
// left dangling by the event is returned as DANGLING_WIRE before any repaint.
func (s *Scene) Dispatch(ev Event) error {
	switch ev.Kind {
	case Press:
		s.press(ev)
	case Move:
		s.move(ev)
	case Release:
		s.release(ev)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown event kind %d", int(ev.Kind))
	}
	if err := s.takeFault(); err != nil {
		return err
	}
	if !s.changed {
		return nil
	}
	return s.Repaint()
}

// Run dispatches events in order until the channel is closed or ctx is
// done. Errors from a single event are logged and the loop continues,
// except DANGLING_WIRE which stops it.
func (s *Scene) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := s.Dispatch(ev); err != nil {
				if errors.Is(err, errors.ErrCodeDanglingWire) {
					return err
				}
				s.logger.Warn("event failed", "event", ev, "err", err)
			}
		}
	}
}

func (s *Scene) press(ev Event) {
	target, hit := s.HitTest(ev.At)
	id := ""
	if hit {
		id = target.ID()
	}
	observability.Scene().OnPress(id, ev.Button.String())

	if !hit {
		s.drag = nil
		if ev.Button == Left && !ev.Toggle {
			s.ClearSelection()
		}
		return
	}

	wasSelected := target.Selected()
	s.raise(target)
	s.changed = true

	if target.Kind() == block.KindConnector {
		// Connectors only come to the front.
		if ev.Button == Left {
			s.drag = &drag{id: id, grab: ev.At.Sub(target.Position())}
		}
		return
	}

	switch ev.Button {
	case Left:
		collapse := false
		switch {
		case ev.Toggle:
			target.SetSelected(!wasSelected)
		case wasSelected:
			collapse = true
		default:
			s.ClearSelection()
			target.SetSelected(true)
		}
		s.drag = &drag{id: id, grab: ev.At.Sub(target.Position()), collapse: collapse}
	case Right:
		if wasSelected {
			s.opts.ParamWindow.Toggle(id)
			s.logger.Debug("parameter window toggled", "id", id)
		}
	}
}

func (s *Scene) move(ev Event) {
	if s.drag == nil {
		return
	}
	e, ok := s.byID[s.drag.id]
	if !ok {
		s.drag = nil
		return
	}

	start := time.Now()
	e.Move(ev.At.Sub(s.drag.grab), s)
	s.drag.moved = true

	followers := 0
	if e.Selected() {
		followers = len(s.Selected()) - 1
	}
	observability.Scene().OnMove(e.ID(), followers, time.Since(start))
}

func (s *Scene) release(Event) {
	d := s.drag
	s.drag = nil
	if d == nil || !d.collapse || d.moved {
		return
	}
	e, ok := s.byID[d.id]
	if !ok {
		return
	}
	for _, o := range s.entities {
		if o != e && o.Selected() {
			o.SetSelected(false)
			s.changed = true
		}
	}
}
