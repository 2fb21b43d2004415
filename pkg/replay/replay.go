package replay

import (
	"context"
	"fmt"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/scene"
	"github.com/matzehuels/blockdiag/pkg/wire"
)

// Build creates the starting scene. Canvas and mode in the fixture override
// the matching fields of opts.
func (sc *Scenario) Build(opts scene.Options) (*scene.Scene, error) {
	if c := sc.Canvas; c != nil {
		opts.Bounds = geometry.Rect{W: c.Width, H: c.Height}
		if c.Grid != 0 {
			opts.Grid = c.Grid
		}
		if c.Margin != 0 {
			opts.Margin = c.Margin
		}
	}
	if sc.Mode != "" {
		m, err := block.ParseMode(sc.Mode)
		if err != nil {
			return nil, err
		}
		opts.Mode = m
	}

	s, err := scene.New(opts)
	if err != nil {
		return nil, err
	}

	for _, d := range sc.Blocks {
		_, err := s.AddBlock(block.Spec{
			ID:       d.ID,
			Title:    d.Title,
			Width:    d.Width,
			Height:   d.Height,
			Inputs:   d.Inputs,
			Outputs:  d.Outputs,
			Icon:     block.Icon{Ref: d.Icon},
			Position: geometry.Point{X: d.X, Y: d.Y},
		})
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", d.ID, err)
		}
		if d.Flipped {
			if err := s.Flip(d.ID); err != nil {
				return nil, err
			}
		}
	}
	for _, d := range sc.Connectors {
		if _, err := s.AddConnectorID(d.ID, geometry.Point{X: d.X, Y: d.Y}); err != nil {
			return nil, fmt.Errorf("connector %s: %w", d.ID, err)
		}
	}
	for _, d := range sc.Wires {
		var (
			w   *wire.Wire
			err error
		)
		if d.ID == "" {
			w, err = s.Connect(d.From, d.Out, d.To, d.In)
		} else {
			w, err = s.ConnectID(d.ID, d.From, d.Out, d.To, d.In)
		}
		if err == nil && len(d.Via) > 0 {
			err = s.SetWaypoints(w.ID, points(d.Via))
		}
		if err != nil {
			return nil, fmt.Errorf("wire %s.out[%d] -> %s.in[%d]: %w", d.From, d.Out, d.To, d.In, err)
		}
	}

	s.ClearSelection()
	for _, id := range sc.Select {
		if err := s.Select(id, true); err != nil {
			return nil, err
		}
	}
	if err := s.Repaint(); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply runs the steps in order. It stops at the first step that fails
// unexpectedly, or when ctx is done.
func (sc *Scenario) Apply(ctx context.Context, s *scene.Scene) error {
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := apply(s, st)
		switch {
		case st.Error != "":
			if !errors.Is(err, errors.Code(st.Error)) {
				return fmt.Errorf("step %d (%s): want %s error, got %v", i+1, st.Kind, st.Error, err)
			}
		case err != nil:
			return fmt.Errorf("step %d (%s): %w", i+1, st.Kind, err)
		}
	}
	return nil
}

// Run builds the scene and applies the steps.
func (sc *Scenario) Run(ctx context.Context, opts scene.Options) (*scene.Scene, error) {
	s, err := sc.Build(opts)
	if err != nil {
		return nil, err
	}
	return s, sc.Apply(ctx, s)
}

func apply(s *scene.Scene, st Step) error {
	at := geometry.Point{X: st.X, Y: st.Y}

	var err error
	switch st.Kind {
	case "press", "move", "release":
		ev, perr := st.Event()
		if perr != nil {
			return perr
		}
		return s.Dispatch(ev)
	case StepMode:
		m, perr := block.ParseMode(st.Value)
		if perr != nil {
			m = block.Mode(st.Value)
		}
		err = s.SetMode(m)
	case StepFlip:
		err = s.Flip(st.Target)
	case StepTitle:
		err = s.SetTitle(st.Target, st.Value)
	case StepPorts:
		err = s.SetPortCounts(st.Target, st.Inputs, st.Outputs)
	case StepRemove:
		err = s.Remove(st.Target)
	case StepUnwire:
		err = s.RemoveWire(st.Target)
	case StepSplit:
		_, err = s.SplitWire(st.Target, at)
	case StepRoute:
		err = s.SetWaypoints(st.Target, points(st.Via))
	case StepIcon:
		err = s.SetIcon(st.Target, block.Icon{Ref: st.Value})
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown step kind %q", st.Kind)
	}
	if err != nil {
		return err
	}
	if s.NeedsRepaint() {
		return s.Repaint()
	}
	return nil
}

// Event converts a pointer step to a scene event.
func (st Step) Event() (scene.Event, error) {
	kind, err := scene.ParseEventKind(st.Kind)
	if err != nil {
		return scene.Event{}, err
	}
	btn, err := scene.ParseButton(st.Button)
	if err != nil {
		return scene.Event{}, err
	}
	return scene.Event{Kind: kind, At: geometry.Point{X: st.X, Y: st.Y}, Button: btn, Toggle: st.Toggle}, nil
}
