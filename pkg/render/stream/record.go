package stream

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/render"
)

// Record is the serialized form of a [render.Frame].
type Record struct {
	Seq      int          `json:"seq" msgpack:"seq"`
	Bounds   [4]float64   `json:"bounds" msgpack:"bounds"` // x, y, w, h
	Grid     float64      `json:"grid" msgpack:"grid"`
	Mode     string       `json:"mode" msgpack:"mode"`
	Entities []EntityData `json:"entities" msgpack:"entities"`
	Wires    []WireData   `json:"wires,omitempty" msgpack:"wires,omitempty"`
}

// EntityData is the serialized form of a [block.Appearance].
type EntityData struct {
	ID           string       `json:"id" msgpack:"id"`
	Kind         string       `json:"kind" msgpack:"kind"`
	Selected     bool         `json:"selected,omitempty" msgpack:"selected,omitempty"`
	Flipped      bool         `json:"flipped,omitempty" msgpack:"flipped,omitempty"`
	Z            int          `json:"z" msgpack:"z"`
	Bounds       [4]float64   `json:"bounds" msgpack:"bounds"`
	Region       [4]float64   `json:"region" msgpack:"region"`
	Fill         string       `json:"fill,omitempty" msgpack:"fill,omitempty"`
	Outline      string       `json:"outline,omitempty" msgpack:"outline,omitempty"`
	Thickness    float64      `json:"thickness,omitempty" msgpack:"thickness,omitempty"`
	CornerRadius float64      `json:"corner_radius,omitempty" msgpack:"corner_radius,omitempty"`
	Title        string       `json:"title,omitempty" msgpack:"title,omitempty"`
	TitlePos     [2]float64   `json:"title_pos" msgpack:"title_pos"`
	TitleColor   string       `json:"title_color,omitempty" msgpack:"title_color,omitempty"`
	Icon         string       `json:"icon,omitempty" msgpack:"icon,omitempty"`
	IconRect     [4]float64   `json:"icon_rect,omitempty" msgpack:"icon_rect,omitempty"`
	Inputs       [][2]float64 `json:"inputs,omitempty" msgpack:"inputs,omitempty"`
	Outputs      [][2]float64 `json:"outputs,omitempty" msgpack:"outputs,omitempty"`
}

// WireData is the serialized form of a [render.Wire].
type WireData struct {
	ID   string       `json:"id" msgpack:"id"`
	From string       `json:"from" msgpack:"from"`
	To   string       `json:"to" msgpack:"to"`
	Path [][2]float64 `json:"path" msgpack:"path"`
}

// NewRecord converts f to its serialized form.
func NewRecord(f render.Frame) Record {
	r := Record{
		Seq:      f.Seq,
		Bounds:   rect(f.Bounds),
		Grid:     f.Grid,
		Mode:     string(f.Mode),
		Entities: make([]EntityData, len(f.Entities)),
	}
	for i, a := range f.Entities {
		r.Entities[i] = EntityData{
			ID:           a.ID,
			Kind:         a.Kind.String(),
			Selected:     a.Selected,
			Flipped:      a.Flipped,
			Z:            a.Z,
			Bounds:       rect(a.Bounds),
			Region:       rect(a.Region),
			Fill:         hex(a.Fill),
			Outline:      hex(a.Outline),
			Thickness:    a.Thickness,
			CornerRadius: a.CornerRadius,
			Title:        a.Title,
			TitlePos:     point(a.TitlePos),
			TitleColor:   hex(a.TitleColor),
			Icon:         a.Icon.Ref,
			IconRect:     rect(a.IconRect),
			Inputs:       points(a.Inputs),
			Outputs:      points(a.Outputs),
		}
	}
	for _, w := range f.Wires {
		r.Wires = append(r.Wires, WireData{ID: w.ID, From: w.From, To: w.To, Path: points(w.Path)})
	}
	return r
}

// Frame converts r back to a frame. Icon sizes are not carried.
func (r Record) Frame() (render.Frame, error) {
	mode, err := block.ParseMode(r.Mode)
	if err != nil {
		return render.Frame{}, err
	}
	f := render.Frame{
		Seq:      r.Seq,
		Bounds:   unrect(r.Bounds),
		Grid:     r.Grid,
		Mode:     mode,
		Entities: make([]block.Appearance, len(r.Entities)),
	}
	for i, e := range r.Entities {
		a := block.Appearance{
			ID:           e.ID,
			Kind:         block.KindBlock,
			Mode:         mode,
			Selected:     e.Selected,
			Flipped:      e.Flipped,
			Z:            e.Z,
			Bounds:       unrect(e.Bounds),
			Region:       unrect(e.Region),
			Thickness:    e.Thickness,
			CornerRadius: e.CornerRadius,
			Title:        e.Title,
			TitlePos:     geometry.Point{X: e.TitlePos[0], Y: e.TitlePos[1]},
			Icon:         block.Icon{Ref: e.Icon},
			IconRect:     unrect(e.IconRect),
			Inputs:       unpoints(e.Inputs),
			Outputs:      unpoints(e.Outputs),
		}
		if e.Kind == block.KindConnector.String() {
			a.Kind = block.KindConnector
		}
		if a.Fill, err = unhex(e.Fill); err != nil {
			return render.Frame{}, err
		}
		if a.Outline, err = unhex(e.Outline); err != nil {
			return render.Frame{}, err
		}
		if a.TitleColor, err = unhex(e.TitleColor); err != nil {
			return render.Frame{}, err
		}
		f.Entities[i] = a
	}
	for _, w := range r.Wires {
		f.Wires = append(f.Wires, render.Wire{ID: w.ID, From: w.From, To: w.To, Path: unpoints(w.Path)})
	}
	return f, nil
}

// =============================================================================
// Conversions
// =============================================================================

func rect(r geometry.Rect) [4]float64 { return [4]float64{r.X, r.Y, r.W, r.H} }

func unrect(v [4]float64) geometry.Rect {
	return geometry.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}
}

func point(p geometry.Point) [2]float64 { return [2]float64{p.X, p.Y} }

func points(ps []geometry.Point) [][2]float64 {
	if len(ps) == 0 {
		return nil
	}
	out := make([][2]float64, len(ps))
	for i, p := range ps {
		out[i] = point(p)
	}
	return out
}

func unpoints(vs [][2]float64) []geometry.Point {
	if len(vs) == 0 {
		return nil
	}
	out := make([]geometry.Point, len(vs))
	for i, v := range vs {
		out[i] = geometry.Point{X: v[0], Y: v[1]}
	}
	return out
}

// hex formats c as "#RRGGBBAA" (non-premultiplied). Nil is "".
func hex(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X%02X", n.R, n.G, n.B, n.A)
}

func unhex(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	var n color.NRGBA
	if len(s) != 9 || s[0] != '#' {
		return nil, errors.New(errors.ErrCodeInvalidInput, "stream: bad color %q", s)
	}
	if _, err := fmt.Sscanf(s, "#%02X%02X%02X%02X", &n.R, &n.G, &n.B, &n.A); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "stream: bad color %q", s)
	}
	return n, nil
}
