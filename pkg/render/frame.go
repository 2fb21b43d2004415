package render

import (
	"slices"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/geometry"
)

// Frame is one repaint request's worth of render tokens.
type Frame struct {
	Seq      int // Increases by one per repaint of a scene
	Bounds   geometry.Rect
	Grid     float64
	Mode     block.Mode
	Entities []block.Appearance // Back to front
	Wires    []Wire
}

// Wire is the drawable form of a wire.
type Wire struct {
	ID   string
	From string // Output port, as "entity.out[i]"
	To   string // Input port, as "entity.in[i]"
	Path []geometry.Point
}

// Entity returns the appearance of the entity with the given ID.
func (f Frame) Entity(id string) (block.Appearance, bool) {
	i := slices.IndexFunc(f.Entities, func(a block.Appearance) bool { return a.ID == id })
	if i < 0 {
		return block.Appearance{}, false
	}
	return f.Entities[i], true
}

// Extent returns the smallest rectangle holding the canvas and everything
// drawn on it, including titles hanging below blocks.
func (f Frame) Extent() geometry.Rect {
	r := f.Bounds
	for _, a := range f.Entities {
		r = r.Union(a.Bounds)
		if a.Title != "" {
			r = r.Union(geometry.Rect{X: a.TitlePos.X, Y: a.TitlePos.Y, H: TitleLineHeight})
		}
	}
	for _, w := range f.Wires {
		for _, p := range w.Path {
			r = r.Union(geometry.Rect{X: p.X, Y: p.Y})
		}
	}
	return r
}

// Sink receives frames from a scene.
type Sink interface {
	Paint(f Frame) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(Frame) error

// Paint calls fn(f).
func (fn SinkFunc) Paint(f Frame) error { return fn(f) }

// Discard is a Sink that drops every frame.
var Discard Sink = SinkFunc(func(Frame) error { return nil })

// Tee returns a Sink that paints every frame into each of sinks in order,
// stopping at the first error.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(f Frame) error {
		for _, s := range sinks {
			if err := s.Paint(f); err != nil {
				return err
			}
		}
		return nil
	})
}

// Recorder is a Sink that keeps every frame it receives. The zero value is
// ready to use.
type Recorder struct {
	frames []Frame
}

// Paint appends f.
func (r *Recorder) Paint(f Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

// Frames returns the recorded frames in order.
func (r *Recorder) Frames() []Frame { return r.frames }

// Len returns the number of recorded frames.
func (r *Recorder) Len() int { return len(r.frames) }

// Last returns the most recent frame, or the zero Frame if none arrived.
func (r *Recorder) Last() Frame {
	if len(r.frames) == 0 {
		return Frame{}
	}
	return r.frames[len(r.frames)-1]
}

// Reset drops all recorded frames.
func (r *Recorder) Reset() { r.frames = nil }
