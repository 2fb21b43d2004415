package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/fonts"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/render"
)

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	grid    bool
	sockets bool
	regions bool
	padding float64
}

// WithGrid draws a dot at every grid intersection inside the canvas.
func WithGrid() Option { return func(r *renderer) { r.grid = true } }

// WithSockets marks every port position with a small circle.
func WithSockets() Option { return func(r *renderer) { r.sockets = true } }

// WithRegions outlines each entity's interaction region with a dashed line.
func WithRegions() Option { return func(r *renderer) { r.regions = true } }

// WithPadding adds p pixels of margin around the drawing.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

// Render draws f as an SVG document.
func Render(f render.Frame, opts ...Option) []byte {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}

	view := f.Extent()
	view = geometry.Rect{
		X: view.X - r.padding,
		Y: view.Y - r.padding,
		W: view.W + 2*r.padding,
		H: view.H + 2*r.padding,
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="%s %s %s %s" width="%.0f" height="%.0f" data-seq="%d">`+"\n",
		num(view.X), num(view.Y), num(view.W), num(view.H), view.W, view.H, f.Seq)

	renderBackground(&buf, f, view)
	if r.grid {
		renderGrid(&buf, f)
	}
	for _, a := range f.Entities {
		renderEntity(&buf, a, r)
	}
	renderWires(&buf, f)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// =============================================================================
// Canvas
// =============================================================================

func renderBackground(buf *bytes.Buffer, f render.Frame, view geometry.Rect) {
	bg := render.Background(f.Mode)
	if bg == nil {
		return
	}
	fmt.Fprintf(buf, `  <rect class="background" x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(view.X), num(view.Y), num(view.W), num(view.H), render.CSSColor(bg))
}

func renderGrid(buf *bytes.Buffer, f render.Frame) {
	c := render.GridColor(f.Mode)
	if c == nil || f.Grid <= 0 {
		return
	}
	b := f.Bounds.Normalized()
	x0 := geometry.Snap(b.X, f.Grid)
	y0 := geometry.Snap(b.Y, f.Grid)
	if x0 < b.X {
		x0 += f.Grid
	}
	if y0 < b.Y {
		y0 += f.Grid
	}

	fmt.Fprintf(buf, `  <g class="grid" fill="%s">`+"\n", render.CSSColor(c))
	for y := y0; y <= b.Bottom(); y += f.Grid {
		for x := x0; x <= b.Right(); x += f.Grid {
			fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="1"/>`+"\n", num(x), num(y))
		}
	}
	buf.WriteString("  </g>\n")
}

// =============================================================================
// Entities
// =============================================================================

func renderEntity(buf *bytes.Buffer, a block.Appearance, r renderer) {
	classes := []string{a.Kind.String()}
	if a.Selected {
		classes = append(classes, "selected")
	}
	if a.Flipped {
		classes = append(classes, "flipped")
	}
	fmt.Fprintf(buf, `  <g id="%s-%s" class="%s">`+"\n", a.Kind, escape(a.ID), strings.Join(classes, " "))

	if a.Fill != nil || a.Outline != nil {
		b := a.Bounds
		fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			num(b.X), num(b.Y), num(b.W), num(b.H),
			num(a.CornerRadius), num(a.CornerRadius),
			render.CSSColor(a.Fill), render.CSSColor(a.Outline), num(a.Thickness))
	}

	if !a.Icon.IsZero() {
		ir := a.IconRect
		fmt.Fprintf(buf, `    <image x="%s" y="%s" width="%s" height="%s" href="%s" preserveAspectRatio="xMidYMid meet"/>`+"\n",
			num(ir.X), num(ir.Y), num(ir.W), num(ir.H), escape(a.Icon.Ref))
	}

	if a.Title != "" && a.TitleColor != nil {
		fmt.Fprintf(buf, `    <text x="%s" y="%s" dominant-baseline="hanging" font-family="%s" font-size="%s" fill="%s">%s</text>`+"\n",
			num(a.TitlePos.X), num(a.TitlePos.Y), escape(fonts.FontFamily),
			num(fonts.DefaultSize), render.CSSColor(a.TitleColor), escape(a.Title))
	}

	if r.sockets {
		renderSockets(buf, "in", a.Inputs)
		renderSockets(buf, "out", a.Outputs)
	}

	if r.regions {
		g := a.Region
		fmt.Fprintf(buf, `    <rect class="region" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-dasharray="3 3"/>`+"\n",
			num(g.X), num(g.Y), num(g.W), num(g.H), render.CSSColor(render.GridColor(block.Light)))
	}

	buf.WriteString("  </g>\n")
}

func renderSockets(buf *bytes.Buffer, class string, ports []geometry.Point) {
	for _, p := range ports {
		fmt.Fprintf(buf, `    <circle class="socket %s" cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			class, num(p.X), num(p.Y), num(render.SocketRadius), render.CSSColor(render.SocketColor()))
	}
}

// =============================================================================
// Wires
// =============================================================================

func renderWires(buf *bytes.Buffer, f render.Frame) {
	if len(f.Wires) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g class="wires" fill="none" stroke="%s" stroke-width="%s" stroke-linejoin="round">`+"\n",
		render.CSSColor(render.WireColor(f.Mode)), num(render.WireThickness))
	for _, w := range f.Wires {
		pts := make([]string, len(w.Path))
		for i, p := range w.Path {
			pts[i] = num(p.X) + "," + num(p.Y)
		}
		fmt.Fprintf(buf, `    <polyline id="wire-%s" data-from="%s" data-to="%s" points="%s"/>`+"\n",
			escape(w.ID), escape(w.From), escape(w.To), strings.Join(pts, " "))
	}
	buf.WriteString("  </g>\n")
}

// =============================================================================
// Sink
// =============================================================================

// Sink writes every painted frame to W as a complete SVG document. Frames
// are separated by nothing; pair it with a writer that starts a new file per
// frame when a stream of standalone documents is needed.
type Sink struct {
	W    io.Writer
	Opts []Option
}

// NewSink returns a Sink writing to w.
func NewSink(w io.Writer, opts ...Option) *Sink {
	return &Sink{W: w, Opts: opts}
}

// Paint renders f and writes it.
func (s *Sink) Paint(f render.Frame) error {
	_, err := s.W.Write(Render(f, s.Opts...))
	return err
}

// =============================================================================
// Helpers
// =============================================================================

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// num prints v with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
