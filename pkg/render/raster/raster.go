package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/fonts"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/render"
)

// MaxPixels bounds the size of a rendered image.
const MaxPixels = 64 << 20

// Options configures [Render].
type Options struct {
	Scale   float64 // Pixels per scene unit; defaults to 1
	Padding float64 // Margin around the drawing in scene units
	Grid    bool    // Draw grid dots
	Sockets bool    // Mark port positions
	Face    *fonts.Face
}

// Render draws f into a new RGBA image.
func Render(f render.Frame, opts Options) (image.Image, error) {
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	if opts.Scale < 0 || math.IsNaN(opts.Scale) || math.IsInf(opts.Scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "raster: invalid scale %g", opts.Scale)
	}
	if opts.Face == nil {
		opts.Face = fonts.Default()
	}

	view := f.Extent()
	view = geometry.Rect{
		X: view.X - opts.Padding,
		Y: view.Y - opts.Padding,
		W: view.W + 2*opts.Padding,
		H: view.H + 2*opts.Padding,
	}
	w := int(math.Ceil(view.W * opts.Scale))
	h := int(math.Ceil(view.H * opts.Scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "raster: empty frame %v", view)
	}
	if w*h > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "raster: %dx%d image exceeds %d pixels", w, h, MaxPixels)
	}

	dc := gg.NewContext(w, h)
	if bg := render.Background(f.Mode); bg != nil {
		dc.SetColor(bg)
		dc.Clear()
	}
	dc.Scale(opts.Scale, opts.Scale)
	dc.Translate(-view.X, -view.Y)
	dc.SetFontFace(opts.Face.FontFace())

	if opts.Grid {
		drawGrid(dc, f)
	}
	for _, a := range f.Entities {
		drawEntity(dc, a, opts.Sockets)
	}
	drawWires(dc, f)

	return dc.Image(), nil
}

// PNG renders f and encodes it as PNG.
func PNG(f render.Frame, opts Options) ([]byte, error) {
	img, err := Render(f, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Sink writes each painted frame to W as a PNG image.
type Sink struct {
	W    io.Writer
	Opts Options
}

// Paint renders f and writes it.
func (s Sink) Paint(f render.Frame) error {
	data, err := PNG(f, s.Opts)
	if err != nil {
		return err
	}
	_, err = s.W.Write(data)
	return err
}

func drawGrid(dc *gg.Context, f render.Frame) {
	c := render.GridColor(f.Mode)
	if c == nil || f.Grid <= 0 {
		return
	}
	b := f.Bounds.Normalized()
	x0 := math.Ceil(b.X/f.Grid) * f.Grid
	y0 := math.Ceil(b.Y/f.Grid) * f.Grid

	dc.SetColor(c)
	for y := y0; y <= b.Bottom(); y += f.Grid {
		for x := x0; x <= b.Right(); x += f.Grid {
			dc.DrawPoint(x, y, 1)
		}
	}
	dc.Fill()
}

func drawEntity(dc *gg.Context, a block.Appearance, sockets bool) {
	b := a.Bounds
	if a.Fill != nil {
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, a.CornerRadius)
		dc.SetColor(a.Fill)
		dc.Fill()
	}
	if a.Outline != nil && a.Thickness > 0 {
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, a.CornerRadius)
		dc.SetColor(a.Outline)
		dc.SetLineWidth(a.Thickness)
		dc.Stroke()
	}

	// Icons are resolved by the front-end; leave a placeholder frame.
	if !a.Icon.IsZero() && a.Outline != nil {
		ir := a.IconRect
		dc.DrawRectangle(ir.X, ir.Y, ir.W, ir.H)
		dc.SetColor(a.Outline)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	if a.Title != "" && a.TitleColor != nil {
		dc.SetColor(a.TitleColor)
		dc.DrawStringAnchored(a.Title, a.TitlePos.X, a.TitlePos.Y, 0, 1)
	}

	if sockets {
		dc.SetColor(render.SocketColor())
		for _, p := range a.Inputs {
			dc.DrawCircle(p.X, p.Y, render.SocketRadius)
		}
		for _, p := range a.Outputs {
			dc.DrawCircle(p.X, p.Y, render.SocketRadius)
		}
		dc.Fill()
	}
}

func drawWires(dc *gg.Context, f render.Frame) {
	dc.SetColor(render.WireColor(f.Mode))
	dc.SetLineWidth(render.WireThickness)
	dc.SetLineJoinRound()
	for _, w := range f.Wires {
		if len(w.Path) < 2 {
			continue
		}
		dc.NewSubPath()
		dc.MoveTo(w.Path[0].X, w.Path[0].Y)
		for _, p := range w.Path[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
	}
}

// At returns the color of img at scene point p, for a frame rendered with
// the given options. It is meant for tests and pickers.
func At(img image.Image, f render.Frame, opts Options, p geometry.Point) color.Color {
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	view := f.Extent()
	x := int((p.X - view.X + opts.Padding) * opts.Scale)
	y := int((p.Y - view.Y + opts.Padding) * opts.Scale)
	return img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
}
