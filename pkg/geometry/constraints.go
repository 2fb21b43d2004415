package geometry

import "math"

// Constraints bounds where an entity may be placed on the canvas.
type Constraints struct {
	Bounds Rect    // Canvas rectangle
	Grid   float64 // Minor grid cell; zero disables snapping
	Margin float64 // Distance kept from every canvas edge
}

// Snap rounds v to the nearest multiple of cell. Ties go to the even
// multiple. A non-positive cell returns v unchanged.
func Snap(v, cell float64) float64 {
	if cell <= 0 {
		return v
	}
	s := math.RoundToEven(v/cell) * cell
	if s == 0 {
		return 0 // no negative zero
	}
	return s
}

// Snap rounds both coordinates of p to the grid.
func (c Constraints) Snap(p Point) Point {
	return Point{X: Snap(p.X, c.Grid), Y: Snap(p.Y, c.Grid)}
}

// Clamp keeps an entity of size w×h inside the bounds minus the margin.
// The bottom edge reserves an extra titleAllowance for the title band.
// Edges are applied left, top, right, bottom, so when the entity cannot fit
// the right and bottom limits win. A limit that is off the grid is moved
// inward to the nearest grid multiple, if one fits.
func (c Constraints) Clamp(p Point, w, h, titleAllowance float64) Point {
	b := c.Bounds.Normalized()
	return Point{
		X: clampAxis(p.X, b.X+c.Margin, b.Right()-w-c.Margin, c.Grid),
		Y: clampAxis(p.Y, b.Y+c.Margin, b.Bottom()-h-titleAllowance-c.Margin, c.Grid),
	}
}

// Place snaps and then clamps p.
func (c Constraints) Place(p Point, w, h, titleAllowance float64) Point {
	return c.Clamp(c.Snap(p), w, h, titleAllowance)
}

// Inner returns the rectangle positions are clamped into for an entity of
// the given size, before grid alignment.
func (c Constraints) Inner(w, h, titleAllowance float64) Rect {
	b := c.Bounds.Normalized()
	return Rect{
		X: b.X + c.Margin,
		Y: b.Y + c.Margin,
		W: b.W - w - 2*c.Margin,
		H: b.H - h - titleAllowance - 2*c.Margin,
	}
}

func clampAxis(v, lo, hi, grid float64) float64 {
	if v < lo {
		v = lo
		if a := alignUp(lo, grid); a <= hi {
			v = a
		}
	}
	if v > hi {
		v = hi
		if a := alignDown(hi, grid); a >= lo {
			v = a
		}
	}
	return v
}

func alignUp(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Ceil(v/grid) * grid
}

func alignDown(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Floor(v/grid) * grid
}
