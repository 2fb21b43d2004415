package geometry

// EvenWidth rounds an odd pixel width up to the next even number.
func EvenWidth(w int) int {
	if w%2 != 0 {
		return w + 1
	}
	return w
}

// TitleOffset returns the title position relative to the block origin:
// horizontally centered, one padding below the block.
func TitleOffset(width, height, padding float64, titleWidth int) Point {
	return Point{
		X: (width - padding - float64(EvenWidth(titleWidth))) / 2,
		Y: height + padding,
	}
}

// ConnectorRegion returns the interaction rectangle of a connector whose
// nominal socket width is w, widened by the internal padding p so the small
// target stays clickable.
func ConnectorRegion(w, p float64) Rect {
	return Rect{
		X: 1 - w - p,
		Y: 1 - w - p,
		W: 3*w + p,
		H: 2*w + p,
	}.Normalized()
}
