package geometry

// Params is the parameter set the height and socket layout is computed from.
type Params struct {
	DefaultWidth  float64 // Width the block is created with
	DefaultHeight float64 // Floor for the computed height
	Padding       float64 // Minimum inner distance for drawn content
	CornerRadius  float64 // Rounding of the block outline
	TitleHeight   float64 // Height of the title band under the block
	SocketSpacing float64 // Natural distance between consecutive sockets
}

// Spacer is the distance from the top of the block to its first socket, and
// from its last socket to the bottom.
func (p Params) Spacer() float64 {
	return p.Padding + p.CornerRadius + p.TitleHeight
}

// NaturalOffset returns the offset socket i takes before the column is
// redistributed over the final height.
func (p Params) NaturalOffset(i int) float64 {
	return p.Spacer() + float64(i)*p.SocketSpacing
}

// lastOffset returns the natural offset of the last of n sockets.
// An empty column contributes nothing.
func (p Params) lastOffset(n int) float64 {
	if n <= 0 {
		return 0
	}
	return p.NaturalOffset(n - 1)
}

// RequiredHeight returns the height needed so the last socket of either
// column keeps spacer distance to the bottom edge.
func RequiredHeight(lastInput, lastOutput, spacer float64) float64 {
	return max(lastInput, lastOutput) + spacer
}

// FitHeight applies the grow-only policy: never below defaultHeight.
func FitHeight(defaultHeight, required float64) float64 {
	return max(defaultHeight, required)
}

// Layout is the computed vertical layout of one block.
type Layout struct {
	Height  float64
	Inputs  []float64 // Offsets from the block top, one per input
	Outputs []float64 // Offsets from the block top, one per output
}

// Compute returns the height and socket offsets for a block with the given
// port counts. It is deterministic; equal inputs give equal layouts.
func Compute(p Params, inputs, outputs int) Layout {
	spacer := p.Spacer()
	required := RequiredHeight(p.lastOffset(inputs), p.lastOffset(outputs), spacer)
	h := FitHeight(p.DefaultHeight, required)
	return Layout{
		Height:  h,
		Inputs:  Distribute(inputs, spacer, h-spacer),
		Outputs: Distribute(outputs, spacer, h-spacer),
	}
}

// Distribute spaces n offsets evenly from top to bottom inclusive.
// A single offset sits at the midpoint.
func Distribute(n int, top, bottom float64) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{(top + bottom) / 2}
	}
	step := (bottom - top) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = top + float64(i)*step
	}
	out[n-1] = bottom
	return out
}

// Equal reports whether two layouts match exactly.
func (l Layout) Equal(o Layout) bool {
	return l.Height == o.Height && floatsEqual(l.Inputs, o.Inputs) && floatsEqual(l.Outputs, o.Outputs)
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
