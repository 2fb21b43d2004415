// Package geometry is the pure layout model behind blockdiag's blocks and
// connectors.
//
// # Overview
//
// Everything in this package is a function of a small parameter set: block
// default dimensions, port counts, padding, corner radius and title-band
// height. Nothing here holds state, so the rules can be tested without an
// interactive or rendering harness.
//
// # Block Height
//
// A block grows downward to fit its sockets and never shrinks below its
// configured default height:
//
//	spacer   = padding + cornerRadius + titleHeight
//	required = max(lastInputOffset, lastOutputOffset) + spacer
//	height   = max(defaultHeight, required)
//
// The natural offset of socket i is spacer + i*socketSpacing; [Compute] then
// distributes the final offsets evenly between spacer and height-spacer,
// independently for the input and output columns.
//
// # Title Centering
//
// [TitleOffset] centers a title under the block. The measured pixel width is
// first rounded up to an even number with [EvenWidth] so that, with an even
// block width, the centering arithmetic stays integral.
//
// # Movement
//
// [Constraints] snaps a requested position to the grid's minor cell and then
// clamps it into the canvas bounds minus a margin, accounting for the moving
// entity's own size and, on the bottom edge, its title band.
//
//	c := geometry.Constraints{Bounds: geometry.Rect{W: 1000, H: 600}, Grid: 20, Margin: 20}
//	p := c.Place(geometry.Point{X: 997, Y: 3}, 100, 80, 25) // {880 20}
package geometry
