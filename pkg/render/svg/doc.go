// Package svg paints [render.Frame] values as standalone SVG documents.
//
// The output is deterministic: entities are drawn in the frame's z-order,
// wires on top of the entities they connect, and numbers are printed with a
// fixed precision so golden comparisons are stable.
//
//	data := svg.Render(frame, svg.WithGrid(), svg.WithSockets())
//	os.WriteFile("scene.svg", data, 0o644)
//
// [Sink] adapts the renderer to [render.Sink] so a scene can stream every
// repaint to a writer.
package svg
