// Package scene coordinates blocks, connectors and wires on one canvas.
//
// # Overview
//
// A [Scene] exclusively owns its entities and their z-order, keeps the wire
// endpoints in step through a [wire.Synchronizer], and turns pointer events
// into entity moves:
//
//	pointer event → hit test → entity.Move (snap + clamp)
//	              → resync wires of the entity and every other selected entity
//	              → repaint
//
// The scene implements [block.Stage], which is how a moving entity reaches
// the canvas constraints and reports that it moved. Nothing in this package
// is global; two scenes can run side by side.
//
// # Events
//
// [Scene.Dispatch] handles one [Event] synchronously and in order. Press
// raises the target and updates the selection; Move drags the pressed entity
// and lets the other selected entities follow; Release ends the drag.
// [Scene.Run] drains a channel of events until it is closed or the context is
// cancelled.
//
// # Concurrency
//
// A Scene has exactly one mutator and does no locking. Drive it from a single
// goroutine, typically through Run.
//
// # Repaint
//
// Structural changes only mark the scene. [Scene.Repaint] resolves deferred
// title layout and sends a [render.Frame] to the configured sink; Dispatch
// calls it whenever an event changed state.
package scene
