// Package wire keeps wire endpoints in step with the entities they connect.
//
// A [Wire] holds non-owning references to an output [block.Port] and an
// input [block.Port]. Its cached start and end points are written only by a
// [Synchronizer], which recomputes them whenever an owning entity moves,
// resizes or flips:
//
//	sync := wire.NewSynchronizer()
//	w, _ := wire.New("w1", out, in)
//	_ = sync.Add(w)
//	// ... entity b moves ...
//	n, err := sync.Sync("b") // n wires touched b
//
// The synchronizer enforces two structural rules: wires run from an output
// to an input, and an input port carries at most one wire. A wire whose port
// belongs to a destroyed entity is reported as DANGLING_WIRE; the scene
// removes a block's wires before destroying it, so this only happens on a
// bug.
package wire
