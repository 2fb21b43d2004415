// Package replay drives a scene from a recorded fixture.
//
// A [Scenario] describes the starting canvas (blocks, connectors and wires),
// a list of steps (pointer events plus a few direct edits such as color mode
// changes, wire splits or reroutes) and the expected end state. Fixtures are TOML or
// YAML, chosen by file extension:
//
//	name = "drag two selected blocks"
//
//	[[blocks]]
//	id = "b"
//	inputs = 1
//	x = 200
//	y = 100
//
//	[[steps]]
//	kind = "press"
//	x = 210
//	y = 110
//
//	[[expect.positions]]
//	id = "b"
//	x = 260
//	y = 140
//
// Typical use:
//
//	sc, err := replay.Load("drag.toml")
//	s, err := sc.Build(opts)
//	err = sc.Apply(ctx, s)
//	for _, m := range sc.Verify(s) {
//	    fmt.Println(m)
//	}
package replay
