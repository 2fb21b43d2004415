// Package pkg provides the core libraries for blockdiag, the geometry and
// interaction engine of a block diagram editor.
//
// # Overview
//
// A scene holds blocks with input and output sockets, connectors that route
// wires around bends, and the wires between them. Everything snaps to a grid
// and stays inside the canvas margin. The pkg directory is organized into
// three areas:
//
//  1. Model - [geometry], [block], [wire] and [scene]
//  2. Output - [render] and its painters
//  3. Support - [config], [replay], [fonts], [cache], [errors],
//     [observability] and [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	pointer events (GUI, terminal viewer or replay fixture)
//	         ↓
//	    [scene] (hit testing, selection, drag with followers)
//	         ↓
//	    [block] / [wire] (constrained moves, socket layout, endpoint sync)
//	         ↓
//	    [render] Frame → SVG / PNG / PDF / JSON / MessagePack
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/blockdiag/pkg/block"
//	    "github.com/matzehuels/blockdiag/pkg/geometry"
//	    "github.com/matzehuels/blockdiag/pkg/render/svg"
//	    "github.com/matzehuels/blockdiag/pkg/scene"
//	)
//
//	s, _ := scene.New(scene.Options{Bounds: geometry.Rect{W: 1000, H: 600}})
//	src, _ := s.AddBlock(block.Spec{Title: "Source", Outputs: 1})
//	dst, _ := s.AddBlock(block.Spec{Title: "Sink", Inputs: 1, Position: geometry.Point{X: 300, Y: 100}})
//	s.Connect(src.ID(), 0, dst.ID(), 0)
//
//	s.Dispatch(scene.PressAt(geometry.Point{X: 60, Y: 60}, scene.Left))
//	s.Dispatch(scene.MoveTo(geometry.Point{X: 120, Y: 100}))
//	s.Dispatch(scene.ReleaseAt(geometry.Point{X: 120, Y: 100}))
//
//	out := svg.Render(s.Frame())
//
// # Main Packages
//
// [geometry] - Points, rectangles, grid snapping, margin clamping, socket
// distribution and title placement. Pure functions only.
//
// [block] - Blocks and connectors: ports, color modes, flip, deferred layout
// and the constrained move contract shared by every entity.
//
// [wire] - Wires between an output and an input port, and the synchronizer
// that keeps their endpoints on their sockets.
//
// [scene] - The owner of all entities: z-order, selection, pointer dispatch,
// follower drags, wiring edits and repaint.
//
// [render] - Frames and sinks, format conversion and the painters in
// render/svg, render/raster, render/stream and render/nodelink.
//
// [config] - TOML configuration for canvas, block, connector and title
// parameters.
//
// [replay] - TOML and YAML scenario fixtures: build a scene, apply steps,
// verify expectations.
//
// [geometry]: github.com/matzehuels/blockdiag/pkg/geometry
// [block]: github.com/matzehuels/blockdiag/pkg/block
// [wire]: github.com/matzehuels/blockdiag/pkg/wire
// [scene]: github.com/matzehuels/blockdiag/pkg/scene
// [render]: github.com/matzehuels/blockdiag/pkg/render
// [config]: github.com/matzehuels/blockdiag/pkg/config
// [replay]: github.com/matzehuels/blockdiag/pkg/replay
// [fonts]: github.com/matzehuels/blockdiag/pkg/fonts
// [cache]: github.com/matzehuels/blockdiag/pkg/cache
// [errors]: github.com/matzehuels/blockdiag/pkg/errors
// [observability]: github.com/matzehuels/blockdiag/pkg/observability
// [buildinfo]: github.com/matzehuels/blockdiag/pkg/buildinfo
package pkg
