// Package nodelink renders the wiring of a scene as a node-link diagram.
//
// # Overview
//
// The scene's own painting keeps blocks where the user put them. This
// package ignores positions and lets Graphviz lay out the topology instead,
// which is handy for checking what is connected to what in a crowded
// diagram. Blocks become rounded boxes, connectors become points, and every
// wire becomes an edge labelled with its port indices.
//
// # Usage
//
//	dot := nodelink.ToDOT(s, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Any value with Entities and Wires methods works as input; *scene.Scene is
// the usual one.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion goes through [render.Convert] and needs
// librsvg (rsvg-convert).
package nodelink
