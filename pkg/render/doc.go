// Package render is the boundary between the scene and whatever paints it.
//
// # Overview
//
// The scene never produces pixels. Each repaint it resolves deferred layout
// and hands a [Frame] to a [Sink]: the canvas bounds, the color mode, one
// [block.Appearance] per entity in back-to-front order, and one polyline per
// wire. This package provides:
//
//   - The [Frame] and [Sink] types, a [Recorder] for tests and replays, and
//     [Tee] to fan one repaint out to several sinks
//   - Palette helpers shared by the painters ([Background], [WireColor])
//   - Generic format conversion (SVG to PDF/PNG), optionally cached
//   - An SVG sink (in [svg] subpackage)
//   - An in-process PNG rasterizer (in [raster] subpackage)
//   - JSON and MessagePack frame streams (in [stream] subpackage)
//   - A wire-topology export via Graphviz (in [nodelink] subpackage)
//
// # Format Conversion
//
// [Convert] turns any SVG into PNG or PDF using the external rsvg-convert
// tool (from librsvg).
//
//	rec := &render.Recorder{}
//	// ... scene repaints into rec ...
//	out := svg.Render(rec.Last())
//	png, err := render.Convert(ctx, out, render.FormatPNG, 2.0) // 2x scale
//
// [ConvertCached] consults a [cache.Cache] first, so replaying an unchanged
// scenario does not run rsvg-convert again.
//
// [svg]: github.com/matzehuels/blockdiag/pkg/render/svg
// [raster]: github.com/matzehuels/blockdiag/pkg/render/raster
// [stream]: github.com/matzehuels/blockdiag/pkg/render/stream
// [cache.Cache]: github.com/matzehuels/blockdiag/pkg/cache.Cache
// [nodelink]: github.com/matzehuels/blockdiag/pkg/render/nodelink
package render
