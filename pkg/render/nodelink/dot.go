package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/render"
	"github.com/matzehuels/blockdiag/pkg/wire"
)

// Topology is what ToDOT reads. *scene.Scene implements it.
type Topology interface {
	Entities() []block.Entity
	Wires() []*wire.Wire
}

// Options configures node-link diagram generation.
type Options struct {
	// Detailed adds port counts and scene positions to block labels.
	Detailed bool
	// TopDown lays the graph out top to bottom instead of left to right.
	TopDown bool
}

// ToDOT converts the wiring of t to Graphviz DOT source.
func ToDOT(t Topology, opts Options) string {
	rankdir := "LR"
	if opts.TopDown {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#E1E0E8\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10, arrowsize=0.7];\n")
	buf.WriteString("\n")

	for _, e := range t.Entities() {
		fmt.Fprintf(&buf, "  %q [%s];\n", e.ID(), strings.Join(fmtAttrs(e, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, w := range t.Wires() {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", w.From.OwnerID(), w.To.OwnerID(), strings.Join(edgeAttrs(w), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(e block.Entity, detailed bool) []string {
	if e.Kind() == block.KindConnector {
		return []string{"shape=point", "width=0.08", `label=""`}
	}

	label := e.Title()
	if label == "" {
		label = e.ID()
	}
	if detailed {
		label = fmt.Sprintf("%s\n%d in / %d out\nat %v", label, len(e.Inputs()), len(e.Outputs()), e.Position())
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if e.Selected() {
		attrs = append(attrs, `color="#FFA637"`, "penwidth=2")
	}
	return attrs
}

// edgeAttrs labels each end with its port index, leaving out the side that
// touches a connector since connectors have exactly one port per side.
func edgeAttrs(w *wire.Wire) []string {
	attrs := []string{fmt.Sprintf("id=%q", w.ID)}
	if w.From.Owner().Kind() != block.KindConnector {
		attrs = append(attrs, fmt.Sprintf("taillabel=%q", strconv.Itoa(w.From.Index())))
	}
	if w.To.Owner().Kind() != block.KindConnector {
		attrs = append(attrs, fmt.Sprintf("headlabel=%q", strconv.Itoa(w.To.Index())))
	}
	if w.To.Owner().Kind() == block.KindConnector {
		attrs = append(attrs, "arrowhead=none")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.Convert].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Render renders DOT source in the given format.
func Render(ctx context.Context, dot string, f render.Format, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(ctx, svg, f, scale)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
