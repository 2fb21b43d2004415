package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockdiag/pkg/render"
	"github.com/matzehuels/blockdiag/pkg/render/nodelink"
	"github.com/matzehuels/blockdiag/pkg/replay"
)

type topologyOpts struct {
	output   string
	format   string
	detailed bool
	topDown  bool
	replay   bool
}

// topologyCommand exports the wiring of a scenario as a Graphviz diagram.
func (c *CLI) topologyCommand() *cobra.Command {
	var opts topologyOpts

	cmd := &cobra.Command{
		Use:   "topology <scenario>",
		Short: "Export the wire topology of a scenario as DOT or SVG",
		Long: `Topology builds the scene described by a scenario and writes its wiring as
a node-link diagram laid out by Graphviz. Blocks are boxes, connectors are
points and edges carry the port indices they connect.

Without -o the DOT source is printed. With --replay the scenario's steps are
applied first, so wires removed or split along the way are reflected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTopology(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.dot, .svg, .png or .pdf)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png, pdf")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add port counts and positions to labels")
	cmd.Flags().BoolVar(&opts.topDown, "top-down", false, "lay out top to bottom instead of left to right")
	cmd.Flags().BoolVar(&opts.replay, "replay", false, "apply the scenario's steps before exporting")

	return cmd
}

func (c *CLI) runTopology(cmd *cobra.Command, path string, opts topologyOpts) error {
	ctx := cmd.Context()

	sc, err := replay.Load(path)
	if err != nil {
		return err
	}
	sopts, err := c.sceneOptions()
	if err != nil {
		return err
	}
	s, err := sc.Build(sopts)
	if err != nil {
		return err
	}
	if opts.replay {
		if err := sc.Apply(ctx, s); err != nil {
			return err
		}
	}

	dot := nodelink.ToDOT(s, nodelink.Options{Detailed: opts.detailed, TopDown: opts.topDown})

	format := opts.format
	if format == "" && opts.output != "" {
		format = string(render.FormatFromPath(opts.output))
		if isDOTPath(opts.output) {
			format = "dot"
		}
	}
	if format == "" || format == "dot" {
		if opts.output == "" {
			_, err := cmd.OutOrStdout().Write([]byte(dot))
			return err
		}
		if err := os.WriteFile(opts.output, []byte(dot), 0o644); err != nil {
			return err
		}
		printer{cmd.OutOrStdout()}.file(opts.output)
		return nil
	}

	f, err := render.ParseFormat(format)
	if err != nil {
		return err
	}
	data, err := nodelink.Render(ctx, dot, f, 1)
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printer{cmd.OutOrStdout()}.file(opts.output)
	return nil
}

func isDOTPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		return true
	}
	return false
}
