package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/render"
	"github.com/matzehuels/blockdiag/pkg/render/raster"
	"github.com/matzehuels/blockdiag/pkg/render/stream"
	"github.com/matzehuels/blockdiag/pkg/render/svg"
	"github.com/matzehuels/blockdiag/pkg/replay"
	"github.com/matzehuels/blockdiag/pkg/scene"
)

type replayOpts struct {
	output    string
	format    string
	scale     float64
	rsvg      bool
	grid      bool
	stream    string
	streamOut string
	noVerify  bool
	noCache   bool
}

// replayCommand runs a scenario fixture and reports the end state.
func (c *CLI) replayCommand() *cobra.Command {
	var opts replayOpts

	cmd := &cobra.Command{
		Use:   "replay <scenario>",
		Short: "Replay a recorded scenario against a fresh scene",
		Long: `Replay builds a scene from a TOML or YAML scenario, dispatches its steps
in order and prints where every entity and wire ended up. Expectations in the
scenario are checked unless --no-verify is given.

The last frame can be written as SVG, PNG or PDF. PNG is rasterized in
process; --rsvg and PDF output go through rsvg-convert.`,
		Example: `  blockdiag replay drag.toml
  blockdiag replay drag.toml -o drag.png --scale 2
  blockdiag replay drag.yaml --stream msgpack --stream-out frames.mpk`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReplay(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the last frame to this file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png, pdf (default from extension)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "pixel scale for PNG output")
	cmd.Flags().BoolVar(&opts.rsvg, "rsvg", false, "rasterize PNG with rsvg-convert instead of in process")
	cmd.Flags().BoolVar(&opts.grid, "grid", true, "draw grid dots")
	cmd.Flags().StringVar(&opts.stream, "stream", "", "also stream every frame: json or msgpack")
	cmd.Flags().StringVar(&opts.streamOut, "stream-out", "", "stream destination (default stdout)")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "skip the scenario's expectations")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not reuse earlier rsvg-convert results")

	return cmd
}

func (c *CLI) runReplay(cmd *cobra.Command, path string, opts replayOpts) error {
	ctx := cmd.Context()
	out := printer{cmd.OutOrStdout()}

	sc, err := replay.Load(path)
	if err != nil {
		return err
	}
	if len(sc.Steps) == 0 {
		out.warning("%s has no steps; reporting the initial scene", sc.Name)
	}
	sopts, err := c.sceneOptions()
	if err != nil {
		return err
	}

	rec := &render.Recorder{}
	sinks := []render.Sink{rec}
	if opts.stream != "" {
		enc, err := stream.ParseEncoding(opts.stream)
		if err != nil {
			return err
		}
		w, closeFn, err := openOutput(cmd, opts.streamOut)
		if err != nil {
			return err
		}
		defer closeFn()
		sink, err := stream.NewSink(w, enc)
		if err != nil {
			return err
		}
		sinks = append(sinks, sink)
	}
	sopts.Sink = render.Tee(sinks...)
	sopts.Logger = c.Logger.With("scenario", sc.Name)

	prog := newProgress(c.Logger)
	s, err := sc.Run(ctx, sopts)
	if err != nil {
		return fmt.Errorf("replay %s: %w", sc.Name, err)
	}
	prog.done("replayed "+sc.Name, "steps", len(sc.Steps), "frames", rec.Len())

	if opts.stream == "" || opts.streamOut != "" {
		printScene(out, s)
	}

	if opts.output != "" {
		if err := c.writeFrame(cmd, s.Frame(), opts); err != nil {
			return err
		}
		out.file(opts.output)
	}

	if opts.noVerify {
		return nil
	}
	mismatches := sc.Verify(s)
	for _, m := range mismatches {
		out.error("%s", m)
	}
	if len(mismatches) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s: %d expectation(s) failed", sc.Name, len(mismatches))
	}
	if hasExpectations(sc.Expect) {
		out.success("%s: expectations met", sc.Name)
	}
	return nil
}

func hasExpectations(e replay.Expect) bool {
	return len(e.Positions) > 0 || e.Selected != nil || e.Mode != "" || e.Wires != nil || e.Entities != nil
}

// printScene prints entity and wire tables.
func printScene(out printer, s *scene.Scene) {
	rows := make([][]string, 0, s.Len())
	for _, e := range s.Entities() {
		sel := ""
		if e.Selected() {
			sel = iconSuccess
		}
		rows = append(rows, []string{e.ID(), e.Kind().String(), e.Position().String(), sel})
	}
	out.table([]string{"entity", "kind", "position", "selected"}, rows)

	wires := s.Wires()
	if len(wires) == 0 {
		return
	}
	rows = make([][]string, 0, len(wires))
	for _, w := range wires {
		rows = append(rows, []string{
			w.ID,
			w.From.String() + " " + iconArrow + " " + w.To.String(),
			w.Start().String(),
			w.End().String(),
		})
	}
	out.table([]string{"wire", "ports", "start", "end"}, rows)
	out.detail("mode %s · %d entities · %d wires", s.Mode(), s.Len(), len(wires))
}

func (c *CLI) writeFrame(cmd *cobra.Command, f render.Frame, opts replayOpts) error {
	format := render.FormatFromPath(opts.output)
	if opts.format != "" {
		var err error
		if format, err = render.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	var svgOpts []svg.Option
	if opts.grid {
		svgOpts = append(svgOpts, svg.WithGrid())
	}

	var (
		data []byte
		err  error
	)
	switch {
	case format == render.FormatPNG && !opts.rsvg:
		data, err = raster.PNG(f, raster.Options{Scale: opts.scale, Grid: opts.grid})
	case format == render.FormatSVG:
		data = svg.Render(f, svgOpts...)
	default:
		store := c.exportCache(cmd.Context(), opts.noCache)
		defer store.Close()
		spin := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "converting with rsvg-convert")
		spin.Start()
		data, err = render.ConvertCached(cmd.Context(), store, svg.Render(f, svgOpts...), format, opts.scale)
		spin.Stop()
	}
	if err != nil {
		return err
	}
	c.Logger.Debug("writing frame", "seq", f.Seq, "format", format, "bytes", len(data))
	return os.WriteFile(opts.output, data, 0o644)
}

// openOutput opens path for writing, or returns the command's stdout when
// path is empty.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
