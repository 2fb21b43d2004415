package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
)

type geometryOpts struct {
	inputs  int
	outputs int
	width   float64
	height  float64
	title   string
	at      string
}

// geometryCommand prints the layout a block with the given ports would get.
func (c *CLI) geometryCommand() *cobra.Command {
	var opts geometryOpts

	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Compute block height, socket offsets and title position",
		Long: `Compute the geometry of a block from its port counts.

The block grows past its default height when its sockets need more room;
sockets are spread evenly between the top and bottom spacers. With --at the
command also shows where a block dropped at that point lands on the canvas.`,
		Example: `  blockdiag geometry --inputs 5 --outputs 2 --title Mixer
  blockdiag geometry --inputs 1 --at 997,3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGeometry(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.inputs, "inputs", 1, "number of input sockets")
	cmd.Flags().IntVar(&opts.outputs, "outputs", 1, "number of output sockets")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "block width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "default block height (default from config)")
	cmd.Flags().StringVar(&opts.title, "title", "", "title to measure and center")
	cmd.Flags().StringVar(&opts.at, "at", "", "drop point as x,y to snap and clamp")

	return cmd
}

func (c *CLI) runGeometry(cmd *cobra.Command, opts geometryOpts) error {
	if opts.inputs < 0 || opts.outputs < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "port counts must not be negative")
	}
	if err := errors.ValidateTitle(opts.title); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	p := cfg.Params()
	if opts.width > 0 {
		p.DefaultWidth = opts.width
	}
	if opts.height > 0 {
		p.DefaultHeight = opts.height
	}

	l := geometry.Compute(p, opts.inputs, opts.outputs)
	c.Logger.Debug("computed layout", "inputs", opts.inputs, "outputs", opts.outputs, "height", l.Height)

	out := printer{cmd.OutOrStdout()}
	out.keyValue("width", num(p.DefaultWidth))
	out.keyValue("height", num(l.Height))
	out.keyValue("spacer", num(p.Spacer()))

	if opts.title != "" {
		face, err := cfg.Measurer()
		if err != nil {
			return err
		}
		tw := face.Width(opts.title)
		pos := geometry.TitleOffset(p.DefaultWidth, l.Height, p.Padding, tw)
		out.keyValue("title", fmt.Sprintf("%q %dpx at %v", opts.title, geometry.EvenWidth(tw), pos))
	}

	if opts.at != "" {
		at, err := parsePoint(opts.at)
		if err != nil {
			return err
		}
		cons := geometry.Constraints{
			Bounds: geometry.Rect{W: cfg.Canvas.Width, H: cfg.Canvas.Height},
			Grid:   cfg.Canvas.Grid,
			Margin: cfg.Canvas.Margin,
		}
		if cfg.Canvas.NoGrid {
			cons.Grid = 0
		}
		placed := cons.Place(at, p.DefaultWidth, l.Height, p.TitleHeight)
		out.keyValue("placed", fmt.Sprintf("%v %s %v", at, iconArrow, placed))
	}

	rows := make([][]string, 0, max(len(l.Inputs), len(l.Outputs)))
	for i := 0; i < max(len(l.Inputs), len(l.Outputs)); i++ {
		row := []string{strconv.Itoa(i), "", ""}
		if i < len(l.Inputs) {
			row[1] = num(l.Inputs[i])
		}
		if i < len(l.Outputs) {
			row[2] = num(l.Outputs[i])
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 {
		out.table([]string{"socket", "input", "output"}, rows)
	}
	return nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (geometry.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geometry.Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q: want x,y", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return geometry.Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q: coordinates must be numbers", s)
	}
	return geometry.Point{X: x, Y: y}, nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
