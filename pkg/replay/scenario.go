package replay

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
)

// Scenario is a replayable fixture.
type Scenario struct {
	Name       string         `toml:"name" yaml:"name"`
	Mode       string         `toml:"mode" yaml:"mode"`
	Canvas     *Canvas        `toml:"canvas" yaml:"canvas"`
	Blocks     []BlockDef     `toml:"blocks" yaml:"blocks"`
	Connectors []ConnectorDef `toml:"connectors" yaml:"connectors"`
	Wires      []WireDef      `toml:"wires" yaml:"wires"`
	// Select lists the entities selected before the first step. Everything
	// else starts unselected, connectors included.
	Select []string `toml:"select" yaml:"select"`
	Steps  []Step   `toml:"steps" yaml:"steps"`
	Expect Expect   `toml:"expect" yaml:"expect"`
}

// Canvas overrides the scene bounds and grid.
type Canvas struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
	Grid   float64 `toml:"grid" yaml:"grid"`
	Margin float64 `toml:"margin" yaml:"margin"`
}

// BlockDef describes a starting block.
type BlockDef struct {
	ID      string  `toml:"id" yaml:"id"`
	Title   string  `toml:"title" yaml:"title"`
	Inputs  int     `toml:"inputs" yaml:"inputs"`
	Outputs int     `toml:"outputs" yaml:"outputs"`
	X       float64 `toml:"x" yaml:"x"`
	Y       float64 `toml:"y" yaml:"y"`
	Width   float64 `toml:"width" yaml:"width"`
	Height  float64 `toml:"height" yaml:"height"`
	Icon    string  `toml:"icon" yaml:"icon"`
	Flipped bool    `toml:"flipped" yaml:"flipped"`
}

// ConnectorDef describes a starting connector.
type ConnectorDef struct {
	ID string  `toml:"id" yaml:"id"`
	X  float64 `toml:"x" yaml:"x"`
	Y  float64 `toml:"y" yaml:"y"`
}

// WireDef connects output Out of From to input In of To, bending at Via.
type WireDef struct {
	ID   string  `toml:"id" yaml:"id"`
	From string  `toml:"from" yaml:"from"`
	Out  int     `toml:"out" yaml:"out"`
	To   string  `toml:"to" yaml:"to"`
	In   int     `toml:"in" yaml:"in"`
	Via  []Point `toml:"via" yaml:"via"`
}

// Point is a waypoint in a fixture.
type Point struct {
	X float64 `toml:"x" yaml:"x"`
	Y float64 `toml:"y" yaml:"y"`
}

func points(ps []Point) []geometry.Point {
	if len(ps) == 0 {
		return nil
	}
	out := make([]geometry.Point, len(ps))
	for i, p := range ps {
		out[i] = geometry.Point{X: p.X, Y: p.Y}
	}
	return out
}

// Step kinds beyond the pointer events "press", "move" and "release".
const (
	StepMode   = "mode"   // SetMode(Value)
	StepFlip   = "flip"   // Flip(Target)
	StepTitle  = "title"  // SetTitle(Target, Value)
	StepPorts  = "ports"  // SetPortCounts(Target, Inputs, Outputs)
	StepRemove = "remove" // Remove(Target)
	StepUnwire = "unwire" // RemoveWire(Target)
	StepSplit  = "split"  // SplitWire(Target, (X, Y))
	StepRoute  = "route"  // SetWaypoints(Target, Via)
	StepIcon   = "icon"   // SetIcon(Target, Value)
)

// Step is one pointer event or direct edit.
type Step struct {
	Kind    string  `toml:"kind" yaml:"kind"`
	X       float64 `toml:"x" yaml:"x"`
	Y       float64 `toml:"y" yaml:"y"`
	Button  string  `toml:"button" yaml:"button"`
	Toggle  bool    `toml:"toggle" yaml:"toggle"`
	Target  string  `toml:"target" yaml:"target"`
	Value   string  `toml:"value" yaml:"value"`
	Inputs  int     `toml:"inputs" yaml:"inputs"`
	Outputs int     `toml:"outputs" yaml:"outputs"`
	Via     []Point `toml:"via" yaml:"via"`
	// Error is the error code the step must fail with. The replay goes on
	// after an expected failure.
	Error string `toml:"error" yaml:"error"`
}

// Expect is the end state a replay is checked against. Unset parts are not
// checked.
type Expect struct {
	Positions []Position `toml:"positions" yaml:"positions"`
	Selected  *[]string  `toml:"selected" yaml:"selected"`
	Mode      string     `toml:"mode" yaml:"mode"`
	Wires     *int       `toml:"wires" yaml:"wires"`
	Entities  *int       `toml:"entities" yaml:"entities"`
}

// Position is the expected position of one entity.
type Position struct {
	ID string  `toml:"id" yaml:"id"`
	X  float64 `toml:"x" yaml:"x"`
	Y  float64 `toml:"y" yaml:"y"`
}

// Format is a fixture file format.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatFromPath picks the fixture format by extension. Anything that is
// not .yaml or .yml is read as TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return TOML
}

// Load reads a fixture file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scenario")
	}
	sc, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Parse decodes a fixture. Unknown keys are rejected in both formats.
func Parse(data []byte, f Format) (*Scenario, error) {
	var sc Scenario
	switch f {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse yaml scenario")
		}
	case TOML:
		md, err := toml.Decode(string(data), &sc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse toml scenario")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "scenario: unknown key %s", undecoded[0])
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown scenario format %q", f)
	}
	return &sc, nil
}
