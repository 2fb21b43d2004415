package replay

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/fonts"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/render"
	"github.com/matzehuels/blockdiag/pkg/scene"
)

func testOptions(sink render.Sink) scene.Options {
	return scene.Options{
		Bounds:   geometry.Rect{W: 400, H: 300},
		Logger:   log.New(io.Discard),
		Measurer: fonts.Fixed(6),
		Sink:     sink,
		IDs:      scene.Sequential(),
	}
}

func TestFixtures(t *testing.T) {
	for _, path := range []string{"testdata/drag.toml", "testdata/snap.yaml"} {
		t.Run(path, func(t *testing.T) {
			sc, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			s, err := sc.Run(context.Background(), testOptions(nil))
			if err != nil {
				t.Fatal(err)
			}
			for _, m := range sc.Verify(s) {
				t.Error(m)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestLoadName(t *testing.T) {
	sc, err := Load("testdata/snap.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "snap into the canvas" {
		t.Errorf("Name = %q", sc.Name)
	}
	if FormatFromPath("x.YML") != YAML || FormatFromPath("x.toml") != TOML {
		t.Error("FormatFromPath picked the wrong format")
	}
}

func TestBuildOverridesCanvas(t *testing.T) {
	sc := &Scenario{Canvas: &Canvas{Width: 800, Height: 500, Grid: 10}}
	s, err := sc.Build(testOptions(nil))
	if err != nil {
		t.Fatal(err)
	}
	if s.Bounds() != (geometry.Rect{W: 800, H: 500}) || s.Constraints().Grid != 10 {
		t.Errorf("constraints = %+v", s.Constraints())
	}
}

func TestBuildStartsWithListedSelection(t *testing.T) {
	sc := &Scenario{
		Blocks:     []BlockDef{{ID: "a", Outputs: 1, X: 20, Y: 20}},
		Connectors: []ConnectorDef{{ID: "k", X: 200, Y: 200}},
		Select:     []string{"a"},
	}
	rec := &render.Recorder{}
	s, err := sc.Build(testOptions(rec))
	if err != nil {
		t.Fatal(err)
	}
	sel := s.Selected()
	if len(sel) != 1 || sel[0].ID() != "a" {
		t.Errorf("Selected() = %v, want [a]", sel)
	}
	if rec.Len() != 1 {
		t.Errorf("frames after Build = %d, want 1", rec.Len())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		f    Format
		code errors.Code
	}{
		{"toml unknown key", "colour = \"red\"\n", TOML, errors.ErrCodeInvalidInput},
		{"toml syntax", "[[blocks]\n", TOML, errors.ErrCodeInvalidInput},
		{"yaml unknown key", "colour: red\n", YAML, errors.ErrCodeInvalidInput},
		{"format", "", Format("xml"), errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data), tt.f); !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestApplyErrors(t *testing.T) {
	base := Scenario{Blocks: []BlockDef{{ID: "a", Inputs: 1, X: 20, Y: 20}}}

	tests := []struct {
		name string
		step Step
		want string
	}{
		{"unknown kind", Step{Kind: "zoom"}, "unknown step kind"},
		{"bad button", Step{Kind: "press", Button: "thumb"}, "unknown button"},
		{"missing target", Step{Kind: StepFlip, Target: "zz"}, "not found"},
		{"unexpected success", Step{Kind: StepMode, Value: "Dark", Error: "INVALID_MODE"}, "want INVALID_MODE error"},
		{"bad port count", Step{Kind: StepPorts, Target: "a", Inputs: -1}, "step 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := base
			sc.Steps = []Step{tt.step}
			_, err := sc.Run(context.Background(), testOptions(nil))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Run() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestApplyEdits(t *testing.T) {
	sc := &Scenario{
		Blocks: []BlockDef{
			{ID: "a", Outputs: 1, X: 20, Y: 20},
			{ID: "b", Inputs: 2, X: 200, Y: 20},
		},
		Wires: []WireDef{{ID: "w", From: "a", To: "b", In: 1}},
		Steps: []Step{
			{Kind: StepTitle, Target: "a", Value: "Renamed"},
			{Kind: StepFlip, Target: "b"},
			{Kind: StepPorts, Target: "b", Inputs: 1},
		},
	}
	s, err := sc.Run(context.Background(), testOptions(nil))
	if err != nil {
		t.Fatal(err)
	}
	a, _ := s.Entity("a")
	b, _ := s.Entity("b")
	if a.Title() != "Renamed" || !b.Flipped() {
		t.Errorf("title %q flipped %v", a.Title(), b.Flipped())
	}
	if n := len(s.Wires()); n != 0 {
		t.Errorf("wire into dropped port survived: %d wires", n)
	}
}

func TestRoutesAndIcons(t *testing.T) {
	sc := &Scenario{
		Blocks: []BlockDef{
			{ID: "a", Outputs: 1, X: 20, Y: 20},
			{ID: "b", Inputs: 1, X: 200, Y: 20},
		},
		Connectors: []ConnectorDef{{ID: "k", X: 100, Y: 220}},
		Wires:      []WireDef{{ID: "w", From: "a", To: "b", Via: []Point{{X: 100, Y: 140}}}},
	}
	s, err := sc.Build(testOptions(nil))
	if err != nil {
		t.Fatal(err)
	}
	w, _ := s.Wire("w")
	if len(w.Waypoints) != 1 || w.Waypoints[0] != (geometry.Point{X: 100, Y: 140}) {
		t.Fatalf("waypoints after build = %v", w.Waypoints)
	}

	sc.Steps = []Step{
		{Kind: StepRoute, Target: "w", Via: []Point{{X: 122, Y: 178}, {X: 160, Y: 180}}},
		{Kind: StepIcon, Target: "a", Value: "db.svg"},
		{Kind: StepIcon, Target: "k", Value: "db.svg", Error: "INVALID_INPUT"},
	}
	if err := sc.Apply(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	want := []geometry.Point{{X: 120, Y: 180}, {X: 160, Y: 180}}
	if len(w.Waypoints) != 2 || w.Waypoints[0] != want[0] || w.Waypoints[1] != want[1] {
		t.Errorf("waypoints = %v, want %v", w.Waypoints, want)
	}
	e, _ := s.Entity("a")
	if a, ok := e.(*block.Block); !ok || a.Icon().Ref != "db.svg" {
		t.Errorf("icon of a = %+v", e)
	}
}

func TestApplyHonorsContext(t *testing.T) {
	sc := &Scenario{Steps: []Step{{Kind: "move", X: 1, Y: 1}}}
	s, err := sc.Build(testOptions(nil))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sc.Apply(ctx, s); err != context.Canceled {
		t.Errorf("Apply() = %v, want context.Canceled", err)
	}
}

func TestVerifyReportsMismatches(t *testing.T) {
	two := 2
	sc := &Scenario{
		Blocks: []BlockDef{{ID: "a", X: 20, Y: 20}},
		Expect: Expect{
			Positions: []Position{{ID: "a", X: 40, Y: 20}, {ID: "ghost"}},
			Selected:  &[]string{"a"},
			Mode:      "Dark",
			Wires:     &two,
		},
	}
	s, err := sc.Build(testOptions(nil))
	if err != nil {
		t.Fatal(err)
	}
	got := sc.Verify(s)
	if len(got) != 5 {
		t.Fatalf("Verify() = %v, want 5 mismatches", got)
	}
	if got[0].String() != "position of a: want (40,20), got (20,20)" {
		t.Errorf("first mismatch = %q", got[0])
	}
}
