package replay

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/scene"
)

// Mismatch is one difference between the expected and the actual end state.
type Mismatch struct {
	What string
	Want string
	Got  string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: want %s, got %s", m.What, m.Want, m.Got)
}

// Verify compares s against the fixture's expectations.
func (sc *Scenario) Verify(s *scene.Scene) []Mismatch {
	var out []Mismatch
	exp := sc.Expect

	for _, p := range exp.Positions {
		want := geometry.Point{X: p.X, Y: p.Y}
		e, ok := s.Entity(p.ID)
		if !ok {
			out = append(out, Mismatch{"position of " + p.ID, want.String(), "missing"})
			continue
		}
		if got := e.Position(); got != want {
			out = append(out, Mismatch{"position of " + p.ID, want.String(), got.String()})
		}
	}

	if exp.Selected != nil {
		want := slices.Clone(*exp.Selected)
		slices.Sort(want)
		var got []string
		for _, e := range s.Selected() {
			got = append(got, e.ID())
		}
		slices.Sort(got)
		if !slices.Equal(want, got) {
			out = append(out, Mismatch{"selection", list(want), list(got)})
		}
	}

	if exp.Mode != "" && !strings.EqualFold(exp.Mode, string(s.Mode())) {
		out = append(out, Mismatch{"mode", exp.Mode, string(s.Mode())})
	}
	if exp.Wires != nil && *exp.Wires != len(s.Wires()) {
		out = append(out, Mismatch{"wire count", fmt.Sprint(*exp.Wires), fmt.Sprint(len(s.Wires()))})
	}
	if exp.Entities != nil && *exp.Entities != s.Len() {
		out = append(out, Mismatch{"entity count", fmt.Sprint(*exp.Entities), fmt.Sprint(s.Len())})
	}
	return out
}

func list(ids []string) string {
	return "[" + strings.Join(ids, " ") + "]"
}
