package cli

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/fonts"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/render"
	"github.com/matzehuels/blockdiag/pkg/replay"
	"github.com/matzehuels/blockdiag/pkg/scene"
)

func newTestView(t *testing.T, copyFn func(string) error) *viewModel {
	t.Helper()
	sc := &replay.Scenario{
		Blocks: []replay.BlockDef{
			{ID: "a", Title: "Source", Outputs: 1, X: 20, Y: 20},
			{ID: "b", Title: "Sink", Inputs: 1, X: 300, Y: 100},
		},
		Wires: []replay.WireDef{{From: "a", To: "b"}},
	}
	m := newViewModel("test", copyFn)
	s, err := sc.Build(scene.Options{
		Bounds:      geometry.Rect{W: 1000, H: 600},
		Logger:      log.New(io.Discard),
		Measurer:    fonts.Fixed(6),
		Sink:        render.SinkFunc(m.paint),
		ParamWindow: scene.ParamWindowFunc(m.toggleParams),
		IDs:         scene.Sequential(),
	})
	if err != nil {
		t.Fatal(err)
	}
	m.attach(s)
	return m
}

func press(m *viewModel, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func selectedIDs(s *scene.Scene) []string {
	var ids []string
	for _, e := range s.Selected() {
		ids = append(ids, e.ID())
	}
	return ids
}

func TestViewKeys(t *testing.T) {
	var copied string
	m := newTestView(t, func(s string) error { copied = s; return nil })
	b, _ := m.scene.Entity("b")

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if got := selectedIDs(m.scene); len(got) != 1 || got[0] != "b" {
		t.Fatalf("after tab selected = %v, want [b]", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown})
	if b.Position() != (geometry.Point{X: 320, Y: 120}) {
		t.Errorf("after drag b at %v, want (320,120)", b.Position())
	}
	in, err := b.Input(0)
	if err != nil {
		t.Fatal(err)
	}
	if w := m.scene.Wires()[0]; w.End() != in.Position() {
		t.Error("wire did not follow the dragged block")
	}

	press(m, runes("r"))
	if !m.params["b"] {
		t.Error("right click on selected block should open its parameter window")
	}

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	if got := selectedIDs(m.scene); len(got) != 0 {
		t.Errorf("after space selected = %v, want none", got)
	}

	press(m, runes("m"), runes("f"), runes("c"))
	if m.scene.Mode() != block.Dark {
		t.Errorf("mode = %v, want Dark", m.scene.Mode())
	}
	if !b.Flipped() {
		t.Error("f should flip the focused block")
	}
	if !strings.HasPrefix(copied, "<svg") {
		t.Errorf("clipboard = %.20q", copied)
	}
	if m.frames == 0 {
		t.Error("no frames painted")
	}

	if cmd := press(m, runes("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestViewShowsErrors(t *testing.T) {
	m := newTestView(t, func(string) error { return errors.New("no clipboard") })
	press(m, runes("c"))
	if !strings.Contains(m.View(), "error: no clipboard") {
		t.Errorf("status not shown:\n%s", m.View())
	}
}
