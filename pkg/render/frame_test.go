package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/geometry"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	if r.Len() != 0 || r.Last().Seq != 0 {
		t.Fatal("zero Recorder should be empty")
	}

	for i := 1; i <= 3; i++ {
		if err := r.Paint(Frame{Seq: i}); err != nil {
			t.Fatal(err)
		}
	}
	if r.Len() != 3 || r.Last().Seq != 3 || r.Frames()[0].Seq != 1 {
		t.Errorf("recorded %v", r.Frames())
	}

	r.Reset()
	if r.Len() != 0 {
		t.Error("Reset should drop frames")
	}
}

func TestSinkFunc(t *testing.T) {
	want := errors.New("boom")
	var got Frame
	s := SinkFunc(func(f Frame) error {
		got = f
		return want
	})

	if err := s.Paint(Frame{Seq: 7}); err != want {
		t.Errorf("Paint() error = %v", err)
	}
	if got.Seq != 7 {
		t.Errorf("SinkFunc saw %v", got)
	}
	if err := Discard.Paint(Frame{}); err != nil {
		t.Errorf("Discard.Paint() = %v", err)
	}
}

func TestFrameEntityAndExtent(t *testing.T) {
	f := Frame{
		Bounds: geometry.Rect{W: 100, H: 100},
		Entities: []block.Appearance{
			{ID: "a", Bounds: geometry.Rect{X: 10, Y: 10, W: 20, H: 20}},
			{ID: "b", Bounds: geometry.Rect{X: 90, Y: 90, W: 40, H: 30}},
		},
		Wires: []Wire{{ID: "w", Path: []geometry.Point{{X: -10, Y: 50}}}},
	}

	if a, ok := f.Entity("b"); !ok || a.ID != "b" {
		t.Error("Entity(b) not found")
	}
	if _, ok := f.Entity("zz"); ok {
		t.Error("Entity(zz) should be missing")
	}
	if got := f.Extent(); got != (geometry.Rect{X: -10, Y: 0, W: 140, H: 120}) {
		t.Errorf("Extent() = %v", got)
	}
}

func TestCSSColor(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want string
	}{
		{"none", nil, "none"},
		{"selected", block.SelectedOutline, "rgba(255,166,55,1)"},
		{"half black", color.NRGBA{A: 0x7F}, "rgba(0,0,0,0.498)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CSSColor(tt.in); got != tt.want {
				t.Errorf("CSSColor() = %q, want %q", got, tt.want)
			}
		})
	}

	if Background(block.Off) != nil || GridColor(block.Off) != nil {
		t.Error("Off mode should have no background or grid")
	}
}

func TestTee(t *testing.T) {
	var a, b Recorder
	boom := errors.New("boom")
	failing := SinkFunc(func(Frame) error { return boom })

	if err := Tee(&a, &b).Paint(Frame{Seq: 1}); err != nil {
		t.Fatal(err)
	}
	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("lens = %d, %d", a.Len(), b.Len())
	}

	if err := Tee(&a, failing, &b).Paint(Frame{Seq: 2}); err != boom {
		t.Errorf("Paint() = %v, want boom", err)
	}
	if a.Len() != 2 || b.Len() != 1 {
		t.Errorf("after failure lens = %d, %d", a.Len(), b.Len())
	}
}
