package stream

import (
	"bytes"
	"image/color"
	"io"
	"reflect"
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

// streamScene builds a two-block scene that paints into sink and moves one
// block so that two frames are produced.
func streamScene(t *testing.T, sink render.Sink) {
	t.Helper()
	s, err := scene.New(scene.Options{
		Bounds:   geometry.Rect{W: 400, H: 300},
		Logger:   log.New(io.Discard),
		Measurer: fonts.Fixed(6),
		Sink:     sink,
		IDs:      scene.Sequential(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddBlock(block.Spec{ID: "a", Title: "A", Outputs: 1, Position: geometry.Point{X: 20, Y: 20}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddBlock(block.Spec{ID: "b", Title: "B", Inputs: 1, Position: geometry.Point{X: 200, Y: 100}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Connect("a", 0, "b", 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Repaint(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.MoveEntity("b", geometry.Point{X: 240, Y: 140}); err != nil {
		t.Fatal(err)
	}
	if err := s.Repaint(); err != nil {
		t.Fatal(err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, enc := range []Encoding{JSON, MsgPack} {
		t.Run(string(enc), func(t *testing.T) {
			var buf bytes.Buffer
			sink, err := NewSink(&buf, enc)
			if err != nil {
				t.Fatal(err)
			}
			rec := &render.Recorder{}
			tee := render.SinkFunc(func(f render.Frame) error {
				_ = rec.Paint(f)
				return sink.Paint(f)
			})
			streamScene(t, tee)

			if sink.Written() != rec.Len() {
				t.Fatalf("Written() = %d, recorded %d", sink.Written(), rec.Len())
			}

			dec, err := NewDecoder(&buf, enc)
			if err != nil {
				t.Fatal(err)
			}
			frames, err := dec.ReadAll()
			if err != nil {
				t.Fatal(err)
			}
			if len(frames) != rec.Len() {
				t.Fatalf("decoded %d frames, want %d", len(frames), rec.Len())
			}
			for i, got := range frames {
				want := rec.Frames()[i]
				if !reflect.DeepEqual(NewRecord(got), NewRecord(want)) {
					t.Errorf("frame %d differs after round trip:\n got %+v\nwant %+v", i, NewRecord(got), NewRecord(want))
				}
			}
		})
	}
}

func TestJSONIsLineDelimited(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewSink(&buf, JSON)
	if err != nil {
		t.Fatal(err)
	}
	streamScene(t, sink)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != sink.Written() {
		t.Errorf("lines = %d, frames = %d", len(lines), sink.Written())
	}
	if !strings.Contains(lines[0], `"fill":"#E1E0E8FF"`) {
		t.Errorf("first record has no light fill: %s", lines[0])
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		in   color.Color
		want string
	}{
		{nil, ""},
		{color.NRGBA{R: 0xFF, G: 0xA6, B: 0x37, A: 0xFF}, "#FFA637FF"},
		{color.NRGBA{A: 0x7F}, "#0000007F"},
	}
	for _, tt := range tests {
		got := hex(tt.in)
		if got != tt.want {
			t.Errorf("hex(%v) = %q, want %q", tt.in, got, tt.want)
		}
		back, err := unhex(got)
		if err != nil {
			t.Fatal(err)
		}
		if hex(back) != tt.want {
			t.Errorf("unhex(%q) round trip = %q", got, hex(back))
		}
	}

	for _, bad := range []string{"red", "#12345", "#GGHHIIJJ"} {
		if _, err := unhex(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("unhex(%q) error = %v", bad, err)
		}
	}
}

func TestEncodingErrors(t *testing.T) {
	if _, err := ParseEncoding("XML"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ParseEncoding(XML) error = %v", err)
	}
	if e, err := ParseEncoding("MsgPack"); err != nil || e != MsgPack {
		t.Errorf("ParseEncoding(MsgPack) = %v, %v", e, err)
	}
	if _, err := NewSink(io.Discard, "xml"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("NewSink(xml) error = %v", err)
	}

	dec, err := NewDecoder(strings.NewReader(`{"seq":1,"mode":"Purple"}`), JSON)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dec.Next(); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("Next() with bad mode error = %v", err)
	}
}
