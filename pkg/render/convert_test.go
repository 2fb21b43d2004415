package render

import (
	"context"
	"testing"

	"github.com/matzehuels/blockdiag/pkg/cache"
	"github.com/matzehuels/blockdiag/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatSVG, false},
		{"svg", FormatSVG, false},
		{"PNG", FormatPNG, false},
		{" pdf ", FormatPDF, false},
		{"gif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeUnsupported) {
					t.Errorf("ParseFormat(%q) error = %v, want UNSUPPORTED", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out.svg":       FormatSVG,
		"out.PNG":       FormatPNG,
		"dir/frame.pdf": FormatPDF,
		"noext":         FormatSVG,
		"weird.gif":     FormatSVG,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestConvertSVGPassThrough(t *testing.T) {
	in := []byte("<svg/>")
	out, err := Convert(context.Background(), in, FormatSVG, 1)
	if err != nil || string(out) != "<svg/>" {
		t.Errorf("Convert(svg) = %q, %v", out, err)
	}

	if _, err := Convert(context.Background(), in, Format("gif"), 1); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Convert(gif) error = %v, want UNSUPPORTED", err)
	}
}

func TestConvertCachedHit(t *testing.T) {
	ctx := context.Background()
	store, err := cache.OpenDir(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	svg := []byte("<svg/>")
	if err := store.Put(ctx, cache.ExportKey(svg, "pdf", 1), []byte("%PDF-cached")); err != nil {
		t.Fatal(err)
	}

	// A hit never reaches rsvg-convert, whatever scale PDF is asked at.
	out, err := ConvertCached(ctx, store, svg, FormatPDF, 3)
	if err != nil || string(out) != "%PDF-cached" {
		t.Errorf("ConvertCached() = %q, %v", out, err)
	}

	out, err = ConvertCached(ctx, cache.Disabled, svg, FormatSVG, 1)
	if err != nil || string(out) != "<svg/>" {
		t.Errorf("ConvertCached(svg) = %q, %v", out, err)
	}
}
