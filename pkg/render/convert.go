package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/matzehuels/blockdiag/pkg/cache"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/observability"
)

// Format is an export format for frames.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat parses an export format name, ignoring case. An empty name
// means SVG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatSVG, nil
	case FormatSVG, FormatPNG, FormatPDF:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported output format %q (want svg, png or pdf)", s)
}

// FormatFromPath guesses the format from a file extension, falling back
// to SVG.
func FormatFromPath(path string) Format {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return FormatSVG
	}
	f, err := ParseFormat(path[i+1:])
	if err != nil {
		return FormatSVG
	}
	return f
}

// Convert turns SVG bytes into the requested format. SVG passes through;
// PNG and PDF go through rsvg-convert.
func Convert(ctx context.Context, svg []byte, f Format, scale float64) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(f))
	start := time.Now()

	var (
		out []byte
		err error
	)
	switch f {
	case FormatSVG, "":
		out = svg
	case FormatPNG:
		out, err = rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
	case FormatPDF:
		out, err = rsvgConvert(ctx, svg, "pdf")
	default:
		_, err = ParseFormat(string(f))
	}

	hooks.OnRenderComplete(ctx, string(f), len(out), time.Since(start), err)
	return out, err
}

// ConvertCached is [Convert] backed by c. Entries are keyed by the SVG
// digest, the format and the scale (PDF ignores scale), so an unchanged
// frame is converted once.
// Cache failures are not fatal; the conversion runs and the error is dropped.
func ConvertCached(ctx context.Context, c cache.Cache, svg []byte, f Format, scale float64) ([]byte, error) {
	if f == FormatSVG || f == "" {
		return svg, nil
	}
	if f == FormatPDF {
		scale = 1
	}
	key := cache.ExportKey(svg, string(f), scale)
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, nil
	}
	out, err := Convert(ctx, svg, f, scale)
	if err != nil {
		return nil, err
	}
	_ = c.Put(ctx, key, out)
	return out, nil
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %w: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
