// Package fonts measures block titles.
//
// The default measurer uses the Go regular font shipped with
// golang.org/x/image, rendered at 10pt through freetype, so title widths are
// the same on every machine without touching system fonts.
package fonts

import (
	"sync"
	"unicode/utf8"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultSize is the title font size in points.
const DefaultSize = 10.0

// FontFamily is the CSS font-family used when titles are drawn as SVG text.
const FontFamily = `'Go', 'Ubuntu', 'Helvetica Neue', Arial, sans-serif`

// Measurer measures the rendered pixel width of a line of text.
type Measurer interface {
	Width(text string) int
}

// Face measures text with a TrueType font. It is safe for concurrent use.
type Face struct {
	mu   sync.Mutex
	face font.Face
	size float64
}

// NewFace parses ttf and prepares it at the given point size (72 DPI, so
// points equal pixels).
func NewFace(ttf []byte, size float64) (*Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return &Face{
		face: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
		size: size,
	}, nil
}

// Width returns the advance width of text, rounded up to whole pixels.
func (f *Face) Width(text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return font.MeasureString(f.face, text).Ceil()
}

// Size returns the point size.
func (f *Face) Size() float64 { return f.size }

// FontFace returns the underlying face for drawing. Callers must not use it
// concurrently with Width.
func (f *Face) FontFace() font.Face { return f.face }

var (
	defaultFace     *Face
	defaultFaceOnce sync.Once
)

// Default returns the shared Go regular face at DefaultSize.
func Default() *Face {
	defaultFaceOnce.Do(func() {
		f, err := NewFace(goregular.TTF, DefaultSize)
		if err != nil {
			panic("fonts: embedded goregular failed to parse: " + err.Error())
		}
		defaultFace = f
	})
	return defaultFace
}

// Fixed is a Measurer that gives every rune the same width.
type Fixed int

// Width returns the rune count times f.
func (f Fixed) Width(text string) int {
	return int(f) * utf8.RuneCountInString(text)
}

// Regular returns the Go regular font at the given size.
func Regular(size float64) (*Face, error) {
	return NewFace(goregular.TTF, size)
}
