package render

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/blockdiag/pkg/block"
)

// Canvas colors shared by the SVG and raster adapters.
var (
	lightBackground = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	darkBackground  = color.NRGBA{R: 0x19, G: 0x19, B: 0x19, A: 0xFF}
	lightGrid       = color.NRGBA{R: 0x2F, G: 0x2F, B: 0x2F, A: 0x40}
	darkGrid        = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x30}
	lightWire       = color.NRGBA{A: 0xFF}
	darkWire        = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	socketFill      = color.NRGBA{R: 0xFF, G: 0x77, B: 0x00, A: 0xFF}
)

// WireThickness is the stroke width of wires.
const WireThickness = 2.0

// TitleLineHeight is the vertical space reserved for a title line.
const TitleLineHeight = 15.0

// SocketRadius is the radius of the socket markers.
const SocketRadius = 4.0

// Background returns the canvas color for m, or nil in Off mode.
func Background(m block.Mode) color.Color {
	switch m {
	case block.Dark:
		return darkBackground
	case block.Off:
		return nil
	}
	return lightBackground
}

// GridColor returns the grid dot color for m, or nil in Off mode.
func GridColor(m block.Mode) color.Color {
	switch m {
	case block.Dark:
		return darkGrid
	case block.Off:
		return nil
	}
	return lightGrid
}

// WireColor returns the wire stroke color for m.
func WireColor(m block.Mode) color.Color {
	if m == block.Dark {
		return darkWire
	}
	return lightWire
}

// SocketColor returns the fill of socket markers.
func SocketColor() color.Color { return socketFill }

// CSSColor formats c as an rgba() CSS color. A nil color is "none".
func CSSColor(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", n.R, n.G, n.B, float64(n.A)/255)
}
