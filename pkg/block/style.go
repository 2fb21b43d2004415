package block

import (
	"image/color"

	"github.com/matzehuels/blockdiag/pkg/geometry"
)

// =============================================================================
// Palette
// =============================================================================

// Outline thicknesses and the rounding of a selected connector's outline.
const (
	DefaultThickness  = 3.0
	SelectedThickness = 5.0
	ConnectorRounding = 10.0
)

// IconWidth is the width icons are scaled to, keeping their aspect ratio.
const IconWidth = 50

var (
	// SelectedOutline is the orange outline of selected entities (#FFFFA637).
	SelectedOutline = color.NRGBA{R: 0xFF, G: 0xA6, B: 0x37, A: 0xFF}

	lightTitle   = color.NRGBA{A: 0xFF}
	lightOutline = color.NRGBA{A: 0x7F}                               // #7F000000
	lightFill    = color.NRGBA{R: 0xE1, G: 0xE0, B: 0xE8, A: 0xFF} // #FFE1E0E8
	white        = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Palette is the set of colors a block is painted with in one mode.
type Palette struct {
	Title   color.NRGBA
	Outline color.NRGBA
	Fill    color.NRGBA
}

// PaletteFor returns the block palette for m. Off has no block palette of
// its own and uses Light.
func PaletteFor(m Mode) Palette {
	if m == Dark {
		return Palette{Title: white, Outline: white, Fill: white}
	}
	return Palette{Title: lightTitle, Outline: lightOutline, Fill: lightFill}
}

// =============================================================================
// Render Tokens
// =============================================================================

// Kind distinguishes the entity kinds in render tokens.
type Kind int

const (
	KindBlock Kind = iota
	KindConnector
)

func (k Kind) String() string {
	if k == KindConnector {
		return "connector"
	}
	return "block"
}

// Icon is an opaque handle to a block's icon. Ref is resolved by the
// rendering front-end; Width and Height are the intrinsic pixel size used to
// keep the aspect ratio when scaling. The zero value means no icon.
type Icon struct {
	Ref    string
	Width  int
	Height int
}

// IsZero reports whether no icon is set.
func (i Icon) IsZero() bool { return i.Ref == "" }

// scaled returns the icon size after scaling to IconWidth.
func (i Icon) scaled() (w, h float64) {
	if i.Width <= 0 || i.Height <= 0 {
		return IconWidth, IconWidth
	}
	return IconWidth, IconWidth * float64(i.Height) / float64(i.Width)
}

// Appearance is everything a renderer needs to paint one entity. All
// coordinates are absolute scene coordinates. A nil color means the part is
// not painted.
type Appearance struct {
	ID       string
	Kind     Kind
	Mode     Mode
	Selected bool
	Flipped  bool
	Z        int

	Bounds       geometry.Rect // Outline rectangle
	Region       geometry.Rect // Pointer interaction region
	Fill         color.Color
	Outline      color.Color
	Thickness    float64
	CornerRadius float64

	Title      string
	TitlePos   geometry.Point
	TitleColor color.Color

	Icon     Icon
	IconRect geometry.Rect // Zero when Icon is unset

	Inputs  []geometry.Point // Socket positions, in port order
	Outputs []geometry.Point
}
