package block

import (
	"strings"

	"github.com/matzehuels/blockdiag/pkg/errors"
)

// Mode is the color mode an entity is painted in.
type Mode string

const (
	Light Mode = "Light"
	Dark  Mode = "Dark"
	// Off is the scene's "no background" mode. Blocks paint as in Light.
	Off Mode = "Off"
)

// Modes returns the supported color modes in cycle order.
func Modes() []Mode {
	return []Mode{Light, Dark, Off}
}

// Valid reports whether m is a supported color mode.
func (m Mode) Valid() bool {
	switch m {
	case Light, Dark, Off:
		return true
	}
	return false
}

// Next returns the mode following m in cycle order.
func (m Mode) Next() Mode {
	switch m {
	case Light:
		return Dark
	case Dark:
		return Off
	default:
		return Light
	}
}

func (m Mode) String() string { return string(m) }

// ParseMode parses a color mode name, ignoring case and surrounding space.
// Unknown names return an INVALID_MODE error.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	for _, m := range Modes() {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", errors.InvalidMode(s)
}
