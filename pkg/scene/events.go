package scene

import (
	"fmt"

	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/geometry"
)

// EventKind is the type of a pointer event.
type EventKind int

const (
	Press EventKind = iota
	Move
	Release
)

func (k EventKind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// ParseEventKind parses "press", "move" or "release".
func ParseEventKind(s string) (EventKind, error) {
	for _, k := range []EventKind{Press, Move, Release} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown event kind %q", s)
}

// Button is a pointer button.
type Button int

const (
	Left Button = iota
	Right
	Middle
)

func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	case Middle:
		return "middle"
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// ParseButton parses "left", "right" or "middle". Empty means left.
func ParseButton(s string) (Button, error) {
	if s == "" {
		return Left, nil
	}
	for _, b := range []Button{Left, Right, Middle} {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown button %q", s)
}

// Event is a pointer event in scene coordinates.
type Event struct {
	Kind   EventKind
	At     geometry.Point
	Button Button
	// Toggle is the multi-select modifier (Ctrl): a left press toggles the
	// target's selection instead of replacing the selection.
	Toggle bool
}

// PressAt returns a press event.
func PressAt(at geometry.Point, b Button) Event { return Event{Kind: Press, At: at, Button: b} }

// MoveTo returns a pointer move event.
func MoveTo(at geometry.Point) Event { return Event{Kind: Move, At: at} }

// ReleaseAt returns a release event.
func ReleaseAt(at geometry.Point) Event { return Event{Kind: Release, At: at} }

func (e Event) String() string {
	s := fmt.Sprintf("%s %s", e.Kind, e.At)
	if e.Kind == Press {
		s += " " + e.Button.String()
	}
	if e.Toggle {
		s += " +toggle"
	}
	return s
}
