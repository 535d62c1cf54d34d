package dispatch

import (
	"fmt"

	"github.com/inamate/rectcanvas/internal/transform"
)

// Kind is the pointer event type.
type Kind int

const (
	Down Kind = iota
	Move
	Up
	Click
	Tap
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Click:
		return "click"
	case Tap:
		return "tap"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps the host's event names onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "down", "mousedown", "pointerdown", "touchstart":
		return Down, nil
	case "move", "mousemove", "pointermove", "touchmove":
		return Move, nil
	case "up", "mouseup", "pointerup", "touchend":
		return Up, nil
	case "click":
		return Click, nil
	case "tap":
		return Tap, nil
	}
	return 0, fmt.Errorf("unknown pointer event %q", s)
}

// TargetKind says what the pointer landed on.
type TargetKind int

const (
	// TargetAuto asks the dispatcher to hit test the event position.
	TargetAuto TargetKind = iota
	TargetSurface
	TargetShape
	TargetHandle
)

func (k TargetKind) String() string {
	switch k {
	case TargetSurface:
		return "surface"
	case TargetShape:
		return "shape"
	case TargetHandle:
		return "handle"
	default:
		return "auto"
	}
}

// ParseTargetKind maps a host target name onto a TargetKind. An empty
// name means TargetAuto.
func ParseTargetKind(s string) (TargetKind, error) {
	switch s {
	case "", "auto":
		return TargetAuto, nil
	case "surface", "stage":
		return TargetSurface, nil
	case "shape":
		return TargetShape, nil
	case "handle", "anchor":
		return TargetHandle, nil
	}
	return TargetAuto, fmt.Errorf("unknown pointer target %q", s)
}

// Target is the pointer target reference carried by an event.
type Target struct {
	Kind    TargetKind
	ShapeID string           // for TargetShape
	Anchor  transform.Anchor // for TargetHandle; AnchorNone means hit test
}

// Event is one pointer event in surface coordinates.
type Event struct {
	Kind   Kind
	X, Y   float64
	Target Target
}

// GestureKind names the gesture in progress.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureDrag
	GestureResize
	GestureMarquee
)

func (g GestureKind) String() string {
	switch g {
	case GestureDrag:
		return "drag"
	case GestureResize:
		return "resize"
	case GestureMarquee:
		return "marquee"
	default:
		return "none"
	}
}
