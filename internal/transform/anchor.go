package transform

import (
	"math"

	"github.com/inamate/rectcanvas/internal/geom"
)

// Anchor identifies one of the eight resize control points of the widget.
type Anchor int

const (
	AnchorNone Anchor = iota
	AnchorTopLeft
	AnchorTopCenter
	AnchorTopRight
	AnchorMiddleLeft
	AnchorMiddleRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

var anchorNames = map[Anchor]string{
	AnchorTopLeft:      "top-left",
	AnchorTopCenter:    "top-center",
	AnchorTopRight:     "top-right",
	AnchorMiddleLeft:   "middle-left",
	AnchorMiddleRight:  "middle-right",
	AnchorBottomLeft:   "bottom-left",
	AnchorBottomCenter: "bottom-center",
	AnchorBottomRight:  "bottom-right",
}

// AllAnchors lists the control points in drawing order.
var AllAnchors = []Anchor{
	AnchorTopLeft, AnchorTopCenter, AnchorTopRight,
	AnchorMiddleLeft, AnchorMiddleRight,
	AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight,
}

func (a Anchor) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return "none"
}

// ParseAnchor returns the anchor named s, or AnchorNone.
func ParseAnchor(s string) Anchor {
	for a, name := range anchorNames {
		if name == s {
			return a
		}
	}
	return AnchorNone
}

func (a Anchor) movesLeft() bool {
	return a == AnchorTopLeft || a == AnchorMiddleLeft || a == AnchorBottomLeft
}

func (a Anchor) movesRight() bool {
	return a == AnchorTopRight || a == AnchorMiddleRight || a == AnchorBottomRight
}

func (a Anchor) movesTop() bool {
	return a == AnchorTopLeft || a == AnchorTopCenter || a == AnchorTopRight
}

func (a Anchor) movesBottom() bool {
	return a == AnchorBottomLeft || a == AnchorBottomCenter || a == AnchorBottomRight
}

// Point returns where the anchor sits on box.
func (a Anchor) Point(box geom.Rect) (float64, float64) {
	x, y := box.Center()
	switch {
	case a.movesLeft():
		x = box.X
	case a.movesRight():
		x = box.X + box.Width
	}
	switch {
	case a.movesTop():
		y = box.Y
	case a.movesBottom():
		y = box.Y + box.Height
	}
	return x, y
}

// AnchorPoint is an anchor placed on the widget box.
type AnchorPoint struct {
	Anchor Anchor  `json:"-"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func anchorPoints(box geom.Rect) []AnchorPoint {
	points := make([]AnchorPoint, 0, len(AllAnchors))
	for _, a := range AllAnchors {
		x, y := a.Point(box)
		points = append(points, AnchorPoint{Anchor: a, Name: a.String(), X: x, Y: y})
	}
	return points
}

// anchorAt returns the anchor whose square handle of side size contains
// (x, y). Overlapping handles on a tiny box resolve to the nearest one.
func anchorAt(box geom.Rect, x, y, size float64) Anchor {
	half := size / 2
	best := AnchorNone
	bestDist := math.Inf(1)
	for _, p := range anchorPoints(box) {
		dx, dy := math.Abs(x-p.X), math.Abs(y-p.Y)
		if dx > half || dy > half {
			continue
		}
		if d := dx*dx + dy*dy; d < bestDist {
			best, bestDist = p.Anchor, d
		}
	}
	return best
}
