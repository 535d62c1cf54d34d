package shape

import (
	"math"

	"github.com/inamate/rectcanvas/internal/geom"
	"github.com/inamate/rectcanvas/internal/typeid"
)

// MinSize is the smallest width or height a stored shape may have.
const MinSize = 5.0

// Shape is an axis-aligned rectangle. Fill is opaque to the engine and
// passed through to the renderer.
type Shape struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
}

// NewShape builds a shape with a fresh rect_ id.
func NewShape(x, y, width, height float64, fill string) Shape {
	return Shape{
		ID:     typeid.NewShapeID(),
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Fill:   fill,
	}
}

// Bounds returns the shape's box in surface coordinates.
func (s Shape) Bounds() geom.Rect {
	return geom.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Valid reports whether the geometry is finite with non-negative size.
func (s Shape) Valid() bool {
	return s.Bounds().IsFinite() && s.Width >= 0 && s.Height >= 0
}

// Clamp raises width and height to at least minSize.
func (s Shape) Clamp(minSize float64) Shape {
	s.Width = math.Max(minSize, s.Width)
	s.Height = math.Max(minSize, s.Height)
	return s
}

// DefaultSeed is the fixed startup list.
func DefaultSeed() []Shape {
	return []Shape{
		{ID: "rect1", X: 10, Y: 10, Width: 100, Height: 100, Fill: "red"},
		{ID: "rect2", X: 150, Y: 150, Width: 100, Height: 100, Fill: "green"},
		{ID: "rect3", X: 350, Y: 190, Width: 100, Height: 100, Fill: "orange"},
	}
}
