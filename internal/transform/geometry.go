package transform

import (
	"math"

	"github.com/inamate/rectcanvas/internal/geom"
	"github.com/inamate/rectcanvas/internal/shape"
)

// Translate returns old moved to (x, y). Size, fill and id are kept.
func Translate(old shape.Shape, x, y float64) shape.Shape {
	next := old
	next.X = x
	next.Y = y
	return next
}

// Resize folds a reported scale into absolute dimensions: the node was
// scaled by (sx, sy) and now sits at (x, y). The result never carries a
// scale, and width/height are at least minSize.
func Resize(old shape.Shape, sx, sy, x, y, minSize float64) shape.Shape {
	next := old
	next.X = x
	next.Y = y
	next.Width = math.Max(minSize, old.Width*sx)
	next.Height = math.Max(minSize, old.Height*sy)
	return next
}

// ResizeBox moves the edges that anchor controls by (dx, dy). The result
// may be inverted or degenerate; BoundBox decides whether to accept it.
func ResizeBox(box geom.Rect, anchor Anchor, dx, dy float64) geom.Rect {
	switch {
	case anchor.movesLeft():
		box.X += dx
		box.Width -= dx
	case anchor.movesRight():
		box.Width += dx
	}
	switch {
	case anchor.movesTop():
		box.Y += dy
		box.Height -= dy
	case anchor.movesBottom():
		box.Height += dy
	}
	return box
}

// MapBox maps r, positioned inside from, into to. It returns the mapped
// origin and the scale factors applied.
func MapBox(from, to, r geom.Rect) (x, y, kx, ky float64) {
	kx, ky = 1, 1
	if from.Width != 0 {
		kx = to.Width / from.Width
	}
	if from.Height != 0 {
		ky = to.Height / from.Height
	}
	x = to.X + (r.X-from.X)*kx
	y = to.Y + (r.Y-from.Y)*ky
	return x, y, kx, ky
}

// boundBox keeps old whenever candidate would fall under minSize on either
// axis or is not a finite box.
func boundBox(old, candidate geom.Rect, minSize float64) geom.Rect {
	if !candidate.IsFinite() || candidate.Width < minSize || candidate.Height < minSize {
		return old
	}
	return candidate
}
