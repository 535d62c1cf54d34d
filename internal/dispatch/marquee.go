package dispatch

import "github.com/inamate/rectcanvas/internal/geom"

// Marquee is the area-selection rectangle. (X1, Y1) is where the press
// started; (X2, Y2) follows the pointer.
type Marquee struct {
	Visible bool    `json:"visible"`
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
}

// Rect returns the marquee as a normalized rect.
func (m Marquee) Rect() geom.Rect {
	return geom.FromCorners(m.X1, m.Y1, m.X2, m.Y2)
}

type marqueeGesture struct {
	id    string
	d     *Dispatcher
	moved bool
}

func (g *marqueeGesture) kind() GestureKind { return GestureMarquee }

func (g *marqueeGesture) move(x, y float64) {
	g.d.marquee.X2 = x
	g.d.marquee.Y2 = y
}

// end selects every shape the rectangle touches. A press that never moved
// leaves the selection as the press left it (cleared).
func (g *marqueeGesture) end(x, y float64) error {
	g.move(x, y)
	g.d.marquee.Visible = false

	r := g.d.marquee.Rect()
	if r.Width == 0 && r.Height == 0 {
		return nil
	}
	g.moved = true

	ids := g.d.scene.Intersecting(r)
	if len(ids) == 0 {
		g.d.sel.Clear()
		return nil
	}
	return g.d.sel.Replace(ids)
}

func (g *marqueeGesture) consumesClick() bool { return g.moved }

func (g *marqueeGesture) cancel() {
	g.d.marquee.Visible = false
}
