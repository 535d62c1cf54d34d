package dispatch

import (
	"errors"
	"log/slog"
	"math"

	"github.com/inamate/rectcanvas/internal/geom"
	"github.com/inamate/rectcanvas/internal/transform"
)

type gesture interface {
	kind() GestureKind
	move(x, y float64)
	// end receives the release position and commits the gesture.
	end(x, y float64) error
	// cancel puts every touched node back where the gesture found it.
	cancel()
	// consumesClick reports whether the click the host fires after the
	// release belongs to this gesture and must not reach the selection.
	consumesClick() bool
}

type dragGesture struct {
	id             string
	tr             *transform.Transformer
	node           transform.Node
	startX, startY float64
	origX, origY   float64
	deadZone       float64
	dragging       bool
}

func newDrag(id string, tr *transform.Transformer, node transform.Node, x, y, deadZone float64) *dragGesture {
	ox, oy := node.Position()
	return &dragGesture{
		id:       id,
		tr:       tr,
		node:     node,
		startX:   x,
		startY:   y,
		origX:    ox,
		origY:    oy,
		deadZone: deadZone,
	}
}

func (g *dragGesture) kind() GestureKind { return GestureDrag }

func (g *dragGesture) move(x, y float64) {
	dx, dy := x-g.startX, y-g.startY
	if !g.dragging {
		if (dx == 0 && dy == 0) || math.Hypot(dx, dy) < g.deadZone {
			return
		}
		g.dragging = true
		slog.Debug("drag start", "gesture", g.id, "shape", g.node.ID())
	}
	g.node.SetPosition(g.origX+dx, g.origY+dy)
}

func (g *dragGesture) end(x, y float64) error {
	g.move(x, y)
	if !g.dragging {
		return nil
	}
	committed, err := g.tr.DragEnd(g.node)
	if err != nil {
		return err
	}
	slog.Debug("drag end", "gesture", g.id, "shape", committed.ID, "x", committed.X, "y", committed.Y)
	return nil
}

func (g *dragGesture) cancel() {
	g.node.SetPosition(g.origX, g.origY)
}

// A press and release that never moved is a plain click on the shape.
func (g *dragGesture) consumesClick() bool { return g.dragging }

type nodeStart struct {
	node   transform.Node
	box    geom.Rect
	x, y   float64
	sx, sy float64
}

type resizeGesture struct {
	id             string
	tr             *transform.Transformer
	anchor         transform.Anchor
	startX, startY float64
	startBox       geom.Rect
	box            geom.Rect
	starts         []nodeStart
}

func newResize(id string, tr *transform.Transformer, anchor transform.Anchor, x, y float64) (*resizeGesture, bool) {
	box, ok := tr.Box()
	if !ok {
		return nil, false
	}
	g := &resizeGesture{
		id:       id,
		tr:       tr,
		anchor:   anchor,
		startX:   x,
		startY:   y,
		startBox: box,
		box:      box,
	}
	for _, n := range tr.Nodes() {
		s := nodeStart{node: n, box: transform.NodeBox(n)}
		s.x, s.y = n.Position()
		s.sx, s.sy = n.Scale()
		g.starts = append(g.starts, s)
	}
	return g, true
}

func (g *resizeGesture) kind() GestureKind { return GestureResize }

func (g *resizeGesture) move(x, y float64) {
	candidate := transform.ResizeBox(g.startBox, g.anchor, x-g.startX, y-g.startY)
	g.box = g.tr.BoundBox(g.box, candidate)
	for _, s := range g.starts {
		nx, ny, kx, ky := transform.MapBox(g.startBox, g.box, s.box)
		s.node.SetPosition(nx, ny)
		s.node.SetScale(s.sx*kx, s.sy*ky)
	}
}

func (g *resizeGesture) end(x, y float64) error {
	g.move(x, y)
	if g.box == g.startBox {
		return nil
	}
	var errs []error
	for _, s := range g.starts {
		committed, err := g.tr.TransformEnd(s.node)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		slog.Debug("transform end", "gesture", g.id, "shape", committed.ID, "width", committed.Width, "height", committed.Height)
	}
	return errors.Join(errs...)
}

// The release point of a resize may be over another shape or the bare
// surface; a handle gesture never changes the selection.
func (g *resizeGesture) consumesClick() bool { return true }

func (g *resizeGesture) cancel() {
	for _, s := range g.starts {
		s.node.SetPosition(s.x, s.y)
		s.node.SetScale(s.sx, s.sy)
	}
}
