// Package dispatch routes pointer events to the selection, the transform
// widget and per-shape drag handling.
//
// Every press is classified into exactly one of three targets. A press on
// the empty surface clears the selection and starts a marquee. A press on a
// shape selects it exclusively and starts a drag of that same node. A press
// on a widget handle leaves the selection alone and starts a resize. Moves
// and releases go to whichever gesture is in progress and are ignored when
// none is.
package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/inamate/rectcanvas/internal/geom"
	"github.com/inamate/rectcanvas/internal/selection"
	"github.com/inamate/rectcanvas/internal/transform"
	"github.com/inamate/rectcanvas/internal/typeid"
)

// Scene is the hit-testing view of the rendered shapes.
type Scene interface {
	// HitTest returns the topmost shape id at (x, y), or "".
	HitTest(x, y float64) string
	Node(id string) (transform.Node, bool)
	// Intersecting returns the ids of shapes touching r, back to front.
	Intersecting(r geom.Rect) []string
}

type Options struct {
	HandleSize     float64
	DragDeadZone   float64
	MarqueeEnabled bool
}

// Dispatcher is single threaded: events must be delivered one at a time in
// input order.
type Dispatcher struct {
	sel   *selection.State
	tr    *transform.Transformer
	scene Scene
	opts  Options

	active       gesture
	marquee      Marquee
	swallowClick bool
}

func New(sel *selection.State, tr *transform.Transformer, scene Scene, opts Options) *Dispatcher {
	if opts.HandleSize <= 0 {
		opts.HandleSize = 10
	}
	return &Dispatcher{
		sel:   sel,
		tr:    tr,
		scene: scene,
		opts:  opts,
	}
}

// Dispatch processes one pointer event.
func (d *Dispatcher) Dispatch(ev Event) error {
	switch ev.Kind {
	case Down:
		return d.down(ev)
	case Move:
		if d.active != nil {
			d.active.move(ev.X, ev.Y)
		}
		return nil
	case Up:
		if d.active == nil {
			return nil
		}
		g := d.active
		d.active = nil
		err := g.end(ev.X, ev.Y)
		d.swallowClick = g.consumesClick()
		if err != nil {
			return fmt.Errorf("%s end: %w", g.kind(), err)
		}
		return nil
	case Click, Tap:
		return d.click(ev)
	default:
		return fmt.Errorf("dispatch: unknown event kind %v", ev.Kind)
	}
}

// Cancel aborts the gesture in progress, if any, restoring node geometry
// and hiding the marquee. Hosts call it on focus loss or pointer cancel.
func (d *Dispatcher) Cancel() {
	if d.active == nil {
		return
	}
	slog.Debug("gesture cancelled", "gesture", d.active.kind().String())
	d.active.cancel()
	d.active = nil
}

// Active reports the gesture in progress.
func (d *Dispatcher) Active() GestureKind {
	if d.active == nil {
		return GestureNone
	}
	return d.active.kind()
}

func (d *Dispatcher) Marquee() Marquee {
	return d.marquee
}

// Classify resolves the target of a pointer at (x, y). Handles sit above
// shapes, shapes above the surface.
func (d *Dispatcher) Classify(x, y float64) Target {
	if a := d.tr.AnchorAt(x, y, d.opts.HandleSize); a != transform.AnchorNone {
		return Target{Kind: TargetHandle, Anchor: a}
	}
	if id := d.scene.HitTest(x, y); id != "" {
		return Target{Kind: TargetShape, ShapeID: id}
	}
	return Target{Kind: TargetSurface}
}

func (d *Dispatcher) resolve(ev Event) Target {
	t := ev.Target
	switch t.Kind {
	case TargetAuto:
		return d.Classify(ev.X, ev.Y)
	case TargetHandle:
		if t.Anchor == transform.AnchorNone {
			t.Anchor = d.tr.AnchorAt(ev.X, ev.Y, d.opts.HandleSize)
		}
	}
	return t
}

func (d *Dispatcher) down(ev Event) error {
	if d.active != nil {
		// a release was lost; never let two gestures overlap
		slog.Warn("pointer down during active gesture", "gesture", d.active.kind().String())
		d.Cancel()
	}
	d.swallowClick = false

	t := d.resolve(ev)
	switch t.Kind {
	case TargetSurface:
		d.sel.Clear()
		if d.opts.MarqueeEnabled {
			d.marquee = Marquee{Visible: true, X1: ev.X, Y1: ev.Y, X2: ev.X, Y2: ev.Y}
			d.active = &marqueeGesture{id: typeid.NewGestureID(), d: d}
		}
		return nil

	case TargetShape:
		if err := d.sel.Select(t.ShapeID); err != nil {
			return err
		}
		node, ok := d.scene.Node(t.ShapeID)
		if !ok {
			return fmt.Errorf("drag start %q: no render node", t.ShapeID)
		}
		d.active = newDrag(typeid.NewGestureID(), d.tr, node, ev.X, ev.Y, d.opts.DragDeadZone)
		return nil

	case TargetHandle:
		if t.Anchor == transform.AnchorNone {
			return nil
		}
		g, ok := newResize(typeid.NewGestureID(), d.tr, t.Anchor, ev.X, ev.Y)
		if !ok {
			slog.Debug("handle press with nothing attached")
			return nil
		}
		d.active = g
		slog.Debug("resize start", "gesture", g.id, "anchor", t.Anchor.String())
		return nil
	}
	return fmt.Errorf("dispatch: unknown target %v", t.Kind)
}

// click handles click and tap. They arrive after the press that already
// selected, so on shapes they are idempotent. The click that closes a drag,
// resize or marquee is dropped wherever it lands so the gesture's result
// stands.
func (d *Dispatcher) click(ev Event) error {
	if d.swallowClick {
		d.swallowClick = false
		return nil
	}
	t := d.resolve(ev)
	switch t.Kind {
	case TargetShape:
		return d.sel.Select(t.ShapeID)
	case TargetSurface:
		d.sel.Clear()
	}
	return nil
}
