// Package transform implements the shared transform widget: one set of
// resize handles that follows the selection and turns drag and resize
// gestures into whole-record shape updates.
package transform

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/inamate/rectcanvas/internal/geom"
	"github.com/inamate/rectcanvas/internal/shape"
)

// Node is the rendering collaborator's handle on one shape. Position and
// scale are transient render state while a gesture is in flight; Size is
// the unscaled size last committed.
type Node interface {
	ID() string
	Position() (x, y float64)
	SetPosition(x, y float64)
	Size() (width, height float64)
	SetSize(width, height float64)
	Scale() (sx, sy float64)
	SetScale(sx, sy float64)
}

// NodeBox returns the on-screen box of n, scale included.
func NodeBox(n Node) geom.Rect {
	x, y := n.Position()
	w, h := n.Size()
	sx, sy := n.Scale()
	return geom.Rect{X: x, Y: y, Width: w * sx, Height: h * sy}
}

// Store is the subset of shape.Store the widget commits through.
type Store interface {
	Get(id string) (shape.Shape, bool)
	Update(id string, next shape.Shape) (shape.Shape, error)
}

// NodeResolver looks up the render node for a shape id.
type NodeResolver func(id string) (Node, bool)

// Transformer owns the widget's attached node set. It never writes shape
// geometry itself; it proposes records to the Store.
type Transformer struct {
	store   Store
	resolve NodeResolver
	minSize float64
	nodes   []Node
}

func New(store Store, resolve NodeResolver, minSize float64) *Transformer {
	if minSize <= 0 {
		minSize = shape.MinSize
	}
	return &Transformer{
		store:   store,
		resolve: resolve,
		minSize: minSize,
	}
}

// Sync makes the attached set mirror selected exactly. Nodes of deselected
// shapes are detached, nodes of newly selected shapes attached.
func (t *Transformer) Sync(selected []string) (added, removed []string) {
	next := make([]Node, 0, len(selected))
	for _, id := range selected {
		if n := t.attached(id); n != nil {
			next = append(next, n)
			continue
		}
		n, ok := t.resolve(id)
		if !ok {
			slog.Warn("no render node for selected shape", "shape", id)
			continue
		}
		next = append(next, n)
		added = append(added, id)
	}
	for _, n := range t.nodes {
		if !slices.Contains(selected, n.ID()) {
			removed = append(removed, n.ID())
		}
	}
	t.nodes = next
	return added, removed
}

func (t *Transformer) attached(id string) Node {
	for _, n := range t.nodes {
		if n.ID() == id {
			return n
		}
	}
	return nil
}

// Nodes returns the attached nodes in selection order.
func (t *Transformer) Nodes() []Node {
	return slices.Clone(t.nodes)
}

func (t *Transformer) AttachedIDs() []string {
	ids := make([]string, 0, len(t.nodes))
	for _, n := range t.nodes {
		ids = append(ids, n.ID())
	}
	return ids
}

func (t *Transformer) IsAttached(id string) bool {
	return t.attached(id) != nil
}

// Box is the union of the attached nodes' boxes; ok is false when nothing
// is attached.
func (t *Transformer) Box() (box geom.Rect, ok bool) {
	for i, n := range t.nodes {
		if i == 0 {
			box = NodeBox(n)
			continue
		}
		box = box.Union(NodeBox(n))
	}
	return box, len(t.nodes) > 0
}

// Anchors places the eight control points on the current box.
func (t *Transformer) Anchors() []AnchorPoint {
	box, ok := t.Box()
	if !ok {
		return nil
	}
	return anchorPoints(box)
}

// AnchorAt returns the control point under (x, y), using square handles of
// side size.
func (t *Transformer) AnchorAt(x, y, size float64) Anchor {
	box, ok := t.Box()
	if !ok {
		return AnchorNone
	}
	return anchorAt(box, x, y, size)
}

// BoundBox validates a candidate box during an interactive resize. A
// candidate smaller than the minimum on either axis is refused and old is
// kept, so the shape cannot collapse mid-gesture.
func (t *Transformer) BoundBox(old, candidate geom.Rect) geom.Rect {
	return boundBox(old, candidate, t.minSize)
}

// DragEnd commits the node's post-drag position. Size is untouched.
func (t *Transformer) DragEnd(n Node) (shape.Shape, error) {
	old, ok := t.store.Get(n.ID())
	if !ok {
		return shape.Shape{}, fmt.Errorf("drag end %q: %w", n.ID(), shape.ErrNotFound)
	}
	x, y := n.Position()
	committed, err := t.store.Update(old.ID, Translate(old, x, y))
	if err != nil {
		rebaseline(n, old)
		return old, fmt.Errorf("drag end: %w", err)
	}
	rebaseline(n, committed)
	return committed, nil
}

// TransformEnd folds the node's scale into absolute width/height, commits
// the record and then resets the node's scale to 1 so that scale never
// accumulates across gestures.
func (t *Transformer) TransformEnd(n Node) (shape.Shape, error) {
	old, ok := t.store.Get(n.ID())
	if !ok {
		n.SetScale(1, 1)
		return shape.Shape{}, fmt.Errorf("transform end %q: %w", n.ID(), shape.ErrNotFound)
	}
	sx, sy := n.Scale()
	x, y := n.Position()
	committed, err := t.store.Update(old.ID, Resize(old, sx, sy, x, y, t.minSize))
	if err != nil {
		rebaseline(n, old)
		return old, fmt.Errorf("transform end: %w", err)
	}
	rebaseline(n, committed)
	return committed, nil
}

// rebaseline puts n back at identity scale showing s.
func rebaseline(n Node, s shape.Shape) {
	n.SetScale(1, 1)
	n.SetSize(s.Width, s.Height)
	n.SetPosition(s.X, s.Y)
}
