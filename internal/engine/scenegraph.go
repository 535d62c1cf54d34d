package engine

import (
	"slices"

	"github.com/inamate/rectcanvas/internal/geom"
	"github.com/inamate/rectcanvas/internal/shape"
	"github.com/inamate/rectcanvas/internal/transform"
)

// SceneGraph is the retained, render-ready view of the shape store.
// Nodes are updated in place so references held by the transform widget
// stay valid across commits.
type SceneGraph struct {
	Nodes     []*SceneNode // painter's order, back to front
	NodesByID map[string]*SceneNode
}

// SceneNode is the render node of one shape. Position and scale may differ
// from the stored shape while a gesture is in flight.
type SceneNode struct {
	id     string
	X      float64
	Y      float64
	Width  float64 // unscaled
	Height float64 // unscaled
	ScaleX float64
	ScaleY float64
	Fill   string
}

var _ transform.Node = (*SceneNode)(nil)

// NewSceneGraph creates an empty scene graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{
		NodesByID: make(map[string]*SceneNode),
	}
}

func newSceneNode(s shape.Shape) *SceneNode {
	n := &SceneNode{id: s.ID}
	n.reset(s)
	return n
}

func (n *SceneNode) reset(s shape.Shape) {
	n.X, n.Y = s.X, s.Y
	n.Width, n.Height = s.Width, s.Height
	n.ScaleX, n.ScaleY = 1, 1
	n.Fill = s.Fill
}

func (n *SceneNode) ID() string { return n.id }
func (n *SceneNode) Position() (float64, float64) { return n.X, n.Y }
func (n *SceneNode) SetPosition(x, y float64) { n.X, n.Y = x, y }
func (n *SceneNode) Size() (float64, float64) { return n.Width, n.Height }
func (n *SceneNode) SetSize(width, height float64) { n.Width, n.Height = width, height }
func (n *SceneNode) Scale() (float64, float64) { return n.ScaleX, n.ScaleY }
func (n *SceneNode) SetScale(sx, sy float64) { n.ScaleX, n.ScaleY = sx, sy }
func (n *SceneNode) LocalTransform() geom.Matrix2D { return geom.FromPositionScale(n.X, n.Y, n.ScaleX, n.ScaleY) }

// Bounds is the node's box in surface coordinates, scale included.
func (n *SceneNode) Bounds() geom.Rect {
	return n.LocalTransform().TransformRect(geom.Rect{Width: n.Width, Height: n.Height})
}

// Node returns the render node for id.
func (sg *SceneGraph) Node(id string) (transform.Node, bool) {
	n, ok := sg.NodesByID[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// Apply re-baselines the node for s to the committed geometry, adding the
// node on top when it does not exist yet.
func (sg *SceneGraph) Apply(s shape.Shape) {
	if n, ok := sg.NodesByID[s.ID]; ok {
		n.reset(s)
		return
	}
	n := newSceneNode(s)
	sg.Nodes = append(sg.Nodes, n)
	sg.NodesByID[s.ID] = n
}

func (sg *SceneGraph) Remove(id string) {
	if _, ok := sg.NodesByID[id]; !ok {
		return
	}
	delete(sg.NodesByID, id)
	sg.Nodes = slices.DeleteFunc(sg.Nodes, func(n *SceneNode) bool { return n.id == id })
}

// Hit reports whether the surface point (x, y) falls on the node. The point
// is mapped into the node's local space and tested against its unscaled size.
func (n *SceneNode) Hit(x, y float64) bool {
	inv, ok := n.LocalTransform().Invert()
	if !ok {
		return false
	}
	lx, ly := inv.TransformPoint(x, y)
	return geom.Rect{Width: n.Width, Height: n.Height}.Contains(lx, ly)
}

// HitTest returns the ID of the topmost node containing the point, or "".
func (sg *SceneGraph) HitTest(x, y float64) string {
	// front to back
	for i := len(sg.Nodes) - 1; i >= 0; i-- {
		if sg.Nodes[i].Hit(x, y) {
			return sg.Nodes[i].id
		}
	}
	return ""
}

// Intersecting returns the ids of nodes whose bounds touch r, back to front.
func (sg *SceneGraph) Intersecting(r geom.Rect) []string {
	var ids []string
	for _, n := range sg.Nodes {
		if n.Bounds().Intersects(r) {
			ids = append(ids, n.id)
		}
	}
	return ids
}
