package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/rectcanvas/internal/geom"
	"github.com/inamate/rectcanvas/internal/shape"
)

type testNode struct {
	id         string
	x, y, w, h float64
	sx, sy     float64
}

func (n *testNode) ID() string { return n.id }
func (n *testNode) Position() (float64, float64) { return n.x, n.y }
func (n *testNode) SetPosition(x, y float64) { n.x, n.y = x, y }
func (n *testNode) Size() (float64, float64) { return n.w, n.h }
func (n *testNode) SetSize(w, h float64) { n.w, n.h = w, h }
func (n *testNode) Scale() (float64, float64) { return n.sx, n.sy }
func (n *testNode) SetScale(sx, sy float64) { n.sx, n.sy = sx, sy }

type fixture struct {
	store *shape.Store
	nodes map[string]*testNode
	tr    *Transformer
}

func newFixture(t *testing.T, seed ...shape.Shape) *fixture {
	t.Helper()
	if len(seed) == 0 {
		seed = shape.DefaultSeed()
	}
	store, err := shape.NewStore(shape.MinSize, seed)
	require.NoError(t, err)

	f := &fixture{store: store, nodes: make(map[string]*testNode)}
	for _, s := range store.List() {
		f.nodes[s.ID] = &testNode{id: s.ID, x: s.X, y: s.Y, w: s.Width, h: s.Height, sx: 1, sy: 1}
	}
	f.tr = New(store, func(id string) (Node, bool) {
		n, ok := f.nodes[id]
		return n, ok
	}, shape.MinSize)
	return f
}

func TestSyncAttachesExactlySelection(t *testing.T) {
	f := newFixture(t)

	added, removed := f.tr.Sync([]string{"rect2"})
	assert.Equal(t, []string{"rect2"}, added)
	assert.Empty(t, removed)
	assert.Equal(t, []string{"rect2"}, f.tr.AttachedIDs())

	added, removed = f.tr.Sync([]string{"rect1"})
	assert.Equal(t, []string{"rect1"}, added)
	assert.Equal(t, []string{"rect2"}, removed)
	assert.Equal(t, []string{"rect1"}, f.tr.AttachedIDs())
	assert.False(t, f.tr.IsAttached("rect2"))

	added, removed = f.tr.Sync(nil)
	assert.Empty(t, added)
	assert.Equal(t, []string{"rect1"}, removed)
	assert.Empty(t, f.tr.Nodes())
}

func TestSyncIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.tr.Sync([]string{"rect3"})
	before := f.tr.Nodes()

	added, removed := f.tr.Sync([]string{"rect3"})
	assert.Empty(t, added)
	assert.Empty(t, removed)
	assert.Equal(t, before, f.tr.Nodes())
}

func TestSyncSkipsUnresolvable(t *testing.T) {
	f := newFixture(t)
	added, _ := f.tr.Sync([]string{"ghost", "rect1"})
	assert.Equal(t, []string{"rect1"}, added)
	assert.Equal(t, []string{"rect1"}, f.tr.AttachedIDs())
}

func TestBoxAndAnchors(t *testing.T) {
	f := newFixture(t)

	_, ok := f.tr.Box()
	assert.False(t, ok)
	assert.Nil(t, f.tr.Anchors())
	assert.Equal(t, AnchorNone, f.tr.AnchorAt(10, 10, 10))

	f.tr.Sync([]string{"rect1", "rect2"})
	box, ok := f.tr.Box()
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, Width: 240, Height: 240}, box)

	anchors := f.tr.Anchors()
	require.Len(t, anchors, 8)
	assert.Equal(t, AnchorPoint{Anchor: AnchorTopLeft, Name: "top-left", X: 10, Y: 10}, anchors[0])
	assert.Equal(t, AnchorPoint{Anchor: AnchorBottomRight, Name: "bottom-right", X: 250, Y: 250}, anchors[7])

	assert.Equal(t, AnchorBottomRight, f.tr.AnchorAt(253, 248, 10))
	assert.Equal(t, AnchorMiddleLeft, f.tr.AnchorAt(10, 130, 10))
	assert.Equal(t, AnchorNone, f.tr.AnchorAt(130, 130, 10))
}

func TestBoundBoxRejectsUndersized(t *testing.T) {
	f := newFixture(t)
	old := geom.Rect{X: 0, Y: 0, Width: 50, Height: 50}

	tests := []struct {
		name      string
		candidate geom.Rect
		want      geom.Rect
	}{
		{"accepted", geom.Rect{Width: 20, Height: 30}, geom.Rect{Width: 20, Height: 30}},
		{"exactly minimum", geom.Rect{Width: 5, Height: 5}, geom.Rect{Width: 5, Height: 5}},
		{"too narrow", geom.Rect{Width: 4.9, Height: 30}, old},
		{"too short", geom.Rect{Width: 30, Height: 2}, old},
		{"inverted", geom.Rect{Width: -10, Height: 30}, old},
		{"nan", geom.Rect{Width: math.NaN(), Height: 30}, old},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.tr.BoundBox(old, tt.candidate))
		})
	}
}

func TestDragEndCommitsPositionOnly(t *testing.T) {
	f := newFixture(t)
	n := f.nodes["rect1"]
	n.SetPosition(10+25, 10-7)

	committed, err := f.tr.DragEnd(n)
	require.NoError(t, err)

	want := shape.Shape{ID: "rect1", X: 35, Y: 3, Width: 100, Height: 100, Fill: "red"}
	assert.Equal(t, want, committed)
	got, _ := f.store.Get("rect1")
	assert.Equal(t, want, got)
}

func TestTransformEndScales(t *testing.T) {
	tests := []struct {
		name         string
		sx, sy       float64
		wantW, wantH float64
	}{
		{"half", 0.5, 0.5, 50, 50},
		{"clamped both", 0.01, 0.01, 5, 5},
		{"clamped height only", 2, 0.02, 200, 5},
		{"grow", 1.5, 3, 150, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, shape.Shape{ID: "rect1", X: 0, Y: 0, Width: 100, Height: 100, Fill: "red"})
			n := f.nodes["rect1"]
			n.SetScale(tt.sx, tt.sy)
			n.SetPosition(3, 4)

			committed, err := f.tr.TransformEnd(n)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, committed.Width)
			assert.Equal(t, tt.wantH, committed.Height)
			assert.Equal(t, 3.0, committed.X)
			assert.Equal(t, 4.0, committed.Y)
			assert.Equal(t, "red", committed.Fill)

			sx, sy := n.Scale()
			assert.Equal(t, 1.0, sx, "scale must be reset after commit")
			assert.Equal(t, 1.0, sy)
			w, h := n.Size()
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestTransformEndTwiceDoesNotAccumulateScale(t *testing.T) {
	f := newFixture(t)
	n := f.nodes["rect2"]

	n.SetScale(0.5, 0.5)
	_, err := f.tr.TransformEnd(n)
	require.NoError(t, err)

	n.SetScale(2, 2)
	committed, err := f.tr.TransformEnd(n)
	require.NoError(t, err)
	assert.Equal(t, 100.0, committed.Width)
	assert.Equal(t, 100.0, committed.Height)
}

func TestEndRestoresNodeOnRejectedGeometry(t *testing.T) {
	f := newFixture(t)
	n := f.nodes["rect3"]
	n.SetPosition(math.NaN(), 0)

	_, err := f.tr.DragEnd(n)
	require.ErrorIs(t, err, shape.ErrInvalidGeometry)
	x, y := n.Position()
	assert.Equal(t, 350.0, x)
	assert.Equal(t, 190.0, y)
}

func TestEndOnRemovedShape(t *testing.T) {
	f := newFixture(t)
	n := f.nodes["rect1"]
	require.NoError(t, f.store.Remove("rect1"))

	_, err := f.tr.DragEnd(n)
	require.ErrorIs(t, err, shape.ErrNotFound)

	n.SetScale(3, 3)
	_, err = f.tr.TransformEnd(n)
	require.ErrorIs(t, err, shape.ErrNotFound)
	sx, _ := n.Scale()
	assert.Equal(t, 1.0, sx)
}
