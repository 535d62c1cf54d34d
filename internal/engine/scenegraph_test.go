package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inamate/rectcanvas/internal/geom"
	"github.com/inamate/rectcanvas/internal/shape"
)

func TestHitTestFollowsNodeScale(t *testing.T) {
	sg := BuildSceneGraph([]shape.Shape{
		{ID: "a", X: 100, Y: 100, Width: 100, Height: 100, Fill: "red"},
	})
	n := sg.NodesByID["a"]
	n.SetScale(0.5, 0.5)

	assert.Equal(t, "a", sg.HitTest(140, 140))
	assert.Equal(t, "", sg.HitTest(160, 160))
	assert.Equal(t, geom.Rect{X: 100, Y: 100, Width: 50, Height: 50}, n.Bounds())

	n.SetScale(0, 1)
	assert.False(t, n.Hit(100, 120))
}

func TestHitTestPrefersTopmost(t *testing.T) {
	sg := BuildSceneGraph([]shape.Shape{
		{ID: "back", X: 0, Y: 0, Width: 100, Height: 100},
		{ID: "front", X: 50, Y: 50, Width: 100, Height: 100},
	})

	assert.Equal(t, "front", sg.HitTest(75, 75))
	assert.Equal(t, "back", sg.HitTest(25, 25))
	assert.Equal(t, "", sg.HitTest(200, 200))

	sg.Remove("front")
	assert.Equal(t, "back", sg.HitTest(75, 75))
	_, ok := sg.Node("front")
	assert.False(t, ok)
}

func TestIntersectingKeepsPainterOrder(t *testing.T) {
	sg := BuildSceneGraph(shape.DefaultSeed())

	assert.Equal(t, []string{"rect1", "rect2"}, sg.Intersecting(geom.Rect{Width: 200, Height: 200}))
	assert.Empty(t, sg.Intersecting(geom.Rect{X: 600, Y: 600, Width: 10, Height: 10}))
}
