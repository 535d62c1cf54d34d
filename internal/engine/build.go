package engine

import "github.com/inamate/rectcanvas/internal/shape"

// BuildSceneGraph builds a render node per shape, keeping store order.
func BuildSceneGraph(shapes []shape.Shape) *SceneGraph {
	sg := NewSceneGraph()
	for _, s := range shapes {
		sg.Apply(s)
	}
	return sg
}

// onShapeChange keeps the scene graph in step with committed store writes.
func (e *Engine) onShapeChange(c shape.Change) {
	switch c.Kind {
	case shape.ChangeAdded, shape.ChangeUpdated:
		e.sceneGraph.Apply(c.Shape)
	case shape.ChangeRemoved:
		e.sceneGraph.Remove(c.Shape.ID)
		e.selection.Prune()
	}
	e.dirty = true
}
