package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/inamate/rectcanvas/internal/config"
	"github.com/inamate/rectcanvas/internal/dispatch"
	"github.com/inamate/rectcanvas/internal/geom"
	"github.com/inamate/rectcanvas/internal/selection"
	"github.com/inamate/rectcanvas/internal/shape"
	"github.com/inamate/rectcanvas/internal/transform"
)

// Engine owns the shape store, the selection, the transform widget and the
// retained scene graph. It processes commands from the host and answers
// queries. Engine is not safe for concurrent use.
type Engine struct {
	cfg  *config.Config
	seed []shape.Shape

	store       *shape.Store
	selection   *selection.State
	transformer *transform.Transformer
	dispatcher  *dispatch.Dispatcher

	// Retained scene graph
	sceneGraph *SceneGraph

	// Last rendered draw commands, reused until something changes
	rendered string
	dirty    bool
}

// NewEngine creates an engine seeded with the default shapes. A nil cfg
// means config.Default().
func NewEngine(cfg *config.Config) (*Engine, error) {
	return NewEngineWithShapes(cfg, shape.DefaultSeed())
}

// NewEngineWithShapes creates an engine seeded with shapes in painter's
// order.
func NewEngineWithShapes(cfg *config.Config, shapes []shape.Shape) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	e := &Engine{
		cfg:  cfg,
		seed: append([]shape.Shape(nil), shapes...),
	}
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

// load wires a fresh store, selection, widget and dispatcher around the seed.
func (e *Engine) load() error {
	store, err := shape.NewStore(e.cfg.MinShapeSize, e.seed)
	if err != nil {
		return fmt.Errorf("load shapes: %w", err)
	}

	e.store = store
	e.sceneGraph = BuildSceneGraph(store.List())
	e.selection = selection.New(store.Has)
	e.transformer = transform.New(store, e.sceneGraph.Node, store.MinSize())
	e.dispatcher = dispatch.New(e.selection, e.transformer, e.sceneGraph, dispatch.Options{
		HandleSize:     e.cfg.HandleSize,
		DragDeadZone:   e.cfg.DragDeadZone,
		MarqueeEnabled: e.cfg.MarqueeEnabled,
	})

	store.Watch(e.onShapeChange)
	e.selection.Subscribe(e.onSelectionChange)

	e.rendered = ""
	e.dirty = true
	slog.Debug("engine loaded", "shapes", store.Len())
	return nil
}

func (e *Engine) onSelectionChange(ev selection.ChangedEvent) {
	added, removed := e.transformer.Sync(ev.Selected)
	if len(added) > 0 || len(removed) > 0 {
		slog.Debug("transformer attached", "nodes", e.transformer.AttachedIDs())
	}
	e.dirty = true
}

// --- Commands (host → engine) ---

// Reset discards all edits and reloads the seed shapes.
func (e *Engine) Reset() error {
	return e.load()
}

// HandlePointer delivers one pointer event to the dispatcher.
func (e *Engine) HandlePointer(ev dispatch.Event) error {
	// gestures move render nodes directly, so any event can change the frame
	e.dirty = true
	if err := e.dispatcher.Dispatch(ev); err != nil {
		return fmt.Errorf("pointer %s: %w", ev.Kind, err)
	}
	return nil
}

func (e *Engine) PointerDown(x, y float64, target dispatch.Target) error {
	return e.HandlePointer(dispatch.Event{Kind: dispatch.Down, X: x, Y: y, Target: target})
}

func (e *Engine) PointerMove(x, y float64) error {
	return e.HandlePointer(dispatch.Event{Kind: dispatch.Move, X: x, Y: y})
}

func (e *Engine) PointerUp(x, y float64) error {
	return e.HandlePointer(dispatch.Event{Kind: dispatch.Up, X: x, Y: y})
}

func (e *Engine) Click(x, y float64, target dispatch.Target) error {
	return e.HandlePointer(dispatch.Event{Kind: dispatch.Click, X: x, Y: y, Target: target})
}

func (e *Engine) Tap(x, y float64, target dispatch.Target) error {
	return e.HandlePointer(dispatch.Event{Kind: dispatch.Tap, X: x, Y: y, Target: target})
}

// CancelGesture aborts the gesture in progress, if any.
func (e *Engine) CancelGesture() {
	e.dispatcher.Cancel()
	e.dirty = true
}

// SetSelection replaces the selection with ids. An empty list clears it.
func (e *Engine) SetSelection(ids []string) error {
	e.dispatcher.Cancel()
	return e.setSelection(ids)
}

func (e *Engine) setSelection(ids []string) error {
	if err := e.selection.Replace(ids); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// --- Queries (host ← engine) ---

// Shapes returns a copy of the committed shapes in painter's order.
func (e *Engine) Shapes() []shape.Shape {
	return e.store.List()
}

func (e *Engine) ShapesJSON() string {
	return toJSON(e.store.List(), "[]")
}

// Shape returns the committed record for id.
func (e *Engine) Shape(id string) (shape.Shape, bool) {
	return e.store.Get(id)
}

func (e *Engine) Selection() []string {
	return e.selection.IDs()
}

func (e *Engine) SelectionJSON() string {
	return toJSON(e.selection.IDs(), "[]")
}

// SelectionMode reports whether zero, one or many shapes are selected.
func (e *Engine) SelectionMode() selection.Mode {
	return e.selection.State()
}

// AttachedNodes returns the ids of the render nodes the widget is attached to.
func (e *Engine) AttachedNodes() []string {
	return e.transformer.AttachedIDs()
}

// SelectionBounds returns the widget box as JSON, or a zero rect when
// nothing is attached.
func (e *Engine) SelectionBounds() string {
	box, ok := e.transformer.Box()
	if !ok {
		return RectToJSON(geom.Rect{})
	}
	return RectToJSON(box)
}

func (e *Engine) Marquee() dispatch.Marquee {
	return e.dispatcher.Marquee()
}

func (e *Engine) MarqueeJSON() string {
	return toJSON(e.dispatcher.Marquee(), "{}")
}

// ActiveGesture reports the gesture in progress.
func (e *Engine) ActiveGesture() dispatch.GestureKind {
	return e.dispatcher.Active()
}

// HitTest returns the id of the topmost shape at (x, y), or empty string.
func (e *Engine) HitTest(x, y float64) string {
	return e.sceneGraph.HitTest(x, y)
}

// Classify resolves what a press at (x, y) would land on.
func (e *Engine) Classify(x, y float64) dispatch.Target {
	return e.dispatcher.Classify(x, y)
}

// BoundBox is the resize validation callback: it returns newBox when both
// sides meet the minimum, otherwise old.
func (e *Engine) BoundBox(old, newBox geom.Rect) geom.Rect {
	return e.transformer.BoundBox(old, newBox)
}

// Surface returns the configured drawing surface size as JSON.
func (e *Engine) Surface() string {
	return toJSON(map[string]int{
		"width":  e.cfg.SurfaceWidth,
		"height": e.cfg.SurfaceHeight,
	}, "{}")
}

// DrawCommands compiles the current frame.
func (e *Engine) DrawCommands() []DrawCommand {
	return CompileDrawCommands(e.sceneGraph, e.transformer, e.dispatcher.Marquee())
}

// Render returns the current frame's draw commands as JSON.
func (e *Engine) Render() string {
	if !e.dirty && e.rendered != "" {
		return e.rendered
	}
	result, err := DrawCommandsToJSON(e.DrawCommands())
	if err != nil {
		slog.Error("render failed", "error", err)
		return result
	}
	e.rendered = result
	e.dirty = false
	return result
}

func toJSON(v any, fallback string) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(data)
}
