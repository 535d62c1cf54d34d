//go:build js && wasm

package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/inamate/rectcanvas/internal/config"
	"github.com/inamate/rectcanvas/internal/dispatch"
	"github.com/inamate/rectcanvas/internal/engine"
	"github.com/inamate/rectcanvas/internal/geom"
	"github.com/inamate/rectcanvas/internal/transform"
)

var eng *engine.Engine

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration, using defaults", "error", err)
		cfg = config.Default()
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	eng, err = engine.NewEngine(cfg)
	if err != nil {
		slog.Error("failed to start engine", "error", err)
		return
	}

	// Create the engine API object
	rectcanvasEngine := js.Global().Get("Object").New()

	// --- Commands (host → engine) ---
	rectcanvasEngine.Set("pointer", js.FuncOf(pointer))
	rectcanvasEngine.Set("cancelGesture", js.FuncOf(cancelGesture))
	rectcanvasEngine.Set("setSelection", js.FuncOf(setSelection))
	rectcanvasEngine.Set("applyOperation", js.FuncOf(applyOperation))
	rectcanvasEngine.Set("reset", js.FuncOf(reset))

	// --- Queries (host ← engine) ---
	rectcanvasEngine.Set("render", js.FuncOf(render))
	rectcanvasEngine.Set("hitTest", js.FuncOf(hitTest))
	rectcanvasEngine.Set("getShapes", js.FuncOf(getShapes))
	rectcanvasEngine.Set("getSelection", js.FuncOf(getSelection))
	rectcanvasEngine.Set("getAttachedNodes", js.FuncOf(getAttachedNodes))
	rectcanvasEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	rectcanvasEngine.Set("getMarquee", js.FuncOf(getMarquee))
	rectcanvasEngine.Set("getActiveGesture", js.FuncOf(getActiveGesture))
	rectcanvasEngine.Set("getSurface", js.FuncOf(getSurface))
	rectcanvasEngine.Set("boundBox", js.FuncOf(boundBox))

	// Register on global scope
	js.Global().Set("rectcanvasEngine", rectcanvasEngine)

	// Signal that WASM is ready
	js.Global().Set("rectcanvasWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func missing(what string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": "missing " + what})
}

// coords reads numeric arguments starting at args[from].
func coords(args []js.Value, from, n int) ([]float64, bool) {
	if len(args) < from+n {
		return nil, false
	}
	out := make([]float64, n)
	for i := range out {
		v := args[from+i]
		if v.Type() != js.TypeNumber {
			return nil, false
		}
		out[i] = v.Float()
	}
	return out, true
}

// targetArg reads ([targetKind[, shapeId[, anchor]]]) starting at args[from].
// An absent or empty target kind means the engine hit-tests the point itself.
func targetArg(args []js.Value, from int) (dispatch.Target, error) {
	var target dispatch.Target
	if len(args) <= from || args[from].Type() != js.TypeString || args[from].String() == "" {
		return target, nil
	}
	kind, err := dispatch.ParseTargetKind(args[from].String())
	if err != nil {
		return target, err
	}
	target.Kind = kind
	if len(args) > from+1 && args[from+1].Type() == js.TypeString {
		target.ShapeID = args[from+1].String()
	}
	if len(args) > from+2 && args[from+2].Type() == js.TypeString {
		target.Anchor = transform.ParseAnchor(args[from+2].String())
	}
	return target, nil
}

// --- Command Handlers ---

// pointer(kind, x, y[, targetKind[, shapeId[, anchor]]]) delivers one pointer
// event. kind accepts DOM event names such as "mousedown" or "touchend".
func pointer(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return missing("event kind")
	}
	kind, err := dispatch.ParseKind(args[0].String())
	if err != nil {
		return result(err)
	}
	xy, ok := coords(args, 1, 2)
	if !ok {
		return missing("coordinates")
	}
	target, err := targetArg(args, 3)
	if err != nil {
		return result(err)
	}
	return result(eng.HandlePointer(dispatch.Event{Kind: kind, X: xy[0], Y: xy[1], Target: target}))
}

func cancelGesture(this js.Value, args []js.Value) interface{} {
	eng.CancelGesture()
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return result(eng.SetSelection(nil))
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	return result(eng.SetSelection(ids))
}

func applyOperation(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return missing("operation JSON")
	}
	op, err := eng.ApplyOperationJSON(args[0].String())
	if err != nil {
		return result(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "id": op.ID, "shapeId": op.ShapeID})
}

func reset(this js.Value, args []js.Value) interface{} {
	return result(eng.Reset())
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	xy, ok := coords(args, 0, 2)
	if !ok {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(xy[0], xy[1]))
}

func getShapes(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.ShapesJSON())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.SelectionJSON())
}

func getAttachedNodes(this js.Value, args []js.Value) interface{} {
	ids := eng.AttachedNodes()
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return js.ValueOf(out)
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.SelectionBounds())
}

func getMarquee(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.MarqueeJSON())
}

func getActiveGesture(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.ActiveGesture().String())
}

func getSurface(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Surface())
}

// boundBox(oldX, oldY, oldW, oldH, newX, newY, newW, newH) returns the box
// the resize should show.
func boundBox(this js.Value, args []js.Value) interface{} {
	v, ok := coords(args, 0, 8)
	if !ok {
		return missing("boxes")
	}
	old := geom.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	next := geom.Rect{X: v[4], Y: v[5], Width: v[6], Height: v[7]}
	return js.ValueOf(engine.RectToJSON(eng.BoundBox(old, next)))
}
