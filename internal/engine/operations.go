package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/rectcanvas/internal/dispatch"
	"github.com/inamate/rectcanvas/internal/shape"
	"github.com/inamate/rectcanvas/internal/typeid"
)

var ErrUnknownOperation = errors.New("unknown operation type")

const (
	OpShapeUpdate  = "shape.update"
	OpShapeCreate  = "shape.create"
	OpShapeDelete  = "shape.delete"
	OpSelectionSet = "selection.set"
)

// Operation is a host-initiated mutation. Pointer gestures never go through
// operations; they commit through the transform widget.
type Operation struct {
	ID      string       `json:"id"`
	Type    string       `json:"type"`
	ShapeID string       `json:"shapeId,omitempty"`
	Shape   *shape.Shape `json:"shape,omitempty"` // full record for shape.update / shape.create
	IDs     []string     `json:"ids,omitempty"`   // for selection.set
}

// ApplyOperation applies op and returns it with generated ids filled in.
// A gesture in flight is cancelled first so it cannot commit over the
// operation's result.
func (e *Engine) ApplyOperation(op Operation) (Operation, error) {
	if op.ID == "" {
		op.ID = typeid.NewOpID()
	}
	if e.dispatcher.Active() != dispatch.GestureNone {
		slog.Debug("operation cancels active gesture", "op", op.ID, "type", op.Type)
		e.dispatcher.Cancel()
	}

	var err error
	switch op.Type {
	case OpShapeUpdate:
		err = e.applyUpdate(&op)
	case OpShapeCreate:
		err = e.applyCreate(&op)
	case OpShapeDelete:
		err = e.store.Remove(op.ShapeID)
	case OpSelectionSet:
		err = e.setSelection(op.IDs)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownOperation, op.Type)
	}
	e.dirty = true
	if err != nil {
		return op, fmt.Errorf("apply %s %s: %w", op.Type, op.ID, err)
	}
	return op, nil
}

// ApplyOperationJSON decodes and applies one operation.
func (e *Engine) ApplyOperationJSON(data string) (Operation, error) {
	var op Operation
	if err := json.Unmarshal([]byte(data), &op); err != nil {
		return op, fmt.Errorf("invalid operation: %w", err)
	}
	return e.ApplyOperation(op)
}

func (e *Engine) applyUpdate(op *Operation) error {
	if op.Shape == nil {
		return fmt.Errorf("missing shape: %w", shape.ErrInvalidGeometry)
	}
	if op.ShapeID == "" {
		op.ShapeID = op.Shape.ID
	}
	_, err := e.store.Update(op.ShapeID, *op.Shape)
	return err
}

func (e *Engine) applyCreate(op *Operation) error {
	if op.Shape == nil {
		return fmt.Errorf("missing shape: %w", shape.ErrInvalidGeometry)
	}
	s := *op.Shape
	if s.ID == "" {
		s.ID = typeid.NewShapeID()
	}
	if err := e.store.Add(s); err != nil {
		return err
	}
	op.ShapeID = s.ID
	op.Shape = &s
	return nil
}
