package engine

import (
	"encoding/json"

	"github.com/inamate/rectcanvas/internal/dispatch"
	"github.com/inamate/rectcanvas/internal/geom"
	"github.com/inamate/rectcanvas/internal/transform"
)

const marqueeFill = "rgba(0,0,255,0.5)"

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op        string                  `json:"op"`                  // "rect", "transformer", "marquee"
	ObjectID  string                  `json:"objectId,omitempty"`  // For hit correlation
	Transform []float64               `json:"transform,omitempty"` // [a, b, c, d, e, f] affine matrix
	Width     float64                 `json:"width,omitempty"`     // Unscaled width, drawn under Transform
	Height    float64                 `json:"height,omitempty"`    // Unscaled height
	Fill      string                  `json:"fill,omitempty"`
	Selected  bool                    `json:"selected,omitempty"`
	Box       *geom.Rect              `json:"box,omitempty"`     // Widget or marquee box in surface space
	Anchors   []transform.AnchorPoint `json:"anchors,omitempty"` // Widget control points
	Nodes     []string                `json:"nodes,omitempty"`   // Widget attachment
}

// CompileDrawCommands generates the draw command buffer in painter's order:
// shapes back to front, then the transform widget, then the marquee.
func CompileDrawCommands(sg *SceneGraph, tr *transform.Transformer, marquee dispatch.Marquee) []DrawCommand {
	if sg == nil {
		return nil
	}

	commands := make([]DrawCommand, 0, len(sg.Nodes)+2)
	for _, n := range sg.Nodes {
		commands = append(commands, DrawCommand{
			Op:        "rect",
			ObjectID:  n.id,
			Transform: n.LocalTransform().ToSlice(),
			Width:     n.Width,
			Height:    n.Height,
			Fill:      n.Fill,
			Selected:  tr != nil && tr.IsAttached(n.id),
		})
	}

	if tr != nil {
		if box, ok := tr.Box(); ok {
			commands = append(commands, DrawCommand{
				Op:      "transformer",
				Box:     &box,
				Anchors: tr.Anchors(),
				Nodes:   tr.AttachedIDs(),
			})
		}
	}

	if marquee.Visible {
		box := marquee.Rect()
		commands = append(commands, DrawCommand{
			Op:   "marquee",
			Box:  &box,
			Fill: marqueeFill,
		})
	}

	return commands
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r geom.Rect) string {
	data, _ := json.Marshal(r)
	return string(data)
}
