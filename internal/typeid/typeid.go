package typeid

import "go.jetify.com/typeid/v2"

const (
	PrefixShape   = "rect"
	PrefixOp      = "op"
	PrefixGesture = "gst"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewShapeID() string   { return New(PrefixShape) }
func NewOpID() string      { return New(PrefixOp) }
func NewGestureID() string { return New(PrefixGesture) }
