package layout

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
)

// Rounded clips a widget to a rectangle with rounded corners.
type Rounded unit.Dp

// Layout w clipped to its own dimensions.
func (r Rounded) Layout(gtx C, w layout.Widget) D {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	defer clip.UniformRRect(image.Rectangle{Max: dims.Size}, gtx.Dp(unit.Dp(r))).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
	return dims
}
