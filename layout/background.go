package layout

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/component"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// Background lays out a widget over a rectangle of the given color, rounded
// by Radius.
type Background struct {
	Color  color.NRGBA
	Radius unit.Dp
}

// Layout w and fill its area beneath it.
func (bg Background) Layout(gtx C, w layout.Widget) D {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	component.Rect{
		Size:  dims.Size,
		Color: bg.Color,
		Radii: gtx.Dp(bg.Radius),
	}.Layout(gtx)
	call.Add(gtx.Ops)
	return dims
}
