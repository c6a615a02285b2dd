package layout

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op"
)

// Offset lays out a widget translated by a pixel offset, as absolutely
// positioned content of a scrolled surface. The dimensions are those of the
// widget, unaffected by the offset.
type Offset image.Point

// Layout w at the offset.
func (o Offset) Layout(gtx C, w layout.Widget) D {
	defer op.Offset(image.Point(o)).Push(gtx.Ops).Pop()
	return w(gtx)
}

// Visible reports whether a widget of the given height placed at the offset
// intersects a viewport of the given height.
func (o Offset) Visible(height, viewport int) bool {
	return o.Y+height > 0 && o.Y < viewport
}
