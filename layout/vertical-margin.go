package layout

import (
	"gioui.org/layout"
	"gioui.org/unit"
)

// VerticalMarginStyle insets a widget equally on its top and bottom edges.
type VerticalMarginStyle struct {
	Size unit.Dp
}

// VerticalMargin configures a vertical margin with a sensible default.
func VerticalMargin() VerticalMarginStyle {
	return VerticalMarginStyle{Size: unit.Dp(8)}
}

// Layout w within the margin.
func (v VerticalMarginStyle) Layout(gtx C, w layout.Widget) D {
	return layout.Inset{Top: v.Size, Bottom: v.Size}.Layout(gtx, w)
}
