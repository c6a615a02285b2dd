package layout

import (
	"gioui.org/layout"
	"gioui.org/unit"
)

// GutterStyle reserves space on either side of a horizontal row of content.
// Either side can display a widget atop its gutter.
type GutterStyle struct {
	LeftWidth  unit.Dp
	RightWidth unit.Dp
	layout.Alignment
}

// Gutter returns a GutterStyle with a left gutter wide enough for an avatar
// and a narrow right gutter.
func Gutter() GutterStyle {
	return GutterStyle{
		LeftWidth:  unit.Dp(56),
		RightWidth: unit.Dp(12),
		Alignment:  layout.Start,
	}
}

// Layout left and right atop the gutters, and center in the space between.
// Either side may be nil.
func (g GutterStyle) Layout(gtx C, left, center, right layout.Widget) D {
	return layout.Flex{Alignment: g.Alignment}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return gutterSide(gtx, g.LeftWidth, left)
		}),
		layout.Flexed(1, center),
		layout.Rigid(func(gtx C) D {
			return gutterSide(gtx, g.RightWidth, right)
		}),
	)
}

func gutterSide(gtx C, width unit.Dp, w layout.Widget) D {
	spacer := layout.Spacer{Width: width}
	if w == nil {
		return spacer.Layout(gtx)
	}
	return layout.Stack{}.Layout(gtx,
		layout.Stacked(spacer.Layout),
		layout.Expanded(func(gtx C) D {
			gtx.Constraints.Max.X = gtx.Dp(width)
			return layout.Center.Layout(gtx, w)
		}),
	)
}
