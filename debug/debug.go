/*
Package debug provides tools for debugging Gio layout code, and the window
of slots laid out by package list in particular.
*/
package debug

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"git.sr.ht/~gioverse/scroll/list"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	black = color.NRGBA{A: 255}
	red   = color.NRGBA{R: 0xD0, A: 255}
	blue  = color.NRGBA{B: 0xD0, A: 255}
)

// Outline traces a small black outline around the provided widget.
func Outline(gtx C, w layout.Widget) D {
	return outline(gtx, black, w)
}

func outline(gtx C, c color.NRGBA, w layout.Widget) D {
	return widget.Border{
		Color: c,
		Width: unit.Dp(1),
	}.Layout(gtx, w)
}

// Window traces the bound slots of w over a viewport scrolled by scrollTop.
// Each slot is labeled with its position and the logical index it displays;
// the pivot is traced in red. The placeholder run, if any, is traced in blue.
func Window(gtx C, th *material.Theme, w *list.Window, pool *list.PlaceholderPool, scrollTop int) {
	if w == nil {
		return
	}
	width, height := gtx.Constraints.Max.X, gtx.Constraints.Max.Y
	trace := func(top, size int, c color.NRGBA, label string) {
		y := top - scrollTop
		if y+size < 0 || y > height || size <= 0 {
			return
		}
		defer op.Offset(image.Pt(0, y)).Push(gtx.Ops).Pop()
		gtx := gtx
		gtx.Constraints = layout.Exact(image.Pt(width, size))
		outline(gtx, c, func(gtx C) D {
			l := material.Caption(th, label)
			l.Color = c
			layout.NE.Layout(gtx, l.Layout)
			return D{Size: gtx.Constraints.Max}
		})
	}
	w.Each(func(pos int, s list.Slot) {
		c := black
		if pos == w.Pivot() {
			c = red
		}
		trace(s.Top, s.Size.Y, c, fmt.Sprintf("slot %d: #%d", pos, s.Index))
	})
	if pool != nil && pool.Visible() > 0 {
		trace(pool.Start(), pool.Next()-pool.Start(), blue, fmt.Sprintf("%d placeholders", pool.Visible()))
	}
}
