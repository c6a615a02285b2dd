package material

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	chatlayout "git.sr.ht/~gioverse/scroll/layout"
	"git.sr.ht/~gioverse/scroll/list"
	chatwidget "git.sr.ht/~gioverse/scroll/widget"
)

// DismissIcon hints at the dismissal of a swiped card.
var DismissIcon *widget.Icon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionDelete)
	return icon
}()

// ListStyle draws the bound slots and the visible placeholders of a list at
// the offsets assigned by the controller, translated by the scroll position.
type ListStyle struct {
	Surface    *Surface
	Controller *list.ScrollController
	Scroller   *chatwidget.Scroller
	// Background fills the viewport behind the list.
	Background color.NRGBA
	// Hint is drawn in the area uncovered by a swiped card.
	Hint      *widget.Icon
	HintColor color.NRGBA
	HintSize  unit.Dp
}

// List constructs a ListStyle.
func List(th *material.Theme, s *Surface, ctrl *list.ScrollController, scroller *chatwidget.Scroller) ListStyle {
	return ListStyle{
		Surface:    s,
		Controller: ctrl,
		Scroller:   scroller,
		Background: th.Bg,
		Hint:       DismissIcon,
		HintColor:  color.NRGBA{R: 200, A: 255},
		HintSize:   unit.Dp(24),
	}
}

// Layout the list over the whole viewport.
func (l ListStyle) Layout(gtx C) D {
	viewport := gtx.Constraints.Max
	defer clip.Rect{Max: viewport}.Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, l.Background)

	top := l.Scroller.ScrollTop
	animating := false
	draw := func(m *chatwidget.Motion, height int, w layout.Widget) {
		off := m.Offset()
		if m.Animating() {
			animating = true
		}
		at := chatlayout.Offset(image.Pt(off.X, off.Y-top))
		if !m.Visible() || !at.Visible(height, viewport.Y) {
			return
		}
		gtx := gtx
		gtx.Constraints = l.Surface.constraints()
		gtx.Constraints.Min.X, gtx.Constraints.Max.X = viewport.X, viewport.X
		at.Layout(gtx, w)
	}

	if pool := l.Controller.Placeholders(); pool != nil {
		for _, p := range l.Surface.Placeholders {
			draw(&p.Motion, pool.Size().Y, Placeholder(l.Surface.Theme, p).Layout)
		}
	}
	if w := l.Controller.Window(); w != nil {
		w.Each(func(pos int, s list.Slot) {
			card, ok := s.Element.(*chatwidget.Card)
			if !ok {
				return
			}
			if dx := card.Displacement(); dx != 0 {
				l.layoutHint(gtx, card.Offset().Y-top, s.Size.Y, dx)
			}
			draw(&card.Motion, s.Size.Y, l.Surface.CardStyle(card, gtx.Now).Layout)
		})
	}
	if animating {
		op.InvalidateOp{}.Add(gtx.Ops)
	}
	l.Scroller.Invalidate(gtx)
	l.Scroller.Add(gtx)
	return D{Size: viewport}
}

// layoutHint draws the hint icon on the side of the row uncovered by a card
// displaced by dx.
func (l ListStyle) layoutHint(gtx C, y, height, dx int) {
	if l.Hint == nil {
		return
	}
	size := gtx.Dp(l.HintSize)
	margin := gtx.Dp(unit.Dp(16))
	x := margin
	if dx < 0 {
		x = gtx.Constraints.Max.X - margin - size
	}
	defer op.Offset(image.Pt(x, y+(height-size)/2)).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(image.Pt(size, size))
	l.Hint.Layout(gtx, l.HintColor)
}
