package material

import (
	"image"
	"image/color"

	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	chatwidget "git.sr.ht/~gioverse/scroll/widget"
)

// PlaceholderStyle lays out the skeleton of a card while content loads. All
// placeholders have the same height.
type PlaceholderStyle struct {
	Placeholder *chatwidget.Placeholder
	Height      unit.Dp
	Background  color.NRGBA
	// Shape colors the avatar and text skeletons.
	Shape  color.NRGBA
	Veil   color.NRGBA
	Radius unit.Dp
	Inset  unit.Dp
}

// Placeholder constructs a PlaceholderStyle.
func Placeholder(th *material.Theme, p *chatwidget.Placeholder) PlaceholderStyle {
	return PlaceholderStyle{
		Placeholder: p,
		Height:      unit.Dp(88),
		Background:  color.NRGBA{R: 0xFA, G: 0xFA, B: 0xFA, A: 0xFF},
		Shape:       color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF},
		Veil:        th.Bg,
		Radius:      unit.Dp(8),
		Inset:       unit.Dp(8),
	}
}

// Layout the placeholder across the full width of the constraints.
func (p PlaceholderStyle) Layout(gtx C) D {
	size := image.Pt(gtx.Constraints.Max.X, gtx.Dp(p.Height))
	radius := gtx.Dp(p.Radius)
	paint.FillShape(gtx.Ops, p.Background, clip.UniformRRect(image.Rectangle{Max: size}, radius).Op(gtx.Ops))

	inset := gtx.Dp(p.Inset)
	avatar := gtx.Dp(DefaultAvatarSize)
	p.fill(gtx, image.Rect(inset, inset, inset+avatar, inset+avatar), avatar/2)

	// Author line, then two lines of content, the last one shorter.
	left := 2*inset + avatar
	line := gtx.Dp(unit.Dp(12))
	right := size.X - inset
	if right <= left {
		right = left + 1
	}
	bars := []struct{ y, width int }{
		{inset, (right - left) / 3},
		{inset + 2*line, right - left},
		{inset + 4*line, (right - left) * 2 / 3},
	}
	for _, b := range bars {
		p.fill(gtx, image.Rect(left, b.y, left+b.width, b.y+line), line/2)
	}

	if o := p.Placeholder.Opacity(); o < 1 {
		paint.FillShape(gtx.Ops, Fade(p.Veil, 1-o), clip.UniformRRect(image.Rectangle{Max: size}, radius).Op(gtx.Ops))
	}
	return D{Size: size}
}

func (p PlaceholderStyle) fill(gtx C, r image.Rectangle, radius int) {
	defer op.Offset(r.Min).Push(gtx.Ops).Pop()
	paint.FillShape(gtx.Ops, p.Shape, clip.UniformRRect(image.Rectangle{Max: r.Size()}, radius).Op(gtx.Ops))
}
