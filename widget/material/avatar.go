package material

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	chatwidget "git.sr.ht/~gioverse/scroll/widget"
)

// DefaultAvatarSize is the diameter of an avatar.
var DefaultAvatarSize = unit.Dp(40)

// AvatarStyle lays out a circular author picture. Until the picture is
// available the initial of the author is shown over the author color.
type AvatarStyle struct {
	Image   *chatwidget.CachedImage
	Size    unit.Dp
	Color   color.NRGBA
	Initial material.LabelStyle
}

// Avatar constructs an AvatarStyle for the author name.
func Avatar(th *material.Theme, img *chatwidget.CachedImage, name string) AvatarStyle {
	initial := "?"
	if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name)); r != utf8.RuneError {
		initial = strings.ToUpper(string(r))
	}
	l := material.Body1(th, initial)
	l.Color = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	return AvatarStyle{
		Image:   img,
		Size:    DefaultAvatarSize,
		Color:   AuthorColor(name),
		Initial: l,
	}
}

// Layout the avatar.
func (a AvatarStyle) Layout(gtx C) D {
	px := gtx.Dp(a.Size)
	size := image.Pt(px, px)
	gtx.Constraints = layout.Exact(size)
	defer clip.UniformRRect(image.Rectangle{Max: size}, px/2).Push(gtx.Ops).Pop()
	if a.Image != nil && a.Image.Valid() {
		widget.Image{
			Src:      a.Image.Op(),
			Fit:      widget.Cover,
			Position: layout.Center,
		}.Layout(gtx)
		return D{Size: size}
	}
	paint.Fill(gtx.Ops, a.Color)
	layout.Center.Layout(gtx, a.Initial.Layout)
	return D{Size: size}
}
