package material

import (
	"image"
	"image/color"
	"time"

	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/dustin/go-humanize"

	chatlayout "git.sr.ht/~gioverse/scroll/layout"
	chatwidget "git.sr.ht/~gioverse/scroll/widget"
)

// CardStyle lays out a list item: the avatar sits in the left gutter, the
// author and the time since the last update head the content.
type CardStyle struct {
	Card    *chatwidget.Card
	Avatar  AvatarStyle
	Author  material.LabelStyle
	Time    material.LabelStyle
	Content material.LabelStyle
	// Background fills the card.
	Background color.NRGBA
	// Veil is the color the card fades into as its opacity drops, usually
	// the color behind the list.
	Veil   color.NRGBA
	Radius unit.Dp
	Inset  layout.Inset
	chatlayout.GutterStyle
}

// Card constructs a CardStyle for the item bound to card. A non-nil avatar
// is cached by the card; now is the reference for the relative time label.
func Card(th *material.Theme, card *chatwidget.Card, avatar image.Image, now time.Time) CardStyle {
	card.Avatar.Cache(avatar)
	item := card.Item
	author := material.Body2(th, item.Author.Name)
	author.Color = AuthorColor(item.Author.Name)
	author.Font.Weight = text.Bold
	author.MaxLines = 1
	updated := material.Caption(th, humanize.RelTime(item.UpdatedAt, now, "ago", "from now"))
	updated.Color = Fade(th.Fg, 0.6)
	updated.MaxLines = 1
	return CardStyle{
		Card:       card,
		Avatar:     Avatar(th, &card.Avatar, item.Author.Name),
		Author:     author,
		Time:       updated,
		Content:    material.Body1(th, item.Content),
		Background: color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Veil:       th.Bg,
		Radius:     unit.Dp(8),
		Inset:      layout.UniformInset(unit.Dp(8)),
		GutterStyle: chatlayout.GutterStyle{
			LeftWidth:  DefaultAvatarSize + unit.Dp(8),
			RightWidth: unit.Dp(0),
			Alignment:  layout.Start,
		},
	}
}

// Layout the card across the full width of the constraints.
func (c CardStyle) Layout(gtx C) D {
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	dims := chatlayout.Background{Color: c.Background, Radius: c.Radius}.Layout(gtx, func(gtx C) D {
		return c.Inset.Layout(gtx, func(gtx C) D {
			return c.GutterStyle.Layout(gtx, c.Avatar.Layout, c.layoutBody, nil)
		})
	})
	if o := c.Card.Opacity(); o < 1 {
		veil := clip.UniformRRect(image.Rectangle{Max: dims.Size}, gtx.Dp(c.Radius))
		paint.FillShape(gtx.Ops, Fade(c.Veil, 1-o), veil.Op(gtx.Ops))
	}
	return dims
}

func (c CardStyle) layoutBody(gtx C) D {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Baseline}.Layout(gtx,
				layout.Rigid(c.Author.Layout),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Rigid(c.Time.Layout),
			)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(c.layoutContent),
	)
}

// layoutContent lays out the text with a cursor hinting whether it can be
// interacted with or is being dragged.
func (c CardStyle) layoutContent(gtx C) D {
	macro := op.Record(gtx.Ops)
	dims := c.Content.Layout(gtx)
	call := macro.Stop()
	defer clip.Rect{Max: dims.Size}.Push(gtx.Ops).Pop()
	cursor := pointer.CursorText
	if !c.Card.Selectable {
		cursor = pointer.CursorGrab
	}
	cursor.Add(gtx.Ops)
	call.Add(gtx.Ops)
	return dims
}
