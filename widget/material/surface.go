package material

import (
	"image"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"git.sr.ht/~gioverse/scroll/list"
	chatwidget "git.sr.ht/~gioverse/scroll/widget"
)

// defaultWidth is used for measurement until the first frame reports the
// actual width of the list.
const defaultWidth = 400

// Surface implements list.Surface with cards and placeholders. Visuals are
// measured by laying them out into a scratch operation list, with the metric
// and width of the last frame.
type Surface struct {
	Theme *material.Theme
	// Avatar resolves the avatar image of a card. It returns nil while the
	// image is unavailable. Optional.
	Avatar func(card *chatwidget.Card) image.Image
	// Cards holds every element created for the window.
	Cards []*chatwidget.Card
	// Placeholders holds every placeholder created by the pool.
	Placeholders []*chatwidget.Placeholder
	// Now is the clock of the created visuals. Defaults to time.Now.
	Now func() time.Time

	metric  unit.Metric
	width   int
	scratch op.Ops
}

var _ list.Surface = (*Surface)(nil)

// Update records the frame properties that affect measurement. It must be
// called with the constraints of the list before the controller is started
// or scrolled.
func (s *Surface) Update(gtx C) {
	s.metric = gtx.Metric
	s.width = gtx.Constraints.Max.X
}

// NewElement creates a card.
func (s *Surface) NewElement() list.Element {
	c := &chatwidget.Card{}
	c.Now = s.Now
	s.Cards = append(s.Cards, c)
	return c
}

// NewPlaceholder creates a placeholder.
func (s *Surface) NewPlaceholder() list.Visual {
	p := &chatwidget.Placeholder{}
	p.Now = s.Now
	s.Placeholders = append(s.Placeholders, p)
	return p
}

// Measure lays out v without displaying it and returns its size.
func (s *Surface) Measure(v list.Visual) image.Point {
	s.scratch.Reset()
	gtx := layout.Context{
		Ops:         &s.scratch,
		Metric:      s.metric,
		Now:         s.now(),
		Constraints: s.constraints(),
	}
	switch v := v.(type) {
	case *chatwidget.Card:
		// The avatar has a fixed size, so it does not take part in
		// measurement.
		return Card(s.Theme, v, nil, gtx.Now).Layout(gtx).Size
	case *chatwidget.Placeholder:
		return Placeholder(s.Theme, v).Layout(gtx).Size
	}
	return image.Point{}
}

// CardStyle returns the style a card is drawn with.
func (s *Surface) CardStyle(c *chatwidget.Card, now time.Time) CardStyle {
	var avatar image.Image
	if s.Avatar != nil {
		avatar = s.Avatar(c)
	}
	return Card(s.Theme, c, avatar, now)
}

// constraints of a visual spanning the list width with unbounded height.
func (s *Surface) constraints() layout.Constraints {
	width := s.width
	if width <= 0 {
		width = defaultWidth
	}
	return layout.Constraints{
		Min: image.Pt(width, 0),
		Max: image.Pt(width, 1<<24),
	}
}

func (s *Surface) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
