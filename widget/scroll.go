package widget

import (
	"context"
	"image"

	"gioui.org/gesture"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"

	"git.sr.ht/~gioverse/scroll/list"
)

// Scroller holds the scroll position of a list across frames and feeds it to
// a list.ScrollController.
type Scroller struct {
	// ScrollTop is the vertical offset of the viewport within the content.
	ScrollTop int
	// Height is the viewport height as of the last frame.
	Height int
	Scroll   gesture.Scroll
	Swipe    Swipe
}

// Update processes the scroll and swipe events of the frame, posts the
// resulting position to the controller and lets it process at most one
// position. Update reports whether the list changed and should be drawn
// again.
func (s *Scroller) Update(ctx context.Context, gtx layout.Context, ctrl *list.ScrollController) bool {
	s.Height = gtx.Constraints.Max.Y
	changed := ctrl.Update()
	if d := s.Scroll.Scroll(gtx.Metric, gtx, gtx.Now, gesture.Vertical); d != 0 {
		s.ScrollTop = s.clamp(s.ScrollTop+d, ctrl)
		ctrl.Post(list.Viewport{ScrollTop: s.ScrollTop, Height: s.Height})
	}
	if ctrl.Frame(ctx) {
		changed = true
	}
	// Dismissals and failed fetches may shrink the content under the
	// viewport.
	if top := s.clamp(s.ScrollTop, ctrl); top != s.ScrollTop {
		s.ScrollTop = top
		changed = true
	}
	if s.Swipe.Update(gtx, ctrl.Swipe(), s.ScrollTop) {
		changed = true
	}
	return changed
}

// Add registers the scroll and swipe handlers for the viewport.
func (s *Scroller) Add(gtx layout.Context) {
	bounds := image.Rectangle{Max: gtx.Constraints.Max}
	defer clip.Rect(bounds).Push(gtx.Ops).Pop()
	s.Scroll.Add(gtx.Ops, image.Rect(0, -s.ScrollTop, 0, 1<<24))
	s.Swipe.Add(gtx.Ops, bounds)
}

// Stop halts a fling in progress.
func (s *Scroller) Stop() {
	s.Scroll.Stop()
}

func (s *Scroller) clamp(top int, ctrl *list.ScrollController) int {
	max := ctrl.ContentHeight() - s.Height
	if top > max {
		top = max
	}
	if top < 0 {
		top = 0
	}
	return top
}

// Invalidate requests another frame while the scroll gesture is in flight.
func (s *Scroller) Invalidate(gtx layout.Context) {
	if s.Scroll.State() != gesture.StateIdle {
		op.InvalidateOp{}.Add(gtx.Ops)
	}
}
