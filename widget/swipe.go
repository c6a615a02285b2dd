package widget

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"

	"git.sr.ht/~gioverse/scroll/list"
)

// Swipe translates pointer drags over a list into swipe gestures. Vertical
// touch drags are claimed by the scroll gesture, which grabs the pointer
// and thereby cancels any swipe in progress.
type Swipe struct {
	dragging bool
	pid      pointer.ID
}

// Add the handler to the operation list to receive pointer events within
// bounds.
func (s *Swipe) Add(ops *op.Ops, bounds image.Rectangle) {
	defer clip.Rect(bounds).Push(ops).Pop()
	pointer.InputOp{
		Tag:   s,
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
	}.Add(ops)
}

// Dragging reports whether a swipe is in progress.
func (s *Swipe) Dragging() bool {
	return s.dragging
}

// Update feeds the pointer events from q to sc. Pointer positions are in
// viewport coordinates; scrollTop converts them to content offsets. Update
// reports whether any event changed the gesture.
func (s *Swipe) Update(q event.Queue, sc *list.SwipeController, scrollTop int) bool {
	if sc == nil {
		return false
	}
	changed := false
	for _, e := range q.Events(s) {
		e, ok := e.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Type {
		case pointer.Press:
			if s.dragging || (e.Source == pointer.Mouse && e.Buttons != pointer.ButtonPrimary) {
				break
			}
			if sc.StartAt(e.Position.X, int(e.Position.Y)+scrollTop) {
				s.dragging = true
				s.pid = e.PointerID
				changed = true
			}
		case pointer.Drag:
			if !s.dragging || e.PointerID != s.pid {
				break
			}
			if sc.Move(e.Position.X) != list.Dragging {
				s.dragging = false
			}
			changed = true
		case pointer.Release:
			if !s.dragging || e.PointerID != s.pid {
				break
			}
			sc.End(e.Position.X)
			s.dragging = false
			changed = true
		case pointer.Cancel:
			if !s.dragging {
				break
			}
			sc.Cancel()
			s.dragging = false
			changed = true
		}
	}
	return changed
}
