package list

import (
	"fmt"
	"image"
	"time"
)

// SwipeState is the state of a swipe-to-dismiss gesture.
type SwipeState uint8

const (
	// Idle indicates that no gesture is in progress.
	Idle SwipeState = iota
	// Dragging indicates that a slot follows the pointer horizontally.
	Dragging
	// Committed is reported when a drag crossed the commit threshold and the
	// item was dismissed.
	Committed
	// Reverted is reported when a drag ended below the commit threshold and
	// the slot snapped back.
	Reverted
)

// String converts a swipe state into a printable representation.
func (s SwipeState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Dragging:
		return "Dragging"
	case Committed:
		return "Committed"
	case Reverted:
		return "Reverted"
	default:
		return "unknown swipe state"
	}
}

// SwipeController is a swipe-to-dismiss state machine operating on one slot
// of a Window at a time. Input adapters translate platform pointer or touch
// events into calls to Start, Move and End.
//
// Committed and Reverted are transient: they are reported by Move or End,
// after which the controller is Idle again.
type SwipeController struct {
	window     *Window
	ratio      float32
	transition time.Duration
	commit     func(pos int)
	state      SwipeState
	// target is the logical index of the dragged item. The slot is resolved
	// on every event since scrolling may move or recycle it.
	target   int
	initialX float32
	currentX float32
	width    int
	moved    bool
}

// NewSwipeController constructs a controller over the window. commit is
// invoked with the position of the slot to dismiss once a drag crosses the
// threshold; if nil, the slot is removed from the window directly.
func NewSwipeController(cfg Config, w *Window, commit func(pos int)) *SwipeController {
	if w == nil {
		panic(fmt.Errorf("must provide a Window"))
	}
	cfg = cfg.WithDefaults()
	if commit == nil {
		commit = w.RemoveAt
	}
	return &SwipeController{
		window:     w,
		ratio:      cfg.SwipeCommitRatio,
		transition: cfg.Transition,
		commit:     commit,
		target:     Unbound,
	}
}

// State returns the current state, which is either Idle or Dragging.
func (s *SwipeController) State() SwipeState {
	return s.state
}

// Target returns the logical index of the item being dragged.
func (s *SwipeController) Target() (int, bool) {
	return s.target, s.state == Dragging
}

// Start begins dragging the slot at the given position from the horizontal
// pointer position x. It reports false, and does nothing, if a drag is
// already in progress or the slot is not bound.
func (s *SwipeController) Start(pos int, x float32) bool {
	if s.state != Idle {
		return false
	}
	slot := s.window.Slot(pos)
	if !slot.Bound() {
		return false
	}
	s.state = Dragging
	s.target = slot.Index
	s.initialX = x
	s.currentX = x
	s.width = slot.Size.X
	if s.width <= 0 {
		s.width = 1
	}
	s.moved = false
	return true
}

// StartAt begins dragging the slot covering the vertical content offset y.
func (s *SwipeController) StartAt(x float32, y int) bool {
	pos, ok := s.window.HitTest(y)
	if !ok {
		return false
	}
	return s.Start(pos, x)
}

// Move drags the slot to the horizontal pointer position x. The slot fades
// as it moves away from its origin. Once the displacement reaches the
// commit ratio of the slot's width the item is dismissed and Committed is
// returned.
func (s *SwipeController) Move(x float32) SwipeState {
	if s.state != Dragging {
		return s.state
	}
	pos, slot, ok := s.resolve()
	if !ok {
		s.reset()
		return Idle
	}
	s.currentX = x
	s.moved = true
	diff := x - s.initialX
	displacement := abs(diff) / float32(s.width)
	slot.Element.SetSelectable(false)
	slot.Element.Move(image.Pt(int(diff), slot.Top), 0)
	if displacement >= s.ratio {
		slot.Element.SetOpacity(0)
		slot.Element.SetSelectable(true)
		s.reset()
		s.commit(pos)
		return Committed
	}
	slot.Element.SetOpacity(1 - displacement)
	return Dragging
}

// End releases the drag at the horizontal pointer position x. A release
// below the commit threshold animates the slot back to its origin with full
// opacity and reports Reverted. A release without any movement is a click
// and leaves the slot untouched.
func (s *SwipeController) End(x float32) SwipeState {
	if s.state != Dragging {
		return s.state
	}
	if !s.moved && x == s.initialX {
		s.reset()
		return Idle
	}
	if st := s.Move(x); st != Dragging {
		return st
	}
	return s.revert()
}

// Cancel aborts a drag in progress, snapping the slot back.
func (s *SwipeController) Cancel() {
	if s.state != Dragging {
		return
	}
	s.revert()
}

func (s *SwipeController) revert() SwipeState {
	defer s.reset()
	_, slot, ok := s.resolve()
	if !ok {
		return Idle
	}
	slot.Element.Move(image.Pt(0, slot.Top), s.transition)
	slot.Element.SetOpacity(1)
	slot.Element.SetSelectable(true)
	return Reverted
}

// resolve finds the slot currently bound to the dragged item.
func (s *SwipeController) resolve() (int, Slot, bool) {
	pos, ok := s.window.Find(s.target)
	if !ok {
		return 0, Slot{}, false
	}
	return pos, s.window.Slot(pos), true
}

func (s *SwipeController) reset() {
	s.state = Idle
	s.target = Unbound
	s.moved = false
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
