package list

import (
	"image"
	"math"
	"testing"
)

func newSwipeWindow() (*Window, *SwipeController) {
	w, _ := newTestWindow(4, 100)
	fill(w, 0, 4)
	return w, NewSwipeController(Config{}, w, nil)
}

func element(w *Window, index int) (*fakeElement, Slot) {
	pos, ok := w.Find(index)
	if !ok {
		return nil, Slot{}
	}
	s := w.Slot(pos)
	return s.Element.(*fakeElement), s
}

func TestSwipeCommits(t *testing.T) {
	w, sw := newSwipeWindow()
	pos, _ := w.Find(1)
	if !sw.Start(pos, 100) {
		t.Fatalf("expected drag to start")
	}
	if idx, ok := sw.Target(); !ok || idx != 1 {
		t.Errorf("expected target index 1, got %d", idx)
	}
	if st := sw.Move(0); st != Dragging {
		t.Errorf("expected to keep dragging below the threshold, got %v", st)
	}
	e, s := element(w, 1)
	if e.offset != image.Pt(-100, s.Top) {
		t.Errorf("expected element to follow the pointer, at %v", e.offset)
	}
	if want := float32(2) / 3; math.Abs(float64(e.opacity-want)) > 1e-6 {
		t.Errorf("expected opacity %v, got %v", want, e.opacity)
	}
	if e.selectable {
		t.Errorf("expected selection to be disabled while dragging")
	}

	// 200 of 300 pixels is past the 0.55 ratio.
	if st := sw.Move(-100); st != Committed {
		t.Fatalf("expected commit, got %v", st)
	}
	if sw.State() != Idle {
		t.Errorf("expected controller to be idle after commit, got %v", sw.State())
	}
	if e.opacity != 0 {
		t.Errorf("expected dismissed element to be hidden")
	}
	if _, ok := w.Find(1); ok {
		t.Errorf("expected index 1 to be removed")
	}
	if w.Len() != 3 {
		t.Errorf("expected 3 bound slots, got %d", w.Len())
	}
	checkWindow(t, w)
}

func TestSwipeReverts(t *testing.T) {
	w, sw := newSwipeWindow()
	pos, _ := w.Find(2)
	sw.Start(pos, 0)
	sw.Move(50)
	if st := sw.End(60); st != Reverted {
		t.Fatalf("expected revert, got %v", st)
	}
	e, s := element(w, 2)
	if e.offset != image.Pt(0, s.Top) {
		t.Errorf("expected element back at its origin, at %v", e.offset)
	}
	if e.transition != DefaultTransition {
		t.Errorf("expected animated snap back, got %v", e.transition)
	}
	if e.opacity != 1 || !e.selectable {
		t.Errorf("expected element fully restored, opacity %v selectable %v", e.opacity, e.selectable)
	}
	if w.Len() != 4 || sw.State() != Idle {
		t.Errorf("expected nothing removed")
	}
}

func TestSwipeReleasePastThreshold(t *testing.T) {
	w, sw := newSwipeWindow()
	pos, _ := w.Find(0)
	sw.Start(pos, 0)
	if st := sw.End(250); st != Committed {
		t.Errorf("expected release past the threshold to commit, got %v", st)
	}
	if w.FirstBoundIndex() != 1 {
		t.Errorf("expected index 0 to be removed")
	}
}

func TestSwipeClick(t *testing.T) {
	w, sw := newSwipeWindow()
	e, s := element(w, 3)
	before := *e
	pos, _ := w.Find(3)
	sw.Start(pos, 42)
	if st := sw.End(42); st != Idle {
		t.Errorf("expected click to leave the controller idle, got %v", st)
	}
	if *e != before {
		t.Errorf("expected click to leave the element untouched")
	}
	if got := w.Slot(pos); got.Index != s.Index || got.Top != s.Top {
		t.Errorf("expected slot to be unchanged")
	}
}

func TestSwipeIgnoresNestedDrags(t *testing.T) {
	w, sw := newSwipeWindow()
	first, _ := w.Find(0)
	second, _ := w.Find(1)
	if !sw.Start(first, 0) {
		t.Fatalf("expected drag to start")
	}
	if sw.Start(second, 0) {
		t.Errorf("expected second drag to be ignored")
	}
	if idx, _ := sw.Target(); idx != 0 {
		t.Errorf("expected target to remain index 0, got %d", idx)
	}
	sw.Cancel()
	if sw.State() != Idle {
		t.Errorf("expected cancel to end the drag")
	}
	if !sw.Start(second, 0) {
		t.Errorf("expected a new drag after cancel")
	}
}

func TestSwipeStartAt(t *testing.T) {
	_, sw := newSwipeWindow()
	if sw.StartAt(0, 105) {
		t.Errorf("expected gutter hit to be ignored")
	}
	if !sw.StartAt(0, 230) {
		t.Fatalf("expected hit on index 2")
	}
	if idx, _ := sw.Target(); idx != 2 {
		t.Errorf("expected target index 2, got %d", idx)
	}
}

func TestSwipeTargetRecycled(t *testing.T) {
	w, sw := newSwipeWindow()
	pos, _ := w.Find(0)
	sw.Start(pos, 0)
	// Scrolling recycles the dragged slot.
	w.AdvanceForward(4, testItems(4, 1)[0])
	if st := sw.Move(-250); st != Idle {
		t.Errorf("expected drag on a recycled slot to be abandoned, got %v", st)
	}
	if w.Len() != 4 {
		t.Errorf("expected nothing removed")
	}
}

func TestSwipeStartOnFreeSlot(t *testing.T) {
	w, _ := newTestWindow(4, 100)
	fill(w, 0, 2)
	sw := NewSwipeController(Config{}, w, nil)
	if sw.Start(3, 0) {
		t.Errorf("expected free slot to be ignored")
	}
}

func TestSwipeStateString(t *testing.T) {
	for state, want := range map[SwipeState]string{
		Idle:      "Idle",
		Dragging:  "Dragging",
		Committed: "Committed",
		Reverted:  "Reverted",
	} {
		if got := state.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
