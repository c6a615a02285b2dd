package list

import (
	"fmt"
	"image"
	"sort"
	"time"
)

// Slot is a reusable rendering unit of a Window. A slot displays at most one
// logical item at a time, and owns its Element for its whole lifetime.
type Slot struct {
	// Index is the logical index of the displayed item, or Unbound.
	Index int
	// Top is the vertical offset of the slot within the scrollable content.
	Top int
	// Size is the measured size of the slot for its current item.
	Size image.Point
	// Element is the visual element controlled by the slot.
	Element Element
}

// Bound reports whether the slot currently displays an item.
func (s Slot) Bound() bool {
	return s.Index != Unbound
}

// Bottom returns the vertical offset of the lower edge of the slot.
func (s Slot) Bottom() int {
	return s.Top + s.Size.Y
}

// Window is a fixed-capacity circular buffer of slots. The bound slots form a
// run that starts at the pivot and walks forward (modulo the capacity) for
// Len() slots. Along the run, logical indices strictly increase and so do
// vertical offsets. Free slots, if any, follow the run.
//
// A Window is not safe for concurrent use. Every method must be called from
// the goroutine that owns the list.
type Window struct {
	slots []Slot
	// pivot is the position of the slot holding the smallest bound index.
	pivot int
	// bound is the length of the run of bound slots.
	bound int
	// next is the vertical offset at which a slot appended after the run
	// is placed.
	next       int
	gutter     int
	transition time.Duration
	measure    Measurer
}

// NewWindow allocates a window of the given capacity, creating one element
// per slot from the surface. No further elements are ever created.
func NewWindow(capacity int, cfg Config, surface Surface) *Window {
	if capacity < 1 {
		panic(fmt.Errorf("window capacity must be positive, got %d", capacity))
	}
	if surface == nil {
		panic(fmt.Errorf("must provide an implementation of Surface"))
	}
	cfg = cfg.WithDefaults()
	w := &Window{
		slots:      make([]Slot, capacity),
		gutter:     cfg.Gutter,
		transition: cfg.Transition,
		measure:    surface,
	}
	for i := range w.slots {
		w.slots[i] = Slot{
			Index:   Unbound,
			Element: surface.NewElement(),
		}
	}
	return w
}

// Cap returns the number of slots in the window.
func (w *Window) Cap() int {
	return len(w.slots)
}

// Len returns the number of bound slots.
func (w *Window) Len() int {
	return w.bound
}

// Full reports whether every slot is bound.
func (w *Window) Full() bool {
	return w.bound == len(w.slots)
}

// Pivot returns the position of the slot displaying the smallest logical
// index.
func (w *Window) Pivot() int {
	return w.pivot
}

// Gutter returns the spacing between consecutive slots.
func (w *Window) Gutter() int {
	return w.gutter
}

// NextTop returns the vertical offset at which the next item after the run
// will be placed: the bottom of the last bound slot plus the gutter.
func (w *Window) NextTop() int {
	return w.next
}

// FirstBoundIndex returns the logical index displayed at the pivot, or
// Unbound if the window is empty.
func (w *Window) FirstBoundIndex() int {
	if w.bound == 0 {
		return Unbound
	}
	return w.slots[w.pivot].Index
}

// LastBoundIndex returns the largest logical index displayed by the window,
// or Unbound if the window is empty. When the window is full this is the slot
// right before the pivot, wrapping to the end when the pivot is zero.
func (w *Window) LastBoundIndex() int {
	if w.bound == 0 {
		return Unbound
	}
	return w.slots[w.last()].Index
}

// Slot returns a copy of the slot at the given position of the underlying
// buffer.
func (w *Window) Slot(pos int) Slot {
	if pos < 0 || pos >= len(w.slots) {
		inconsistent("Slot", "position %d out of range [0,%d)", pos, len(w.slots))
	}
	return w.slots[pos]
}

// At returns the position and slot of the k-th bound slot in screen order.
func (w *Window) At(k int) (int, Slot) {
	if k < 0 || k >= w.bound {
		inconsistent("At", "slot %d queried with %d bound", k, w.bound)
	}
	pos := w.wrap(w.pivot + k)
	return pos, w.slots[pos]
}

// Each invokes fn for every bound slot in screen order.
func (w *Window) Each(fn func(pos int, s Slot)) {
	for k := 0; k < w.bound; k++ {
		pos := w.wrap(w.pivot + k)
		fn(pos, w.slots[pos])
	}
}

// Find returns the position of the slot bound to the given logical index.
func (w *Window) Find(index int) (int, bool) {
	k := sort.Search(w.bound, func(k int) bool {
		return w.slots[w.wrap(w.pivot+k)].Index >= index
	})
	if k == w.bound {
		return 0, false
	}
	pos := w.wrap(w.pivot + k)
	return pos, w.slots[pos].Index == index
}

// HitTest returns the position of the bound slot covering the vertical
// content offset y. Gutters belong to no slot.
func (w *Window) HitTest(y int) (int, bool) {
	k := sort.Search(w.bound, func(k int) bool {
		return w.slots[w.wrap(w.pivot+k)].Bottom() > y
	})
	if k == w.bound {
		return 0, false
	}
	pos := w.wrap(w.pivot + k)
	return pos, w.slots[pos].Top <= y
}

// AdvanceForward binds the item with the given logical index after the run.
// Once the window is full this recycles the slot at the pivot and advances
// the pivot, so no element is ever allocated. The slot is placed at
// NextTop.
func (w *Window) AdvanceForward(index int, item Item) Slot {
	if w.bound > 0 && index <= w.LastBoundIndex() {
		inconsistent("AdvanceForward", "index %d does not follow %d", index, w.LastBoundIndex())
	}
	top := w.next
	var pos int
	if w.Full() {
		pos = w.pivot
		w.pivot = w.wrap(w.pivot + 1)
	} else {
		pos = w.wrap(w.pivot + w.bound)
		w.bound++
	}
	s := w.bind(pos, index, item)
	s.Top = top
	w.place(s, 0)
	w.next = s.Bottom() + w.gutter
	return *s
}

// AdvanceBackward binds the item with the given logical index before the
// pivot. Once the window is full this recycles the slot holding the largest
// logical index. The slot is placed one gutter above the slot at the pivot.
func (w *Window) AdvanceBackward(index int, item Item) Slot {
	if w.bound == 0 {
		inconsistent("AdvanceBackward", "window is empty")
	}
	first := w.slots[w.pivot]
	if index >= first.Index {
		inconsistent("AdvanceBackward", "index %d does not precede %d", index, first.Index)
	}
	pos := w.wrap(w.pivot - 1)
	if !w.Full() {
		w.bound++
	}
	s := w.bind(pos, index, item)
	s.Top = first.Top - w.gutter - s.Size.Y
	w.pivot = pos
	w.place(s, 0)
	last := w.slots[w.last()]
	w.next = last.Bottom() + w.gutter
	return *s
}

// RemoveAt removes the item displayed by the slot at the given position.
// Every following slot of the run moves one position earlier in screen order
// and is animated towards the offset of its new predecessor. The removed
// slot's element is hidden and its slot becomes free.
func (w *Window) RemoveAt(pos int) {
	if pos < 0 || pos >= len(w.slots) {
		inconsistent("RemoveAt", "position %d out of range [0,%d)", pos, len(w.slots))
	}
	removed := w.slots[pos]
	k := w.wrap(pos - w.pivot)
	if !removed.Bound() || k >= w.bound {
		inconsistent("RemoveAt", "slot %d is not bound", pos)
	}
	top := removed.Top
	cur := pos
	// Indices increase along the run, so every slot up to the wrap boundary
	// follows the removed item.
	for ; k < w.bound-1; k++ {
		next := w.wrap(cur + 1)
		w.slots[cur] = w.slots[next]
		s := &w.slots[cur]
		s.Top = top
		w.place(s, w.transition)
		top = s.Bottom() + w.gutter
		cur = next
	}
	removed.Element.SetOpacity(0)
	w.slots[cur] = Slot{Index: Unbound, Element: removed.Element}
	w.bound--
	w.next = top
}

// bind displays the item in the slot at pos and measures it.
func (w *Window) bind(pos, index int, item Item) *Slot {
	s := &w.slots[pos]
	s.Element.Bind(index, item)
	s.Index = index
	s.Size = w.measure.Measure(s.Element)
	return s
}

// place moves the element of s to the offset of s and makes it visible.
func (w *Window) place(s *Slot, transition time.Duration) {
	s.Element.Move(image.Pt(0, s.Top), transition)
	s.Element.SetOpacity(1)
}

// last returns the position of the final slot of the run.
func (w *Window) last() int {
	return w.wrap(w.pivot + w.bound - 1)
}

func (w *Window) wrap(i int) int {
	i %= len(w.slots)
	if i < 0 {
		i += len(w.slots)
	}
	return i
}
