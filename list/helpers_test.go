package list

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"testing"
	"time"
)

// fakeElement records what the list did to it.
type fakeElement struct {
	index      int
	item       Item
	offset     image.Point
	transition time.Duration
	opacity    float32
	selectable bool
	binds      int
}

func (e *fakeElement) Bind(index int, item Item) {
	e.index = index
	e.item = item
	e.binds++
	e.selectable = true
}

func (e *fakeElement) Move(offset image.Point, transition time.Duration) {
	e.offset = offset
	e.transition = transition
}

func (e *fakeElement) SetOpacity(o float32) {
	e.opacity = o
}

func (e *fakeElement) SetSelectable(s bool) {
	e.selectable = s
}

type fakePlaceholder struct {
	offset  image.Point
	opacity float32
}

func (p *fakePlaceholder) Move(offset image.Point, _ time.Duration) {
	p.offset = offset
}

func (p *fakePlaceholder) SetOpacity(o float32) {
	p.opacity = o
}

// fakeSurface sizes elements by the logical index they display.
type fakeSurface struct {
	width        int
	heights      func(index int) int
	placeholder  int
	elements     []*fakeElement
	placeholders []*fakePlaceholder
}

func newSurface(height int) *fakeSurface {
	return &fakeSurface{
		width:       300,
		heights:     func(int) int { return height },
		placeholder: height,
	}
}

func (s *fakeSurface) NewElement() Element {
	e := &fakeElement{index: Unbound}
	s.elements = append(s.elements, e)
	return e
}

func (s *fakeSurface) NewPlaceholder() Visual {
	p := &fakePlaceholder{}
	s.placeholders = append(s.placeholders, p)
	return p
}

func (s *fakeSurface) Measure(v Visual) image.Point {
	switch v := v.(type) {
	case *fakeElement:
		return image.Pt(s.width, s.heights(v.index))
	case *fakePlaceholder:
		return image.Pt(s.width, s.placeholder)
	}
	panic(fmt.Errorf("unexpected visual %T", v))
}

// visiblePlaceholders counts the placeholders currently shown.
func (s *fakeSurface) visiblePlaceholders() int {
	n := 0
	for _, p := range s.placeholders {
		if p.opacity > 0 {
			n++
		}
	}
	return n
}

func testItems(from, n int) []Item {
	items := make([]Item, n)
	for ii := range items {
		items[ii] = Item{
			ID:      fmt.Sprintf("%03d", from+ii),
			Author:  Author{Name: "author"},
			Content: fmt.Sprintf("message %d", from+ii),
		}
	}
	return items
}

// fakeSource serves an endless sequence, or a bounded one if limit is set.
// Tokens are the offset of the next item.
type fakeSource struct {
	sync.Mutex
	limit  int
	err    error
	calls  int
	counts []int
}

func (s *fakeSource) Fetch(ctx context.Context, count int, token string) (Page, error) {
	s.Lock()
	defer s.Unlock()
	s.calls++
	s.counts = append(s.counts, count)
	if s.err != nil {
		return Page{}, s.err
	}
	offset := 0
	if token != "" {
		if _, err := fmt.Sscan(token, &offset); err != nil {
			return Page{}, err
		}
	}
	if s.limit > 0 && offset+count > s.limit {
		count = s.limit - offset
		if count < 0 {
			count = 0
		}
	}
	return Page{
		Items: testItems(offset, count),
		Token: fmt.Sprint(offset + count),
	}, nil
}

func (s *fakeSource) Calls() int {
	s.Lock()
	defer s.Unlock()
	return s.calls
}

var errUnavailable = errors.New("unavailable")

// checkWindow verifies the structural invariants of a window: indices and
// offsets strictly increase along the run, consecutive slots are separated
// by exactly one gutter, and every slot off the run is free.
func checkWindow(t *testing.T, w *Window) {
	t.Helper()
	bound := 0
	for pos := 0; pos < w.Cap(); pos++ {
		if w.Slot(pos).Bound() {
			bound++
		}
	}
	if bound != w.Len() {
		t.Errorf("expected %d bound slots, found %d", w.Len(), bound)
	}
	var prev Slot
	w.Each(func(pos int, s Slot) {
		if !s.Bound() {
			t.Errorf("slot %d in run is not bound", pos)
		}
		if prev.Element != nil {
			if s.Index <= prev.Index {
				t.Errorf("slot %d: index %d does not follow %d", pos, s.Index, prev.Index)
			}
			if want := prev.Bottom() + w.Gutter(); s.Top != want {
				t.Errorf("slot %d (index %d): expected top %d, got %d", pos, s.Index, want, s.Top)
			}
		}
		if e := s.Element.(*fakeElement); e.offset.Y != s.Top {
			t.Errorf("slot %d: element at %d but slot top is %d", pos, e.offset.Y, s.Top)
		}
		prev = s
	})
	if prev.Element != nil {
		if want := prev.Bottom() + w.Gutter(); w.NextTop() != want {
			t.Errorf("expected next top %d, got %d", want, w.NextTop())
		}
	}
}

// expectLayoutError fails the test unless fn panics with a LayoutError.
func expectLayoutError(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Errorf("expected a panic")
			return
		}
		if _, ok := r.(*LayoutError); !ok {
			t.Errorf("expected *LayoutError, got %T: %v", r, r)
		}
	}()
	fn()
}
