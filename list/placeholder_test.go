package list

import "testing"

func TestPlaceholderPool(t *testing.T) {
	s := newSurface(100)
	p := NewPlaceholderPool(s, 10)
	if p.Allocated() != 1 || p.Visible() != 0 {
		t.Fatalf("expected a hidden template only, got %d allocated %d visible", p.Allocated(), p.Visible())
	}
	if p.Stride() != 110 {
		t.Errorf("expected stride 110, got %d", p.Stride())
	}

	p.Expand(500, 3)
	if p.Allocated() != 3 {
		t.Errorf("expected the template to be reused, got %d allocated", p.Allocated())
	}
	for ii, want := range []int{500, 610, 720} {
		if got := s.placeholders[ii].offset.Y; got != want {
			t.Errorf("placeholder %d: expected offset %d, got %d", ii, want, got)
		}
	}
	if p.Next() != 830 {
		t.Errorf("expected run to end at 830, got %d", p.Next())
	}

	// A non-empty run grows at its end regardless of from.
	p.Expand(0, 2)
	if p.Visible() != 5 || p.Start() != 500 {
		t.Errorf("expected 5 placeholders from 500, got %d from %d", p.Visible(), p.Start())
	}
	if got := s.placeholders[4].offset.Y; got != 940 {
		t.Errorf("expected last placeholder at 940, got %d", got)
	}

	p.Consume(2, 1000)
	if p.Visible() != 3 || p.Start() != 1000 {
		t.Errorf("expected 3 placeholders from 1000, got %d from %d", p.Visible(), p.Start())
	}
	if got := s.visiblePlaceholders(); got != 3 {
		t.Errorf("expected 3 placeholders shown, got %d", got)
	}
	if got := s.placeholders[2].offset.Y; got != 1220 {
		t.Errorf("expected third placeholder at 1220, got %d", got)
	}

	p.Consume(10, 1500)
	if p.Visible() != 0 || p.Start() != 1500 || p.Next() != 1500 {
		t.Errorf("expected empty run anchored at 1500, got %d from %d", p.Visible(), p.Start())
	}
	if got := s.visiblePlaceholders(); got != 0 {
		t.Errorf("expected every placeholder hidden, %d shown", got)
	}
	if p.Allocated() != 5 {
		t.Errorf("expected placeholders to be kept for reuse, got %d allocated", p.Allocated())
	}
}

func TestPlaceholderPoolClear(t *testing.T) {
	s := newSurface(40)
	p := NewPlaceholderPool(s, 0)
	p.Expand(0, 4)
	p.Expand(0, 0)
	p.Expand(0, -3)
	if p.Visible() != 4 {
		t.Errorf("expected non-positive expansions to be ignored, got %d visible", p.Visible())
	}
	p.Clear()
	if p.Visible() != 0 || s.visiblePlaceholders() != 0 {
		t.Errorf("expected cleared run")
	}
}
