package list

import (
	"fmt"
	"image"
)

// PlaceholderPool manages the run of loading placeholders displayed after the
// last bound slot while content is in flight. All placeholders share the size
// of the template, which is measured once.
type PlaceholderPool struct {
	surface Surface
	gutter  int
	size    image.Point
	// elems holds every placeholder ever created; the first visible of them
	// form the run.
	elems   []Visual
	visible int
	// start is the vertical offset of the first placeholder of the run.
	start int
}

// NewPlaceholderPool measures the placeholder template of the surface and
// returns an empty pool.
func NewPlaceholderPool(surface Surface, gutter int) *PlaceholderPool {
	if surface == nil {
		panic(fmt.Errorf("must provide an implementation of Surface"))
	}
	template := surface.NewPlaceholder()
	template.SetOpacity(0)
	return &PlaceholderPool{
		surface: surface,
		gutter:  gutter,
		size:    surface.Measure(template),
		elems:   []Visual{template},
	}
}

// Size returns the measured size of a placeholder.
func (p *PlaceholderPool) Size() image.Point {
	return p.size
}

// Stride returns the vertical distance between two consecutive placeholders.
func (p *PlaceholderPool) Stride() int {
	return p.size.Y + p.gutter
}

// Visible returns the length of the placeholder run.
func (p *PlaceholderPool) Visible() int {
	return p.visible
}

// Allocated returns the number of placeholders created so far.
func (p *PlaceholderPool) Allocated() int {
	return len(p.elems)
}

// Start returns the vertical offset of the first placeholder of the run.
func (p *PlaceholderPool) Start() int {
	return p.start
}

// Next returns the vertical offset following the run, which equals Start
// when the run is empty.
func (p *PlaceholderPool) Next() int {
	return p.start + p.visible*p.Stride()
}

// Expand grows the run by n placeholders. An empty run is anchored at the
// vertical offset from; a non-empty run grows at its end. Hidden
// placeholders are reused before new ones are created.
func (p *PlaceholderPool) Expand(from, n int) {
	if n <= 0 {
		return
	}
	if p.visible == 0 {
		p.start = from
	}
	for i := p.visible; i < p.visible+n; i++ {
		if i == len(p.elems) {
			p.elems = append(p.elems, p.surface.NewPlaceholder())
		}
		p.elems[i].Move(image.Pt(0, p.start+i*p.Stride()), 0)
		p.elems[i].SetOpacity(1)
	}
	p.visible += n
}

// Consume removes n placeholders from the head of the run, as they have been
// replaced by bound slots, and anchors the rest of the run at from.
func (p *PlaceholderPool) Consume(n, from int) {
	if n > p.visible {
		n = p.visible
	}
	remaining := p.visible - n
	p.Clear()
	p.Expand(from, remaining)
	if remaining == 0 {
		p.start = from
	}
}

// Clear hides every placeholder of the run.
func (p *PlaceholderPool) Clear() {
	for i := 0; i < p.visible; i++ {
		p.elems[i].SetOpacity(0)
	}
	p.visible = 0
}
