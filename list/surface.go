package list

import (
	"image"
	"time"
)

// Visual is a positioned, fadeable visual element owned by the list. Slots
// and placeholders are both Visuals.
type Visual interface {
	// Move places the visual at offset, relative to the top-left corner of
	// the scrollable content. A positive transition animates the move over
	// that duration, otherwise the move is immediate.
	Move(offset image.Point, transition time.Duration)
	// SetOpacity sets the opacity of the visual in the range [0,1].
	SetOpacity(opacity float32)
}

// Element is the visual element controlled by a Slot. A single Element
// displays many logical items over its lifetime.
type Element interface {
	Visual
	// Bind displays the item at the given logical index. Implementations must
	// reset any opacity or horizontal displacement left over from the
	// previous binding so stale content never flashes.
	Bind(index int, item Item)
	// SetSelectable toggles whether the text of the element can be selected.
	SetSelectable(selectable bool)
}

// Measurer reports the rendered size of a visual element. Elements are
// measured right after they are bound, so the size reflects the content
// being displayed.
type Measurer interface {
	Measure(v Visual) image.Point
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(v Visual) image.Point

// Measure calls f(v).
func (f MeasurerFunc) Measure(v Visual) image.Point {
	return f(v)
}

// Surface is the pool of visual templates the list draws on. It is provided
// by whatever renders the list.
type Surface interface {
	Measurer
	// NewElement instantiates an item element. It is invoked exactly once per
	// slot, when the window is created.
	NewElement() Element
	// NewPlaceholder instantiates a loading placeholder.
	NewPlaceholder() Visual
}
