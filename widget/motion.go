package widget

import (
	"image"
	"time"
)

// Motion is the placement of a visual element on a scrolled surface. Moves
// with a transition are interpolated over time, so layout code asks for the
// current Offset each frame and keeps invalidating while Animating.
//
// The zero value sits at the origin, fully transparent.
type Motion struct {
	// Now reports the current time. Defaults to time.Now.
	Now      func() time.Time
	from, to image.Point
	start    time.Time
	duration time.Duration
	opacity  float32
}

// Move places the element at offset, animating from its current position
// when transition is positive.
func (m *Motion) Move(offset image.Point, transition time.Duration) {
	if transition <= 0 {
		m.from, m.to, m.duration = offset, offset, 0
		return
	}
	m.from = m.Offset()
	m.to = offset
	m.start = m.now()
	m.duration = transition
}

// SetOpacity sets the opacity, clamped to [0,1].
func (m *Motion) SetOpacity(opacity float32) {
	switch {
	case opacity < 0:
		opacity = 0
	case opacity > 1:
		opacity = 1
	}
	m.opacity = opacity
}

// Opacity returns the current opacity.
func (m *Motion) Opacity() float32 {
	return m.opacity
}

// Visible reports whether the element is drawn at all.
func (m *Motion) Visible() bool {
	return m.opacity > 0
}

// Target returns the offset the element is moving to.
func (m *Motion) Target() image.Point {
	return m.to
}

// Offset returns the current, possibly interpolated, offset.
func (m *Motion) Offset() image.Point {
	progress := m.progress()
	if progress >= 1 {
		return m.to
	}
	// Ease out.
	eased := 1 - (1-progress)*(1-progress)
	d := m.to.Sub(m.from)
	return m.from.Add(image.Pt(
		int(float32(d.X)*eased),
		int(float32(d.Y)*eased),
	))
}

// Animating reports whether a transition is in progress.
func (m *Motion) Animating() bool {
	return m.progress() < 1
}

func (m *Motion) progress() float32 {
	if m.duration <= 0 {
		return 1
	}
	elapsed := m.now().Sub(m.start)
	if elapsed >= m.duration {
		return 1
	}
	if elapsed < 0 {
		return 0
	}
	return float32(elapsed) / float32(m.duration)
}

func (m *Motion) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}
