package list

import "time"

// Defaults used for zero-valued Config fields.
const (
	DefaultSeedCount          = 50
	DefaultGutter             = 10
	DefaultDistanceFromBottom = 2000
	DefaultSwipeCommitRatio   = 0.55
	DefaultMinPlaceholders    = 30
	DefaultPageSize           = 30
	DefaultTransition         = 150 * time.Millisecond
)

// Config tunes the windowing behaviour. The zero value is usable: every
// unset field takes its Default value.
type Config struct {
	// SeedCount is the number of placeholders laid out beyond the viewport on
	// the initial load.
	SeedCount int
	// Gutter is the vertical spacing between consecutive slots, in pixels.
	// A negative Gutter disables the spacing altogether.
	Gutter int
	// DistanceFromBottom is how close, in pixels, the bottom of the viewport
	// must get to the end of the content before more content is bound or
	// requested.
	DistanceFromBottom int
	// SwipeCommitRatio is the fraction of a slot's width it must be dragged
	// horizontally before it is dismissed.
	SwipeCommitRatio float32
	// MinPlaceholders is the minimum number of placeholders shown when the
	// list runs out of fetched items.
	MinPlaceholders int
	// PageSize is the number of items requested once the initial load is
	// done.
	PageSize int
	// Capacity fixes the number of slots in the window. If zero, the capacity
	// is derived from the viewport height at Start: one slot per placeholder
	// fitting in the viewport plus SeedCount.
	Capacity int
	// Transition is the duration of the compaction animation that follows a
	// dismissal, and of the snap back of a reverted swipe.
	Transition time.Duration
}

// WithDefaults returns a copy of c with defaults filled in and out-of-range
// values clamped.
func (c Config) WithDefaults() Config {
	if c.SeedCount <= 0 {
		c.SeedCount = DefaultSeedCount
	}
	if c.Gutter == 0 {
		c.Gutter = DefaultGutter
	} else if c.Gutter < 0 {
		c.Gutter = 0
	}
	if c.DistanceFromBottom <= 0 {
		c.DistanceFromBottom = DefaultDistanceFromBottom
	}
	if c.SwipeCommitRatio <= 0 {
		c.SwipeCommitRatio = DefaultSwipeCommitRatio
	}
	if c.SwipeCommitRatio > 1 {
		c.SwipeCommitRatio = 1
	}
	if c.MinPlaceholders <= 0 {
		c.MinPlaceholders = DefaultMinPlaceholders
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Capacity < 0 {
		c.Capacity = 0
	}
	if c.Transition <= 0 {
		c.Transition = DefaultTransition
	}
	return c
}
