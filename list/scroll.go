package list

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"git.sr.ht/~gioverse/scroll/async"
)

// Viewport describes the scroll position of the list's container.
type Viewport struct {
	// ScrollTop is the vertical offset of the top of the viewport within the
	// content.
	ScrollTop int
	// Height is the height of the viewport.
	Height int
	// ScrollHeight is the total height of the content. If zero, the
	// controller's ContentHeight is used.
	ScrollHeight int
}

// Hooks provides the collaborators a ScrollController depends on.
type Hooks struct {
	// Surface instantiates and measures the visual elements.
	Surface Surface
	// Source provides the logical sequence page by page.
	Source PageSource
	// Scheduler runs page fetches off the goroutine that owns the list.
	// Defaults to a single worker.
	Scheduler async.Scheduler
	// Invalidator is invoked from the fetching goroutine once a page result
	// is ready to be applied. Typically it requests a new frame.
	Invalidator func()
	// Logger receives diagnostics. Defaults to a disabled logger.
	Logger *zerolog.Logger
}

// ScrollController drives a Window over a paginated PageSource as the
// viewport scrolls. It binds fetched items ahead of the viewport, recycles
// slots in either direction, shows placeholders while starved and keeps at
// most one fetch in flight.
//
// Apart from the fetch itself, which runs on the Scheduler, every method
// must be called from the goroutine that owns the list. Fetch results are
// delivered on Results and must be handed back to Apply (or Update) on that
// goroutine.
type ScrollController struct {
	cfg          Config
	hooks        Hooks
	log          zerolog.Logger
	window       *Window
	placeholders *PlaceholderPool
	swipe        *SwipeController
	// items is the logical sequence fetched so far.
	items []Item
	// dismissed holds the logical indices removed by the user. They are
	// skipped when binding.
	dismissed map[int]bool
	cursor    FetchCursor
	results   chan PageResult
	// lastScrollTop is the scroll position of the last processed event.
	lastScrollTop int
	// anchor is the scroll position at which slots were last recycled
	// backwards, or the last forward position.
	anchor int
	// pending holds the latest scroll position posted since the last frame.
	pending    Viewport
	hasPending bool
	// scrolling guards Scroll against reentrant invocations.
	scrolling bool
	// resume is the index of the last item dismissed from the window. Binding
	// continues after it once every slot was dismissed.
	resume int
}

// NewScrollController constructs a controller. Nothing is laid out until
// Start is called. This constructor will panic if the Surface or Source hooks
// are not defined.
func NewScrollController(cfg Config, hooks Hooks) *ScrollController {
	switch {
	case hooks.Surface == nil:
		panic(fmt.Errorf("must provide an implementation of Surface"))
	case hooks.Source == nil:
		panic(fmt.Errorf("must provide an implementation of PageSource"))
	}
	if hooks.Scheduler == nil {
		hooks.Scheduler = &async.FixedWorkerPool{Workers: 1}
	}
	if hooks.Invalidator == nil {
		hooks.Invalidator = func() {}
	}
	log := zerolog.Nop()
	if hooks.Logger != nil {
		log = *hooks.Logger
	}
	return &ScrollController{
		cfg:       cfg.WithDefaults(),
		hooks:     hooks,
		log:       log,
		dismissed: make(map[int]bool),
		results:   make(chan PageResult, 1),
		resume:    Unbound,
	}
}

// Start lays out the initial placeholders for a viewport of the given height,
// allocates the window and requests the first page. Subsequent calls do
// nothing.
func (c *ScrollController) Start(ctx context.Context, viewportHeight int) {
	if c.window != nil {
		return
	}
	c.placeholders = NewPlaceholderPool(c.hooks.Surface, c.cfg.Gutter)
	count := viewportHeight/c.placeholderHeight() + c.cfg.SeedCount
	capacity := c.cfg.Capacity
	if capacity == 0 {
		capacity = count
	}
	c.window = NewWindow(capacity, c.cfg, c.hooks.Surface)
	c.swipe = NewSwipeController(c.cfg, c.window, c.Dismiss)
	c.log.Debug().
		Int("capacity", capacity).
		Int("placeholders", count).
		Msg("starting list")
	c.placeholders.Expand(0, count)
	c.LoadMore(ctx, count)
}

// Window returns the window of slots, or nil before Start.
func (c *ScrollController) Window() *Window {
	return c.window
}

// Placeholders returns the placeholder pool, or nil before Start.
func (c *ScrollController) Placeholders() *PlaceholderPool {
	return c.placeholders
}

// Swipe returns the swipe controller operating on the window, or nil before
// Start.
func (c *ScrollController) Swipe() *SwipeController {
	return c.swipe
}

// Cursor returns the state of the fetch cursor.
func (c *ScrollController) Cursor() FetchCursor {
	return c.cursor
}

// Len returns the number of items fetched so far.
func (c *ScrollController) Len() int {
	return len(c.items)
}

// Item returns the item at the given logical index, if it was fetched.
func (c *ScrollController) Item(index int) (Item, bool) {
	if index < 0 || index >= len(c.items) {
		return Item{}, false
	}
	return c.items[index], true
}

// Dismissed reports whether the item at the given logical index was removed.
func (c *ScrollController) Dismissed(index int) bool {
	return c.dismissed[index]
}

// ContentHeight returns the height of the laid out content, including the
// placeholder run.
func (c *ScrollController) ContentHeight() int {
	if c.window == nil {
		return 0
	}
	h := c.window.NextTop()
	if c.placeholders.Visible() > 0 && c.placeholders.Next() > h {
		h = c.placeholders.Next()
	}
	return h
}

// Post records a scroll position to be processed by the next call to Frame.
// Bursts of positions posted between two frames are coalesced into the
// latest one.
func (c *ScrollController) Post(vp Viewport) {
	c.pending = vp
	c.hasPending = true
}

// Frame processes the scroll position posted since the previous frame, if
// any. It should be invoked once per display refresh. It reports whether a
// position was processed.
func (c *ScrollController) Frame(ctx context.Context) bool {
	if !c.hasPending {
		return false
	}
	c.hasPending = false
	c.Scroll(ctx, c.pending)
	return true
}

// Scroll processes a new scroll position. Scrolling forward near the end of
// the content binds already fetched items, trading the distance scrolled for
// the number of slots recycled, or shows placeholders and requests a page
// when no item is left. Scrolling backward rebinds earlier items before the
// pivot once the distance covered exceeds the height of the slot being
// recycled, or as soon as the viewport reaches above the first slot.
func (c *ScrollController) Scroll(ctx context.Context, vp Viewport) {
	if c.window == nil || c.scrolling {
		return
	}
	c.scrolling = true
	defer func() { c.scrolling = false }()
	if vp.ScrollHeight == 0 {
		vp.ScrollHeight = c.ContentHeight()
	}
	delta := vp.ScrollTop - c.lastScrollTop
	if delta < 0 {
		c.backward(vp)
		return
	}
	if delta > 0 && vp.ScrollTop+vp.Height >= vp.ScrollHeight-c.cfg.DistanceFromBottom {
		c.forward(ctx, delta)
	}
	c.lastScrollTop = vp.ScrollTop
	c.anchor = vp.ScrollTop
}

func (c *ScrollController) forward(ctx context.Context, delta int) {
	w := c.window
	next := c.nextIndex(c.lastIndex())
	if next >= len(c.items) {
		count := (delta + c.placeholderHeight() - 1) / c.placeholderHeight()
		if count < c.cfg.MinPlaceholders {
			count = c.cfg.MinPlaceholders
		}
		c.placeholders.Expand(w.NextTop(), count)
		c.LoadMore(ctx, c.cfg.PageSize)
		return
	}
	bound := 0
	for delta > 0 && next < len(c.items) {
		s := w.AdvanceForward(next, c.items[next])
		delta -= s.Size.Y + w.Gutter()
		next = c.nextIndex(next)
		bound++
	}
	if c.placeholders.Visible() > 0 {
		c.placeholders.Consume(bound, w.NextTop())
	}
}

func (c *ScrollController) backward(vp Viewport) {
	w := c.window
	if w.Len() == 0 {
		return
	}
	distance := c.anchor - vp.ScrollTop
	if distance < 0 {
		distance = -distance
	}
	recycled := 0
	for {
		prev := c.prevIndex(w.FirstBoundIndex())
		if prev < 0 {
			break
		}
		// Recycling applies to the slot holding the largest index, unless a
		// free slot is available. Uncovering the area above the first slot
		// always rebinds.
		candidate := 0
		if w.Full() {
			_, s := w.At(w.Len() - 1)
			candidate = s.Size.Y
		}
		if distance < candidate && vp.ScrollTop >= w.Slot(w.Pivot()).Top {
			break
		}
		s := w.AdvanceBackward(prev, c.items[prev])
		distance -= s.Size.Y + w.Gutter()
		recycled++
	}
	if recycled > 0 {
		c.lastScrollTop = vp.ScrollTop
		c.anchor = vp.ScrollTop
	}
}

// LoadMore requests a page of count items from the source, unless a fetch is
// already in flight. It reports whether a fetch was issued.
func (c *ScrollController) LoadMore(ctx context.Context, count int) bool {
	if c.cursor.InFlight {
		return false
	}
	if count <= 0 {
		count = c.cfg.PageSize
	}
	c.cursor.InFlight = true
	token := c.cursor.Token
	c.log.Debug().Int("count", count).Str("token", token).Msg("fetching page")
	c.hooks.Scheduler.Schedule(func() {
		page, err := c.hooks.Source.Fetch(ctx, count, token)
		if err != nil && !errors.Is(err, ErrFetch) {
			err = fmt.Errorf("%w: %w", ErrFetch, err)
		}
		c.results <- PageResult{Page: page, Requested: count, Err: err}
		c.hooks.Invalidator()
	})
	return true
}

// Results delivers the outcome of each fetch. At most one result is ever
// pending.
func (c *ScrollController) Results() <-chan PageResult {
	return c.results
}

// Update applies a pending fetch result, if there is one, without blocking.
// It reports whether a result was applied.
func (c *ScrollController) Update() bool {
	select {
	case r := <-c.results:
		c.Apply(r)
		return true
	default:
		return false
	}
}

// Apply appends the items of a fetch result to the logical sequence and, if
// the window displays the end of the sequence, binds them in place of the
// visible placeholders, filling free slots first. Placeholders the page
// could not fill are hidden. A failed fetch only clears
// the in-flight state so the next scroll can try again.
func (c *ScrollController) Apply(r PageResult) {
	c.cursor.InFlight = false
	if r.Err != nil {
		c.log.Warn().Err(r.Err).Int("count", r.Requested).Msg("page fetch failed")
		return
	}
	c.cursor.Token = r.Token
	offset := len(c.items)
	c.items = append(c.items, r.Items...)
	c.log.Debug().
		Int("received", len(r.Items)).
		Int("total", len(c.items)).
		Msg("page applied")
	if c.window == nil {
		return
	}
	w := c.window
	if c.nextIndex(c.lastIndex()) < offset {
		// The window was scrolled back since the fetch was issued. The new
		// items get bound when scrolling forward again.
		c.placeholders.Consume(c.placeholders.Visible(), w.NextTop())
		return
	}
	want := c.placeholders.Visible()
	if free := w.Cap() - w.Len(); free > want {
		want = free
	}
	if want > w.Cap() {
		// Binding more would recycle slots bound by this very call.
		want = w.Cap()
	}
	bound := 0
	next := c.nextIndex(c.lastIndex())
	for ; bound < want && next < len(c.items); next = c.nextIndex(next) {
		w.AdvanceForward(next, c.items[next])
		bound++
	}
	if next >= len(c.items) {
		// The page could not fill the remaining placeholders.
		c.placeholders.Consume(c.placeholders.Visible(), w.NextTop())
		return
	}
	c.placeholders.Consume(bound, w.NextTop())
}

// Dismiss removes the item displayed by the slot at the given position from
// the window. The item keeps its logical index but is never bound again.
func (c *ScrollController) Dismiss(pos int) {
	if c.window == nil {
		return
	}
	index := c.window.Slot(pos).Index
	c.window.RemoveAt(pos)
	c.dismissed[index] = true
	c.resume = index
	if c.placeholders.Visible() > 0 {
		c.placeholders.Consume(0, c.window.NextTop())
	}
	c.log.Debug().Int("index", index).Msg("item dismissed")
}

// lastIndex returns the index binding continues after when scrolling forward.
func (c *ScrollController) lastIndex() int {
	if c.window.Len() == 0 {
		return c.resume
	}
	return c.window.LastBoundIndex()
}

// nextIndex returns the first logical index after i that was not dismissed.
func (c *ScrollController) nextIndex(i int) int {
	i++
	for c.dismissed[i] {
		i++
	}
	return i
}

// prevIndex returns the last logical index before i that was not dismissed,
// or a negative value if there is none.
func (c *ScrollController) prevIndex(i int) int {
	i--
	for i >= 0 && c.dismissed[i] {
		i--
	}
	return i
}

func (c *ScrollController) placeholderHeight() int {
	if h := c.placeholders.Size().Y; h > 0 {
		return h
	}
	return 1
}
