// Loader adapted from Egon's https://github.com/egonelbre/expgio.
package async

import (
	"context"
	"sync"
	"sync/atomic"

	"gioui.org/layout"
	"github.com/rs/zerolog"
)

// Tag identifies a resource. It must be hashable.
type Tag interface{}

// LoadFunc performs the blocking load of a resource, such as a network call
// or a disk read.
type LoadFunc func(ctx context.Context) (interface{}, error)

// State that an async Resource can be in.
type State byte

const (
	// Queued resources wait for a free worker.
	Queued State = iota
	// Loading resources are being loaded by a worker.
	Loading
	// Loaded resources hold their value.
	Loaded
	// Failed resources hold the error their load reported. They are not
	// retried until evicted.
	Failed
)

func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resource is a snapshot of an asynchronously loaded value.
type Resource struct {
	State State
	// Value is set once the resource is Loaded.
	Value interface{}
	// Err is set once the resource has Failed.
	Err error
}

// DefaultMaxLoaded is used when no max is specified.
const DefaultMaxLoaded = 10

// Loader loads resources in the background and evicts the ones that are no
// longer laid out.
//
// Poll a resource each frame with Schedule, wrap the layout with Frame so
// stale resources can be detected, and select on Updated in the event loop
// to learn when a resource changed state.
type Loader struct {
	// Scheduler runs the loads. Defaults to a pool of MaxLoaded workers.
	Scheduler Scheduler
	// MaxLoaded is the number of resources kept before old ones get evicted.
	MaxLoaded int
	// Context bounds every load. Cancelling it stops the loader. Defaults to
	// context.Background.
	Context context.Context
	// Logger receives load failures. Defaults to a disabled logger.
	Logger *zerolog.Logger

	// active is the frame being laid out, finished the last frame completed.
	// Both are accessed atomically.
	active   int64
	finished int64
	updated  chan struct{}
	init     sync.Once
	state    loaderState
}

// loaderState is guarded by mu.
type loaderState struct {
	mu sync.Mutex
	// wake is signalled when a frame completes, a resource is queued or the
	// context is done.
	wake    sync.Cond
	entries map[Tag]*entry
	pending []*entry
}

// Stats reports runtime data about a loader.
type Stats struct {
	Tracked int
	Pending int
}

// Updated returns a channel that receives a value whenever a resource
// changed state. Integrate it into the event loop to invalidate the window:
//
//	case <-loader.Updated():
//		w.Invalidate()
func (l *Loader) Updated() <-chan struct{} {
	l.init.Do(l.initialize)
	return l.updated
}

// Frame lays out w and records that a frame has been completed. Resources
// not polled during the frame become candidates for eviction.
func (l *Loader) Frame(gtx layout.Context, w layout.Widget) layout.Dimensions {
	l.init.Do(l.initialize)
	atomic.AddInt64(&l.active, 1)
	dims := w(gtx)
	atomic.StoreInt64(&l.finished, atomic.LoadInt64(&l.active))
	l.state.wake.Signal()
	return dims
}

// Schedule returns the current state of the resource identified by tag. The
// first call for a tag queues load; later calls poll it and mark it as in use
// for the current frame.
func (l *Loader) Schedule(tag Tag, load LoadFunc) Resource {
	l.init.Do(l.initialize)
	s := &l.state
	s.mu.Lock()
	e, ok := s.entries[tag]
	if !ok {
		e = &entry{tag: tag, load: load}
		s.entries[tag] = e
		s.pending = append(s.pending, e)
		s.wake.Signal()
	}
	s.mu.Unlock()
	atomic.StoreInt64(&e.frame, atomic.LoadInt64(&l.active))
	return e.snapshot()
}

// Stats reports how many resources are tracked and how many wait to be
// scheduled.
func (l *Loader) Stats() Stats {
	l.init.Do(l.initialize)
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	return Stats{
		Tracked: len(l.state.entries),
		Pending: len(l.state.pending),
	}
}

func (l *Loader) initialize() {
	if l.MaxLoaded <= 0 {
		l.MaxLoaded = DefaultMaxLoaded
	}
	if l.Scheduler == nil {
		l.Scheduler = &FixedWorkerPool{Workers: l.MaxLoaded}
	}
	if l.Context == nil {
		l.Context = context.Background()
	}
	if l.Logger == nil {
		nop := zerolog.Nop()
		l.Logger = &nop
	}
	l.updated = make(chan struct{}, 1)
	l.state.entries = make(map[Tag]*entry)
	l.state.wake.L = &l.state.mu
	go l.run(l.Context)
}

// notify reports a state change without blocking.
func (l *Loader) notify() {
	select {
	case l.updated <- struct{}{}:
	default:
	}
}

// run dispatches pending resources to the scheduler until ctx is done.
func (l *Loader) run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		l.state.mu.Lock()
		l.state.wake.Broadcast()
		l.state.mu.Unlock()
	}()
	s := &l.state
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if ctx.Err() != nil {
			return
		}
		s.evict(atomic.LoadInt64(&l.finished), l.MaxLoaded)
		for len(s.pending) > 0 {
			e := s.pending[0]
			s.pending = s.pending[1:]
			if atomic.LoadInt64(&e.frame) < atomic.LoadInt64(&l.finished) {
				// Not laid out since it was queued; drop it.
				delete(s.entries, e.tag)
				continue
			}
			s.mu.Unlock()
			l.Scheduler.Schedule(func() {
				l.load(ctx, e)
			})
			s.mu.Lock()
		}
		s.wake.Wait()
	}
}

func (l *Loader) load(ctx context.Context, e *entry) {
	e.set(Loading, nil, nil)
	l.notify()
	v, err := e.load(ctx)
	if err != nil {
		l.Logger.Warn().Err(err).Interface("tag", e.tag).Msg("resource failed to load")
		e.set(Failed, nil, err)
	} else {
		e.set(Loaded, v, nil)
	}
	l.notify()
}

// evict forgets resources that were not used during the last finished frame
// while more than max resources are tracked.
func (s *loaderState) evict(finished int64, max int) {
	for tag, e := range s.entries {
		if len(s.entries) <= max {
			return
		}
		if atomic.LoadInt64(&e.frame) < finished {
			delete(s.entries, tag)
		}
	}
}

// entry is the loader's record of a resource. tag and load never change
// after allocation; frame is accessed atomically; the rest is guarded by mu.
type entry struct {
	mu    sync.Mutex
	frame int64
	state State
	value interface{}
	err   error
	tag   Tag
	load  LoadFunc
}

func (e *entry) snapshot() Resource {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Resource{State: e.state, Value: e.value, Err: e.err}
}

func (e *entry) set(s State, v interface{}, err error) {
	e.mu.Lock()
	e.state, e.value, e.err = s, v, err
	e.mu.Unlock()
}
