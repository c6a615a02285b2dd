package async

import (
	"runtime"
	"sync"
)

// Scheduler runs units of work according to some strategy. Implementations
// decide how work is distributed over goroutines.
type Scheduler interface {
	// Schedule a piece of work. Implementations are allowed to block until
	// capacity is available.
	Schedule(func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(func())

// Schedule calls f(work).
func (f SchedulerFunc) Schedule(work func()) {
	f(work)
}

// Inline runs every unit of work synchronously on the calling goroutine.
// It is mostly useful in tests, where it makes asynchronous flows
// deterministic.
var Inline Scheduler = SchedulerFunc(func(work func()) {
	if work != nil {
		work()
	}
})

// FixedWorkerPool runs work on a fixed number of long-lived goroutines.
//
// It minimizes scheduling latency at the cost of keeping its workers alive
// for the lifetime of the pool.
type FixedWorkerPool struct {
	// Workers is the number of concurrent workers. Defaults to NumCPU.
	Workers int
	// queue is unbuffered: Schedule blocks while every worker is busy.
	queue chan func()
	once  sync.Once
}

// Schedule hands work to the next idle worker, blocking while all of them are
// busy.
func (p *FixedWorkerPool) Schedule(work func()) {
	p.once.Do(p.start)
	p.queue <- work
}

func (p *FixedWorkerPool) start() {
	if p.Workers <= 0 {
		p.Workers = runtime.NumCPU()
	}
	p.queue = make(chan func())
	for ii := 0; ii < p.Workers; ii++ {
		go func() {
			for work := range p.queue {
				if work != nil {
					work()
				}
			}
		}()
	}
}

// DynamicWorkerPool spawns one goroutine per unit of work, up to a maximum
// number of concurrent goroutines.
//
// Idle pools hold no goroutines other than the dispatcher, but each unit of
// work pays for spawning its goroutine. Work does not necessarily complete
// in the order it was scheduled.
type DynamicWorkerPool struct {
	// Workers is the maximum number of concurrent workers. Defaults to
	// NumCPU.
	Workers int
	// tokens is a semaphore bounding the number of live workers.
	tokens chan struct{}
	queue  chan func()
	once   sync.Once
}

// Schedule hands work to a fresh worker, blocking while the maximum number of
// workers are running.
func (p *DynamicWorkerPool) Schedule(work func()) {
	p.once.Do(p.start)
	p.queue <- work
}

func (p *DynamicWorkerPool) start() {
	if p.Workers <= 0 {
		p.Workers = runtime.NumCPU()
	}
	p.queue = make(chan func())
	p.tokens = make(chan struct{}, p.Workers)
	go func() {
		for work := range p.queue {
			if work == nil {
				continue
			}
			p.tokens <- struct{}{}
			go func(work func()) {
				defer func() { <-p.tokens }()
				work()
			}(work)
		}
	}()
}
