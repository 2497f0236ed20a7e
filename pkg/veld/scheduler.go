package veld

import (
	"sync"
	"time"
)

// Scheduler supplies the two deferral primitives a root uses for
// asynchronous flushing: Defer runs a function after the current call
// stack unwinds, AfterFrame runs one after the host has had a chance to
// present.
//
// The reconciler is single-threaded cooperative: a Scheduler MUST
// serialize the callbacks it runs with every other use of the reconciler
// (renders, setters, flushes, unmounts). LoopScheduler does this by
// owning a single goroutine and requiring callers to enter through Do;
// a server event loop guarded by a mutex works the same way.
//
// A root with no Scheduler installed never defers: scheduled work drains
// synchronously on the calling goroutine before the triggering call
// returns, exactly as under Act.
type Scheduler interface {
	Defer(fn func())
	AfterFrame(fn func())
}

// frameInterval approximates one presentation frame for LoopScheduler's
// after-paint fallback.
const frameInterval = 16 * time.Millisecond

// LoopScheduler is a Scheduler backed by one long-lived goroutine that
// drains a FIFO of functions. Every deferred flush runs there, so flushes
// serialize among themselves; callers keep the single-threaded model by
// entering the reconciler only through Do.
type LoopScheduler struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

// NewLoopScheduler creates the scheduler and starts its goroutine. The
// goroutine lives for the life of the process.
func NewLoopScheduler() *LoopScheduler {
	s := &LoopScheduler{wake: make(chan struct{}, 1)}
	go s.run()
	return s
}

// Defer implements Scheduler. Safe to call from any goroutine, including
// from a function already running on the loop.
func (s *LoopScheduler) Defer(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// AfterFrame implements Scheduler.
func (s *LoopScheduler) AfterFrame(fn func()) {
	time.AfterFunc(frameInterval, func() { s.Defer(fn) })
}

// Do runs fn on the loop and waits for it to finish. All reconciler
// entries (Render, event dispatch that fires setters, Flush, unmount)
// belong inside Do when this scheduler is installed. Do must not be
// called from a function already running on the loop; Defer covers that
// case.
func (s *LoopScheduler) Do(fn func()) {
	done := make(chan struct{})
	s.Defer(func() {
		defer close(done)
		fn()
	})
	<-done
}

func (s *LoopScheduler) run() {
	for range s.wake {
		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				s.mu.Unlock()
				break
			}
			fn := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			fn()
		}
	}
}
