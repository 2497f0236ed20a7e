package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/veld-ui/veld/pkg/dom"
	"github.com/veld-ui/veld/pkg/session"
	"github.com/veld-ui/veld/pkg/veld"
	"github.com/veld-ui/veld/pkg/vdom"
)

const dispatchQueueSize = 256

// renderMu serializes initial session renders. The reconciler's hook
// machinery is single-threaded cooperative; concurrent page requests must
// not interleave renders.
var renderMu sync.Mutex

// Session owns one live document and its root: every event, state update,
// and flush for the session runs on its single event-loop goroutine, so
// the cooperative single-threaded model of the reconciler holds.
type Session struct {
	ID string

	doc    *dom.MemoryDocument
	root   *veld.Root
	logger *slog.Logger
	store  session.Store
	m      *metrics
	tracer trace.Tracer

	dispatchCh chan func()
	outCh      chan []dom.Patch
	done       chan struct{}
	closed     atomic.Bool

	// pending accumulates recorded host mutations during a flush.
	pending []dom.Patch

	LastActive time.Time
}

// newSession renders the app into a fresh document and starts the event
// loop.
func newSession(app func() *vdom.VNode, logger *slog.Logger, store session.Store, m *metrics) (*Session, error) {
	s := &Session{
		ID:         newSessionID(),
		logger:     logger,
		store:      store,
		m:          m,
		tracer:     otel.Tracer("veld.server"),
		dispatchCh: make(chan func(), dispatchQueueSize),
		outCh:      make(chan []dom.Patch, 16),
		done:       make(chan struct{}),
		LastActive: time.Now(),
	}

	doc := dom.NewDocument()
	doc.EmitIDs = true
	s.doc = doc

	body := doc.Body()
	renderMu.Lock()
	err := veld.Act(func() error {
		return veld.Render(app(), body)
	})
	renderMu.Unlock()
	if err != nil {
		return nil, err
	}

	s.root = veld.RootOf(body)
	s.root.SetScheduler(s)
	s.root.OnAsyncError(func(ferr error) {
		s.logger.Error("unhandled render error", "session", s.ID, "err", ferr)
		s.m.renderErrors.Inc()
		s.Close()
	})
	doc.SetRecorder(func(p dom.Patch) {
		s.pending = append(s.pending, p)
	})

	go s.run()
	s.saveSnapshot()
	return s, nil
}

// Markup serializes the session's current body.
func (s *Session) Markup() string {
	return s.doc.Body().InnerHTML()
}

// Dispatch queues a function to run on the session's event loop. Safe to
// call from any goroutine; after the function completes, recorded host
// mutations are shipped to the client.
func (s *Session) Dispatch(fn func()) {
	if s.closed.Load() {
		return
	}
	select {
	case s.dispatchCh <- fn:
	case <-s.done:
	default:
		s.logger.Warn("dispatch queue full, discarding callback", "session", s.ID)
	}
}

// Defer implements veld.Scheduler: deferred flushes run on the event
// loop, serialized against all other reconciler work in the process.
func (s *Session) Defer(fn func()) {
	s.Dispatch(func() {
		renderMu.Lock()
		defer renderMu.Unlock()
		fn()
	})
}

// AfterFrame implements veld.Scheduler. The server has no paint to wait
// for; a short timer stands in so post-commit effects still run after the
// patch frame ships.
func (s *Session) AfterFrame(fn func()) {
	time.AfterFunc(16*time.Millisecond, func() { s.Defer(fn) })
}

// HandleEvent dispatches a client event to the target node's handler and
// flushes the resulting update.
func (s *Session) HandleEvent(nodeID uint64, name, value string) {
	s.Dispatch(func() {
		_, span := s.tracer.Start(context.Background(), "session.event",
			trace.WithAttributes(
				attribute.String("session.id", s.ID),
				attribute.String("event.name", name),
				attribute.Int64("event.node", int64(nodeID)),
			))
		defer span.End()

		start := time.Now()
		s.LastActive = start
		s.m.eventsTotal.WithLabelValues(name).Inc()

		el, ok := s.doc.NodeByID(nodeID).(*dom.MemoryElement)
		if !ok {
			s.logger.Warn("event for unknown node", "session", s.ID, "node", nodeID)
			return
		}

		renderMu.Lock()
		fired := el.Fire(name, value)
		var flushErr error
		if fired {
			flushErr = s.root.Flush()
		}
		renderMu.Unlock()

		if !fired {
			s.logger.Debug("no handler for event", "session", s.ID, "event", name, "node", nodeID)
			return
		}
		if flushErr != nil {
			span.RecordError(flushErr)
			s.logger.Error("flush failed", "session", s.ID, "err", flushErr)
			s.m.renderErrors.Inc()
			s.Close()
			return
		}
		s.m.flushDuration.Observe(time.Since(start).Seconds())
	})
}

// run is the event loop: dispatched functions execute serially, and any
// host mutations they recorded are shipped afterwards.
func (s *Session) run() {
	for {
		select {
		case fn := <-s.dispatchCh:
			fn()
			s.shipPending()
		case <-s.done:
			return
		}
	}
}

func (s *Session) shipPending() {
	if len(s.pending) == 0 {
		return
	}
	patches := s.pending
	s.pending = nil
	s.m.patchesTotal.Add(float64(len(patches)))
	select {
	case s.outCh <- patches:
	default:
		s.logger.Warn("patch queue full, dropping frame", "session", s.ID)
	}
	s.saveSnapshot()
}

func (s *Session) saveSnapshot() {
	if s.store == nil {
		return
	}
	snap := session.Snapshot{Markup: []byte(s.Markup()), SavedAt: time.Now()}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.store.Save(ctx, s.ID, snap); err != nil {
		s.logger.Warn("snapshot save failed", "session", s.ID, "err", err)
	}
}

// Patches returns the channel of outgoing patch frames.
func (s *Session) Patches() <-chan []dom.Patch {
	return s.outCh
}

// Close tears the session down. The unmount runs on the event loop, or on
// a separate goroutine when the dispatch queue is full; either way it
// holds renderMu, so it never races a flush in progress.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	stop := func() {
		renderMu.Lock()
		veld.UnmountAtNode(s.doc.Body())
		renderMu.Unlock()
		if s.store != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.store.Delete(ctx, s.ID); err != nil {
				s.logger.Warn("snapshot delete failed", "session", s.ID, "err", err)
			}
		}
		close(s.done)
	}
	select {
	case s.dispatchCh <- stop:
	default:
		// Queue full: run the teardown off-loop rather than risk
		// re-entering renderMu on the caller's goroutine.
		go stop()
	}
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

func newSessionID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
