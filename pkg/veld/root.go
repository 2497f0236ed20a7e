package veld

import (
	"sort"
	"sync"

	"github.com/veld-ui/veld/pkg/dom"
	"github.com/veld-ui/veld/pkg/vdom"
)

// queue is an ordered set of components. Insertion order is preserved;
// membership is O(1).
type queue struct {
	items []*component
	set   map[*component]bool
}

func newQueue() *queue {
	return &queue{set: make(map[*component]bool)}
}

func (q *queue) add(c *component) {
	if q.set[c] {
		return
	}
	q.set[c] = true
	q.items = append(q.items, c)
}

func (q *queue) has(c *component) bool {
	return q.set[c]
}

func (q *queue) remove(c *component) {
	if !q.set[c] {
		return
	}
	delete(q.set, c)
	for i, it := range q.items {
		if it == c {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

func (q *queue) empty() bool {
	return len(q.items) == 0
}

// takeAll drains the queue in insertion order.
func (q *queue) takeAll() []*component {
	out := q.items
	q.items = nil
	q.set = make(map[*component]bool)
	return out
}

// sortedByDepth returns a snapshot sorted closest-to-root first without
// draining.
func (q *queue) sortedByDepth() []*component {
	out := make([]*component, len(q.items))
	copy(out, q.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].depth < out[j].depth })
	return out
}

func (q *queue) clear() {
	q.items = nil
	q.set = make(map[*component]bool)
}

// Root owns everything rendered into one container: the backing component
// tree, the pending update and effect queues, and the in-flight error
// record. Repeated renders into the same container reuse its Root.
type Root struct {
	container dom.Element
	doc       dom.Document
	base      *component

	updates *queue
	layouts *queue
	effects *queue

	// err is the first unhandled user-code error of the current activity.
	err error

	// sched, when installed, receives deferred update and effect flushes.
	// Without one the root is fully synchronous: scheduled work drains on
	// the calling goroutine before the triggering call returns.
	sched           Scheduler
	updateScheduled bool
	effectScheduled bool

	// active counts reconciler activities in flight on this root, so a
	// setter fired during a render or flush queues for the running drain
	// instead of re-entering it.
	active int

	// onAsyncError receives unhandled errors with no caller to return to:
	// deferred flushes and teardown cleanups. The default panics.
	onAsyncError func(error)
}

var (
	rootsMu sync.Mutex
	roots   = make(map[dom.Element]*Root)
)

// RootOf returns the root mounted at container, or nil.
func RootOf(container dom.Element) *Root {
	rootsMu.Lock()
	defer rootsMu.Unlock()
	return roots[container]
}

func rootFor(container dom.Element) *Root {
	rootsMu.Lock()
	defer rootsMu.Unlock()
	if r, ok := roots[container]; ok {
		return r
	}
	r := &Root{
		container: container,
		doc:       container.OwnerDocument(),
		updates:   newQueue(),
		layouts:   newQueue(),
		effects:   newQueue(),
	}
	r.onAsyncError = func(err error) { panic(err) }
	roots[container] = r
	return r
}

func snapshotRoots() []*Root {
	rootsMu.Lock()
	defer rootsMu.Unlock()
	out := make([]*Root, 0, len(roots))
	for _, r := range roots {
		out = append(out, r)
	}
	return out
}

// Render mounts vnode into container, or diffs it against the previous
// render for the same container. Layout effects run before Render
// returns. With a Scheduler installed, post-commit effects are deferred
// until after the host has had a chance to paint; without one they drain
// before Render returns, as under Act. An unhandled user-code error
// unmounts the tree and is returned.
func Render(vnode *vdom.VNode, container dom.Element) error {
	return rootFor(container).Render(vnode)
}

// Render diffs vnode against this root's tree.
func (r *Root) Render(vnode *vdom.VNode) error {
	return r.runActivity(func() {
		r.protect(func() {
			next := normalizeChild(vnode)
			r.base = r.diff(nil, r.base, next, r.container, nil)
		})
		r.flushLayoutEffects()
		switch {
		case actDepth > 0:
			// The act drain picks up everything else.
		case r.sched == nil:
			r.drainQueues()
		default:
			// Render-time updates were already handed to the scheduler.
			r.kickEffects()
		}
	})
}

// runActivity brackets one top-level reconciler activity: work scheduled
// while it runs queues for the same drain, and the in-flight error record
// resolves when it ends.
func (r *Root) runActivity(fn func()) error {
	r.active++
	defer func() { r.active-- }()
	fn()
	return r.finish()
}

// drainQueues flushes until no queued work remains: updates with their
// layout effects, then post-commit effects, repeating for work the
// effects themselves schedule.
func (r *Root) drainQueues() {
	for !r.updates.empty() || !r.layouts.empty() || !r.effects.empty() {
		r.flushUpdatesAndLayout()
		r.flushPostEffects()
	}
}

// UnmountAtNode destroys the tree rendered into container and forgets its
// root. It reports whether a root existed.
func UnmountAtNode(container dom.Element) bool {
	rootsMu.Lock()
	r := roots[container]
	delete(roots, container)
	rootsMu.Unlock()
	if r == nil {
		return false
	}
	if r.base != nil && !r.base.isEmpty() {
		r.unmount(r.base, true)
	}
	r.base = nil
	r.updates.clear()
	r.layouts.clear()
	r.effects.clear()
	// A cleanup error no boundary caught has no caller to return to here;
	// it goes to the async-error sink like any other orphaned error.
	if err := r.err; err != nil {
		r.err = nil
		r.onAsyncError(err)
	}
	return true
}

// Container returns the host element this root renders into.
func (r *Root) Container() dom.Element {
	return r.container
}

// Base returns the last renderable diffed at the root position, for
// test-library use.
func (r *Root) Base() any {
	if r.base == nil || r.base.isEmpty() {
		return nil
	}
	return r.base.vnode
}

// OnAsyncError installs a sink for unhandled errors that have no caller
// to return to: deferred flushes and unmount-time cleanups. Without one,
// such errors panic.
func (r *Root) OnAsyncError(fn func(error)) {
	r.onAsyncError = fn
}

// SetScheduler installs a deferred-flush scheduler, switching the root
// from synchronous draining to asynchronous flushing. The scheduler must
// serialize its callbacks with every other use of the reconciler: enter
// through LoopScheduler.Do, or a mutex-guarded event loop as live
// sessions do.
func (r *Root) SetScheduler(s Scheduler) {
	r.sched = s
}

// scheduleUpdate queues a re-render for c. Under Act or inside a running
// activity the drain in progress picks it up; with a scheduler installed
// the first entry into an empty queue arranges a deferred flush; plain
// synchronous roots drain immediately before the setter returns.
func (r *Root) scheduleUpdate(c *component) {
	if c.unmounted {
		return
	}
	r.updates.add(c)
	if actDepth > 0 {
		return
	}
	if r.sched != nil {
		if r.updateScheduled {
			return
		}
		r.updateScheduled = true
		r.sched.Defer(func() {
			r.updateScheduled = false
			err := r.runActivity(func() {
				r.flushUpdatesAndLayout()
				r.kickEffects()
			})
			if err != nil {
				r.onAsyncError(err)
			}
		})
		return
	}
	if r.active > 0 {
		return
	}
	if err := r.runActivity(r.drainQueues); err != nil {
		r.onAsyncError(err)
	}
}

// enqueueEffect queues an effect flush for c in the given phase. Layout
// effects are never scheduled asynchronously: they drain at the end of
// each render and of each update-flush iteration.
func (r *Root) enqueueEffect(c *component, phase effectPhase) {
	if c.unmounted {
		return
	}
	if phase == phaseLayout {
		r.layouts.add(c)
		return
	}
	r.effects.add(c)
}

// kickEffects arranges the deferred post-commit flush on the installed
// scheduler, using its after-paint mechanism. Synchronous roots never get
// here with work pending; drainQueues runs their effects directly.
func (r *Root) kickEffects() {
	if r.effects.empty() || actDepth > 0 || r.sched == nil || r.effectScheduled {
		return
	}
	r.effectScheduled = true
	r.sched.AfterFrame(func() {
		r.effectScheduled = false
		err := r.runActivity(func() {
			r.flushPostEffects()
		})
		if err != nil {
			r.onAsyncError(err)
		}
	})
}

// Flush drains the root mounted at container. It returns ErrNoRoot when
// nothing was rendered there.
func Flush(container dom.Element) error {
	r := RootOf(container)
	if r == nil {
		return ErrNoRoot
	}
	return r.Flush()
}

// Flush synchronously drains every queue on this root: updates, layout
// effects, then post-commit effects, until nothing remains. Exposed for
// test-library and event-loop use.
func (r *Root) Flush() error {
	return r.runActivity(r.drainQueues)
}

// flushUpdatesAndLayout drains the update queue. Each iteration processes
// the pending set closest-to-root first, so a descendant queued under a
// re-rendering ancestor is handled by the ancestor's diff and dequeued
// rather than re-rendered twice. Updates scheduled while flushing extend
// the same drain. Layout effects flush after each iteration.
func (r *Root) flushUpdatesAndLayout() {
	for !r.updates.empty() || !r.layouts.empty() {
		pending := r.updates.sortedByDepth()
		for _, c := range pending {
			if c.unmounted || !r.updates.has(c) {
				continue
			}
			func() {
				defer func() {
					if rec := recover(); rec != nil {
						// Never retry a component whose render failed.
						r.updates.remove(c)
						if isProgramming(rec) {
							panic(rec)
						}
						if r.err == nil {
							r.err = toError(rec)
						}
					}
				}()
				r.rerender(c)
			}()
		}
		r.flushLayoutEffects()
	}
}

// rerender re-diffs a component against its last vnode in place.
func (r *Root) rerender(c *component) {
	hostParent, insertAfter := r.insertionPoint(c)
	r.diff(c.parent, c, c.vnode, hostParent, insertAfter)
}

// insertionPoint locates where a component's dom-roots belong: the host
// parent is the nearest ancestor with its own host node (or the
// container), and insertAfter is the last host node contributed by an
// earlier sibling on the way up.
func (r *Root) insertionPoint(c *component) (dom.Element, dom.Node) {
	var after dom.Node
	cur := c
	for p := c.parent; p != nil; cur, p = p, p.parent {
		if after == nil {
			idx := -1
			for i, ch := range p.children {
				if ch == cur {
					idx = i
					break
				}
			}
			for i := idx - 1; i >= 0; i-- {
				if roots := p.children[i].domRoots; len(roots) > 0 {
					after = roots[len(roots)-1]
					break
				}
			}
		}
		if p.hasOwnNode() {
			return p.node.(dom.Element), after
		}
	}
	return r.container, after
}

func (r *Root) flushLayoutEffects() {
	r.flushEffectQueue(r.layouts, phaseLayout)
}

func (r *Root) flushPostEffects() {
	r.flushEffectQueue(r.effects, phasePost)
}

// flushEffectQueue drains one effect queue in insertion order. A failing
// effect is reported through the boundary walk and does not stop the
// remaining effects.
func (r *Root) flushEffectQueue(q *queue, phase effectPhase) {
	for !q.empty() {
		batch := q.takeAll()
		for _, c := range batch {
			if c.unmounted {
				continue
			}
			r.runEffects(c, phase)
		}
	}
}

func (r *Root) runEffects(c *component, phase effectPhase) {
	if c.hooks == nil {
		return
	}
	for _, cl := range c.hooks.cells {
		if cl.kind != cellEffect || cl.phase != phase || cl.pending == nil {
			continue
		}
		fn := cl.pending
		cl.pending = nil
		r.safeCall(c, func() {
			cl.cleanup = fn()
		})
	}
}

// dequeue drops a component from every root queue.
func (r *Root) dequeue(c *component) {
	r.updates.remove(c)
	r.layouts.remove(c)
	r.effects.remove(c)
}

// hasPendingWork reports whether any queue or error remains outstanding.
func (r *Root) hasPendingWork() bool {
	return !r.updates.empty() || !r.layouts.empty() || !r.effects.empty() || r.err != nil
}

// protect runs fn, recording the first unhandled user-code panic on the
// root. Programming errors escape.
func (r *Root) protect(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			if isProgramming(rec) {
				panic(rec)
			}
			if r.err == nil {
				r.err = toError(rec)
			}
		}
	}()
	fn()
}

// finish resolves the current activity: when an unhandled error was
// recorded, the root unmounts its tree and the error is handed back to
// the caller.
func (r *Root) finish() error {
	if r.err == nil {
		return nil
	}
	err := r.err
	if r.base != nil && !r.base.isEmpty() {
		r.unmount(r.base, true)
	}
	r.base = nil
	r.updates.clear()
	r.layouts.clear()
	r.effects.clear()
	r.err = nil
	return err
}
