// Package veld is the reconciler core: it diffs immutable vnode trees
// against the previously rendered tree for a container and issues the
// minimum host mutations needed to match, owns the per-component hook
// machinery (state, memoization, effects, context subscription), and
// schedules batched updates and deferred effects per root.
//
// Rendering is single-threaded cooperative: one render is in flight per
// root at a time, diffs are synchronous from enter to exit, and hand-off
// happens only between flushes. State setters may be called from event
// handlers and effects; the root batches them and re-renders each
// component at most once per flush, parents before descendants.
//
// By default a root defers nothing: work a setter schedules drains on the
// calling goroutine before the call returns, the same model Act uses.
// Asynchronous flushing is opt-in via SetScheduler, and the installed
// Scheduler must serialize its callbacks with every other reconciler
// entry — LoopScheduler does so when callers go through Do, and a
// mutex-guarded event loop (the live-session server) works the same way.
//
// Use Render/UnmountAtNode against a dom.Element container, the Use*
// hooks inside component functions, CreateContext/UseContext for
// tree-scoped values, vdom.ErrorBoundary to intercept descendant
// failures, and Act in tests to drain all queues synchronously.
package veld
