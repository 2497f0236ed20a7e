package veld

import (
	"github.com/veld-ui/veld/pkg/vdom"
)

// Cleanup is returned by effect bodies to undo their work. It runs before
// the next invocation of the same effect cell or at unmount. A nil Cleanup
// is allowed and means nothing to undo.
type Cleanup func()

type effectPhase uint8

const (
	phaseLayout effectPhase = iota // after DOM mutations, before yield
	phasePost                      // after the host has painted
)

// cellKind identifies the hook variant stored in a slot.
type cellKind uint8

const (
	cellState cellKind = iota + 1
	cellReducer
	cellRef
	cellMemo
	cellCallback
	cellEffect
	cellContext
)

func (k cellKind) String() string {
	switch k {
	case cellState:
		return "State"
	case cellReducer:
		return "Reducer"
	case cellRef:
		return "Ref"
	case cellMemo:
		return "Memo"
	case cellCallback:
		return "Callback"
	case cellEffect:
		return "Effect"
	case cellContext:
		return "Context"
	default:
		return "Unknown"
	}
}

// cell is one hook slot. Which fields are meaningful depends on kind.
type cell struct {
	kind cellKind

	value  any // state/reducer value, memo/callback result, ref holder
	setter any // stable setter/dispatch for state and reducer cells

	deps    []any
	phase   effectPhase
	pending func() Cleanup
	cleanup Cleanup

	provider    *contextProvider
	unsubscribe func()
}

// hookState holds a component's ordered hook slots and the cursor that
// walks them during render. It is created lazily on the first hook call
// and lives as long as the component.
type hookState struct {
	owner  *component
	cells  []*cell
	cursor int
}

// currentOwner is the process-global handle through which hook accessors
// reach their component's hook state. It is installed around each user
// function invocation and restored on all exit paths; it is the only piece
// of process-wide mutable state the core owns. The scheduling model is
// single-threaded cooperative.
var currentOwner *component

// useCell advances the cursor and returns the slot at that index, creating
// it on first render. The hook state itself is created lazily on the first
// hook call and lives as long as the component. The second result is true
// when the cell was just created.
func useCell(kind cellKind) (*cell, bool) {
	owner := currentOwner
	if owner == nil {
		panic(errHookOutside)
	}
	if owner.hooks == nil {
		owner.hooks = &hookState{owner: owner}
	}
	hs := owner.hooks
	if hs.cursor < len(hs.cells) {
		c := hs.cells[hs.cursor]
		if c.kind != kind {
			panic(errHookMismatch)
		}
		hs.cursor++
		return c, false
	}
	c := &cell{kind: kind}
	hs.cells = append(hs.cells, c)
	hs.cursor++
	return c, true
}

// StateHandle updates a state cell. Both Set and Update always schedule a
// re-render for the owning component, even when the value is unchanged.
type StateHandle[T any] struct {
	cell  *cell
	owner *component
}

// Set stores v and schedules an update.
func (h StateHandle[T]) Set(v T) {
	h.cell.value = v
	h.owner.root.scheduleUpdate(h.owner)
}

// Update applies fn to the current value and schedules an update.
func (h StateHandle[T]) Update(fn func(T) T) {
	h.cell.value = fn(h.cell.value.(T))
	h.owner.root.scheduleUpdate(h.owner)
}

// UseState declares a state cell holding initial on first render. It
// returns the current value and a stable handle for updating it.
func UseState[T any](initial T) (T, StateHandle[T]) {
	return UseStateInit(func() T { return initial })
}

// UseStateInit is UseState with a lazy initializer, run once on first
// render.
func UseStateInit[T any](init func() T) (T, StateHandle[T]) {
	c, first := useCell(cellState)
	if first {
		c.value = init()
		c.setter = StateHandle[T]{cell: c, owner: currentOwner}
	}
	h, ok := c.setter.(StateHandle[T])
	if !ok {
		panic(errHookMismatch)
	}
	return c.value.(T), h
}

// UseReducer declares a reducer cell. Dispatch applies the reducer and
// schedules an update only when the result differs from the current value.
func UseReducer[S, A any](reducer func(S, A) S, initial S) (S, func(A)) {
	return UseReducerInit(reducer, initial, func(s S) S { return s })
}

// UseReducerInit is UseReducer with an initializer applied to initialArg
// on first render.
func UseReducerInit[S, I, A any](reducer func(S, A) S, initialArg I, init func(I) S) (S, func(A)) {
	c, first := useCell(cellReducer)
	if first {
		c.value = init(initialArg)
		owner := currentOwner
		c.setter = func(action A) {
			old := c.value.(S)
			next := reducer(old, action)
			if vdom.SameValue(old, next) {
				return
			}
			c.value = next
			owner.root.scheduleUpdate(owner)
		}
	}
	dispatch, ok := c.setter.(func(A))
	if !ok {
		panic(errHookMismatch)
	}
	return c.value.(S), dispatch
}

// UseRef declares a ref cell: a stable mutable holder that never triggers
// updates. The returned identity is preserved across renders.
func UseRef(initial any) *vdom.Ref {
	c, first := useCell(cellRef)
	if first {
		c.value = &vdom.Ref{Current: initial}
	}
	return c.value.(*vdom.Ref)
}

// UseMemo recomputes fn only when deps change. A nil deps list recomputes
// on every render.
func UseMemo[T any](fn func() T, deps []any) T {
	c, first := useCell(cellMemo)
	if first || !vdom.DepsEqual(c.deps, deps) {
		c.value = fn()
		c.deps = deps
	}
	return c.value.(T)
}

// UseCallback memoizes fn itself until deps change, preserving its
// identity for ShallowEqual prop comparison.
func UseCallback[F any](fn F, deps []any) F {
	c, first := useCell(cellCallback)
	if first || !vdom.DepsEqual(c.deps, deps) {
		c.value = fn
		c.deps = deps
	}
	return c.value.(F)
}

// UseEffect schedules fn to run after the host has painted. With nil deps
// the effect re-runs after every render; with an empty non-nil deps list
// it runs exactly once. The previous cleanup runs before each re-run and
// at unmount.
func UseEffect(fn func() Cleanup, deps []any) {
	useEffect(fn, deps, phasePost)
}

// UseLayoutEffect is UseEffect with the layout phase: the body runs after
// the DOM mutations of the current flush and before the scheduler yields.
func UseLayoutEffect(fn func() Cleanup, deps []any) {
	useEffect(fn, deps, phaseLayout)
}

func useEffect(fn func() Cleanup, deps []any, phase effectPhase) {
	c, first := useCell(cellEffect)
	owner := currentOwner
	if first {
		c.phase = phase
		c.deps = deps
		c.pending = fn
		owner.root.enqueueEffect(owner, phase)
		return
	}
	if vdom.DepsEqual(c.deps, deps) {
		return
	}
	if c.cleanup != nil {
		c.cleanup()
		c.cleanup = nil
	}
	c.deps = deps
	c.pending = fn
	owner.root.enqueueEffect(owner, phase)
}
