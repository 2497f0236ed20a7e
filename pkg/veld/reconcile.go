package veld

import (
	"github.com/veld-ui/veld/pkg/dom"
	"github.com/veld-ui/veld/pkg/vdom"
)

// normalizeChild canonicalizes renderable content to one of three shapes:
// nil (renders nothing), a text string, or a *vdom.VNode. Anything else is
// a programming error.
func normalizeChild(c any) any {
	switch v := c.(type) {
	case nil:
		return nil
	case bool:
		return nil
	case *vdom.VNode:
		if v == nil {
			return nil
		}
		if v.Kind == vdom.KindText {
			return v.Text
		}
		return v
	case string:
		return v
	}
	if s, ok := vdom.TextOf(c); ok {
		return s
	}
	panic(errInvalidChild)
}

func normalizeList(flat []any) []any {
	out := make([]any, len(flat))
	for i, c := range flat {
		out[i] = normalizeChild(c)
	}
	return out
}

// childList extracts and normalizes a vnode's children.
func childList(vn *vdom.VNode) []any {
	kids, ok := vn.Props["children"]
	if !ok {
		return nil
	}
	return normalizeList(vdom.FlattenChildren(kids))
}

func keyOfRenderable(c any) any {
	if vn, ok := c.(*vdom.VNode); ok && vn != nil {
		return vn.Key
	}
	return nil
}

// diff reconciles one position: existing is the component previously
// rendered there (nil or the empty singleton for none), next is the
// normalized renderable now requested. Fresh subtrees are attached to
// hostParent after insertAfter.
func (r *Root) diff(parent, existing *component, next any, hostParent dom.Element, insertAfter dom.Node) *component {
	if next == nil {
		if existing != nil && !existing.isEmpty() {
			r.unmount(existing, true)
		}
		return emptyComponent
	}

	if existing != nil && !existing.isEmpty() {
		// Referential equality on immutable vnodes is the memoization fast
		// path. A pending update still forces the re-render.
		if existing.vnode == next && !r.updates.has(existing) {
			return existing
		}
		if matched := r.diffSame(existing, next, hostParent, insertAfter); matched != nil {
			return matched
		}
		// Type changed: unmount and remount in place.
		r.unmount(existing, true)
	}

	c := r.mount(parent, next, hostParent, insertAfter)
	for _, n := range c.domRoots {
		hostParent.InsertAfter(n, insertAfter)
		insertAfter = n
	}
	return c
}

// diffSame updates an existing component when old and new renderables have
// matching types. It returns nil on a type mismatch.
func (r *Root) diffSame(c *component, next any, hostParent dom.Element, insertAfter dom.Node) *component {
	switch nv := next.(type) {
	case string:
		t, ok := c.node.(dom.TextNode)
		if !ok {
			return nil
		}
		t.SetData(nv)
		c.vnode = next
		return c

	case *vdom.VNode:
		old, ok := c.vnode.(*vdom.VNode)
		if !ok || !sameType(old, nv) {
			return nil
		}
		switch nv.Kind {
		case vdom.KindElement:
			el := c.node.(dom.Element)
			el.ApplyProps(old.Props, nv.Props)
			r.updateRef(c, old, nv)
			c.vnode = nv
			r.diffChildren(c, childList(nv), el, nil)

		case vdom.KindFragment:
			c.vnode = nv
			r.diffChildren(c, childList(nv), hostParent, insertAfter)
			if c.refreshDOMRoots() {
				c.propagateDOMRoots()
			}

		case vdom.KindBoundary:
			c.vnode = nv
			r.runBoundary(c, func() {
				r.diffChildren(c, childList(nv), hostParent, insertAfter)
			})
			if c.refreshDOMRoots() {
				c.propagateDOMRoots()
			}

		case vdom.KindComponent:
			c.vnode = nv
			// Dequeue before invoking so a setter fired during render
			// re-queues for the same drain instead of being dropped.
			r.updates.remove(c)
			out := r.invoke(c, nv)
			r.diffChildren(c, normalizeList(vdom.FlattenChildren(out)), hostParent, insertAfter)
			if c.refreshDOMRoots() {
				c.propagateDOMRoots()
			}
		}
		return c
	}
	return nil
}

// mount renders a fresh subtree for a normalized renderable.
func (r *Root) mount(parent *component, next any, hostParent dom.Element, insertAfter dom.Node) *component {
	c := &component{root: r, parent: parent}
	if parent != nil {
		c.depth = parent.depth + 1
		c.svg = parent.svg
	}
	c.vnode = next

	switch nv := next.(type) {
	case string:
		t := r.doc.CreateText(nv)
		c.node = t
		c.domRoots = []dom.Node{t}

	case *vdom.VNode:
		switch nv.Kind {
		case vdom.KindElement:
			if nv.Tag == "svg" {
				c.svg = true
			}
			el := r.doc.CreateElement(nv.Tag, c.svg)
			c.node = el
			c.domRoots = []dom.Node{el}
			el.ApplyProps(nil, nv.Props)
			if ref, ok := nv.Props["ref"].(*vdom.Ref); ok {
				ref.Current = el
			}
			r.diffChildren(c, childList(nv), el, nil)

		case vdom.KindFragment:
			r.diffChildren(c, childList(nv), hostParent, insertAfter)
			c.refreshDOMRoots()

		case vdom.KindBoundary:
			r.runBoundary(c, func() {
				r.diffChildren(c, childList(nv), hostParent, insertAfter)
			})
			c.refreshDOMRoots()

		case vdom.KindComponent:
			out := r.invoke(c, nv)
			r.diffChildren(c, normalizeList(vdom.FlattenChildren(out)), hostParent, insertAfter)
			c.refreshDOMRoots()
		}
	}
	return c
}

// diffChildren matches new children against the previous sibling
// components by key: keyed entries match the first unmatched previous
// sibling with an equal key, unkeyed entries match the first unmatched
// unkeyed one. Unmatched previous siblings unmount afterwards.
func (r *Root) diffChildren(c *component, next []any, hostParent dom.Element, insertAfter dom.Node) {
	prev := c.children
	matched := make([]bool, len(prev))
	out := make([]*component, 0, len(next))

	done := false
	defer func() {
		if done {
			return
		}
		// A child render panicked mid-list. Keep what mounted plus the
		// still-live unmatched previous siblings so a later render (after
		// a boundary handled the error) can still reconcile them.
		for i, p := range prev {
			if !matched[i] && !p.isEmpty() {
				out = append(out, p)
			}
		}
		c.children = out
	}()

	for _, n := range next {
		if n == nil {
			out = append(out, emptyComponent)
			continue
		}
		key := keyOfRenderable(n)
		var ex *component
		for i, p := range prev {
			if matched[i] || p.isEmpty() {
				continue
			}
			if vdom.SameValue(p.key(), key) {
				matched[i] = true
				ex = p
				break
			}
		}
		ch := r.diff(c, ex, n, hostParent, insertAfter)
		for _, nd := range ch.domRoots {
			hostParent.InsertAfter(nd, insertAfter)
			insertAfter = nd
		}
		out = append(out, ch)
	}

	for i, p := range prev {
		if !matched[i] && !p.isEmpty() {
			r.unmount(p, true)
		}
	}
	c.children = out
	done = true
}

// invoke runs a user function under the component's hook state, installing
// the process-global owner handle around the call and restoring it on all
// exit paths.
func (r *Root) invoke(c *component, vn *vdom.VNode) any {
	if c.hooks != nil {
		c.hooks.cursor = 0
	}
	prevOwner := currentOwner
	currentOwner = c
	defer func() {
		currentOwner = prevOwner
	}()
	return vn.Fn(vn.Props)
}

// updateRef moves a ref between holders when the ref prop changed.
func (r *Root) updateRef(c *component, old, next *vdom.VNode) {
	oldRef, _ := old.Props["ref"].(*vdom.Ref)
	newRef, _ := next.Props["ref"].(*vdom.Ref)
	if oldRef == newRef {
		return
	}
	if oldRef != nil && oldRef.Current == c.node {
		oldRef.Current = nil
	}
	if newRef != nil {
		newRef.Current = c.node
	}
}

// boundaryHandler returns the handler prop of a boundary component, or nil.
func boundaryHandler(c *component) func(error) {
	vn, ok := c.vnode.(*vdom.VNode)
	if !ok || vn.Kind != vdom.KindBoundary {
		return nil
	}
	h, _ := vn.Props["handler"].(func(error))
	return h
}

// runBoundary executes fn and intercepts user-code panics for the
// boundary component c. A handler panic replaces the original error and
// continues the walk at the boundary's parent. Programming errors always
// escape.
func (r *Root) runBoundary(c *component, fn func()) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if isProgramming(rec) {
			panic(rec)
		}
		err := toError(rec)
		h := boundaryHandler(c)
		if h == nil {
			panic(err)
		}
		if herr := callHandler(h, err); herr != nil {
			panic(herr)
		}
	}()
	fn()
}

// callHandler invokes a boundary handler, converting a handler panic into
// the replacement error.
func callHandler(h func(error), err error) (out error) {
	defer func() {
		if rec := recover(); rec != nil {
			if isProgramming(rec) {
				panic(rec)
			}
			out = toError(rec)
		}
	}()
	h(err)
	return nil
}

// routeError walks ancestors from c for the nearest boundary to handle an
// error raised outside render (effect bodies and cleanups). Unhandled
// errors are recorded on the root; only the first one is kept.
func (r *Root) routeError(c *component, err error) {
	e := err
	for p := c; p != nil; p = p.parent {
		h := boundaryHandler(p)
		if h == nil {
			continue
		}
		if herr := callHandler(h, e); herr != nil {
			e = herr
			continue
		}
		return
	}
	if r.err == nil {
		r.err = e
	}
}

// safeCall runs fn, routing user-code panics through the boundary walk.
func (r *Root) safeCall(c *component, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			if isProgramming(rec) {
				panic(rec)
			}
			r.routeError(c, toError(rec))
		}
	}()
	fn()
}

// unmount destroys a component and its descendants: hook cleanups in
// reverse insertion order, ref clearing, host removal, and queue removal.
// removeDOM is false when an ancestor's host node is being removed in the
// same pass.
func (r *Root) unmount(c *component, removeDOM bool) {
	if c == nil || c.isEmpty() || c.unmounted {
		return
	}
	c.unmounted = true

	childRemove := removeDOM && !c.hasOwnNode()
	for _, ch := range c.children {
		r.unmount(ch, childRemove)
	}

	if c.hooks != nil {
		for i := len(c.hooks.cells) - 1; i >= 0; i-- {
			cl := c.hooks.cells[i]
			switch cl.kind {
			case cellEffect:
				cl.pending = nil
				if cl.cleanup != nil {
					cleanup := cl.cleanup
					cl.cleanup = nil
					r.safeCall(c, cleanup)
				}
			case cellContext:
				if cl.unsubscribe != nil {
					cl.unsubscribe()
					cl.unsubscribe = nil
				}
			}
		}
	}

	if vn, ok := c.vnode.(*vdom.VNode); ok && c.node != nil {
		if ref, ok := vn.Props["ref"].(*vdom.Ref); ok && ref.Current == c.node {
			ref.Current = nil
		}
	}

	if removeDOM {
		for _, n := range c.domRoots {
			if p := n.Parent(); p != nil {
				p.RemoveChild(n)
			}
		}
	}

	r.dequeue(c)
}
