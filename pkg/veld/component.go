package veld

import (
	"reflect"

	"github.com/veld-ui/veld/pkg/dom"
	"github.com/veld-ui/veld/pkg/vdom"
)

// component is the reconciler-internal backing record for one rendered
// vnode position: the in-memory shadow of the host tree walked when
// diffing.
type component struct {
	root   *Root
	parent *component
	depth  int

	// vnode is the last renderable rendered at this position: a *vdom.VNode
	// or a text string.
	vnode any

	// node is the owned host node for element and text positions.
	node dom.Node

	// children are the backing components of element children or of a
	// user function's output, in order. Positions that render nothing hold
	// the shared emptyComponent.
	children []*component

	// domRoots caches the ordered top-level host nodes this component
	// contributes: one for element/text positions, a concatenation of
	// child roots for functions, fragments, and boundaries.
	domRoots []dom.Node

	hooks    *hookState
	provider *contextProvider

	// svg marks the SVG-like namespace, inherited from the parent and
	// flipped when descending through an svg tag.
	svg bool

	unmounted bool
}

// emptyComponent is the process-wide singleton standing in for any
// position that renders nothing. It is never mutated.
var emptyComponent = &component{}

func (c *component) isEmpty() bool {
	return c == emptyComponent
}

// key returns the reconciliation key of the component's vnode, or nil.
func (c *component) key() any {
	if vn, ok := c.vnode.(*vdom.VNode); ok && vn != nil {
		return vn.Key
	}
	return nil
}

// hasOwnNode reports whether the component owns a host node directly.
func (c *component) hasOwnNode() bool {
	return c.node != nil
}

// refreshDOMRoots recomputes the cached dom-roots from children and
// reports whether the list changed.
func (c *component) refreshDOMRoots() bool {
	if c.hasOwnNode() {
		return false
	}
	roots := make([]dom.Node, 0, len(c.children))
	for _, ch := range c.children {
		roots = append(roots, ch.domRoots...)
	}
	if sameNodes(c.domRoots, roots) {
		return false
	}
	c.domRoots = roots
	return true
}

// propagateDOMRoots refreshes cached dom-roots up the ancestor chain,
// stopping at the first ancestor that owns its host node.
func (c *component) propagateDOMRoots() {
	for p := c.parent; p != nil && !p.hasOwnNode(); p = p.parent {
		if !p.refreshDOMRoots() {
			return
		}
	}
}

func sameNodes(a, b []dom.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sameType reports whether old and new vnodes describe the same component
// type: equal kinds, equal tags for elements, and the same function
// identity (code pointer plus type key) for user components.
func sameType(a, b *vdom.VNode) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case vdom.KindElement:
		return a.Tag == b.Tag
	case vdom.KindComponent:
		return fnPointer(a.Fn) == fnPointer(b.Fn) && vdom.SameValue(a.TypeKey, b.TypeKey)
	}
	return true
}

func fnPointer(fn vdom.ComponentFunc) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}
