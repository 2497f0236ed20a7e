package veld

import "github.com/veld-ui/veld/pkg/vdom"

// memoCache remembers the last props/output pair of a memoized component.
type memoCache struct {
	props vdom.Props
	out   any
}

// Memo wraps a component so its re-render is skipped when the new props
// are ShallowEqual to the previous call's props. The skip works by
// returning the previous output verbatim, which the reconciler's
// referential-equality fast path leaves untouched.
//
// Each Memo call yields a distinct component type; use it once per
// component, not per render.
func Memo(fn vdom.ComponentFunc) *vdom.ComponentType {
	wrapped := func(props vdom.Props) any {
		ref := UseRef(nil)
		if st, ok := ref.Current.(*memoCache); ok && vdom.ShallowEqual(st.props, props) {
			return st.out
		}
		out := fn(props)
		ref.Current = &memoCache{props: props, out: out}
		return out
	}
	mt := &vdom.ComponentType{Fn: wrapped}
	mt.Key = mt
	return mt
}
