// Package vtest provides testing helpers for veld components: an
// in-memory container factory, render-and-drain wrappers, markup
// assertions, and synthetic event dispatch.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    c := vtest.NewContainer()
//	    vtest.MustRender(t, vdom.H(Counter, nil), c)
//	    vtest.Click(t, c, "button")
//	    vtest.ExpectContains(t, c, "1")
//	}
package vtest
