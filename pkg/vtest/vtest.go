package vtest

import (
	"strings"
	"testing"

	"github.com/veld-ui/veld/pkg/dom"
	"github.com/veld-ui/veld/pkg/veld"
	"github.com/veld-ui/veld/pkg/vdom"
)

// NewContainer creates a fresh in-memory document and returns its body as
// the render container.
func NewContainer() *dom.MemoryElement {
	return dom.NewDocument().Body()
}

// MustRender renders vnode into container inside an Act drain and fails
// the test on error.
func MustRender(t *testing.T, vnode *vdom.VNode, container dom.Element) {
	t.Helper()
	err := veld.Act(func() error {
		return veld.Render(vnode, container)
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
}

// Markup returns the container's serialized children.
func Markup(container dom.Element) string {
	return container.InnerHTML()
}

// ExpectMarkup asserts the container's exact markup.
func ExpectMarkup(t *testing.T, container dom.Element, want string) {
	t.Helper()
	if got := container.InnerHTML(); got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
}

// ExpectContains asserts the markup contains the substring.
func ExpectContains(t *testing.T, container dom.Element, want string) {
	t.Helper()
	if got := container.InnerHTML(); !strings.Contains(got, want) {
		t.Errorf("markup %q does not contain %q", got, want)
	}
}

// ExpectNotContains asserts the markup does not contain the substring.
func ExpectNotContains(t *testing.T, container dom.Element, unwanted string) {
	t.Helper()
	if got := container.InnerHTML(); strings.Contains(got, unwanted) {
		t.Errorf("markup %q should not contain %q", got, unwanted)
	}
}

// FindTag returns the first element with the given tag in depth-first
// order, or nil.
func FindTag(container dom.Element, tag string) *dom.MemoryElement {
	root, ok := container.(*dom.MemoryElement)
	if !ok {
		return nil
	}
	return findTag(root, tag)
}

func findTag(e *dom.MemoryElement, tag string) *dom.MemoryElement {
	for _, c := range e.ChildNodes() {
		el, ok := c.(*dom.MemoryElement)
		if !ok {
			continue
		}
		if el.Tag() == tag {
			return el
		}
		if found := findTag(el, tag); found != nil {
			return found
		}
	}
	return nil
}

// Click fires a click event on the first element with the given tag and
// drains all queues.
func Click(t *testing.T, container dom.Element, tag string) {
	t.Helper()
	FireEvent(t, container, tag, "click", "")
}

// FireEvent fires an event on the first element with the given tag inside
// an Act drain.
func FireEvent(t *testing.T, container dom.Element, tag, event, value string) {
	t.Helper()
	el := FindTag(container, tag)
	if el == nil {
		t.Fatalf("no <%s> element found in %q", tag, container.InnerHTML())
	}
	err := veld.Act(func() error {
		if !el.Fire(event, value) {
			t.Fatalf("no %q handler on <%s>", event, tag)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("event %q failed: %v", event, err)
	}
}

// Cleanup unmounts the container's root and fails the test if none
// existed.
func Cleanup(t *testing.T, container dom.Element) {
	t.Helper()
	if !veld.UnmountAtNode(container) {
		t.Fatal("no root mounted at container")
	}
}
