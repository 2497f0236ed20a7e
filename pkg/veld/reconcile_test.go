package veld_test

import (
	"testing"

	"github.com/veld-ui/veld/pkg/dom"
	"github.com/veld-ui/veld/pkg/veld"
	"github.com/veld-ui/veld/pkg/vdom"
	"github.com/veld-ui/veld/pkg/vtest"
)

func TestMountSimpleTree(t *testing.T) {
	c := vtest.NewContainer()
	vtest.MustRender(t, vdom.Div(vdom.Class("app"), vdom.Span("hi")), c)

	vtest.ExpectMarkup(t, c, `<div class="app"><span>hi</span></div>`)
	vtest.Cleanup(t, c)
}

func TestRerenderSameVNodeIsIdentical(t *testing.T) {
	doc := dom.NewDocument()
	c := doc.Body()
	v := vdom.Div(vdom.Span("stable"))
	vtest.MustRender(t, v, c)
	before := vtest.Markup(c)

	var patches []dom.Patch
	doc.SetRecorder(func(p dom.Patch) { patches = append(patches, p) })
	vtest.MustRender(t, v, c)

	if len(patches) != 0 {
		t.Errorf("re-rendering the identical vnode produced %d mutations: %v", len(patches), patches)
	}
	vtest.ExpectMarkup(t, c, before)
	vtest.Cleanup(t, c)
}

func TestRerenderEqualTreePreservesNodes(t *testing.T) {
	c := vtest.NewContainer()
	build := func(a, b string) *vdom.VNode {
		return vdom.Ul(
			vdom.Li(vdom.Key_("1"), a),
			vdom.Li(vdom.Key_("2"), b),
		)
	}
	vtest.MustRender(t, build("Item 1", "Item 2"), c)
	ul := vtest.FindTag(c, "ul")
	before := ul.ChildNodes()

	vtest.MustRender(t, build("Item 1", "Item 2"), c)
	after := ul.ChildNodes()

	if len(before) != 2 || len(after) != 2 {
		t.Fatalf("children = %d then %d, want 2", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("host node %d was replaced", i)
		}
	}
	vtest.Cleanup(t, c)
}

func TestKeyedReorderPreservesIdentity(t *testing.T) {
	c := vtest.NewContainer()
	vtest.MustRender(t, vdom.Ul(
		vdom.Li(vdom.Key_("1"), "Item 1"),
		vdom.Li(vdom.Key_("2"), "Item 2"),
	), c)

	ul := vtest.FindTag(c, "ul")
	first := ul.ChildNodes()[0]
	second := ul.ChildNodes()[1]

	vtest.MustRender(t, vdom.Ul(
		vdom.Li(vdom.Key_("2"), "Updated 2"),
		vdom.Li(vdom.Key_("1"), "Updated 1"),
	), c)

	vtest.ExpectMarkup(t, c, "<ul><li>Updated 2</li><li>Updated 1</li></ul>")
	now := ul.ChildNodes()
	if now[0] != second || now[1] != first {
		t.Error("keyed reorder should move the original host nodes, not recreate them")
	}
	vtest.Cleanup(t, c)
}

func TestTypeChangeRemounts(t *testing.T) {
	c := vtest.NewContainer()
	vtest.MustRender(t, vdom.Div(vdom.Span("a")), c)
	span := vtest.FindTag(c, "span")
	if span == nil {
		t.Fatal("no span")
	}

	vtest.MustRender(t, vdom.Div(vdom.P("a")), c)
	vtest.ExpectMarkup(t, c, "<div><p>a</p></div>")
	if vtest.FindTag(c, "span") != nil {
		t.Error("span should be gone after type change")
	}
	vtest.Cleanup(t, c)
}

func TestEmptyChildrenOccupyNoPosition(t *testing.T) {
	c := vtest.NewContainer()
	vtest.MustRender(t, vdom.Div(nil, false, "a", true, nil, "b"), c)

	vtest.ExpectMarkup(t, c, "<div>ab</div>")
	vtest.Cleanup(t, c)
}

func TestTextAndNumberInterchangeable(t *testing.T) {
	c := vtest.NewContainer()
	vtest.MustRender(t, vdom.Div("42"), c)
	div := vtest.FindTag(c, "div")
	text := div.ChildNodes()[0]

	vtest.MustRender(t, vdom.Div(42), c)
	if div.ChildNodes()[0] != text {
		t.Error("numeric child with same string representation should not remount")
	}
	vtest.ExpectMarkup(t, c, "<div>42</div>")
	vtest.Cleanup(t, c)
}

func TestFragmentRendersTransparently(t *testing.T) {
	c := vtest.NewContainer()
	vtest.MustRender(t, vdom.Div(
		vdom.H(vdom.Fragment, nil, vdom.Span("a"), vdom.Span("b")),
		vdom.Span("c"),
	), c)

	vtest.ExpectMarkup(t, c, "<div><span>a</span><span>b</span><span>c</span></div>")
	vtest.Cleanup(t, c)
}

func TestComponentWithMultipleRoots(t *testing.T) {
	c := vtest.NewContainer()
	pair := func(props vdom.Props) any {
		return []any{vdom.Span("x"), vdom.Span("y")}
	}
	vtest.MustRender(t, vdom.Div(vdom.Span("pre"), vdom.H(pair, nil), vdom.Span("post")), c)

	vtest.ExpectMarkup(t, c, "<div><span>pre</span><span>x</span><span>y</span><span>post</span></div>")
	vtest.Cleanup(t, c)
}

func TestUnmountClearsContainerAndRefs(t *testing.T) {
	c := vtest.NewContainer()
	ref := vdom.CreateRef()
	vtest.MustRender(t, vdom.Div(vdom.RefTo(ref), "content"), c)

	if ref.Current == nil {
		t.Fatal("ref should be set at mount")
	}
	if !veld.UnmountAtNode(c) {
		t.Fatal("expected a root")
	}
	if veld.UnmountAtNode(c) {
		t.Error("second unmount should report no root")
	}
	vtest.ExpectMarkup(t, c, "")
	if ref.Current != nil {
		t.Error("ref should be cleared at unmount")
	}
}

func TestRefMovesBetweenHolders(t *testing.T) {
	c := vtest.NewContainer()
	a, b := vdom.CreateRef(), vdom.CreateRef()

	vtest.MustRender(t, vdom.Div(vdom.RefTo(a)), c)
	node := a.Current
	if node == nil {
		t.Fatal("ref a should be set")
	}

	vtest.MustRender(t, vdom.Div(vdom.RefTo(b)), c)
	if a.Current != nil {
		t.Error("old ref should be cleared when the ref prop changes")
	}
	if b.Current != node {
		t.Error("new ref should point at the same host node")
	}
	vtest.Cleanup(t, c)
}

func TestInvalidChildPanics(t *testing.T) {
	c := vtest.NewContainer()
	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("expected a panic for a non-renderable child")
		}
		veld.UnmountAtNode(c)
	}()
	_ = veld.Act(func() error {
		return veld.Render(vdom.Div(struct{ x int }{1}), c)
	})
}

func TestSVGNamespacePropagates(t *testing.T) {
	c := vtest.NewContainer()
	vtest.MustRender(t, vdom.Svg(vdom.Path(vdom.A("d", "M0 0"))), c)

	svg := vtest.FindTag(c, "svg")
	if svg == nil || !svg.SVG() {
		t.Fatal("svg root should be in the SVG namespace")
	}
	path := vtest.FindTag(c, "path")
	if path == nil || !path.SVG() {
		t.Error("descendants should inherit the SVG namespace")
	}
	vtest.Cleanup(t, c)
}

func TestMixedKeyedAndUnkeyed(t *testing.T) {
	c := vtest.NewContainer()
	vtest.MustRender(t, vdom.Ul(
		vdom.Li("plain-a"),
		vdom.Li(vdom.Key_("k"), "keyed"),
		vdom.Li("plain-b"),
	), c)
	ul := vtest.FindTag(c, "ul")
	keyed := ul.ChildNodes()[1]

	vtest.MustRender(t, vdom.Ul(
		vdom.Li(vdom.Key_("k"), "keyed-2"),
		vdom.Li("plain-a"),
		vdom.Li("plain-b"),
	), c)

	if ul.ChildNodes()[0] != keyed {
		t.Error("keyed sibling should keep its host node across the reorder")
	}
	vtest.ExpectMarkup(t, c, "<ul><li>keyed-2</li><li>plain-a</li><li>plain-b</li></ul>")
	vtest.Cleanup(t, c)
}
