package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/veld-ui/veld/pkg/vdom"
)

func TestApplyPropsSetsAttributes(t *testing.T) {
	d := NewDocument()
	e := d.CreateElement("div", false).(*MemoryElement)

	e.ApplyProps(nil, vdom.Props{"class": "box", "id": "main"})

	if got, _ := e.Attr("class"); got != "box" {
		t.Errorf("class = %q, want box", got)
	}
	if got, _ := e.Attr("id"); got != "main" {
		t.Errorf("id = %q, want main", got)
	}
}

func TestApplyPropsRemovesStale(t *testing.T) {
	d := NewDocument()
	e := d.CreateElement("div", false).(*MemoryElement)

	prev := vdom.Props{"class": "a", "title": "t"}
	e.ApplyProps(nil, prev)
	e.ApplyProps(prev, vdom.Props{"class": "b"})

	if got, _ := e.Attr("class"); got != "b" {
		t.Errorf("class = %q, want b", got)
	}
	if _, ok := e.Attr("title"); ok {
		t.Error("title should have been removed")
	}
}

func TestApplyPropsIdempotent(t *testing.T) {
	d := NewDocument()
	e := d.CreateElement("div", false).(*MemoryElement)
	props := vdom.Props{"class": "a"}
	e.ApplyProps(nil, props)

	var patches []Patch
	d.SetRecorder(func(p Patch) { patches = append(patches, p) })
	e.ApplyProps(props, vdom.Props{"class": "a"})

	if len(patches) != 0 {
		t.Errorf("unchanged props produced %d patches: %v", len(patches), patches)
	}
}

func TestApplyPropsBooleans(t *testing.T) {
	d := NewDocument()
	e := d.CreateElement("input", false).(*MemoryElement)

	e.ApplyProps(nil, vdom.Props{"disabled": true})
	if _, ok := e.Attr("disabled"); !ok {
		t.Error("disabled should be present")
	}

	e.ApplyProps(vdom.Props{"disabled": true}, vdom.Props{"disabled": false})
	if _, ok := e.Attr("disabled"); ok {
		t.Error("disabled should be removed when false")
	}
}

func TestApplyPropsEventHandlers(t *testing.T) {
	d := NewDocument()
	e := d.CreateElement("button", false).(*MemoryElement)

	clicks := 0
	e.ApplyProps(nil, vdom.Props{"onclick": func() { clicks++ }})

	if !e.Fire("click", "") {
		t.Fatal("expected a click handler")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if _, ok := e.Attr("onclick"); ok {
		t.Error("handlers must not become attributes")
	}
}

func TestInsertAfterOrdering(t *testing.T) {
	d := NewDocument()
	parent := d.CreateElement("ul", false).(*MemoryElement)
	a := d.CreateElement("li", false)
	b := d.CreateElement("li", false)
	c := d.CreateElement("li", false)

	parent.InsertAfter(a, nil)
	parent.InsertAfter(b, a)
	parent.InsertAfter(c, a)

	got := parent.ChildNodes()
	want := []Node{a, c, b}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("children order wrong: got %v", got)
	}
}

func TestInsertAfterInPlaceIsNoOp(t *testing.T) {
	d := NewDocument()
	parent := d.CreateElement("ul", false).(*MemoryElement)
	a := d.CreateElement("li", false)
	b := d.CreateElement("li", false)
	parent.InsertAfter(a, nil)
	parent.InsertAfter(b, a)

	var patches []Patch
	d.SetRecorder(func(p Patch) { patches = append(patches, p) })
	parent.InsertAfter(a, nil)
	parent.InsertAfter(b, a)

	if len(patches) != 0 {
		t.Errorf("in-place inserts produced patches: %v", patches)
	}
}

func TestInsertAfterRecordsMove(t *testing.T) {
	d := NewDocument()
	parent := d.CreateElement("ul", false).(*MemoryElement)
	a := d.CreateElement("li", false)
	b := d.CreateElement("li", false)
	parent.InsertAfter(a, nil)
	parent.InsertAfter(b, a)

	var patches []Patch
	d.SetRecorder(func(p Patch) { patches = append(patches, p) })
	parent.InsertAfter(a, b) // reorder to b, a

	want := []Patch{{Op: OpMoveNode, Node: nodeID(a), Parent: parent.id, Ref: nodeID(b)}}
	if diff := cmp.Diff(want, patches); diff != "" {
		t.Errorf("patches mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkupSerialization(t *testing.T) {
	d := NewDocument()
	div := d.CreateElement("div", false).(*MemoryElement)
	div.ApplyProps(nil, vdom.Props{"class": "a", "id": "x"})
	div.InsertAfter(d.CreateText("he<llo"), nil)

	got := OuterHTML(div)
	want := `<div class="a" id="x">he&lt;llo</div>`
	if got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
}

func TestMarkupVoidElement(t *testing.T) {
	d := NewDocument()
	in := d.CreateElement("input", false).(*MemoryElement)
	in.ApplyProps(nil, vdom.Props{"type": "text", "disabled": true})

	got := OuterHTML(in)
	want := `<input disabled type="text">`
	if got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
}

func TestSetDataRecordsPatch(t *testing.T) {
	d := NewDocument()
	txt := d.CreateText("a")

	var patches []Patch
	d.SetRecorder(func(p Patch) { patches = append(patches, p) })
	txt.SetData("b")
	txt.SetData("b") // unchanged, no patch

	if len(patches) != 1 || patches[0].Op != OpSetText || patches[0].Value != "b" {
		t.Errorf("patches = %v, want one SetText(b)", patches)
	}
}

func TestStyleMap(t *testing.T) {
	d := NewDocument()
	e := d.CreateElement("div", false).(*MemoryElement)
	e.ApplyProps(nil, vdom.Props{"style": map[string]string{"color": "red", "border": "0"}})

	if got, _ := e.Attr("style"); got != "border: 0; color: red" {
		t.Errorf("style = %q", got)
	}
}
