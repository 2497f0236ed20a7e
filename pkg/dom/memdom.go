package dom

import (
	"github.com/veld-ui/veld/pkg/vdom"
)

// MemoryDocument is the in-memory host tree implementation. It backs the
// test helpers, static rendering, and live sessions; in live mode a
// Recorder observes every mutation and an ID attribute is emitted in
// serialized markup so the thin client can address nodes.
type MemoryDocument struct {
	nextID   uint64
	body     *MemoryElement
	nodes    map[uint64]Node
	recorder Recorder

	// EmitIDs includes the data-veld node ID attribute in serialized
	// markup. Live sessions need it; tests and static rendering don't.
	EmitIDs bool
}

// NewDocument creates an empty document with a body element.
func NewDocument() *MemoryDocument {
	d := &MemoryDocument{nodes: make(map[uint64]Node)}
	d.body = d.newElement("body", false)
	return d
}

// Body returns the document's body element, the usual render container.
func (d *MemoryDocument) Body() *MemoryElement {
	return d.body
}

// SetRecorder attaches a mutation observer. Pass nil to detach.
func (d *MemoryDocument) SetRecorder(r Recorder) {
	d.recorder = r
}

// NodeByID returns the live node with the given ID, or nil.
func (d *MemoryDocument) NodeByID(id uint64) Node {
	return d.nodes[id]
}

// CreateElement implements Document.
func (d *MemoryDocument) CreateElement(tag string, svg bool) Element {
	return d.newElement(tag, svg)
}

func (d *MemoryDocument) newElement(tag string, svg bool) *MemoryElement {
	d.nextID++
	e := &MemoryElement{
		doc:   d,
		id:    d.nextID,
		tag:   tag,
		svg:   svg,
		attrs: make(map[string]string),
	}
	d.nodes[e.id] = e
	return e
}

// CreateText implements Document.
func (d *MemoryDocument) CreateText(data string) TextNode {
	d.nextID++
	t := &MemoryText{doc: d, id: d.nextID, data: data}
	d.nodes[t.id] = t
	return t
}

func (d *MemoryDocument) record(p Patch) {
	if d.recorder != nil {
		d.recorder(p)
	}
}

// MemoryElement is an element node of a MemoryDocument.
type MemoryElement struct {
	doc      *MemoryDocument
	id       uint64
	tag      string
	svg      bool
	attrs    map[string]string
	handlers map[string]any
	children []Node
	parent   *MemoryElement
}

// ID returns the element's document-stable node ID.
func (e *MemoryElement) ID() uint64 { return e.id }

// Parent implements Node.
func (e *MemoryElement) Parent() Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// OwnerDocument implements Node.
func (e *MemoryElement) OwnerDocument() Document { return e.doc }

// Tag implements Element.
func (e *MemoryElement) Tag() string { return e.tag }

// SVG reports whether the element lives in the SVG namespace.
func (e *MemoryElement) SVG() bool { return e.svg }

// Attr returns the current value of an attribute.
func (e *MemoryElement) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// ChildNodes returns the element's children in order.
func (e *MemoryElement) ChildNodes() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// InsertAfter implements Element. Placing a child that is already in the
// requested position is a no-op; moving an attached child records a move
// rather than a remove/insert pair.
func (e *MemoryElement) InsertAfter(child Node, ref Node) {
	p := nodeParent(child)
	if p == e {
		i := indexOfNode(e.children, child)
		if ref == nil {
			if i == 0 {
				return
			}
		} else if i > 0 && e.children[i-1] == ref {
			return
		}
	}

	wasAttached := p != nil
	if p != nil {
		p.detach(child)
	}

	idx := 0
	var refID uint64
	if ref != nil {
		idx = indexOfNode(e.children, ref) + 1
		refID = nodeID(ref)
	}
	e.children = append(e.children, nil)
	copy(e.children[idx+1:], e.children[idx:])
	e.children[idx] = child
	setNodeParent(child, e)

	if wasAttached {
		e.doc.record(Patch{Op: OpMoveNode, Node: nodeID(child), Parent: e.id, Ref: refID})
	} else {
		e.doc.record(Patch{Op: OpInsertNode, Node: nodeID(child), Parent: e.id, Ref: refID, Markup: OuterHTML(child)})
	}
}

// RemoveChild implements Element.
func (e *MemoryElement) RemoveChild(child Node) {
	if nodeParent(child) != e {
		return
	}
	e.detach(child)
	e.doc.record(Patch{Op: OpRemoveNode, Node: nodeID(child)})
}

func (e *MemoryElement) detach(child Node) {
	i := indexOfNode(e.children, child)
	if i < 0 {
		return
	}
	e.children = append(e.children[:i], e.children[i+1:]...)
	setNodeParent(child, nil)
}

// Fire dispatches an event to the element's handler for the given type.
// It returns false when no handler is attached.
func (e *MemoryElement) Fire(event, value string) bool {
	h, ok := e.handlers[event]
	if !ok {
		return false
	}
	switch fn := h.(type) {
	case func():
		fn()
	case func(vdom.Event):
		fn(vdom.Event{Type: event, Value: value})
	default:
		return false
	}
	return true
}

// MemoryText is a text node of a MemoryDocument.
type MemoryText struct {
	doc    *MemoryDocument
	id     uint64
	data   string
	parent *MemoryElement
}

// ID returns the node's document-stable ID.
func (t *MemoryText) ID() uint64 { return t.id }

// Parent implements Node.
func (t *MemoryText) Parent() Element {
	if t.parent == nil {
		return nil
	}
	return t.parent
}

// OwnerDocument implements Node.
func (t *MemoryText) OwnerDocument() Document { return t.doc }

// Data implements TextNode.
func (t *MemoryText) Data() string { return t.data }

// SetData implements TextNode. Text nodes carry no ID attribute in
// serialized markup, so the recorded patch targets the parent element
// when there is one and the thin client updates its text content.
func (t *MemoryText) SetData(data string) {
	if t.data == data {
		return
	}
	t.data = data
	target := t.id
	if t.parent != nil {
		target = t.parent.id
	}
	t.doc.record(Patch{Op: OpSetText, Node: target, Value: data})
}

func nodeParent(n Node) *MemoryElement {
	switch v := n.(type) {
	case *MemoryElement:
		return v.parent
	case *MemoryText:
		return v.parent
	}
	return nil
}

func setNodeParent(n Node, p *MemoryElement) {
	switch v := n.(type) {
	case *MemoryElement:
		v.parent = p
	case *MemoryText:
		v.parent = p
	}
}

func nodeID(n Node) uint64 {
	switch v := n.(type) {
	case *MemoryElement:
		return v.id
	case *MemoryText:
		return v.id
	}
	return 0
}

func indexOfNode(list []Node, n Node) int {
	for i, c := range list {
		if c == n {
			return i
		}
	}
	return -1
}
