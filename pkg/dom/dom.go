package dom

import "github.com/veld-ui/veld/pkg/vdom"

// Document is the narrow host-tree surface the reconciler needs for node
// creation. The svg flag selects the SVG namespace.
type Document interface {
	CreateElement(tag string, svg bool) Element
	CreateText(data string) TextNode
}

// Node is a node in the host tree.
type Node interface {
	// Parent returns the element this node is attached to, or nil.
	Parent() Element

	// OwnerDocument returns the document that created this node.
	OwnerDocument() Document
}

// Element is a host element. The reconciler drives it through exactly
// these operations.
type Element interface {
	Node

	// Tag returns the element's tag name.
	Tag() string

	// ApplyProps diffs prevProps against nextProps and applies the
	// difference. It must be idempotent for unchanged prop sets and must
	// preserve the identity of the element.
	ApplyProps(prevProps, nextProps vdom.Props)

	// InsertAfter places child immediately after ref, or at the front when
	// ref is nil. It must be a no-op if child is already in that exact
	// position, to avoid spurious host side effects.
	InsertAfter(child Node, ref Node)

	// RemoveChild detaches child from this element.
	RemoveChild(child Node)

	// InnerHTML serializes the element's children.
	InnerHTML() string
}

// TextNode is a host text node.
type TextNode interface {
	Node

	Data() string
	SetData(data string)
}
