package vdom

import "fmt"

// H creates a vnode. typ is a host tag string, a ComponentFunc, a
// *ComponentType, or one of the distinguished markers Fragment and
// ErrorBoundary.
//
// A nil props yields an empty Props. A "key" prop is lifted onto the
// vnode's Key field and removed from props; "ref" stays in props where the
// reconciler reads it. Children are retained verbatim under
// props["children"] and flattened at diff time.
func H(typ any, props Props, children ...any) *VNode {
	node := &VNode{Props: make(Props, len(props)+1)}

	switch t := typ.(type) {
	case string:
		node.Kind = KindElement
		node.Tag = t
	case ComponentFunc:
		node.Kind = KindComponent
		node.Fn = t
	case func(Props) any:
		node.Kind = KindComponent
		node.Fn = t
	case *ComponentType:
		node.Kind = KindComponent
		node.Fn = t.Fn
		node.TypeKey = t.Key
	case fragmentMarker:
		node.Kind = KindFragment
	case boundaryMarker:
		node.Kind = KindBoundary
	default:
		panic(fmt.Sprintf("vdom: invalid element type %T", typ))
	}

	for k, v := range props {
		if k == "key" {
			node.Key = v
			continue
		}
		node.Props[k] = v
	}

	switch len(children) {
	case 0:
		// Children may still arrive via props["children"].
	case 1:
		node.Props["children"] = children[0]
	default:
		node.Props["children"] = children
	}

	return node
}

// CreateElement is the long-form name for H.
func CreateElement(typ any, props Props, children ...any) *VNode {
	return H(typ, props, children...)
}

// Jsx is the automatic-runtime construction form: children arrive inside
// props and the key travels separately. Pass nil for no key.
func Jsx(typ any, props Props, key any) *VNode {
	n := H(typ, props)
	if key != nil {
		n.Key = key
	}
	return n
}

// Text creates a text node. At diff time a text vnode and the equivalent
// string child are interchangeable.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}
