package vdom

import (
	"reflect"
	"strconv"
)

// FlattenChildren linearizes arbitrarily nested child sequences into a
// single ordered list in encounter order. Nothing is filtered: nils and
// bools survive so positional counts are preserved for the caller.
func FlattenChildren(children any) []any {
	out := make([]any, 0, 4)
	appendFlat(&out, children)
	return out
}

func appendFlat(out *[]any, c any) {
	switch v := c.(type) {
	case nil:
		*out = append(*out, nil)
		return
	case []any:
		for _, e := range v {
			appendFlat(out, e)
		}
		return
	case []*VNode:
		for _, e := range v {
			appendFlat(out, e)
		}
		return
	case string, *VNode, bool:
		*out = append(*out, v)
		return
	}
	rv := reflect.ValueOf(c)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			appendFlat(out, rv.Index(i).Interface())
		}
		return
	}
	*out = append(*out, c)
}

// ToChildArray flattens children and drops the entries that render nothing
// (nil, bool, nil vnode pointers).
func ToChildArray(children any) []any {
	flat := FlattenChildren(children)
	out := make([]any, 0, len(flat))
	for _, c := range flat {
		if IsEmptyChild(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// IsEmptyChild reports whether a child renders nothing and occupies no
// host position: nil, a bool, or a nil *VNode.
func IsEmptyChild(c any) bool {
	switch v := c.(type) {
	case nil:
		return true
	case bool:
		return true
	case *VNode:
		return v == nil
	}
	return false
}

// TextOf coerces a renderable leaf to its text representation. The second
// result is false when the child is not textual.
func TextOf(c any) (string, bool) {
	switch v := c.(type) {
	case string:
		return v, true
	case *VNode:
		if v != nil && v.Kind == KindText {
			return v.Text, true
		}
		return "", false
	case int:
		return strconv.Itoa(v), true
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10), true
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}
