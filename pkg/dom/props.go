package dom

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/veld-ui/veld/pkg/vdom"
)

// reservedProps never reach the host as attributes.
var reservedProps = map[string]bool{
	"children": true,
	"ref":      true,
	"key":      true,
}

// ApplyProps implements Element. Unchanged props are left alone so the
// call is idempotent for equal prop sets.
func (e *MemoryElement) ApplyProps(prevProps, nextProps vdom.Props) {
	for k, pv := range prevProps {
		if reservedProps[k] {
			continue
		}
		if _, ok := nextProps[k]; !ok {
			e.removeProp(k, pv)
		}
	}
	for k, nv := range nextProps {
		if reservedProps[k] {
			continue
		}
		if vdom.SameValue(prevProps[k], nv) {
			continue
		}
		e.setProp(k, nv)
	}
}

func (e *MemoryElement) setProp(key string, value any) {
	if isEventProp(key) {
		if e.handlers == nil {
			e.handlers = make(map[string]any)
		}
		e.handlers[eventName(key)] = value
		return
	}

	key = attrName(key)
	switch v := value.(type) {
	case nil:
		e.removeAttr(key)
	case bool:
		if v {
			e.setAttr(key, "")
		} else {
			e.removeAttr(key)
		}
	case map[string]string:
		e.setAttr(key, styleString(v))
	default:
		e.setAttr(key, propToString(value))
	}
}

func (e *MemoryElement) removeProp(key string, prev any) {
	if isEventProp(key) {
		delete(e.handlers, eventName(key))
		return
	}
	e.removeAttr(attrName(key))
}

func (e *MemoryElement) setAttr(key, value string) {
	if cur, ok := e.attrs[key]; ok && cur == value {
		return
	}
	e.attrs[key] = value
	e.doc.record(Patch{Op: OpSetAttr, Node: e.id, Key: key, Value: value})
}

func (e *MemoryElement) removeAttr(key string) {
	if _, ok := e.attrs[key]; !ok {
		return
	}
	delete(e.attrs, key)
	e.doc.record(Patch{Op: OpRemoveAttr, Node: e.id, Key: key})
}

// isEventProp reports whether the key names an event handler.
// Case-insensitive to catch onclick, onClick, OnLoad, etc.
func isEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

func eventName(key string) string {
	return strings.ToLower(key[2:])
}

func attrName(key string) string {
	if key == "className" {
		return "class"
	}
	return key
}

func styleString(decls map[string]string) string {
	keys := make([]string, 0, len(decls))
	for k := range decls {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(decls[k])
	}
	return b.String()
}

// propToString converts a prop value to its attribute string.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
