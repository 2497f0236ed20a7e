package vdom

import "fmt"

// Attr represents a single attribute or event handler passed to an element
// builder.
type Attr struct {
	Key   string
	Value any
}

// A creates an arbitrary attribute.
func A(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Class sets the class attribute.
func Class(v string) Attr { return A("class", v) }

// ID sets the id attribute.
func ID(v string) Attr { return A("id", v) }

// Style sets the style attribute. Value may be a string or a
// map[string]string of declarations.
func Style(v any) Attr { return A("style", v) }

// Type sets the type attribute.
func Type(v string) Attr { return A("type", v) }

// Value sets the value attribute.
func Value(v string) Attr { return A("value", v) }

// Href sets the href attribute.
func Href(v string) Attr { return A("href", v) }

// For sets the for attribute.
func For(v string) Attr { return A("for", v) }

// Placeholder sets the placeholder attribute.
func Placeholder(v string) Attr { return A("placeholder", v) }

// Disabled sets the disabled attribute.
func Disabled(v bool) Attr { return A("disabled", v) }

// Checked sets the checked attribute.
func Checked(v bool) Attr { return A("checked", v) }

// Key_ sets the reconciliation key. The key is kept as given; string and
// numeric keys are distinct.
func Key_(key any) Attr { return A("key", key) }

// RefTo attaches a ref holder. The reconciler stores the mounted host node
// in ref.Current and clears it at unmount.
func RefTo(ref *Ref) Attr { return A("ref", ref) }

// On attaches an event handler. The handler may be a func() or a
// func(Event).
func On(event string, handler any) Attr {
	switch handler.(type) {
	case func(), func(Event):
	default:
		panic(fmt.Sprintf("vdom: unsupported handler type %T for %q", handler, event))
	}
	return A("on"+event, handler)
}

// OnClick attaches a click handler.
func OnClick(handler func()) Attr { return On("click", handler) }

// OnInput attaches an input handler receiving the target's current value.
func OnInput(handler func(Event)) Attr { return On("input", handler) }

// OnSubmit attaches a submit handler.
func OnSubmit(handler func()) Attr { return On("submit", handler) }
