package veld

import (
	"github.com/veld-ui/veld/pkg/vdom"
)

// contextProvider holds a provided value and the subscription list of
// descendant consumers.
type contextProvider struct {
	key   any
	value any
	subs  []*ctxListener
}

type ctxListener struct {
	notify func()
}

func newContextProvider(key any, value any) *contextProvider {
	return &contextProvider{key: key, value: value}
}

// subscribe registers a listener and returns its removal function.
func (p *contextProvider) subscribe(notify func()) func() {
	l := &ctxListener{notify: notify}
	p.subs = append(p.subs, l)
	return func() {
		for i, s := range p.subs {
			if s == l {
				p.subs = append(p.subs[:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// setValue stores a new value and, when it differs from the previous one,
// notifies a snapshot of the subscriber list. Iterating a snapshot keeps
// reentrant unsubscribes safe.
func (p *contextProvider) setValue(v any) {
	if vdom.SameValue(p.value, v) {
		return
	}
	p.value = v
	subs := make([]*ctxListener, len(p.subs))
	copy(subs, p.subs)
	for _, s := range subs {
		s.notify()
	}
}

// Context passes a value down the component tree without threading it
// through props. Create one with CreateContext, provide values with
// Provider, and consume them with UseContext.
type Context[T any] struct {
	defaultValue T
	body         vdom.ComponentFunc
}

// CreateContext creates a context with the given default value. The
// default is returned by UseContext when no Provider is found above the
// consumer.
func CreateContext[T any](defaultValue T) *Context[T] {
	c := &Context[T]{defaultValue: defaultValue}
	c.body = c.providerBody
	return c
}

// Default returns the context's default value.
func (c *Context[T]) Default() T {
	return c.defaultValue
}

// Provider wraps children with this context's value. Descendant
// components read it via UseContext; when the provider re-renders with a
// different value, subscribed consumers are scheduled for re-render.
func (c *Context[T]) Provider(value T, children ...any) *vdom.VNode {
	props := vdom.Props{"value": value}
	switch len(children) {
	case 0:
	case 1:
		props["children"] = children[0]
	default:
		props["children"] = children
	}
	n := vdom.H(c.body, props)
	n.TypeKey = c
	return n
}

// providerBody is the provider's user function. It owns the
// contextProvider through a ref created on first render and registers it
// on the owning component so descendants can find it.
func (c *Context[T]) providerBody(props vdom.Props) any {
	ref := UseRef(nil)
	owner := currentOwner
	if ref.Current == nil {
		p := newContextProvider(c, c.defaultValue)
		owner.provider = p
		ref.Current = p
	}
	p := ref.Current.(*contextProvider)

	v, ok := props["value"]
	if !ok {
		v = c.defaultValue
	}
	p.setValue(v)

	return props["children"]
}

// UseContext returns the current value of the nearest enclosing Provider,
// or the context's default when there is none. The first call walks the
// ancestor chain and subscribes the component; later calls reuse the
// subscription. The subscription is removed at unmount.
func UseContext[T any](ctx *Context[T]) T {
	c, first := useCell(cellContext)
	if first {
		owner := currentOwner
		p := findProvider(owner, ctx)
		if p != nil {
			c.provider = p
			c.unsubscribe = p.subscribe(func() {
				owner.root.scheduleUpdate(owner)
			})
		}
	}
	if c.provider == nil {
		return ctx.defaultValue
	}
	return c.provider.value.(T)
}

// findProvider walks the component's ancestors for the nearest provider of
// the given context.
func findProvider[T any](from *component, ctx *Context[T]) *contextProvider {
	for p := from.parent; p != nil; p = p.parent {
		if p.provider != nil && p.provider.key == any(ctx) {
			return p.provider
		}
	}
	return nil
}
