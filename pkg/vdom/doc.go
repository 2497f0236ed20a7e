// Package vdom defines the immutable virtual node model consumed by the
// reconciler, element construction helpers, and the small equality
// utilities used for prop and dependency comparison.
//
// VNodes describe what to render: a host tag, a user function component,
// a fragment, or an error boundary, together with a props bag, an optional
// reconciliation key, and an optional ref. They are created by H and the
// element builders and never mutated after construction, which makes
// referential equality on subtrees a safe memoization signal for the
// reconciler.
package vdom
