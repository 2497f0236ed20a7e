// Package dom defines the host-tree interface the reconciler mutates and
// provides an in-memory implementation of it.
//
// The reconciler sees only the narrow Document/Element/TextNode surface:
// node creation, property diff application, positional insert (a no-op
// when the node is already in place), and removal. How a property becomes
// an attribute, a style string, or an event handler is entirely this
// package's concern.
//
// MemoryDocument additionally supports deterministic markup serialization
// and mutation recording, which back the test helpers, static rendering,
// and the live session patch stream.
package dom
