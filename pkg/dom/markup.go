package dom

import (
	"sort"
	"strconv"
	"strings"

	"github.com/veld-ui/veld/pkg/vdom"
)

// OuterHTML serializes a memory node including itself. Attributes are
// written in sorted order so output is deterministic.
func OuterHTML(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// InnerHTML implements Element.
func (e *MemoryElement) InnerHTML() string {
	var b strings.Builder
	for _, c := range e.children {
		writeNode(&b, c)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *MemoryText:
		b.WriteString(escapeText(v.data))
	case *MemoryElement:
		writeElement(b, v)
	}
}

func writeElement(b *strings.Builder, e *MemoryElement) {
	b.WriteByte('<')
	b.WriteString(e.tag)

	keys := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		if v := e.attrs[k]; v != "" {
			b.WriteString(`="`)
			b.WriteString(escapeAttr(v))
			b.WriteByte('"')
		}
	}
	if e.doc.EmitIDs {
		b.WriteString(` data-veld="`)
		b.WriteString(strconv.FormatUint(e.id, 10))
		b.WriteByte('"')
	}

	if vdom.IsVoidElement(e.tag) {
		b.WriteByte('>')
		return
	}
	b.WriteByte('>')
	for _, c := range e.children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
