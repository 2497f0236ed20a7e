package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element vnode from builder arguments. Arguments can be:
// nil, Attr, []Attr, or renderable content (*VNode, []*VNode, []any,
// string, number, bool). Strings become text children; everything
// non-Attr is a child.
func El(tag string, args ...any) *VNode {
	props := make(Props)
	children := make([]any, 0, len(args))

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			children = append(children, nil)
		case Attr:
			if v.Key != "" {
				props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					props[a.Key] = a.Value
				}
			}
		default:
			children = append(children, arg)
		}
	}

	if len(children) > 0 {
		props["children"] = children
	}
	return H(tag, props)
}

func Div(args ...any) *VNode      { return El("div", args...) }
func Span(args ...any) *VNode     { return El("span", args...) }
func P(args ...any) *VNode        { return El("p", args...) }
func A_(args ...any) *VNode       { return El("a", args...) }
func H1(args ...any) *VNode       { return El("h1", args...) }
func H2(args ...any) *VNode       { return El("h2", args...) }
func Ul(args ...any) *VNode       { return El("ul", args...) }
func Li(args ...any) *VNode       { return El("li", args...) }
func Button(args ...any) *VNode   { return El("button", args...) }
func Input(args ...any) *VNode    { return El("input", args...) }
func Label(args ...any) *VNode    { return El("label", args...) }
func Form(args ...any) *VNode     { return El("form", args...) }
func Section(args ...any) *VNode  { return El("section", args...) }
func Header(args ...any) *VNode   { return El("header", args...) }
func Footer(args ...any) *VNode   { return El("footer", args...) }
func Main_(args ...any) *VNode    { return El("main", args...) }
func Svg(args ...any) *VNode      { return El("svg", args...) }
func Path(args ...any) *VNode     { return El("path", args...) }
func Table(args ...any) *VNode    { return El("table", args...) }
func Tr(args ...any) *VNode       { return El("tr", args...) }
func Td(args ...any) *VNode       { return El("td", args...) }
func Textarea(args ...any) *VNode { return El("textarea", args...) }
