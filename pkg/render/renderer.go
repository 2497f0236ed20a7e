package render

import (
	"fmt"

	"github.com/veld-ui/veld/pkg/dom"
	"github.com/veld-ui/veld/pkg/veld"
	"github.com/veld-ui/veld/pkg/vdom"
)

// Options configures static rendering.
type Options struct {
	// EmitIDs includes node ID attributes in the output so a live client
	// can address nodes after hydration.
	EmitIDs bool
}

// ToString renders a vnode tree into a fresh in-memory document and
// returns the serialized markup. Layout effects run; post-commit effects
// are drained before serialization so one-shot setup is reflected.
func ToString(vnode *vdom.VNode, opts Options) (string, error) {
	doc := dom.NewDocument()
	doc.EmitIDs = opts.EmitIDs
	body := doc.Body()

	err := veld.Act(func() error {
		return veld.Render(vnode, body)
	})
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	markup := body.InnerHTML()
	veld.UnmountAtNode(body)
	return markup, nil
}

// ToDocument renders a vnode tree into a fresh document and returns it
// with the root still mounted. Live sessions keep the document and attach
// a mutation recorder to it.
func ToDocument(vnode *vdom.VNode) (*dom.MemoryDocument, error) {
	doc := dom.NewDocument()
	doc.EmitIDs = true
	body := doc.Body()

	err := veld.Act(func() error {
		return veld.Render(vnode, body)
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return doc, nil
}
