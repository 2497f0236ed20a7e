package main

import (
	"strings"

	"github.com/veld-ui/veld/pkg/veld"
	"github.com/veld-ui/veld/pkg/vdom"
)

// The demo app: a counter and a keyed todo list, exercising state and
// context.

var themeCtx = veld.CreateContext("light")

func demoApp() *vdom.VNode {
	return vdom.H(demoRoot, nil)
}

func demoRoot(props vdom.Props) any {
	theme, setTheme := veld.UseState("light")
	return themeCtx.Provider(theme,
		vdom.Main_(vdom.Class("app"),
			vdom.Header(
				vdom.H1("veld demo"),
				vdom.Button(
					vdom.Class("theme-toggle"),
					vdom.OnClick(func() {
						if theme == "light" {
							setTheme.Set("dark")
						} else {
							setTheme.Set("light")
						}
					}),
					"theme: ", theme,
				),
			),
			vdom.H(counter, nil),
			vdom.H(todoList, nil),
		),
	)
}

func counter(props vdom.Props) any {
	n, setN := veld.UseState(0)
	theme := veld.UseContext(themeCtx)
	return vdom.Section(vdom.Class("counter "+theme),
		vdom.Button(
			vdom.OnClick(func() { setN.Update(func(v int) int { return v + 1 }) }),
			"count: ", n,
		),
	)
}

type todo struct {
	id    int
	label string
}

func todoList(props vdom.Props) any {
	items, setItems := veld.UseState([]todo{
		{id: 1, label: "read the docs"},
		{id: 2, label: "build something"},
	})
	draft, setDraft := veld.UseState("")
	nextID, setNextID := veld.UseState(3)

	add := func() {
		label := strings.TrimSpace(draft)
		if label == "" {
			return
		}
		setItems.Set(append(items, todo{id: nextID, label: label}))
		setNextID.Set(nextID + 1)
		setDraft.Set("")
	}

	lis := make([]any, 0, len(items))
	for _, it := range items {
		it := it
		lis = append(lis, vdom.Li(
			vdom.Key_(it.id),
			it.label,
			vdom.Button(
				vdom.Class("rm"),
				vdom.OnClick(func() {
					kept := make([]todo, 0, len(items))
					for _, other := range items {
						if other.id != it.id {
							kept = append(kept, other)
						}
					}
					setItems.Set(kept)
				}),
				"×",
			),
		))
	}

	return vdom.Section(vdom.Class("todos"),
		vdom.Form(
			vdom.OnSubmit(add),
			vdom.Input(
				vdom.Type("text"),
				vdom.Value(draft),
				vdom.Placeholder("what needs doing?"),
				vdom.OnInput(func(ev vdom.Event) { setDraft.Set(ev.Value) }),
			),
			vdom.Button(vdom.Type("submit"), "add"),
		),
		vdom.Ul(lis),
	)
}
