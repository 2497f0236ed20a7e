package veld_test

import (
	"errors"
	"testing"

	"github.com/veld-ui/veld/pkg/veld"
	"github.com/veld-ui/veld/pkg/vdom"
	"github.com/veld-ui/veld/pkg/vtest"
)

var errBroken = errors.New("broken render")

func broken(props vdom.Props) any {
	panic(errBroken)
}

func sibling(props vdom.Props) any {
	return vdom.Div("Sibling")
}

func TestBoundaryScopesRenderFailure(t *testing.T) {
	c := vtest.NewContainer()
	var caught []error
	app := vdom.H(vdom.ErrorBoundary, vdom.Props{
		"handler": func(err error) { caught = append(caught, err) },
	}, vdom.H(broken, nil), vdom.H(sibling, nil))

	err := veld.Act(func() error {
		return veld.Render(app, c)
	})
	if err != nil {
		t.Fatalf("a handled error must not escape the root: %v", err)
	}
	if len(caught) != 1 || !errors.Is(caught[0], errBroken) {
		t.Fatalf("caught = %v, want exactly the broken error once", caught)
	}
	vtest.ExpectNotContains(t, c, "Sibling")
	vtest.Cleanup(t, c)
}

func TestBoundaryFallbackAfterError(t *testing.T) {
	c := vtest.NewContainer()
	app := func(props vdom.Props) any {
		failed, setFailed := veld.UseState(false)
		var content any
		if failed {
			content = []any{vdom.Div("fallback"), vdom.H(sibling, nil)}
		} else {
			content = []any{vdom.H(broken, nil), vdom.H(sibling, nil)}
		}
		return vdom.H(vdom.ErrorBoundary, vdom.Props{
			"handler": func(error) { setFailed.Set(true) },
		}, content)
	}

	vtest.MustRender(t, vdom.H(app, nil), c)
	vtest.ExpectMarkup(t, c, "<div>fallback</div><div>Sibling</div>")
	vtest.Cleanup(t, c)
}

func TestUnhandledErrorUnmountsAndReturns(t *testing.T) {
	c := vtest.NewContainer()
	err := veld.Act(func() error {
		return veld.Render(vdom.Div(vdom.H(broken, nil)), c)
	})

	if !errors.Is(err, errBroken) {
		t.Fatalf("err = %v, want the broken error", err)
	}
	vtest.ExpectMarkup(t, c, "")

	// The root recovers for subsequent renders.
	vtest.MustRender(t, vdom.Div("ok"), c)
	vtest.ExpectMarkup(t, c, "<div>ok</div>")
	vtest.Cleanup(t, c)
}

func TestHandlerErrorContinuesWalk(t *testing.T) {
	c := vtest.NewContainer()
	errHandler := errors.New("handler blew up")
	var outerCaught []error

	inner := vdom.H(vdom.ErrorBoundary, vdom.Props{
		"handler": func(error) { panic(errHandler) },
	}, vdom.H(broken, nil))
	outer := vdom.H(vdom.ErrorBoundary, vdom.Props{
		"handler": func(err error) { outerCaught = append(outerCaught, err) },
	}, inner)

	err := veld.Act(func() error {
		return veld.Render(outer, c)
	})
	if err != nil {
		t.Fatalf("outer boundary should have handled the error: %v", err)
	}
	if len(outerCaught) != 1 || !errors.Is(outerCaught[0], errHandler) {
		t.Errorf("outerCaught = %v, want the handler's replacement error", outerCaught)
	}
	vtest.Cleanup(t, c)
}

func TestEffectErrorRoutedToBoundary(t *testing.T) {
	c := vtest.NewContainer()
	errEffect := errors.New("effect failed")
	var caught []error
	otherRan := false

	failing := func(props vdom.Props) any {
		veld.UseEffect(func() veld.Cleanup { panic(errEffect) }, []any{})
		return vdom.Div("failing")
	}
	other := func(props vdom.Props) any {
		veld.UseEffect(func() veld.Cleanup { otherRan = true; return nil }, []any{})
		return vdom.Div("other")
	}

	app := vdom.H(vdom.ErrorBoundary, vdom.Props{
		"handler": func(err error) { caught = append(caught, err) },
	}, vdom.H(failing, nil), vdom.H(other, nil))

	err := veld.Act(func() error {
		return veld.Render(app, c)
	})
	if err != nil {
		t.Fatalf("handled effect error must not escape: %v", err)
	}
	if len(caught) != 1 || !errors.Is(caught[0], errEffect) {
		t.Errorf("caught = %v, want the effect error once", caught)
	}
	if !otherRan {
		t.Error("a failing effect must not stop the remaining effects in the flush")
	}
	vtest.Cleanup(t, c)
}

func TestCleanupErrorDoesNotStopUnmount(t *testing.T) {
	c := vtest.NewContainer()
	errCleanup := errors.New("cleanup failed")
	secondCleanupRan := false

	comp := func(props vdom.Props) any {
		veld.UseEffect(func() veld.Cleanup {
			return func() { secondCleanupRan = true }
		}, []any{})
		veld.UseEffect(func() veld.Cleanup {
			return func() { panic(errCleanup) }
		}, []any{})
		return vdom.Div()
	}
	vtest.MustRender(t, vdom.H(comp, nil), c)

	var orphaned []error
	veld.RootOf(c).OnAsyncError(func(err error) { orphaned = append(orphaned, err) })

	if !veld.UnmountAtNode(c) {
		t.Fatal("expected a root")
	}
	if !secondCleanupRan {
		t.Error("a throwing cleanup must not stop the remaining cleanups")
	}
	if len(orphaned) != 1 || !errors.Is(orphaned[0], errCleanup) {
		t.Errorf("orphaned = %v, want the cleanup error routed to the async-error sink", orphaned)
	}
	vtest.ExpectMarkup(t, c, "")
}
