package veld_test

import (
	"sync"
	"testing"
	"time"

	"github.com/veld-ui/veld/pkg/dom"
	"github.com/veld-ui/veld/pkg/veld"
	"github.com/veld-ui/veld/pkg/vdom"
	"github.com/veld-ui/veld/pkg/vtest"
)

// TestLoopSchedulerBatchesAsyncFlush runs the setter-batching scenario
// through a real deferred flush instead of an act drain: two synchronous
// setter calls coalesce into one re-render that happens after the current
// loop job unwinds.
func TestLoopSchedulerBatchesAsyncFlush(t *testing.T) {
	loop := veld.NewLoopScheduler()
	c := dom.NewDocument().Body()

	renders := 0
	var bump func()
	counter := func(props vdom.Props) any {
		renders++
		n, set := veld.UseState(0)
		bump = func() { set.Update(func(v int) int { return v + 1 }) }
		return vdom.Button(n)
	}

	loop.Do(func() {
		if err := veld.Render(vdom.H(counter, nil), c); err != nil {
			t.Errorf("render: %v", err)
			return
		}
		veld.RootOf(c).SetScheduler(loop)
	})

	loop.Do(func() {
		bump()
		bump()
		// The flush is queued behind this job; nothing has re-rendered.
		if got := c.InnerHTML(); got != "<button>0</button>" {
			t.Errorf("markup before deferred flush = %q, want <button>0</button>", got)
		}
	})

	// The deferred flush was queued while the previous job ran; one empty
	// job is a barrier past it.
	loop.Do(func() {})

	loop.Do(func() {
		if got := c.InnerHTML(); got != "<button>2</button>" {
			t.Errorf("markup after deferred flush = %q, want <button>2</button>", got)
		}
		if renders != 2 {
			t.Errorf("renders = %d, want 2 (initial + one batched flush)", renders)
		}
		veld.UnmountAtNode(c)
	})
}

// TestLoopSchedulerAfterFrameRunsPostEffects drives a post-commit effect
// through the after-frame mechanism of a real scheduler.
func TestLoopSchedulerAfterFrameRunsPostEffects(t *testing.T) {
	loop := veld.NewLoopScheduler()
	c := dom.NewDocument().Body()

	ran := make(chan int, 4)
	var bump func()
	comp := func(props vdom.Props) any {
		n, set := veld.UseState(0)
		bump = func() { set.Set(n + 1) }
		veld.UseEffect(func() veld.Cleanup {
			ran <- n
			return nil
		}, []any{n})
		return vdom.Div(n)
	}

	loop.Do(func() {
		// No scheduler yet: the mount drains synchronously, effect included.
		if err := veld.Render(vdom.H(comp, nil), c); err != nil {
			t.Errorf("render: %v", err)
			return
		}
		veld.RootOf(c).SetScheduler(loop)
	})
	if n := <-ran; n != 0 {
		t.Fatalf("mount effect saw n = %d, want 0", n)
	}

	loop.Do(func() { bump() })

	select {
	case n := <-ran:
		if n != 1 {
			t.Errorf("deferred effect saw n = %d, want 1", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("post-commit effect never ran through AfterFrame")
	}

	loop.Do(func() { veld.UnmountAtNode(c) })
}

// TestLoopSchedulerSerializesDefer checks that functions deferred from
// many goroutines run one at a time on the loop.
func TestLoopSchedulerSerializesDefer(t *testing.T) {
	loop := veld.NewLoopScheduler()

	n := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loop.Defer(func() { n++ })
		}()
	}
	wg.Wait()

	loop.Do(func() {
		if n != 100 {
			t.Errorf("n = %d, want 100", n)
		}
	})
}

// TestSynchronousSetterDrainsBeforeReturn covers the default no-scheduler
// root: a setter fired outside Act flushes on the calling goroutine
// before it returns.
func TestSynchronousSetterDrainsBeforeReturn(t *testing.T) {
	c := vtest.NewContainer()
	var bump func()
	effectRuns := 0
	comp := func(props vdom.Props) any {
		n, set := veld.UseState(0)
		bump = func() { set.Update(func(v int) int { return v + 1 }) }
		veld.UseEffect(func() veld.Cleanup {
			effectRuns++
			return nil
		}, []any{n})
		return vdom.Div(n)
	}

	if err := veld.Render(vdom.H(comp, nil), c); err != nil {
		t.Fatal(err)
	}
	vtest.ExpectMarkup(t, c, "<div>0</div>")
	if effectRuns != 1 {
		t.Fatalf("effectRuns = %d after mount, want 1", effectRuns)
	}

	bump()
	vtest.ExpectMarkup(t, c, "<div>1</div>")
	if effectRuns != 2 {
		t.Errorf("effectRuns = %d after setter, want 2", effectRuns)
	}
	vtest.Cleanup(t, c)
}
