package veld

// actDepth counts nested Act calls. While positive, roots keep queueing
// work but install no deferred callbacks; the outermost Act drains
// everything synchronously on exit.
var actDepth int

// Act runs fn with default scheduling disabled, then drains every
// registered root until all queues are empty: updates, layout effects,
// post-commit effects. Act is re-entrant; only the outermost call drains.
// A failing fn still drains, so a subsequent Act starts from a clean
// scheduler. The first unhandled error — from fn or from the drain — is
// returned.
func Act(fn func() error) (err error) {
	actDepth++
	defer func() {
		actDepth--
		if actDepth > 0 {
			return
		}
		derr := drainAll()
		if err == nil {
			err = derr
		}
	}()
	if fn != nil {
		err = fn()
	}
	return err
}

// drainAll flushes every root until no work remains anywhere. Rendering
// during the drain (from effects) extends it. Each root drains inside an
// activity bracket so setters fired by its effects queue for the drain in
// progress.
func drainAll() error {
	var first error
	for {
		busy := false
		for _, r := range snapshotRoots() {
			if !r.hasPendingWork() {
				continue
			}
			busy = true
			e := r.runActivity(func() {
				r.flushUpdatesAndLayout()
				r.flushPostEffects()
			})
			if e != nil && first == nil {
				first = e
			}
		}
		if !busy {
			return first
		}
	}
}
