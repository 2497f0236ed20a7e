package veld

import (
	"errors"
	"fmt"

	verrs "github.com/veld-ui/veld/internal/errors"
)

// ErrNoRoot is returned by operations that need an existing root for a
// container that was never rendered into.
var ErrNoRoot = errors.New("veld: no root mounted at container")

// Programming errors. These panic out of the call that detects them and
// are never intercepted by error boundaries.
var (
	errHookOutside = verrs.New("E001", verrs.CategoryProgramming,
		"Hook called outside of component")
	errHookMismatch = verrs.New("E002", verrs.CategoryProgramming,
		"Hook type mismatch. Hooks must be called in same order on each render.")
	errInvalidChild = verrs.New("E003", verrs.CategoryProgramming,
		"Object is not a valid element")
)

// toError converts a recovered panic value into an error.
func toError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("veld: panic during render: %v", rec)
}

// isProgramming reports whether a recovered value must escape the
// boundary walk.
func isProgramming(rec any) bool {
	err, ok := rec.(error)
	return ok && verrs.IsProgramming(err)
}
