// Package errors provides structured error values with stable codes for
// the reconciler's programming-error panics and CLI diagnostics.
package errors
