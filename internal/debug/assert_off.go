//go:build !rawvecdebug

// Package debug provides precondition assertions that compile to no-ops
// unless the rawvecdebug build tag is set.
package debug

// Enabled reports whether assertions are compiled in.
const Enabled = false

// Assert does nothing in release builds; the call is inlined away.
func Assert(bool, string, ...any) {}
