//go:build rawvecdebug

package debug

import "fmt"

// Enabled reports whether assertions are compiled in.
const Enabled = true

// Assert panics with the formatted message when cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
