//go:build debug

package assert

// Enabled reports whether assertions are compiled in.
const Enabled = true

// That panics with msg if cond is false.
func That(cond bool, msg string) {
	if !cond {
		panic("assertion failed: " + msg)
	}
}
