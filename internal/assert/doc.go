// Package assert provides debug-build precondition checks.
//
// Assertions are compiled in only under the "debug" build tag:
//
//	go test -tags debug ./...
//
// In release builds every check compiles to a no-op, keeping the unchecked
// call surface free of branching overhead.
package assert
