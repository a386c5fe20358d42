//////////////////////////////////////////////////////
// errors.go
// parse/validation error constructors and the development-build assertion
// helper described for invariant checking
//////////////////////////////////////////////////////

package engine

import "fmt"

func errInvalidSquare(s string) error {
	return fmt.Errorf("invalid square %q", s)
}

func errInvalidMove(s string) error {
	return fmt.Errorf("invalid move %q", s)
}

func errInvalidFEN(reason string, fen string) error {
	return fmt.Errorf("invalid FEN (%s): %q", reason, fen)
}

// DebugAsserts enables the invariant checks in assert. It is off by
// default so release builds pay no cost; cmd/piston turns it on for
// --log-level debug. The tests leave it at its default.
var DebugAsserts = false

// assert panics with msg when DebugAsserts is enabled and cond is false.
// Invariant violations are programming errors, not recoverable input
// errors, so they abort rather than returning an error value.
func assert(cond bool, msg string) {
	if DebugAsserts && !cond {
		panic("piston: invariant violation: " + msg)
	}
}
