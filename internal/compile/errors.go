package compile

import "fmt"

// StateError reports a violation of the transition compiler's own
// preconditions — distinct from window.StateError, which guards the
// builder's call-ordering contract one level below.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return "transition compiler: " + e.Msg }

func stateErr(format string, args ...any) error {
	return &StateError{Msg: fmt.Sprintf(format, args...)}
}
