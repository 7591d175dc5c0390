package travel

import "fmt"

// CallError wraps a failed contract interaction with the operation that
// attempted it.
type CallError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	return fmt.Sprintf("travel: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *CallError) Unwrap() error { return e.Err }
