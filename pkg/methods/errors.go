package methods

import "fmt"

// ConstructionError reports a request that could not be built from its parts.
// Builders return it; Client passes it through untouched.
type ConstructionError struct {
	Method string
	Target string
	Err    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("build %s %s: %v", e.Method, e.Target, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// TransportError reports a request that was built but could not be exchanged.
// Senders return it; Client passes it through untouched.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("send %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
