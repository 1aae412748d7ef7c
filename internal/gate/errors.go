package gate

import "fmt"

// MalformedValueError means the pattern matched but the captured number
// could not be turned into a float, e.g. because it overflows.
type MalformedValueError struct {
	Line  int
	Value string
	Err   error
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("line %d: malformed coverage value %q: %s", e.Line, e.Value, e.Err)
}

func (e *MalformedValueError) Unwrap() error {
	return e.Err
}

// ReadError means the report stream failed before it reached its end.
type ReadError struct {
	Line int
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading coverage report after line %d: %s", e.Line, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
