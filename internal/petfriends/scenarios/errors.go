package scenarios

import (
	"errors"
	"fmt"
)

// ErrPrecondition marks scenarios that could not start, e.g. because the
// account owns no pet to update. It is a failure, never a skip.
var ErrPrecondition = errors.New("scenario precondition not met")

// AssertionError reports an expectation the service did not meet.
type AssertionError struct {
	Step     string
	Expected any
	Actual   any
	Body     string
}

func (e *AssertionError) Error() string {
	msg := fmt.Sprintf("%s: expected %v, got %v", e.Step, e.Expected, e.Actual)
	if e.Body != "" {
		msg += fmt.Sprintf(" (body: %s)", truncate(e.Body, 256))
	}
	return msg
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
