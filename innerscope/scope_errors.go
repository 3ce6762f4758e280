package innerscope

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFrameNotObserved reports a successful call whose frame exit was never
	// seen by the capture observer.
	ErrFrameNotObserved = errors.New("innerscope: frame exit was not observed")
	// ErrFrameNotExported reports a redirected call that returned without
	// passing through an export.
	ErrFrameNotExported = errors.New("innerscope: redirected frame did not export its bindings")
)

// UnsupportedCallableError is returned when a target cannot be analyzed or
// captured.
type UnsupportedCallableError struct {
	Name   string
	Reason string
}

func (e *UnsupportedCallableError) Error() string {
	return fmt.Sprintf("unsupported callable %s: %s", e.Name, e.Reason)
}

// UndefinedVariableError lists the outer names a ScopedFunction still needs
// before it can run.
type UndefinedVariableError struct {
	Names []string
}

func (e *UndefinedVariableError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, name := range e.Names {
		quoted[i] = "'" + name + "'"
	}
	return fmt.Sprintf("undefined variables: %s; supply them with Bind before calling", strings.Join(quoted, ", "))
}

func isCaptureError(err error) bool {
	var unsupported *UnsupportedCallableError
	var undefined *UndefinedVariableError
	return errors.As(err, &unsupported) ||
		errors.As(err, &undefined) ||
		errors.Is(err, ErrFrameNotObserved) ||
		errors.Is(err, ErrFrameNotExported)
}
