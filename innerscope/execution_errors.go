package innerscope

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError is a script failure with the source location and the call
// stack at the point it was raised.
type RuntimeError struct {
	Type      string
	Message   string
	CodeFrame string
	Frames    []StackFrame
}

type assertionFailureError struct {
	message string
}

func (e *assertionFailureError) Error() string {
	return e.message
}

const (
	runtimeErrorTypeBase      = "RuntimeError"
	runtimeErrorTypeAssertion = "AssertionError"
	runtimeErrorFrameHead     = 6
	runtimeErrorFrameTail     = 6
)

var (
	errLoopBreak         = errors.New("loop break")
	errLoopNext          = errors.New("loop next")
	errStepQuotaExceeded = errors.New("step quota exceeded")
)

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}

	frames := re.Frames
	omitted := 0
	if len(frames) > runtimeErrorFrameHead+runtimeErrorFrameTail {
		omitted = len(frames) - runtimeErrorFrameHead - runtimeErrorFrameTail
	}
	for i, frame := range frames {
		if omitted > 0 && i == runtimeErrorFrameHead {
			fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
		}
		if omitted > 0 && i >= runtimeErrorFrameHead && i < runtimeErrorFrameHead+omitted {
			continue
		}
		switch {
		case frame.Pos.Line > 0 && frame.Pos.Column > 0:
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		case frame.Pos.Line > 0:
			fmt.Fprintf(&b, "\n  at %s (line %d)", frame.Function, frame.Pos.Line)
		default:
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}
	return b.String()
}

func classifyRuntimeErrorType(err error) string {
	var assertionErr *assertionFailureError
	if errors.As(err, &assertionErr) {
		return runtimeErrorTypeAssertion
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) && runtimeErr.Type != "" {
		return runtimeErr.Type
	}
	return runtimeErrorTypeBase
}

func newAssertionFailureError(message string) error {
	return &assertionFailureError{message: message}
}

func (exec *Execution) errorAt(pos Position, format string, args ...any) error {
	return exec.newRuntimeError(runtimeErrorTypeBase, fmt.Sprintf(format, args...), pos)
}

func (exec *Execution) newRuntimeError(kind string, message string, pos Position) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) > 0 {
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Function: current.Function, Pos: pos})
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			cf := exec.callStack[i]
			frames = append(frames, StackFrame{Function: cf.Function, Pos: cf.Pos})
		}
	} else {
		frames = append(frames, StackFrame{Function: "<script>", Pos: pos})
	}
	codeFrame := ""
	if exec.script != nil {
		codeFrame = formatCodeFrame(exec.script.source, pos)
	}
	return &RuntimeError{Type: kind, Message: message, CodeFrame: codeFrame, Frames: frames}
}

// wrapError turns a host error into a RuntimeError at pos. Runtime errors,
// capture errors and host control signals pass through untouched.
func (exec *Execution) wrapError(err error, pos Position) error {
	if err == nil {
		return nil
	}
	if isHostControlSignal(err) || isCaptureError(err) {
		return err
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return err
	}
	return exec.newRuntimeError(classifyRuntimeErrorType(err), err.Error(), pos)
}

func isLoopControlSignal(err error) bool {
	return errors.Is(err, errLoopBreak) || errors.Is(err, errLoopNext)
}

func isHostControlSignal(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, errStepQuotaExceeded)
}
