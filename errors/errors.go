package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

type stack []uintptr

func (s *stack) Format() string {
	frames := runtime.CallersFrames(*s)
	var b strings.Builder
	for {
		frame, more := frames.Next()
		b.WriteRune('\n')
		b.WriteString(frame.Function)
		b.WriteRune('\n')
		b.WriteRune('\t')
		b.WriteString(frame.File)
		b.WriteRune(':')
		b.WriteString(strconv.Itoa(frame.Line))
		if !more {
			break
		}
	}
	return b.String()
}

// TrackableError carries the stacktrace captured at creation time.
type TrackableError struct {
	err        error
	stacktrace *stack
}

func (e *TrackableError) Error() string {
	return e.err.Error()
}

func (e *TrackableError) Unwrap() error {
	return e.err
}

func (e *TrackableError) Stacktrace() string {
	return e.stacktrace.Format()
}

func Error(msg string) *TrackableError {
	return newTrackableErr(errors.New(msg), stacktraceWithDepth(32, 1))
}

func Errorf(formatter string, fields ...interface{}) *TrackableError {
	return newTrackableErr(fmt.Errorf(formatter, fields...), stacktraceWithDepth(32, 1))
}

func WrapWithStackTrace(err error) *TrackableError {
	return newTrackableErr(err, stacktraceWithDepth(32, 1))
}

// FromRecovered converts a recovered panic value into an error. Error values
// pass through unchanged, anything else is wrapped with its %v rendering.
func FromRecovered(recovered interface{}) error {
	if err, ok := recovered.(error); ok {
		return err
	}
	return Errorf("recovered from panic: %v", recovered)
}

func newTrackableErr(err error, stacktrace *stack) *TrackableError {
	return &TrackableError{
		err:        err,
		stacktrace: stacktrace,
	}
}

func stacktraceWithDepth(depth int, frameSkips int) *stack {
	pcs := make([]uintptr, depth)
	// skip runtime.Callers and stacktraceWithDepth themselves
	n := runtime.Callers(frameSkips+2, pcs[:])
	var st stack = pcs[:n]
	return &st
}

func StackTrace(frameSkips int) string {
	return stacktraceWithDepth(32, frameSkips+1).Format()
}
