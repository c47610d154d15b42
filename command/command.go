package command

import (
	"sync/atomic"

	"github.com/dlshle/promise/errors"
)

// Callback consumes the command's result.
type Callback func(value interface{})

// ErrorCallback consumes the command's error.
type ErrorCallback func(err error)

// CompleteCallback is invoked once the command finished, whatever the
// outcome.
type CompleteCallback func(cmd *Command)

// Operation is the unit of work wrapped by a Command.
type Operation func() (interface{}, error)

// Command is a one-shot runnable with success, error and complete callbacks
// and optionally a follow-up command per outcome. A command runs at most
// once; cancelling before Run suppresses the run entirely and has no effect
// once execution has begun. Faults raised by any callback or follow-up
// command are swallowed.
type Command struct {
	operation Operation

	onSuccess  Callback
	onError    ErrorCallback
	onComplete CompleteCallback

	successCommand  *Command
	errorCommand    *Command
	completeCommand *Command

	canceling int32
	executed  int32
	result    atomic.Value
}

func New(operation Operation) *Command {
	return &Command{operation: operation}
}

// Run executes the wrapped operation, then the outcome callbacks and
// follow-up commands. Repeated and post-cancel calls are no-ops.
func (c *Command) Run() {
	if atomic.LoadInt32(&c.canceling) == 1 {
		return
	}
	if !atomic.CompareAndSwapInt32(&c.executed, 0, 1) {
		return
	}
	result, err := c.runOperation()
	if err != nil {
		if c.onError != nil {
			discardFault(func() { c.onError(err) })
		}
		c.runNext(c.errorCommand)
	} else {
		if result != nil {
			c.result.Store(result)
		}
		if c.onSuccess != nil {
			discardFault(func() { c.onSuccess(result) })
		}
		c.runNext(c.successCommand)
	}
	if c.onComplete != nil {
		discardFault(func() { c.onComplete(c) })
	}
	c.runNext(c.completeCommand)
}

func (c *Command) runOperation() (result interface{}, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = errors.FromRecovered(recovered)
		}
	}()
	return c.operation()
}

// Cancel suppresses the run if execution has not started yet.
func (c *Command) Cancel() {
	atomic.StoreInt32(&c.canceling, 1)
}

// Result returns the operation's result, or nil before completion.
func (c *Command) Result() interface{} {
	return c.result.Load()
}

func (c *Command) Executed() bool {
	return atomic.LoadInt32(&c.executed) == 1
}

func (c *Command) OnSuccess(callback Callback) *Command {
	c.onSuccess = callback
	return c
}

// ThenRun chains a command to run after this one succeeded.
func (c *Command) ThenRun(next *Command) *Command {
	c.successCommand = next
	return c
}

func (c *Command) OnError(callback ErrorCallback) *Command {
	c.onError = callback
	return c
}

// OnErrorRun chains a command to run after this one failed.
func (c *Command) OnErrorRun(next *Command) *Command {
	c.errorCommand = next
	return c
}

func (c *Command) OnComplete(callback CompleteCallback) *Command {
	c.onComplete = callback
	return c
}

// OnCompleteRun chains a command to run after this one finished.
func (c *Command) OnCompleteRun(next *Command) *Command {
	c.completeCommand = next
	return c
}

func (c *Command) runNext(next *Command) {
	if next == nil {
		return
	}
	discardFault(next.Run)
}

func discardFault(invoke func()) {
	defer func() {
		recover()
	}()
	invoke()
}
