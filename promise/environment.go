package promise

import "github.com/dlshle/promise/async"

// Environment binds promise creation to an execution service: running
// functions of promises created through it are not run on the calling
// goroutine but submitted to the environment's executor. The executor is
// shared by all promises created through the same environment.
type Environment struct {
	executor async.Executor
}

func NewEnvironment(executor async.Executor) *Environment {
	if executor == nil {
		executor = async.DirectExecutor
	}
	return &Environment{executor: executor}
}

// NewPromise creates a promise whose running function is immediately
// scheduled on the environment's executor.
func (e *Environment) NewPromise(fn RunningFunction) Promise {
	return newPromise(fn, e.executor, true)
}

// NewDeferredPromise creates a promise that is only scheduled on the
// executor once Start is called.
func (e *Environment) NewDeferredPromise(fn RunningFunction) Promise {
	return newPromise(fn, e.executor, false)
}
