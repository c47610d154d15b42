package promise

import (
	"sync"
	"sync/atomic"

	"github.com/dlshle/promise/async"
	"github.com/dlshle/promise/ds"
	"github.com/dlshle/promise/errors"
)

const (
	statePending int32 = iota
	stateStarted
	stateResolved
	stateRejected
)

// ErrUndefinedRejection is recorded when reject is called with a nil error,
// so that a rejection never silently degrades into a no-op.
var ErrUndefinedRejection = errors.Error("undefined error: reject was called with a nil error")

type promise struct {
	fn       RunningFunction
	executor async.Executor

	// lifecycle guards; state moves pending -> started -> resolved|rejected,
	// the fired flags make each notification single-fire
	state        int32
	successFired int32
	errorFired   int32

	// mu maps the original design's volatile fields; it is never held while
	// a user callback runs
	mu              sync.RWMutex
	result          interface{}
	err             error
	successCallback ChainCallback
	errorCallback   ErrorCallback
	next            *promise

	pendingCallbacks ds.Queue[ChainCallback]
}

// New creates a promise whose running function is invoked immediately, on
// the calling goroutine.
func New(fn RunningFunction) Promise {
	return newPromise(fn, async.DirectExecutor, true)
}

// NewDeferred creates a promise that does not run until Start is called.
func NewDeferred(fn RunningFunction) Promise {
	return newPromise(fn, async.DirectExecutor, false)
}

func newPromise(fn RunningFunction, executor async.Executor, startNow bool) *promise {
	p := &promise{
		fn:               fn,
		executor:         executor,
		pendingCallbacks: ds.NewSafeQueue[ChainCallback](),
	}
	if startNow {
		p.Start()
	}
	return p
}

func (p *promise) Start() {
	if atomic.CompareAndSwapInt32(&p.state, statePending, stateStarted) {
		p.executor.Execute(p.doStart)
	}
}

func (p *promise) doStart() {
	p.runFunction()
	// a rejection recorded during the function's synchronous frame is
	// surfaced here; a later asynchronous rejection is only surfaced once an
	// error callback gets attached
	p.notifyError()
}

func (p *promise) runFunction() {
	defer func() {
		if recovered := recover(); recovered != nil {
			p.doReject(errors.FromRecovered(recovered))
		}
	}()
	p.fn(p.doResolve, p.doReject)
}

// Then registers the chaining success handler. If the promise already holds
// one, the callback is threaded onto the first successor in the next-chain
// without a handler, or queued until such a successor exists.
//
// Then returns the receiver, not the successor promise: `p.Then(a).Then(b)`
// attaches b through the chain walk above. Use the return value for
// immediate Katch attachment on the same promise.
func (p *promise) Then(callback ChainCallback) Promise {
	p.setSuccessCallback(callback)
	return p
}

// OnSuccess adapts a fire-and-forget callback into the chaining contract.
func (p *promise) OnSuccess(callback Callback) Promise {
	if callback == nil {
		return p
	}
	return p.Then(func(value interface{}) Promise {
		callback(value)
		return nil
	})
}

// Katch registers the error handler and invokes it right away when an error
// is already recorded. The first registration wins; registering a second
// handler has no effect.
func (p *promise) Katch(callback ErrorCallback) Promise {
	p.setErrorCallback(callback)
	return p
}

// doResolve records the result. Only the first terminal outcome takes
// effect: resolving an already rejected or resolved promise is a no-op.
func (p *promise) doResolve(result interface{}) {
	p.mu.Lock()
	if atomic.LoadInt32(&p.state) != stateStarted {
		p.mu.Unlock()
		return
	}
	p.result = result
	atomic.StoreInt32(&p.state, stateResolved)
	p.mu.Unlock()
	p.notifySuccess()
}

// doReject records the error if none is recorded yet. It deliberately does
// not notify: notification happens at the end of doStart or when an error
// callback is attached. An error may still be recorded on a resolved promise
// so that failures in spliced successor promises surface through this
// promise's Katch; the resolved state and result are left untouched.
func (p *promise) doReject(err error) {
	if err == nil {
		err = ErrUndefinedRejection
	}
	p.mu.Lock()
	if p.err == nil {
		p.err = err
		atomic.CompareAndSwapInt32(&p.state, stateStarted, stateRejected)
	}
	p.mu.Unlock()
}

func (p *promise) setSuccessCallback(callback ChainCallback) {
	if callback == nil {
		return
	}
	p.mu.Lock()
	if p.successCallback == nil {
		p.successCallback = callback
		p.mu.Unlock()
		if p.isDone() {
			p.notifySuccess()
		}
		return
	}
	p.mu.Unlock()
	p.addChainCallback(callback)
}

// addChainCallback walks the next-chain for the first promise without a
// success handler and attaches the callback there, wiring that promise's
// errors back into this promise. Without such a successor the callback is
// queued until one is spliced on.
func (p *promise) addChainCallback(callback ChainCallback) {
	current := p.loadNext()
	for current != nil && current.loadSuccessCallback() != nil {
		current = current.loadNext()
	}
	if current != nil {
		current.Then(callback).Katch(p.doReject)
	} else {
		p.pendingCallbacks.Enqueue(callback)
	}
}

func (p *promise) setErrorCallback(callback ErrorCallback) {
	if callback == nil {
		return
	}
	p.mu.Lock()
	if p.errorCallback != nil {
		p.mu.Unlock()
		return
	}
	p.errorCallback = callback
	p.mu.Unlock()
	// covers the callback being attached after the error happened
	p.notifyError()
}

// notifySuccess invokes the success handler with the result, at most once.
// A successor promise returned by the handler is spliced onto the chain; a
// panic from the handler is swallowed and no splice happens.
func (p *promise) notifySuccess() {
	p.mu.RLock()
	callback := p.successCallback
	result := p.result
	p.mu.RUnlock()
	if callback == nil || !atomic.CompareAndSwapInt32(&p.successFired, 0, 1) {
		return
	}
	var child Promise
	completed := false
	invokeAndDiscardFault(func() {
		child = callback(result)
		completed = true
	})
	if completed {
		p.addPromise(child)
	}
}

// addPromise splices the successor onto the end of the next-chain (the chain
// is append-only, an existing link is never replaced). The first queued
// pending callback transfers onto the new promise, with its errors wired
// back into this promise's reject.
func (p *promise) addPromise(child Promise) {
	if child == nil || p.isError() {
		return
	}
	if queued, ok := p.pendingCallbacks.Dequeue(); ok {
		child.Then(queued).Katch(p.doReject)
	}
	childPromise, ok := child.(*promise)
	if !ok {
		// foreign Promise implementations can host the transferred callback
		// but are not walkable, so they are not spliced
		return
	}
	current := p
	for {
		current.mu.Lock()
		if current.next == nil {
			current.next = childPromise
			current.mu.Unlock()
			return
		}
		next := current.next
		current.mu.Unlock()
		current = next
	}
}

// notifyError invokes the error handler with the recorded error, at most
// once, and only when both are present. Handler panics are swallowed.
func (p *promise) notifyError() {
	p.mu.RLock()
	err := p.err
	callback := p.errorCallback
	p.mu.RUnlock()
	if err == nil || callback == nil || !atomic.CompareAndSwapInt32(&p.errorFired, 0, 1) {
		return
	}
	invokeAndDiscardFault(func() {
		callback(err)
	})
}

func (p *promise) isDone() bool {
	return atomic.LoadInt32(&p.state) == stateResolved
}

func (p *promise) isError() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err != nil
}

func (p *promise) loadNext() *promise {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.next
}

func (p *promise) loadSuccessCallback() ChainCallback {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.successCallback
}
