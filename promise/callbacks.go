package promise

// Callback consumes a single value.
type Callback func(value interface{})

// ErrorCallback consumes a rejection error.
type ErrorCallback func(err error)

// ChainCallback consumes the result of a promise and may return a successor
// promise extending the chain, or nil for none.
type ChainCallback func(value interface{}) Promise

// RunningFunction is the unit of work executed exactly once per promise. It
// is handed the resolve and reject handles and must eventually call at most
// one of them, at most once. A panic raised during its synchronous execution
// is captured as the promise's rejection error.
type RunningFunction func(resolve Callback, reject ErrorCallback)

// Promise is a single-assignment container for the outcome of an
// asynchronous operation, supporting deferred callback attachment and
// chaining into successor operations.
type Promise interface {
	// Then registers a success handler. See the concrete documentation for
	// the chain-walking semantics and the return value contract.
	Then(callback ChainCallback) Promise
	// OnSuccess registers a plain success handler that produces no
	// successor promise.
	OnSuccess(callback Callback) Promise
	// Katch registers the error handler. The first registration wins,
	// subsequent ones are no-ops.
	Katch(callback ErrorCallback) Promise
	// Start triggers execution of the running function. Only the first call
	// has an effect, no matter how many goroutines race on it.
	Start()
}
