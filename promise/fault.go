package promise

import "sync"

// FaultObserver receives panic values recovered from user success/error
// callbacks. Callback faults never become promise errors and never escape to
// the notifying goroutine; the observer is the only way to see them.
type FaultObserver func(recovered interface{})

var (
	faultObserverMu sync.RWMutex
	faultObserver   FaultObserver
)

// SetFaultObserver installs the process-wide observer for swallowed callback
// faults. Pass nil to remove it.
func SetFaultObserver(observer FaultObserver) {
	faultObserverMu.Lock()
	faultObserver = observer
	faultObserverMu.Unlock()
}

// invokeAndDiscardFault is the single place where callback faults are
// suppressed.
func invokeAndDiscardFault(invoke func()) {
	defer func() {
		if recovered := recover(); recovered != nil {
			faultObserverMu.RLock()
			observer := faultObserver
			faultObserverMu.RUnlock()
			if observer != nil {
				observer(recovered)
			}
		}
	}()
	invoke()
}
