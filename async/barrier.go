package async

import (
	"sync"
	"sync/atomic"
)

// WaitLock is a reusable gate: goroutines calling Wait block until the lock
// is opened, and the lock can be re-armed with Lock.
type WaitLock struct {
	cond   *sync.Cond
	isOpen atomic.Value
}

func NewWaitLock() *WaitLock {
	var isOpen atomic.Value
	isOpen.Store(false)
	return &WaitLock{
		cond:   sync.NewCond(new(sync.Mutex)),
		isOpen: isOpen,
	}
}

func (l *WaitLock) Wait() {
	l.cond.L.Lock()
	for !l.IsOpen() {
		l.cond.Wait()
	}
	l.cond.L.Unlock()
}

func (l *WaitLock) Open() {
	l.cond.L.Lock()
	l.isOpen.Store(true)
	l.cond.Broadcast()
	l.cond.L.Unlock()
}

// Lock re-arms the gate so that subsequent Wait calls block again.
func (l *WaitLock) Lock() {
	l.cond.L.Lock()
	l.isOpen.Store(false)
	l.cond.L.Unlock()
}

func (l *WaitLock) IsOpen() bool {
	return l.isOpen.Load().(bool)
}

// StatefulBarrier is a WaitLock carrying the value it was opened with. The
// first OpenWith wins, later calls are no-ops.
type StatefulBarrier struct {
	lock  *WaitLock
	state atomic.Value
	once  int32
}

func NewStatefulBarrier() *StatefulBarrier {
	return &StatefulBarrier{
		lock: NewWaitLock(),
	}
}

func (b *StatefulBarrier) OpenWith(value interface{}) {
	if !atomic.CompareAndSwapInt32(&b.once, 0, 1) {
		return
	}
	if value != nil {
		b.state.Store(value)
	}
	b.lock.Open()
}

func (b *StatefulBarrier) Get() interface{} {
	b.lock.Wait()
	return b.state.Load()
}

func (b *StatefulBarrier) IsOpen() bool {
	return b.lock.IsOpen()
}
