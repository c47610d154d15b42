package async

import (
	"sync"
	"sync/atomic"

	"github.com/dlshle/promise/logging"
)

const (
	IDLE        = 0
	RUNNING     = 1
	TERMINATING = 2
	TERMINATED  = 3
)

// AsyncPool is a bounded executor: tasks are buffered on a channel and
// consumed by a fixed set of worker goroutines. Scheduling blocks once the
// buffer is full, and panics after the pool has been stopped.
type AsyncPool struct {
	id            string
	rwLock        sync.RWMutex
	channel       chan Task
	numWorkers    int
	status        int
	verbose       bool
	numGoroutines int32
	terminated    *WaitLock
	logger        logging.Logger
}

func NewAsyncPool(id string, maxPoolSize, workerSize int) *AsyncPool {
	return &AsyncPool{
		id:         id,
		channel:    make(chan Task, getInRangeInt(maxPoolSize, 16, 2048)),
		numWorkers: getInRangeInt(workerSize, 2, 1024),
		status:     IDLE,
		terminated: NewWaitLock(),
		logger:     logging.GlobalLogger.WithPrefix("pool-" + id),
	}
}

func (p *AsyncPool) getStatus() int {
	p.rwLock.RLock()
	defer p.rwLock.RUnlock()
	return p.status
}

func (p *AsyncPool) setStatus(status int) {
	p.rwLock.Lock()
	defer p.rwLock.Unlock()
	if status >= IDLE && status <= TERMINATED {
		p.status = status
		if p.verbose {
			p.logger.Debugf("pool status has transited to %d", status)
		}
	}
}

func (p *AsyncPool) HasStarted() bool {
	return p.getStatus() > IDLE
}

func (p *AsyncPool) isRunning() bool {
	return p.getStatus() == RUNNING
}

func (p *AsyncPool) isVerbose() bool {
	p.rwLock.RLock()
	defer p.rwLock.RUnlock()
	return p.verbose
}

func (p *AsyncPool) Start() {
	if p.getStatus() > IDLE {
		return
	}
	p.setStatus(RUNNING)
	go func() {
		// worker manager routine
		p.incrementGoroutineCount()
		var wg sync.WaitGroup
		for i := 0; i < p.numWorkers; i++ {
			wg.Add(1)
			go func(wi int) {
				p.incrementGoroutineCount()
				for task := range p.channel {
					p.runTask(wi, task)
				}
				if p.isVerbose() {
					p.logger.Debugf("worker %d terminated", wi)
				}
				wg.Done()
			}(i)
		}
		wg.Wait()
		p.setStatus(TERMINATED)
		p.terminated.Open()
	}()
}

func (p *AsyncPool) runTask(wi int, task Task) {
	defer func() {
		if recovered := recover(); recovered != nil {
			p.logger.Errorf("worker %d recovered from task panic: %v", wi, recovered)
		}
	}()
	if p.isVerbose() {
		p.logger.Debugf("worker %d has acquired a task", wi)
	}
	task()
}

// Stop closes the task channel, waits for the workers to drain it and
// terminates the pool. The pool can not be restarted.
func (p *AsyncPool) Stop() {
	if !p.HasStarted() {
		p.logger.Warn("stop requested on a pool that has not started")
		return
	}
	if p.getStatus() >= TERMINATING {
		p.terminated.Wait()
		return
	}
	p.setStatus(TERMINATING)
	close(p.channel)
	p.terminated.Wait()
}

// Schedule enqueues the task, starting the pool on first use. It blocks when
// the task buffer is full and panics if the pool has been stopped.
func (p *AsyncPool) Schedule(task Task) {
	if !p.HasStarted() {
		p.Start()
	}
	p.channel <- task
}

// Execute satisfies the Executor contract.
func (p *AsyncPool) Execute(task func()) {
	p.Schedule(task)
}

func (p *AsyncPool) Verbose(verbose bool) {
	p.rwLock.Lock()
	p.verbose = verbose
	p.rwLock.Unlock()
}

func (p *AsyncPool) NumWorkers() int {
	return p.numWorkers
}

func (p *AsyncPool) NumPendingTasks() int {
	return len(p.channel)
}

func (p *AsyncPool) NumGoroutineInitiated() int32 {
	return atomic.LoadInt32(&p.numGoroutines)
}

func (p *AsyncPool) incrementGoroutineCount() {
	atomic.AddInt32(&p.numGoroutines, 1)
}

func getInRangeInt(value, min, max int) int {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}
