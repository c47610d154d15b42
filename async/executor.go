package async

// Task is a zero-argument unit of work accepted by an Executor.
type Task = func()

// Executor accepts a unit of work for asynchronous execution. Whether tasks
// are serialized or parallelized is up to the implementation.
type Executor interface {
	Execute(task func())
}

type directExecutor uint8

func (e directExecutor) Execute(task func()) {
	task()
}

type goExecutor uint8

func (e goExecutor) Execute(task func()) {
	go task()
}

const (
	// DirectExecutor runs tasks inline on the calling goroutine.
	DirectExecutor directExecutor = 0
	// GoExecutor runs each task on a fresh goroutine.
	GoExecutor goExecutor = 0
)
