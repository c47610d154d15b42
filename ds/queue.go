package ds

import (
	"sync"
	"sync/atomic"
)

// Queue is a thread-safe FIFO queue.
type Queue[T any] interface {
	Enqueue(T)
	Dequeue() (T, bool)
	Peek() (T, bool)
	Size() int
	IsEmpty() bool
}

type queueNode[T any] struct {
	val  T
	next *queueNode[T]
}

type safeQueue[T any] struct {
	mutex sync.Mutex
	head  *queueNode[T]
	tail  *queueNode[T]
	size  int32
}

func NewSafeQueue[T any]() Queue[T] {
	return &safeQueue[T]{}
}

func (q *safeQueue[T]) Enqueue(val T) {
	node := &queueNode[T]{val: val}
	q.mutex.Lock()
	if q.tail == nil {
		q.head = node
		q.tail = node
	} else {
		q.tail.next = node
		q.tail = node
	}
	q.mutex.Unlock()
	atomic.AddInt32(&q.size, 1)
}

func (q *safeQueue[T]) Dequeue() (T, bool) {
	var val T
	q.mutex.Lock()
	if q.head == nil {
		q.mutex.Unlock()
		return val, false
	}
	val = q.head.val
	q.head = q.head.next
	if q.head == nil {
		q.tail = nil
	}
	q.mutex.Unlock()
	atomic.AddInt32(&q.size, -1)
	return val, true
}

func (q *safeQueue[T]) Peek() (T, bool) {
	var val T
	q.mutex.Lock()
	if q.head == nil {
		q.mutex.Unlock()
		return val, false
	}
	val = q.head.val
	q.mutex.Unlock()
	return val, true
}

func (q *safeQueue[T]) Size() int {
	return int(atomic.LoadInt32(&q.size))
}

func (q *safeQueue[T]) IsEmpty() bool {
	return q.Size() == 0
}
