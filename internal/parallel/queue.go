package parallel

import (
	"errors"
	"sync"
)

// ErrQueueFull is returned by a worker that could not hand children back to
// a capped work queue. Only that worker stops.
var ErrQueueFull = errors.New("parallel: work queue full")

// workQueue is a FIFO shared by all workers. It grows without bound unless
// limit is positive. ready holds a token whenever items may be waiting.
type workQueue struct {
	mu    sync.Mutex
	items []workItem
	limit int
	ready chan struct{}
}

func newWorkQueue(limit int) *workQueue {
	return &workQueue{limit: limit, ready: make(chan struct{}, 1)}
}

// seed appends items without checking the limit.
func (q *workQueue) seed(items ...workItem) {
	q.mu.Lock()
	q.items = append(q.items, items...)
	q.mu.Unlock()
	q.signal()
}

func (q *workQueue) push(it workItem) error {
	q.mu.Lock()
	if q.limit > 0 && len(q.items) >= q.limit {
		q.mu.Unlock()
		return ErrQueueFull
	}
	q.items = append(q.items, it)
	q.mu.Unlock()
	q.signal()
	return nil
}

// pop takes the oldest item. It passes the wake-up on while items remain so
// that other waiting workers are not starved.
func (q *workQueue) pop() (workItem, bool) {
	q.mu.Lock()
	if len(q.items) == 0 {
		q.mu.Unlock()
		return workItem{}, false
	}
	it := q.items[0]
	q.items[0] = workItem{}
	q.items = q.items[1:]
	more := len(q.items) > 0
	q.mu.Unlock()
	if more {
		q.signal()
	}
	return it, true
}

func (q *workQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *workQueue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
