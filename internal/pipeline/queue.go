package pipeline

import (
	"sync"
	"time"
)

// Queue is an unbounded FIFO hand-off between the segmentation path and the
// transcription worker. Beyond enqueue/dequeue it tracks completion: an item
// counts as outstanding from Put until the consumer calls TaskDone, so Join
// blocks until every enqueued item has finished processing, not merely been
// dequeued.
type Queue[T any] struct {
	mu          sync.Mutex
	cond        *sync.Cond
	items       []T
	outstanding int
}

func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Put appends an item to the back of the queue.
func (q *Queue[T]) Put(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.outstanding++
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Get removes and returns the front item, waiting up to timeout when the
// queue is empty. The boolean is false on timeout.
func (q *Queue[T]) Get(timeout time.Duration) (T, bool) {
	deadline := time.Now().Add(timeout)

	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			var zero T
			return zero, false
		}
		timer := time.AfterFunc(remaining, q.cond.Broadcast)
		q.cond.Wait()
		timer.Stop()
	}

	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// TaskDone marks one previously dequeued item as fully processed.
func (q *Queue[T]) TaskDone() {
	q.mu.Lock()
	if q.outstanding > 0 {
		q.outstanding--
	}
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Join blocks until every item ever Put has been marked done. Items enqueued
// while draining extend the wait.
func (q *Queue[T]) Join() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.outstanding > 0 {
		q.cond.Wait()
	}
}

// Len returns the number of items waiting to be dequeued.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
