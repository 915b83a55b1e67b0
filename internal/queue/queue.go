// Package queue implements the bounded producer/consumer work queue that
// hands discovered files to the worker pool (spec.md §3 "Work queue",
// §4.7). It is grounded on original_source/grep.c's workqueue: a capacity
// bound (grep.c's max_queued_files) backed there by a mutex/condvar pair
// and here by a buffered Go channel, which gives the same bounded-FIFO,
// blocking-producer-when-full, blocking-consumer-when-empty semantics for
// free.
package queue

import "github.com/snonux/pgrep/internal/scanerr"

// defaultCapacity is used when RLIMIT_NOFILE can't be determined.
const defaultCapacity = 256

// Item is one unit of work: a path discovered by internal/walk, not yet
// opened. Opening happens in the worker (spec.md §4.7 "Worker pool"), so a
// full queue never holds open file descriptors.
type Item struct {
	Path string
	// IsStdin marks the "-" operand (spec.md §8): the worker reads os.Stdin
	// instead of opening Path.
	IsStdin bool
}

// Queue is a bounded FIFO of Items. The zero value is not usable; use New.
type Queue struct {
	ch chan Item
}

// New builds a Queue with the given capacity, grounded on grep.c's
// max_queued_files (itself derived from RLIMIT_NOFILE/2 by
// internal/queue.Capacity).
func New(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{ch: make(chan Item, capacity)}
}

// Enqueue adds an item, blocking while the queue is full (grep.c's
// enqueue_workfile waiting on producer_cond).
func (q *Queue) Enqueue(item Item) {
	q.ch <- item
}

// Finish signals that no more items will be enqueued (grep.c's
// finish_workqueue). Consumers see this once the queue drains, via
// Dequeue's second return value.
func (q *Queue) Finish() {
	close(q.ch)
}

// Dequeue retrieves the next item, returning ok=false once Finish has been
// called and the queue is empty (grep.c's dequeue_workfile returning NULL).
func (q *Queue) Dequeue() (Item, bool) {
	item, ok := <-q.ch
	return item, ok
}

// ErrQueueCapacity is returned by Capacity when RLIMIT_NOFILE can't be
// read; callers fall back to a fixed default instead of treating this as
// fatal (spec.md §7 taxonomy reserves Fatal errors for conditions that
// actually prevent the invocation from proceeding).
var ErrQueueCapacity = scanerr.Wrap(scanerr.ErrFileStat, "reading RLIMIT_NOFILE")
