package ingest

import (
	"context"
	"sync"
)

// DefaultQueueSize is the job buffer used when no size is given.
const DefaultQueueSize = 64

// Queue serializes ingestion jobs through a single background worker,
// so two uploads of the same document can never interleave their writes.
type Queue struct {
	pipeline *Pipeline
	jobs     chan string
	wg       sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewQueue creates a queue with the given buffer size and starts its
// worker.
func NewQueue(pipeline *Pipeline, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	q := &Queue{
		pipeline: pipeline,
		jobs:     make(chan string, size),
	}
	q.wg.Add(1)
	go q.worker()
	return q
}

// Enqueue marks the document pending and hands it to the worker. It
// returns once the job is queued, not when ingestion finishes.
func (q *Queue) Enqueue(ctx context.Context, filename string) error {
	if err := q.pipeline.MarkPending(ctx, filename); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.pipeline.MarkFailed(ctx, filename, context.Canceled)
		return context.Canceled
	}
	q.jobs <- filename
	return nil
}

// Close stops accepting jobs and waits for the queued ones to drain.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for filename := range q.jobs {
		// Jobs outlive the request that queued them.
		ctx := context.Background()
		if _, err := q.pipeline.Ingest(ctx, filename); err != nil {
			q.pipeline.getLogger(ctx).ErrorContext(ctx, "ingestion failed",
				"filename", filename, "error", err)
			q.pipeline.MarkFailed(ctx, filename, err)
		}
	}
}
