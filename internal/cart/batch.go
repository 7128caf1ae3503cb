package cart

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

// QuantityUpdater applies a reconciled quantity change for one product.
type QuantityUpdater interface {
	UpdateQuantity(ctx context.Context, id string, quantity int) error
}

// BatchUpdateQueue coalesces rapid successive quantity changes per product
// id and flushes them as a single reconciliation pass. Within one batch
// window the last queued quantity per id wins; a queued update is never
// dropped, only coalesced. Updates queued while a flush is running land in
// the next flush cycle.
type BatchUpdateQueue struct {
	updater QuantityUpdater

	mu       sync.Mutex
	pending  map[string]int
	flushing bool
	wg       sync.WaitGroup
}

// NewBatchUpdateQueue creates a batch queue draining into the given updater.
// Returns nil if updater is nil (required dependency).
func NewBatchUpdateQueue(updater QuantityUpdater) *BatchUpdateQueue {
	if updater == nil {
		return nil
	}
	return &BatchUpdateQueue{
		updater: updater,
		pending: make(map[string]int),
	}
}

// QueueUpdate records a pending quantity for a product id, overwriting any
// earlier pending value for the same id, and triggers a flush if none is
// running.
func (q *BatchUpdateQueue) QueueUpdate(id string, quantity int) {
	q.mu.Lock()
	q.pending[id] = quantity
	if q.flushing {
		q.mu.Unlock()
		return
	}
	q.flushing = true
	q.wg.Add(1)
	q.mu.Unlock()

	go func() {
		defer q.wg.Done()
		q.drain(context.Background())
	}()
}

// drain repeatedly swaps out the pending map and applies one update per
// distinct id concurrently, until no updates remain. The emptiness check
// and the flushing flag reset share one critical section with QueueUpdate's
// insert, so an update queued mid-drain is either picked up by this cycle
// or starts a new flusher; it can never be stranded.
func (q *BatchUpdateQueue) drain(ctx context.Context) {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.flushing = false
			q.mu.Unlock()
			return
		}
		batch := q.pending
		q.pending = make(map[string]int, len(batch))
		q.mu.Unlock()

		var g errgroup.Group
		for id, quantity := range batch {
			id, quantity := id, quantity
			g.Go(func() error {
				return q.updater.UpdateQuantity(ctx, id, quantity)
			})
		}
		if err := g.Wait(); err != nil {
			log.Printf("[BatchUpdateQueue] Flush error: %v", err)
		}
	}
}

// Wait blocks until the currently running flush cycles finish. Intended
// for shutdown and tests.
func (q *BatchUpdateQueue) Wait() {
	q.wg.Wait()
}

// PendingCount reports how many distinct ids are queued but not yet flushed.
func (q *BatchUpdateQueue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}
