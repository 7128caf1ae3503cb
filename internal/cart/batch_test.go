package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingUpdater captures every applied update, optionally stalling to
// widen the batch window.
type recordingUpdater struct {
	mu      sync.Mutex
	applied map[string][]int
	stall   time.Duration
}

func newRecordingUpdater(stall time.Duration) *recordingUpdater {
	return &recordingUpdater{applied: make(map[string][]int), stall: stall}
}

func (u *recordingUpdater) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if u.stall > 0 {
		time.Sleep(u.stall)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.applied[id] = append(u.applied[id], quantity)
	return nil
}

func (u *recordingUpdater) history(id string) []int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]int(nil), u.applied[id]...)
}

func TestQueueUpdateAppliesLatestValue(t *testing.T) {
	updater := newRecordingUpdater(20 * time.Millisecond)
	q := NewBatchUpdateQueue(updater)
	require.NotNil(t, q)

	// The second update lands while the first flush is stalling, so it is
	// picked up by the next cycle; the last value queued must win.
	q.QueueUpdate("1", 3)
	q.QueueUpdate("1", 5)
	q.Wait()

	history := updater.history("1")
	require.NotEmpty(t, history)
	assert.Equal(t, 5, history[len(history)-1])
	assert.Zero(t, q.PendingCount())
}

func TestQueueUpdateNeverDropsDistinctIDs(t *testing.T) {
	updater := newRecordingUpdater(0)
	q := NewBatchUpdateQueue(updater)

	q.QueueUpdate("1", 1)
	q.QueueUpdate("2", 2)
	q.QueueUpdate("3", 3)
	q.Wait()

	assert.Equal(t, []int{1}, updater.history("1"))
	assert.Equal(t, []int{2}, updater.history("2"))
	assert.Equal(t, []int{3}, updater.history("3"))
}

func TestConcurrentQueueingIsNeverStranded(t *testing.T) {
	updater := newRecordingUpdater(time.Millisecond)
	q := NewBatchUpdateQueue(updater)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			q.QueueUpdate("1", n)
		}(i)
	}
	wg.Wait()
	q.Wait()

	history := updater.history("1")
	require.NotEmpty(t, history, "queued updates must eventually flush")
	assert.Zero(t, q.PendingCount())
}

func TestBatchQueueDrivesCartStore(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := newTestStore(t, fetcher)
	q := NewBatchUpdateQueue(s)

	s.AddToCart(context.Background(), testProduct(), 1)

	q.QueueUpdate("1", 4)
	q.Wait()

	it, ok := s.GetCartItem("1")
	require.True(t, ok)
	assert.Equal(t, 4, it.Quantity)
}
