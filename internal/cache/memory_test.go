package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGetDelete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, ok := c.Get(ctx, "1")
	assert.False(t, ok)

	entry := Entry{LastUpdated: "v1", MaxQuantity: 50, FetchedAt: time.Now()}
	c.Set(ctx, "1", entry)

	got, ok := c.Get(ctx, "1")
	require.True(t, ok)
	assert.Equal(t, "v1", got.LastUpdated)
	assert.Equal(t, 50, got.MaxQuantity)

	c.Delete(ctx, "1")
	_, ok = c.Get(ctx, "1")
	assert.False(t, ok)
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "1", Entry{LastUpdated: "v1", MaxQuantity: 50})
	c.Set(ctx, "1", Entry{LastUpdated: "v2", MaxQuantity: 5})

	got, ok := c.Get(ctx, "1")
	require.True(t, ok)
	assert.Equal(t, "v2", got.LastUpdated)
	assert.Equal(t, 5, got.MaxQuantity)
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Set(ctx, "1", Entry{LastUpdated: "v1", MaxQuantity: 50})
		}()
		go func() {
			defer wg.Done()
			c.Get(ctx, "1")
		}()
	}
	wg.Wait()

	got, ok := c.Get(ctx, "1")
	require.True(t, ok)
	assert.Equal(t, "v1", got.LastUpdated)
}
