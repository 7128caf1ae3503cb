package cart

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-sync-api/internal/model"
)

// stubFetcher is a controllable ProductFetcher for cart tests.
type stubFetcher struct {
	mu      sync.Mutex
	product *model.Product
	err     error
	calls   int
}

func (f *stubFetcher) FetchProduct(ctx context.Context, id string) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.product == nil {
		return nil, nil
	}
	p := *f.product
	return &p, nil
}

func (f *stubFetcher) set(p *model.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.product = p
}

func testProduct() model.Product {
	return model.Product{
		ID:          "1",
		Name:        "Coffee Beans",
		MaxQuantity: 50,
		LastUpdated: "v1",
		Price:       model.Price{Normal: 19, Special: 0},
		InStock:     true,
	}
}

func newTestStore(t *testing.T, fetcher ProductFetcher) (*Store, *FileStore) {
	t.Helper()
	fs := NewFileStore(filepath.Join(t.TempDir(), "cart.json"))
	s := NewStore(fetcher, fs)
	require.NotNil(t, s)
	return s, fs
}

func TestAddThenRemoveScenario(t *testing.T) {
	fetcher := &stubFetcher{}
	s, fs := newTestStore(t, fetcher)
	ctx := context.Background()

	s.AddToCart(ctx, testProduct(), 2)

	assert.Equal(t, 2, s.ItemCount())
	assert.Equal(t, 38.0, s.Subtotal())

	require.NoError(t, s.UpdateQuantity(ctx, "1", 0))

	assert.Equal(t, 0, s.ItemCount())
	_, ok := s.GetCartItem("1")
	assert.False(t, ok)

	// Durable storage reflects the absence too.
	items, found, err := fs.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, items)
}

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := newTestStore(t, fetcher)
	ctx := context.Background()

	s.AddToCart(ctx, testProduct(), 1)
	s.AddToCart(ctx, testProduct(), 3)

	it, ok := s.GetCartItem("1")
	require.True(t, ok)
	assert.Equal(t, 4, it.Quantity)
	assert.Equal(t, 4, s.ItemCount())
}

func TestAddToCartRefreshesCeilingWithoutTouchingQuantity(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := newTestStore(t, fetcher)
	ctx := context.Background()

	s.AddToCart(ctx, testProduct(), 2)

	updated := testProduct()
	updated.MaxQuantity = 30
	updated.LastUpdated = "v2"
	fetcher.set(&updated)

	s.AddToCart(ctx, testProduct(), 1)

	it, ok := s.GetCartItem("1")
	require.True(t, ok)
	assert.Equal(t, 3, it.Quantity, "quantity accumulates independently of the refresh")
	assert.Equal(t, 30, it.MaxQuantity)
}

func TestAddToCartStampsSyncTimeOnAnyServerUpdate(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := newTestStore(t, fetcher)
	ctx := context.Background()

	s.AddToCart(ctx, testProduct(), 2)
	before, _ := s.GetCartItem("1")

	// The server reports an update whose ceiling happens to be unchanged
	// (say, a price-only change bumped the version marker).
	refreshed := testProduct()
	refreshed.LastUpdated = "v2"
	fetcher.set(&refreshed)

	time.Sleep(5 * time.Millisecond)
	s.AddToCart(ctx, testProduct(), 1)

	after, _ := s.GetCartItem("1")
	assert.Equal(t, 3, after.Quantity)
	assert.Equal(t, before.MaxQuantity, after.MaxQuantity)
	assert.True(t, after.LastSynchronized.After(before.LastSynchronized),
		"any non-nil fetch result refreshes the sync time")
}

func TestAddToCartFallsBackWhenFetchFails(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	s, _ := newTestStore(t, fetcher)
	ctx := context.Background()

	s.AddToCart(ctx, testProduct(), 2)

	it, ok := s.GetCartItem("1")
	require.True(t, ok, "cart action proceeds on fetch failure")
	assert.Equal(t, 2, it.Quantity)
	assert.Equal(t, 50, it.MaxQuantity, "caller snapshot used as fallback")
	assert.Contains(t, s.LastSyncError(), "connection refused")
}

func TestUpdateQuantityClampsToServerCeiling(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := newTestStore(t, fetcher)
	ctx := context.Background()

	s.AddToCart(ctx, testProduct(), 10)

	shrunk := testProduct()
	shrunk.MaxQuantity = 5
	shrunk.LastUpdated = "v2"
	fetcher.set(&shrunk)

	require.NoError(t, s.UpdateQuantity(ctx, "1", 10))

	it, ok := s.GetCartItem("1")
	require.True(t, ok)
	assert.Equal(t, 5, it.Quantity, "server authority wins when availability shrinks")
	assert.Equal(t, 5, it.MaxQuantity)
}

func TestUpdateQuantityUserIntentWinsUnderCeiling(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := newTestStore(t, fetcher)
	ctx := context.Background()

	s.AddToCart(ctx, testProduct(), 2)
	require.NoError(t, s.UpdateQuantity(ctx, "1", 7))

	it, _ := s.GetCartItem("1")
	assert.Equal(t, 7, it.Quantity)
}

func TestUpdateQuantityIdempotent(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := newTestStore(t, fetcher)
	ctx := context.Background()

	s.AddToCart(ctx, testProduct(), 2)

	require.NoError(t, s.UpdateQuantity(ctx, "1", 4))
	first := s.Items()

	require.NoError(t, s.UpdateQuantity(ctx, "1", 4))
	second := s.Items()

	require.Len(t, second, len(first))
	assert.Equal(t, first[0].Quantity, second[0].Quantity)
	assert.Equal(t, first[0].MaxQuantity, second[0].MaxQuantity)
}

func TestUpdateQuantityAbsentIsNoop(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := newTestStore(t, fetcher)

	require.NoError(t, s.UpdateQuantity(context.Background(), "missing", 3))
	assert.Zero(t, s.ItemCount())
	assert.Zero(t, fetcher.calls, "no fetch issued for an absent line")
}

func TestUnchangedFetchLeavesSyncFieldsAlone(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := newTestStore(t, fetcher)
	ctx := context.Background()

	s.AddToCart(ctx, testProduct(), 2)
	before, _ := s.GetCartItem("1")

	// stubFetcher returns (nil, nil): the "unchanged" signal.
	require.NoError(t, s.UpdateQuantity(ctx, "1", 3))

	after, _ := s.GetCartItem("1")
	assert.Equal(t, 3, after.Quantity)
	assert.Equal(t, before.MaxQuantity, after.MaxQuantity)
	assert.Equal(t, before.LastSynchronized, after.LastSynchronized)
}

func TestEffectivePriceUsesSpecial(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := newTestStore(t, fetcher)
	ctx := context.Background()

	sale := testProduct()
	sale.ID = "2"
	sale.Price = model.Price{Normal: 24, Special: 19}
	s.AddToCart(ctx, sale, 2)

	assert.Equal(t, 38.0, s.Subtotal())
}

func TestFoldInvariantsAcrossOperations(t *testing.T) {
	fetcher := &stubFetcher{}
	s, _ := newTestStore(t, fetcher)
	ctx := context.Background()

	check := func() {
		t.Helper()
		var count int
		var subtotal float64
		for _, it := range s.Items() {
			count += it.Quantity
			subtotal += it.Price.Effective() * float64(it.Quantity)
			assert.Positive(t, it.Quantity, "no zero-quantity lines")
		}
		assert.Equal(t, count, s.ItemCount())
		assert.Equal(t, subtotal, s.Subtotal())
	}

	p1 := testProduct()
	p2 := testProduct()
	p2.ID = "2"
	p2.Price = model.Price{Normal: 10}

	s.AddToCart(ctx, p1, 2)
	check()
	s.AddToCart(ctx, p2, 5)
	check()
	require.NoError(t, s.UpdateQuantity(ctx, "2", 1))
	check()
	s.RemoveFromCart("1")
	check()
	require.NoError(t, s.UpdateQuantity(ctx, "2", 0))
	check()
	assert.Zero(t, s.ItemCount())
}
