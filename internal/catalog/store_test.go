package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-sync-api/internal/client"
	"storefront-sync-api/internal/model"
)

// stubAPI scripts catalog and patch responses for view tests.
type stubAPI struct {
	catalog     []model.Product
	catalogErr  error
	patchResult *model.PatchResult
	patchErr    error
	patchCalls  int
	lastVersion string
}

func (a *stubAPI) FetchCatalog(ctx context.Context) ([]model.Product, error) {
	if a.catalogErr != nil {
		return nil, a.catalogErr
	}
	out := make([]model.Product, len(a.catalog))
	copy(out, a.catalog)
	return out, nil
}

func (a *stubAPI) UpdateMaxQuantity(ctx context.Context, id string, maxQuantity int, lastUpdated string) (*model.PatchResult, error) {
	a.patchCalls++
	a.lastVersion = lastUpdated
	if a.patchErr != nil {
		return nil, a.patchErr
	}
	return a.patchResult, nil
}

func seededView(t *testing.T, api *stubAPI) *Store {
	t.Helper()
	s := NewStore(api)
	require.NotNil(t, s)
	require.NoError(t, s.SyncWithServer(context.Background()))
	return s
}

func TestSyncWithServerReplacesView(t *testing.T) {
	api := &stubAPI{catalog: []model.Product{
		{ID: "1", Name: "Coffee", MaxQuantity: 50, LastUpdated: "v1"},
		{ID: "2", Name: "Tea", MaxQuantity: 20, LastUpdated: "v1"},
	}}
	s := seededView(t, api)

	assert.Len(t, s.Items(), 2)
	st := s.Status()
	assert.False(t, st.LastSynced.IsZero())
	assert.False(t, st.Syncing)
	assert.Empty(t, st.Conflicts)
}

func TestSyncFailureKeepsOldView(t *testing.T) {
	api := &stubAPI{catalog: []model.Product{{ID: "1", LastUpdated: "v1"}}}
	s := seededView(t, api)

	api.catalogErr = errors.New("connection refused")
	require.Error(t, s.SyncWithServer(context.Background()))

	assert.Len(t, s.Items(), 1, "failed sync leaves the previous view intact")
	assert.False(t, s.Status().Syncing)
}

func TestUpdateMaxQuantitySendsKnownVersion(t *testing.T) {
	api := &stubAPI{
		catalog: []model.Product{{ID: "1", MaxQuantity: 50, LastUpdated: "v1"}},
		patchResult: &model.PatchResult{
			Item: &model.Product{ID: "1", MaxQuantity: 60, LastUpdated: "v2"},
		},
	}
	s := seededView(t, api)

	require.NoError(t, s.UpdateMaxQuantity(context.Background(), "1", 60))

	assert.Equal(t, "v1", api.lastVersion, "the view's version marker rides along")
	p, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, 60, p.MaxQuantity)
	assert.Equal(t, "v2", p.LastUpdated, "server-issued version adopted")
}

func TestUpdateMaxQuantityConflictAdoptsServerState(t *testing.T) {
	authoritative := &model.Product{ID: "1", MaxQuantity: 30, LastUpdated: "v9"}
	api := &stubAPI{
		catalog:     []model.Product{{ID: "1", MaxQuantity: 50, LastUpdated: "v1"}},
		patchResult: &model.PatchResult{Conflict: true, Item: authoritative, Message: "stale version"},
	}
	s := seededView(t, api)

	err := s.UpdateMaxQuantity(context.Background(), "1", 60)
	require.Error(t, err)

	var conflict *client.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "1", conflict.ID)
	require.NotNil(t, conflict.Item)
	assert.Equal(t, "v9", conflict.Item.LastUpdated)

	// The optimistic value is gone; the server's item is what remains.
	p, _ := s.Get("1")
	assert.Equal(t, 30, p.MaxQuantity)
	assert.Equal(t, "v9", p.LastUpdated)

	assert.Equal(t, []string{"1"}, s.Status().Conflicts)
	assert.Equal(t, 1, api.patchCalls, "conflicts are not retried automatically")
}

func TestUpdateMaxQuantityConflictWithoutItemRollsBack(t *testing.T) {
	api := &stubAPI{
		catalog:     []model.Product{{ID: "1", MaxQuantity: 50, LastUpdated: "v1"}},
		patchResult: &model.PatchResult{Conflict: true, Message: "stale version"},
	}
	s := seededView(t, api)

	err := s.UpdateMaxQuantity(context.Background(), "1", 60)
	require.Error(t, err)

	// Item is optional on the wire; the error must still format safely and
	// the optimistic value must be rolled back.
	var conflict *client.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Nil(t, conflict.Item)
	assert.Contains(t, conflict.Error(), "stale version")

	p, _ := s.Get("1")
	assert.Equal(t, 50, p.MaxQuantity)
	assert.Equal(t, []string{"1"}, s.Status().Conflicts)
}

func TestUpdateMaxQuantityNetworkFailureRollsBack(t *testing.T) {
	api := &stubAPI{
		catalog:  []model.Product{{ID: "1", MaxQuantity: 50, LastUpdated: "v1"}},
		patchErr: errors.New("dial tcp: connection refused"),
	}
	s := seededView(t, api)

	err := s.UpdateMaxQuantity(context.Background(), "1", 60)
	require.Error(t, err)

	p, _ := s.Get("1")
	assert.Equal(t, 50, p.MaxQuantity, "optimistic value rolled back")
	assert.Empty(t, s.Status().Conflicts, "a transport failure is not a conflict")
}

func TestUpdateMaxQuantityUnknownID(t *testing.T) {
	api := &stubAPI{catalog: []model.Product{{ID: "1", LastUpdated: "v1"}}}
	s := seededView(t, api)

	err := s.UpdateMaxQuantity(context.Background(), "missing", 10)
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Zero(t, api.patchCalls)
}
