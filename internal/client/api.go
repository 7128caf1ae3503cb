package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-sync-api/internal/model"
)

// API is an HTTP client for the inventory service wire contract.
type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI creates an inventory API client.
func NewAPI(baseURL string, timeout time.Duration) *API {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &API{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// do issues a request and maps transport and status failures onto the
// client error taxonomy.
func (a *API) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode >= 400:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s %s returned %d", ErrNetwork, method, path, resp.StatusCode)
	}

	return resp, nil
}

// decode reads a JSON body into out, classifying failures as ErrBadResponse.
func decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

// FetchCatalog retrieves the full product catalog.
func (a *API) FetchCatalog(ctx context.Context) ([]model.Product, error) {
	resp, err := a.do(ctx, http.MethodGet, "/inventory", nil)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := decode(resp, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchProduct performs the conditional fetch protocol for one product.
// lastUpdated carries the caller's last-known version; the server replies
// null when that version is still current, in which case (nil, nil) is
// returned and the caller keeps its local copy. A nil product with a
// non-nil error is always a failure, never "unchanged".
func (a *API) FetchProduct(ctx context.Context, id, lastUpdated string) (*model.Product, error) {
	resp, err := a.do(ctx, http.MethodPost, "/inventory/"+id,
		model.ConditionalRequest{LastUpdated: lastUpdated})
	if err != nil {
		return nil, err
	}

	var product *model.Product
	if err := decode(resp, &product); err != nil {
		return nil, err
	}
	return product, nil
}

// ProbeTimestamp retrieves only a product's current version marker.
func (a *API) ProbeTimestamp(ctx context.Context, id string) (string, error) {
	resp, err := a.do(ctx, http.MethodGet, "/inventory/"+id+"/timestamp", nil)
	if err != nil {
		return "", err
	}

	var ts model.Timestamp
	if err := decode(resp, &ts); err != nil {
		return "", err
	}
	return ts.LastUpdated, nil
}

// UpdateMaxQuantity sends a compare-and-swap availability write. A conflict
// is a domain outcome, not a transport failure: it is reported through the
// returned PatchResult, with the authoritative item attached.
func (a *API) UpdateMaxQuantity(ctx context.Context, id string, maxQuantity int, lastUpdated string) (*model.PatchResult, error) {
	resp, err := a.do(ctx, http.MethodPatch, "/inventory/"+id,
		model.PatchRequest{MaxQuantity: maxQuantity, LastUpdated: lastUpdated})
	if err != nil {
		return nil, err
	}

	var result model.PatchResult
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateProduct adds a new product to the catalog.
func (a *API) CreateProduct(ctx context.Context, input model.CreateProductInput) (*model.Product, error) {
	resp, err := a.do(ctx, http.MethodPost, "/inventory", input)
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := decode(resp, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
