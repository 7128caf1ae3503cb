package cart

import (
	"time"

	"storefront-sync-api/internal/model"
)

// Item is a cart line: a product snapshot plus cart-local fields. Quantity
// is the user-requested amount and shadows the embedded product's server
// field of the same name; LastSynchronized is the client-local time of the
// last successful reconciliation, distinct from the server's LastUpdated
// version marker.
type Item struct {
	model.Product
	Quantity         int       `json:"quantity"`
	LastSynchronized time.Time `json:"lastSynchronized"`
}

// Subtotal returns the line total at the effective price.
func (i Item) Subtotal() float64 {
	return i.Price.Effective() * float64(i.Quantity)
}
