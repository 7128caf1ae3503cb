package model

// Badge is a promotional label attached to a product card.
type Badge struct {
	Title           string `json:"title"`
	BackgroundColor string `json:"background_color"`
}

// Category groups products for filtering.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Price holds the normal price and an optional special (sale) price.
type Price struct {
	Normal  float64 `json:"normal"`
	Special float64 `json:"special"`
}

// Effective returns the special price when present and non-zero,
// otherwise the normal price.
func (p Price) Effective() float64 {
	if p.Special > 0 {
		return p.Special
	}
	return p.Normal
}

// Product is a catalog item. The server owns it; clients hold cached
// snapshots. LastUpdated is the server-assigned version marker and the
// sole field used to detect staleness.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ImageURL    string   `json:"imageUrl"`
	MaxQuantity int      `json:"maxQuantity"`
	Quantity    int      `json:"quantity"`
	LastUpdated string   `json:"lastUpdated"`
	Badges      []Badge  `json:"badges"`
	Price       Price    `json:"price"`
	Variants    []string `json:"variants"`
	Category    Category `json:"category"`
	InStock     bool     `json:"in_stock"`
}

// ConditionalRequest is the body of a conditional single-product fetch.
// The server replies null when LastUpdated matches its current value.
type ConditionalRequest struct {
	LastUpdated string `json:"lastUpdated"`
}

// PatchRequest asks the server to change a product's availability ceiling.
// LastUpdated carries the caller's last-known version for conflict detection.
type PatchRequest struct {
	MaxQuantity int    `json:"maxQuantity"`
	LastUpdated string `json:"lastUpdated"`
}

// PatchResult is the server's reply to a PatchRequest. Conflict means the
// server's state diverged from the caller's assumption; Item then carries
// the authoritative current product.
type PatchResult struct {
	Conflict bool     `json:"conflict"`
	Item     *Product `json:"item,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// Timestamp is the cheap staleness probe response.
type Timestamp struct {
	LastUpdated string `json:"lastUpdated"`
}

// CreateProductInput is the body for creating a new catalog product.
type CreateProductInput struct {
	Name     string   `json:"name"`
	ImageURL string   `json:"imageUrl"`
	Quantity int      `json:"quantity"`
	Price    Price    `json:"price"`
	Variants []string `json:"variants"`
	Category Category `json:"category"`
}
