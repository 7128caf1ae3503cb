package client

import (
	"errors"
	"fmt"

	"storefront-sync-api/internal/model"
)

// Sentinel errors classifying fetch failures. A nil product with a nil
// error always means "unchanged, keep your local copy"; failures are never
// folded into that signal.
var (
	// ErrNotFound means the id has no corresponding product on the server.
	ErrNotFound = errors.New("product not found")

	// ErrNetwork means the request could not complete.
	ErrNetwork = errors.New("network failure")

	// ErrBadResponse means the response body could not be decoded.
	ErrBadResponse = errors.New("malformed response")
)

// ConflictError reports a server-rejected write. Item carries the
// authoritative current product so the caller can decide whether to
// re-apply its intent. Conflicts are never retried automatically.
type ConflictError struct {
	ID      string
	Item    *model.Product
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("conflict on product %s: %s", e.ID, e.Message)
	}
	return fmt.Sprintf("conflict on product %s", e.ID)
}
