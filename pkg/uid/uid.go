package uid

import "github.com/google/uuid"

// New returns a fresh identifier, used for request ids and server-assigned
// product ids. Seeded catalog products keep their short numeric ids, so
// callers must not assume UUID shape.
func New() string {
	return uuid.New().String()
}
