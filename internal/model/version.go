package model

import "time"

// NewVersion returns a fresh server-assigned version marker. Nanosecond
// precision keeps consecutive writes distinguishable; clients only ever
// compare versions for equality, never order them.
func NewVersion() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
