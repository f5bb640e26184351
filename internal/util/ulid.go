package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string from crypto/rand entropy.
func NewULID() string {
	return ulid.Make().String()
}

// IsValidULID reports whether s parses as a ULID.
func IsValidULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
