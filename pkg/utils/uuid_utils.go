package utils

import (
	"github.com/google/uuid"
)

// ParseUUID parses a UUID from its string form.
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

var newUUIDv7 = uuid.NewV7

// GenerateUUIDv7 generates a new UUID v7. Time-ordered ids keep investment
// listings index-friendly under created_at ordering.
func GenerateUUIDv7() uuid.UUID {
	id, err := newUUIDv7()
	if err != nil {
		// Fallback to v4 if v7 fails (highly unlikely)
		return uuid.New()
	}
	return id
}
