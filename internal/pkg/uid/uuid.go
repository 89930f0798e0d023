package uid

import "github.com/google/uuid"

// UUID produces RFC 4122 identifier strings, preferring the time-ordered
// v7 form so ids sort roughly by creation time.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	// v7 only fails when the randomness source does; fall back to v4.
	return uuid.NewString()
}
