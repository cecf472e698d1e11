package projection

import "time"

// Metadata captures persistence bookkeeping shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	// Sequence orders records created within the same clock tick.
	Sequence int64
}

// Projection represents a stored entity plus persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// NewerFirst reports whether a sorts before b in a newest-first listing.
func NewerFirst(a, b Metadata) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.Sequence > b.Sequence
}
