package person

import "github.com/google/uuid"

// ID is the opaque, time-ordered identifier of a Person aggregate. A
// version-7 UUID gives ordering by generation time without requiring it for
// event ordering, which is governed by version instead.
type ID uuid.UUID

// NewID generates a fresh, time-ordered person identifier.
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the system clock/rand source is broken; fall
		// back to a random v4 rather than panic on a pure-looking call.
		return ID(uuid.New())
	}
	return ID(id)
}

func (id ID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id is the nil UUID.
func (id ID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// ParseID parses a canonical UUID string into an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, err
	}
	return ID(u), nil
}
