package core

import "github.com/google/uuid"

// Document is implemented by every persisted aggregate. WithDocID returns a
// copy with the id set, so the storage layer can assign identities without
// mutating the caller's value.
type Document[T any] interface {
	DocID() uuid.UUID
	WithDocID(id uuid.UUID) T
}
