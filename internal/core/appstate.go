package core

import "github.com/google/uuid"

// AppState holds the last-selected month/year filter so it survives across
// sessions. Exactly one instance ever exists in the store, kept under a
// well-known fixed id by the state repository.
type AppState struct {
	ID    uuid.UUID `json:"id"`
	Month int       `json:"month"`
	Year  int       `json:"year"`
}

func (s AppState) DocID() uuid.UUID { return s.ID }

func (s AppState) WithDocID(id uuid.UUID) AppState {
	s.ID = id
	return s
}
