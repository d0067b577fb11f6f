package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
)

// appStateID is the well-known key of the singleton state document. Keeping
// the singleton a fixed-key lookup lets it ride the same collection
// machinery as every other aggregate.
var appStateID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

// AppStates persists the single ui-state document in the app_state
// collection.
type AppStates struct {
	col *Collection[core.AppState]
	now func() time.Time
}

func NewAppStates(store *Store) *AppStates {
	return &AppStates{
		col: NewCollection[core.AppState](store, AppStateCollection),
		now: time.Now,
	}
}

// Get returns the singleton state. On first read it constructs a default
// for the current month and year, persists it and returns it.
func (r *AppStates) Get(ctx context.Context) (core.AppState, error) {
	state, err := r.col.GetByID(ctx, appStateID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return core.AppState{}, fmt.Errorf("get app state: %w", err)
	}

	return r.Reset(ctx)
}

// Save overwrites the singleton. The id is forced to the fixed key so a
// second instance can never appear.
func (r *AppStates) Save(ctx context.Context, state core.AppState) (core.AppState, error) {
	state.ID = appStateID

	saved, _, err := r.col.Upsert(ctx, state)
	if err != nil {
		return core.AppState{}, fmt.Errorf("save app state: %w", err)
	}

	return saved, nil
}

// Reset moves the persisted filter back to the current real-world month and
// year.
func (r *AppStates) Reset(ctx context.Context) (core.AppState, error) {
	now := r.now()
	return r.Save(ctx, core.AppState{
		Month: int(now.Month()),
		Year:  now.Year(),
	})
}
