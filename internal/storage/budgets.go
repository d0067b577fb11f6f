package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
	"bilancio/internal/log"
)

// Budgets persists Budget aggregates in the budgets collection.
type Budgets struct {
	col *Collection[core.Budget]
	now func() time.Time
}

func NewBudgets(store *Store) *Budgets {
	return &Budgets{
		col: NewCollection[core.Budget](store, BudgetCollection),
		now: time.Now,
	}
}

// All returns every budget, ordered by creation date ascending.
func (r *Budgets) All(ctx context.Context) ([]core.Budget, error) {
	budgets, err := r.col.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].CreatedAt.Before(budgets[j].CreatedAt)
	})

	return budgets, nil
}

// Latest returns the most recently saved budget, decided by LastSavedAt
// rather than creation date. It reports ErrNotFound on an empty store.
func (r *Budgets) Latest(ctx context.Context) (core.Budget, error) {
	budgets, err := r.col.List(ctx)
	if err != nil {
		return core.Budget{}, fmt.Errorf("list budgets: %w", err)
	}
	if len(budgets) == 0 {
		return core.Budget{}, fmt.Errorf("latest budget: %w", ErrNotFound)
	}

	latest := budgets[0]
	for _, b := range budgets[1:] {
		if b.LastSavedAt.After(latest.LastSavedAt) {
			latest = b
		}
	}

	return latest, nil
}

func (r *Budgets) Get(ctx context.Context, id uuid.UUID) (core.Budget, error) {
	return r.col.GetByID(ctx, id)
}

// Save stamps LastSavedAt and writes the whole document, inserting or
// overwriting by id. A nil error means the write reached the store; the
// insert/update distinction never masks the write's outcome. The stamped
// budget is returned.
func (r *Budgets) Save(ctx context.Context, b core.Budget) (core.Budget, error) {
	b.LastSavedAt = r.now().UTC()

	saved, inserted, err := r.col.Upsert(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("save budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved",
		log.FieldComponent, log.ComponentStorage,
		log.FieldBudgetID, saved.ID,
		"inserted", inserted,
		"last_saved_at", saved.LastSavedAt)

	return saved, nil
}

// Delete removes the budget by id, reporting (false, nil) when absent.
func (r *Budgets) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.col.Delete(ctx, id)
}
