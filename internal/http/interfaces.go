package http

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
)

// BudgetStore is the budget persistence surface the server depends on.
type BudgetStore interface {
	All(ctx context.Context) ([]core.Budget, error)
	Latest(ctx context.Context) (core.Budget, error)
	Get(ctx context.Context, id uuid.UUID) (core.Budget, error)
	Save(ctx context.Context, b core.Budget) (core.Budget, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// PaymentStore exposes payment item persistence and date-based queries.
type PaymentStore interface {
	AllForBudget(ctx context.Context, budgetID uuid.UUID) ([]core.PaymentItem, error)
	ByMonthYear(ctx context.Context, budgetID uuid.UUID, month, year int) ([]core.PaymentItem, error)
	ByDate(ctx context.Context, budgetID uuid.UUID, date time.Time) ([]core.PaymentItem, error)
	DistinctYears(ctx context.Context) ([]int, error)
	Insert(ctx context.Context, item core.PaymentItem) (core.PaymentItem, error)
	Update(ctx context.Context, item core.PaymentItem) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// StateStore exposes the application state singleton.
type StateStore interface {
	Get(ctx context.Context) (core.AppState, error)
	Save(ctx context.Context, state core.AppState) (core.AppState, error)
	Reset(ctx context.Context) (core.AppState, error)
}
