package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
)

// Payments persists PaymentItem documents in the payment_items collection.
type Payments struct {
	col *Collection[core.PaymentItem]
}

func NewPayments(store *Store) *Payments {
	return &Payments{col: NewCollection[core.PaymentItem](store, PaymentCollection)}
}

// AllForBudget returns every payment referencing the budget id. A dangling
// or unknown id yields an empty result, never an error.
func (r *Payments) AllForBudget(ctx context.Context, budgetID uuid.UUID) ([]core.PaymentItem, error) {
	items, err := r.col.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	matched := make([]core.PaymentItem, 0, len(items))
	for _, it := range items {
		if it.BudgetID == budgetID {
			matched = append(matched, it)
		}
	}

	return matched, nil
}

// ByMonthYear returns the budget's payments created in the given month and
// year, newest first. Items without a creation date are excluded rather
// than dereferenced.
func (r *Payments) ByMonthYear(ctx context.Context, budgetID uuid.UUID, month, year int) ([]core.PaymentItem, error) {
	items, err := r.AllForBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	matched := make([]core.PaymentItem, 0, len(items))
	for _, it := range items {
		if it.CreatedAt.IsZero() {
			continue
		}
		created := it.CreatedAt.UTC()
		if int(created.Month()) == month && created.Year() == year {
			matched = append(matched, it)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

// ByDate returns the budget's payments created on the given calendar day.
func (r *Payments) ByDate(ctx context.Context, budgetID uuid.UUID, date time.Time) ([]core.PaymentItem, error) {
	items, err := r.AllForBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	wantYear, wantMonth, wantDay := date.UTC().Date()

	matched := make([]core.PaymentItem, 0, len(items))
	for _, it := range items {
		if it.CreatedAt.IsZero() {
			continue
		}
		y, m, d := it.CreatedAt.UTC().Date()
		if y == wantYear && m == wantMonth && d == wantDay {
			matched = append(matched, it)
		}
	}

	return matched, nil
}

// DistinctYears returns the sorted set of years in which any payment was
// created, across all budgets, for populating year selectors.
func (r *Payments) DistinctYears(ctx context.Context) ([]int, error) {
	items, err := r.col.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, it := range items {
		if it.CreatedAt.IsZero() {
			continue
		}
		y := it.CreatedAt.UTC().Year()
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}

	sort.Ints(years)

	return years, nil
}

// Insert stores a new payment, assigning an id when absent. Payee amounts
// are rounded to two decimal places before the write so repeated load/save
// cycles never drift.
func (r *Payments) Insert(ctx context.Context, item core.PaymentItem) (core.PaymentItem, error) {
	item.Payees = roundPayees(item.Payees)

	saved, err := r.col.Insert(ctx, item)
	if err != nil {
		return core.PaymentItem{}, fmt.Errorf("insert payment: %w", err)
	}

	return saved, nil
}

// Update overwrites the stored payment wholesale, applying the same payee
// rounding rule. It reports (false, nil) when no payment has the item's id.
func (r *Payments) Update(ctx context.Context, item core.PaymentItem) (bool, error) {
	item.Payees = roundPayees(item.Payees)
	return r.col.Update(ctx, item)
}

// Delete removes the payment by id, reporting (false, nil) when absent.
func (r *Payments) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.col.Delete(ctx, id)
}

// roundPayees clones the payee list with amounts rounded half away from
// zero to two decimal places. The caller's slice is left untouched.
func roundPayees(payees []core.Payee) []core.Payee {
	if len(payees) == 0 {
		return payees
	}

	rounded := make([]core.Payee, len(payees))
	for i, p := range payees {
		p.Amount = p.Amount.Round(2)
		rounded[i] = p
	}

	return rounded
}
