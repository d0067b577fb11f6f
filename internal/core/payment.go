package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	// PaymentItem records one payment against a budget. BudgetID is a plain
	// reference, not enforced by the store: reads must tolerate a dangling
	// id. A payment split across dates is modeled as multiple payees with
	// distinct dates within one item.
	PaymentItem struct {
		ID        uuid.UUID `json:"id"`
		BudgetID  uuid.UUID `json:"budget_id"`
		CreatedAt time.Time `json:"created_at"`
		Note      string    `json:"note,omitempty"`
		Payees    []Payee   `json:"payees"`
	}

	Payee struct {
		Name   string          `json:"name"`
		Amount decimal.Decimal `json:"amount"`
		Date   time.Time       `json:"date"`
	}
)

// NewPaymentItem returns a payment linked to the given budget, with a fresh
// id and the current time as creation date.
func NewPaymentItem(budgetID uuid.UUID) PaymentItem {
	return PaymentItem{
		ID:        uuid.New(),
		BudgetID:  budgetID,
		CreatedAt: time.Now().UTC(),
		Payees:    []Payee{},
	}
}

func (p PaymentItem) DocID() uuid.UUID { return p.ID }

func (p PaymentItem) WithDocID(id uuid.UUID) PaymentItem {
	p.ID = id
	return p
}

// Total sums all payee amounts.
func (p PaymentItem) Total() decimal.Decimal {
	total := decimal.Zero
	for _, payee := range p.Payees {
		total = total.Add(payee.Amount)
	}
	return total
}
