package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BankAccount   AccountKind = "bank"
	CreditCard    AccountKind = "credit_card"
	OnlineService AccountKind = "online_service"
)

type (
	// AccountKind tags an account with the collection it came from.
	AccountKind string

	// Budget is the aggregate root: one document per budget, persisted
	// wholesale on every save. The nested collections are the sole source
	// of truth for every derived metric; computed values are never stored.
	Budget struct {
		ID             uuid.UUID       `json:"id"`
		AnnualSalary   decimal.Decimal `json:"annual_salary"`
		CreatedAt      time.Time       `json:"created_at"`
		LastSavedAt    time.Time       `json:"last_saved_at"`
		Expenses       []Expense       `json:"expenses"`
		Incomes        []Income        `json:"incomes"`
		BankAccounts   []Account       `json:"bank_accounts"`
		CreditCards    []Account       `json:"credit_cards"`
		OnlineServices []Account       `json:"online_services"`
	}

	// Expense is a recurring monthly bill. PaidBy references an account by
	// name; DueDay is the estimated day of the month the bill falls due.
	Expense struct {
		BillName string          `json:"bill_name"`
		PaidTo   string          `json:"paid_to"`
		PaidBy   string          `json:"paid_by"`
		Amount   decimal.Decimal `json:"amount"`
		DueDay   int             `json:"due_day"`
	}

	Income struct {
		Employer string          `json:"employer"`
		Type     string          `json:"type"`
		Amount   decimal.Decimal `json:"amount"`
	}

	Account struct {
		Name  string `json:"name"`
		Notes string `json:"notes,omitempty"`
	}

	// TaggedAccount is an account annotated with its originating kind,
	// produced by Budget.AccountList.
	TaggedAccount struct {
		Account
		Kind AccountKind `json:"kind"`
	}

	// PayGroup is the summed amount of all expenses paid by one account.
	PayGroup struct {
		PaidBy string          `json:"paid_by"`
		Total  decimal.Decimal `json:"total"`
	}
)

// NewBudget returns a budget with a fresh id and empty collections.
func NewBudget() Budget {
	return Budget{
		ID:             uuid.New(),
		AnnualSalary:   decimal.Zero,
		CreatedAt:      time.Now().UTC(),
		Expenses:       []Expense{},
		Incomes:        []Income{},
		BankAccounts:   []Account{},
		CreditCards:    []Account{},
		OnlineServices: []Account{},
	}
}

func (b Budget) DocID() uuid.UUID { return b.ID }

func (b Budget) WithDocID(id uuid.UUID) Budget {
	b.ID = id
	return b
}
