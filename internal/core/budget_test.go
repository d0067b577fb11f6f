package core

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewBudget(t *testing.T) {
	b := NewBudget()

	if b.ID == uuid.Nil {
		t.Error("NewBudget() should assign a fresh id")
	}
	if b.CreatedAt.IsZero() {
		t.Error("NewBudget() should set CreatedAt")
	}
	if b.Expenses == nil || b.Incomes == nil {
		t.Error("NewBudget() should initialize expense and income collections")
	}
	if b.BankAccounts == nil || b.CreditCards == nil || b.OnlineServices == nil {
		t.Error("NewBudget() should initialize account collections")
	}
	if !b.AnnualSalary.IsZero() {
		t.Errorf("NewBudget() salary = %v, want 0", b.AnnualSalary)
	}
}

func TestBudget_WithDocID(t *testing.T) {
	orig := NewBudget()
	id := uuid.New()

	got := orig.WithDocID(id)

	if got.ID != id {
		t.Errorf("WithDocID() id = %v, want %v", got.ID, id)
	}
	if orig.ID == id {
		t.Error("WithDocID() should not mutate the receiver")
	}
}

func TestBudget_JSONRoundTrip(t *testing.T) {
	b := NewBudget()
	b.AnnualSalary = decimal.RequireFromString("54321.99")
	b.Expenses = append(b.Expenses, Expense{
		BillName: "Rent",
		PaidTo:   "Landlord",
		PaidBy:   "Checking",
		Amount:   decimal.RequireFromString("850.25"),
		DueDay:   1,
	})

	body, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Budget
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got.ID != b.ID {
		t.Errorf("round-trip id = %v, want %v", got.ID, b.ID)
	}
	if !got.AnnualSalary.Equal(b.AnnualSalary) {
		t.Errorf("round-trip salary = %v, want %v", got.AnnualSalary, b.AnnualSalary)
	}
	if len(got.Expenses) != 1 || !got.Expenses[0].Amount.Equal(b.Expenses[0].Amount) {
		t.Errorf("round-trip expenses = %+v, want %+v", got.Expenses, b.Expenses)
	}
}
