package core

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewPaymentItem(t *testing.T) {
	budgetID := uuid.New()
	p := NewPaymentItem(budgetID)

	if p.ID == uuid.Nil {
		t.Error("NewPaymentItem() should assign a fresh id")
	}
	if p.BudgetID != budgetID {
		t.Errorf("NewPaymentItem() budget id = %v, want %v", p.BudgetID, budgetID)
	}
	if p.CreatedAt.IsZero() {
		t.Error("NewPaymentItem() should set CreatedAt")
	}
	if p.Payees == nil {
		t.Error("NewPaymentItem() should initialize the payee collection")
	}
}

func TestPaymentItem_Total(t *testing.T) {
	tests := []struct {
		name    string
		amounts []string
		want    string
	}{
		{
			name:    "no payees",
			amounts: nil,
			want:    "0",
		},
		{
			name:    "split payment",
			amounts: []string{"25.50", "25.50", "49"},
			want:    "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PaymentItem{}
			for _, a := range tt.amounts {
				p.Payees = append(p.Payees, Payee{
					Amount: decimal.RequireFromString(a),
					Date:   time.Now(),
				})
			}
			got := p.Total()
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Total() = %v, want %v", got, tt.want)
			}
		})
	}
}
