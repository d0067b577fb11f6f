package core

import "github.com/shopspring/decimal"

var (
	twelve = decimal.NewFromInt(12)
	two    = decimal.NewFromInt(2)
)

// Summary bundles every derived metric of a budget. It is recomputed from
// the nested collections on every read and never persisted.
type Summary struct {
	TotalMonthlyExpenses decimal.Decimal `json:"total_monthly_expenses"`
	TotalMonthlyIncomes  decimal.Decimal `json:"total_monthly_incomes"`
	TotalYearlyExpenses  decimal.Decimal `json:"total_yearly_expenses"`
	TotalYearlyIncomes   decimal.Decimal `json:"total_yearly_incomes"`
	DebtToIncomeRatio    decimal.Decimal `json:"debt_to_income_ratio"`
	YearlyWithholdings   decimal.Decimal `json:"yearly_withholdings"`
	HalfMonthlyExpenses  decimal.Decimal `json:"half_monthly_expenses"`
	Accounts             []TaggedAccount `json:"accounts"`
	PayGroups            []PayGroup      `json:"pay_groups"`
}

// TotalMonthlyExpenses sums the amounts of all recurring expenses.
func (b Budget) TotalMonthlyExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range b.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalMonthlyIncomes sums the amounts of all incomes.
func (b Budget) TotalMonthlyIncomes() decimal.Decimal {
	total := decimal.Zero
	for _, in := range b.Incomes {
		total = total.Add(in.Amount)
	}
	return total
}

func (b Budget) TotalYearlyExpenses() decimal.Decimal {
	return b.TotalMonthlyExpenses().Mul(twelve)
}

func (b Budget) TotalYearlyIncomes() decimal.Decimal {
	return b.TotalMonthlyIncomes().Mul(twelve)
}

// DebtToIncomeRatio is monthly expenses over one twelfth of the annual
// salary. A zero salary yields zero, not an error, so views stay renderable.
func (b Budget) DebtToIncomeRatio() decimal.Decimal {
	if b.AnnualSalary.IsZero() {
		return decimal.Zero
	}
	return b.TotalMonthlyExpenses().Div(b.AnnualSalary.Div(twelve))
}

// YearlyWithholdings is the slice of the salary that never arrives as
// income: annual salary minus yearly incomes.
func (b Budget) YearlyWithholdings() decimal.Decimal {
	return b.AnnualSalary.Sub(b.TotalYearlyIncomes())
}

func (b Budget) HalfMonthlyExpenses() decimal.Decimal {
	return b.TotalMonthlyExpenses().Div(two)
}

// AccountList flattens bank accounts, credit cards and online services into
// one slice, in that fixed order, each entry tagged with its kind.
func (b Budget) AccountList() []TaggedAccount {
	list := make([]TaggedAccount, 0, len(b.BankAccounts)+len(b.CreditCards)+len(b.OnlineServices))
	for _, a := range b.BankAccounts {
		list = append(list, TaggedAccount{Account: a, Kind: BankAccount})
	}
	for _, a := range b.CreditCards {
		list = append(list, TaggedAccount{Account: a, Kind: CreditCard})
	}
	for _, a := range b.OnlineServices {
		list = append(list, TaggedAccount{Account: a, Kind: OnlineService})
	}
	return list
}

// ExpensePayGroups groups expenses by their exact PaidBy name and sums each
// group's amount. Groups appear in the order their key is first seen while
// scanning the expenses.
func (b Budget) ExpensePayGroups() []PayGroup {
	index := make(map[string]int, len(b.Expenses))
	groups := make([]PayGroup, 0, len(b.Expenses))
	for _, e := range b.Expenses {
		i, ok := index[e.PaidBy]
		if !ok {
			i = len(groups)
			index[e.PaidBy] = i
			groups = append(groups, PayGroup{PaidBy: e.PaidBy, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(e.Amount)
	}
	return groups
}

// Summarize recomputes all derived metrics from the current collections.
func (b Budget) Summarize() Summary {
	return Summary{
		TotalMonthlyExpenses: b.TotalMonthlyExpenses(),
		TotalMonthlyIncomes:  b.TotalMonthlyIncomes(),
		TotalYearlyExpenses:  b.TotalYearlyExpenses(),
		TotalYearlyIncomes:   b.TotalYearlyIncomes(),
		DebtToIncomeRatio:    b.DebtToIncomeRatio(),
		YearlyWithholdings:   b.YearlyWithholdings(),
		HalfMonthlyExpenses:  b.HalfMonthlyExpenses(),
		Accounts:             b.AccountList(),
		PayGroups:            b.ExpensePayGroups(),
	}
}
