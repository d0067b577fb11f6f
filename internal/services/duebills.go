package services

import (
	"sort"
	"time"

	"bilancio/internal/core"
)

// DueBill pairs a budget expense with its next calculated due date.
type DueBill struct {
	Expense  core.Expense `json:"expense"`
	DueOn    time.Time    `json:"due_on"`
	DaysLeft int          `json:"days_left"`
}

// NextDueDate returns the next date on or after now that the expense falls
// due. The estimated due day is clamped to the month's length, and a day
// already passed this month rolls into the next. An expense without a due
// day (DueDay < 1) yields the zero time.
func NextDueDate(e core.Expense, now time.Time) time.Time {
	if e.DueDay < 1 {
		return time.Time{}
	}

	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	candidate := dueDateIn(year, month, e.DueDay, now.Location())
	if candidate.Before(today) {
		candidate = dueDateIn(year, month+1, e.DueDay, now.Location())
	}

	return candidate
}

// dueDateIn builds the due date for the given month, clamping the target
// day to the month's last day. time.Date normalizes month overflow, so
// December rolls into January of the next year.
func dueDateIn(year int, month time.Month, targetDay int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if targetDay > lastDay {
		targetDay = lastDay
	}
	return time.Date(year, month, targetDay, 0, 0, 0, 0, loc)
}

// UpcomingBills returns the budget's expenses falling due within the next
// days, soonest first. Expenses without a due day are skipped.
func UpcomingBills(b core.Budget, now time.Time, days int) []DueBill {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	bills := make([]DueBill, 0, len(b.Expenses))
	for _, e := range b.Expenses {
		dueOn := NextDueDate(e, now)
		if dueOn.IsZero() {
			continue
		}
		left := int(dueOn.Sub(today).Hours() / 24)
		if left > days {
			continue
		}
		bills = append(bills, DueBill{Expense: e, DueOn: dueOn, DaysLeft: left})
	}

	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].DueOn.Before(bills[j].DueOn)
	})

	return bills
}
