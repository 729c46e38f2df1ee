package ledger

import (
	"sort"

	"financepro/internal/models"
)

// Dates are YYYY-MM-DD strings, so string comparison orders them correctly
// and range filters never need to parse.

func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// ExpensesInRange returns expenses with from <= date <= to. An empty bound
// leaves that side open.
func ExpensesInRange(l *models.Ledger, from, to string) []models.Expense {
	var out []models.Expense
	for _, e := range l.Expenses {
		if inRange(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out
}

// IncomeInRange returns income with from <= date <= to.
func IncomeInRange(l *models.Ledger, from, to string) []models.Income {
	var out []models.Income
	for _, inc := range l.Income {
		if inRange(inc.Date, from, to) {
			out = append(out, inc)
		}
	}
	return out
}

// ExpensesByCategory returns expenses in one category.
func ExpensesByCategory(l *models.Ledger, category models.ExpenseCategory) []models.Expense {
	var out []models.Expense
	for _, e := range l.Expenses {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// ExpensesForAccount returns expenses charged to one account.
func ExpensesForAccount(l *models.Ledger, accountID string) []models.Expense {
	var out []models.Expense
	for _, e := range l.Expenses {
		if e.BankAccountID == accountID {
			out = append(out, e)
		}
	}
	return out
}

// IncomeForAccount returns income credited to one account.
func IncomeForAccount(l *models.Ledger, accountID string) []models.Income {
	var out []models.Income
	for _, inc := range l.Income {
		if inc.BankAccountID == accountID {
			out = append(out, inc)
		}
	}
	return out
}

// IncomeForMonth returns income entries whose cached month and year match.
// A zero year matches every year.
func IncomeForMonth(l *models.Ledger, month string, year int) []models.Income {
	var out []models.Income
	for _, inc := range l.Income {
		if inc.Month != month {
			continue
		}
		if year != 0 && inc.Year != year {
			continue
		}
		out = append(out, inc)
	}
	return out
}

// SortExpensesByDateDesc orders newest first. The sort is stable so records
// sharing a date keep their insertion order.
func SortExpensesByDateDesc(expenses []models.Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date > expenses[j].Date
	})
}

// SortIncomeByDateDesc orders newest first.
func SortIncomeByDateDesc(income []models.Income) {
	sort.SliceStable(income, func(i, j int) bool {
		return income[i].Date > income[j].Date
	})
}

// RecentExpenses returns the latest n expenses, newest first.
func RecentExpenses(l *models.Ledger, n int) []models.Expense {
	out := append([]models.Expense{}, l.Expenses...)
	SortExpensesByDateDesc(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// RecentIncome returns the latest n income entries, newest first.
func RecentIncome(l *models.Ledger, n int) []models.Income {
	out := append([]models.Income{}, l.Income...)
	SortIncomeByDateDesc(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
