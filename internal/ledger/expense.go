package ledger

import (
	"financepro/internal/models"
)

// AddExpense validates an expense, expands it if recurring, debits the
// account for every instance, and pairs both collections in one write set.
// Expenses are allowed to overdraw the account.
func AddExpense(l *models.Ledger, e models.Expense) (models.WriteSet, []models.Expense, error) {
	if e.Name == "" {
		return models.WriteSet{}, nil, &ValidationError{Field: "name", Message: "required"}
	}
	if err := validAmount("amount", e.Amount); err != nil {
		return models.WriteSet{}, nil, err
	}
	if err := validDate("date", e.Date); err != nil {
		return models.WriteSet{}, nil, err
	}
	if !models.ValidExpenseCategory(e.Category) {
		return models.WriteSet{}, nil, &ValidationError{Field: "category", Message: "unknown category"}
	}
	if e.Recurring == "" {
		e.Recurring = models.RecurrenceNone
	}
	if !models.ValidRecurrence(e.Recurring) {
		return models.WriteSet{}, nil, &ValidationError{Field: "recurring", Message: "must be none, weekly or monthly"}
	}
	if e.Recurring != models.RecurrenceNone && e.EndDate == "" {
		return models.WriteSet{}, nil, &ValidationError{Field: "endDate", Message: "required for recurring expenses"}
	}
	if err := requireAccount(l, e.BankAccountID); err != nil {
		return models.WriteSet{}, nil, err
	}

	instances, err := ExpandExpense(e)
	if err != nil {
		return models.WriteSet{}, nil, err
	}

	amounts := make([]float64, len(instances))
	for i, inst := range instances {
		amounts[i] = inst.Amount
	}
	accounts := cloneAccounts(l)
	if err := creditAccount(accounts, e.BankAccountID, -sumRounded(amounts)); err != nil {
		return models.WriteSet{}, nil, err
	}

	expenses := append(append([]models.Expense{}, l.Expenses...), instances...)
	return models.WriteSet{BankAccounts: &accounts, Expenses: &expenses}, instances, nil
}

// UpdateExpense replaces one expense instance and reconciles the delta. When
// the account changed, the old amount is refunded to the old account and the
// new amount debited from the new one. Recurrence fields are kept as stored;
// an instance never re-expands.
func UpdateExpense(l *models.Ledger, e models.Expense) (models.WriteSet, error) {
	if e.Name == "" {
		return models.WriteSet{}, &ValidationError{Field: "name", Message: "required"}
	}
	if err := validAmount("amount", e.Amount); err != nil {
		return models.WriteSet{}, err
	}
	if err := validDate("date", e.Date); err != nil {
		return models.WriteSet{}, err
	}
	if !models.ValidExpenseCategory(e.Category) {
		return models.WriteSet{}, &ValidationError{Field: "category", Message: "unknown category"}
	}
	if err := requireAccount(l, e.BankAccountID); err != nil {
		return models.WriteSet{}, err
	}

	idx := -1
	for i := range l.Expenses {
		if l.Expenses[i].ID == e.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WriteSet{}, &NotFoundError{Kind: "expense", ID: e.ID}
	}
	old := l.Expenses[idx]

	accounts := cloneAccounts(l)
	if err := creditAccount(accounts, old.BankAccountID, old.Amount); err != nil {
		return models.WriteSet{}, err
	}
	if err := creditAccount(accounts, e.BankAccountID, -e.Amount); err != nil {
		return models.WriteSet{}, err
	}

	expenses := append([]models.Expense{}, l.Expenses...)
	e.Recurring = old.Recurring
	e.EndDate = old.EndDate
	expenses[idx] = e
	return models.WriteSet{BankAccounts: &accounts, Expenses: &expenses}, nil
}

// DeleteExpense removes one instance and refunds its amount.
func DeleteExpense(l *models.Ledger, expenseID string) (models.WriteSet, error) {
	idx := -1
	for i := range l.Expenses {
		if l.Expenses[i].ID == expenseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WriteSet{}, &NotFoundError{Kind: "expense", ID: expenseID}
	}
	old := l.Expenses[idx]

	accounts := cloneAccounts(l)
	if err := creditAccount(accounts, old.BankAccountID, old.Amount); err != nil {
		return models.WriteSet{}, err
	}

	expenses := append([]models.Expense{}, l.Expenses...)
	expenses = append(expenses[:idx], expenses[idx+1:]...)
	return models.WriteSet{BankAccounts: &accounts, Expenses: &expenses}, nil
}
