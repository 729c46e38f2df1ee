package ledger

import (
	"financepro/internal/models"
)

// AddIncome validates income, expands it if recurring, and credits the
// account for every instance.
func AddIncome(l *models.Ledger, inc models.Income) (models.WriteSet, []models.Income, error) {
	if inc.Name == "" {
		return models.WriteSet{}, nil, &ValidationError{Field: "name", Message: "required"}
	}
	if err := validAmount("amount", inc.Amount); err != nil {
		return models.WriteSet{}, nil, err
	}
	if err := validDate("date", inc.Date); err != nil {
		return models.WriteSet{}, nil, err
	}
	if inc.Recurring && inc.Frequency != models.RecurrenceNone && !models.ValidRecurrence(inc.Frequency) {
		return models.WriteSet{}, nil, &ValidationError{Field: "frequency", Message: "must be weekly or monthly"}
	}
	if err := requireAccount(l, inc.BankAccountID); err != nil {
		return models.WriteSet{}, nil, err
	}

	instances, err := ExpandIncome(inc)
	if err != nil {
		return models.WriteSet{}, nil, err
	}

	amounts := make([]float64, len(instances))
	for i, inst := range instances {
		amounts[i] = inst.Amount
	}
	accounts := cloneAccounts(l)
	if err := creditAccount(accounts, inc.BankAccountID, sumRounded(amounts)); err != nil {
		return models.WriteSet{}, nil, err
	}

	income := append(append([]models.Income{}, l.Income...), instances...)
	return models.WriteSet{BankAccounts: &accounts, Income: &income}, instances, nil
}

// UpdateIncome replaces one income instance. The old amount is debited from
// the old account and the new amount credited to the new one. The cached
// month and year follow the new date.
func UpdateIncome(l *models.Ledger, inc models.Income) (models.WriteSet, error) {
	if inc.Name == "" {
		return models.WriteSet{}, &ValidationError{Field: "name", Message: "required"}
	}
	if err := validAmount("amount", inc.Amount); err != nil {
		return models.WriteSet{}, err
	}
	date, err := models.ParseDate(inc.Date)
	if err != nil {
		return models.WriteSet{}, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	if err := requireAccount(l, inc.BankAccountID); err != nil {
		return models.WriteSet{}, err
	}

	idx := -1
	for i := range l.Income {
		if l.Income[i].ID == inc.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WriteSet{}, &NotFoundError{Kind: "income", ID: inc.ID}
	}
	old := l.Income[idx]

	accounts := cloneAccounts(l)
	if err := creditAccount(accounts, old.BankAccountID, -old.Amount); err != nil {
		return models.WriteSet{}, err
	}
	if err := creditAccount(accounts, inc.BankAccountID, inc.Amount); err != nil {
		return models.WriteSet{}, err
	}

	inc.Recurring = old.Recurring
	inc.Frequency = old.Frequency
	inc.Month = models.MonthName(date)
	inc.Year = date.Year()

	income := append([]models.Income{}, l.Income...)
	income[idx] = inc
	return models.WriteSet{BankAccounts: &accounts, Income: &income}, nil
}

// DeleteIncome removes one instance and debits the account it credited.
func DeleteIncome(l *models.Ledger, incomeID string) (models.WriteSet, error) {
	idx := -1
	for i := range l.Income {
		if l.Income[i].ID == incomeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WriteSet{}, &NotFoundError{Kind: "income", ID: incomeID}
	}
	old := l.Income[idx]

	accounts := cloneAccounts(l)
	if err := creditAccount(accounts, old.BankAccountID, -old.Amount); err != nil {
		return models.WriteSet{}, err
	}

	income := append([]models.Income{}, l.Income...)
	income = append(income[:idx], income[idx+1:]...)
	return models.WriteSet{BankAccounts: &accounts, Income: &income}, nil
}
