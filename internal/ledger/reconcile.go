package ledger

import (
	"financepro/internal/models"
)

// cloneAccounts returns a copy of the ledger's accounts safe to mutate.
func cloneAccounts(l *models.Ledger) []models.BankAccount {
	accounts := make([]models.BankAccount, len(l.BankAccounts))
	copy(accounts, l.BankAccounts)
	return accounts
}

// creditAccount adjusts one account's balance in place. A negative delta
// debits. Returns AccountNotFoundError when the account is absent.
func creditAccount(accounts []models.BankAccount, accountID string, delta float64) error {
	for i := range accounts {
		if accounts[i].ID == accountID {
			accounts[i].Balance = addToBalance(accounts[i].Balance, delta)
			return nil
		}
	}
	return &AccountNotFoundError{AccountID: accountID}
}

func requireAccount(l *models.Ledger, accountID string) error {
	if accountID == "" {
		return &ValidationError{Field: "bankAccountId", Message: "required"}
	}
	if acct, _ := l.FindAccount(accountID); acct == nil {
		return &AccountNotFoundError{AccountID: accountID}
	}
	return nil
}

// countAccountRefs counts records still pointing at an account.
func countAccountRefs(l *models.Ledger, accountID string) int {
	refs := 0
	for _, e := range l.Expenses {
		if e.BankAccountID == accountID {
			refs++
		}
	}
	for _, inc := range l.Income {
		if inc.BankAccountID == accountID {
			refs++
		}
	}
	for _, inv := range l.Investments {
		if inv.AccountID == accountID {
			refs++
		}
	}
	for _, g := range l.Goals {
		if g.AccountID == accountID {
			refs++
		}
	}
	return refs
}

func validAmount(field string, amount float64) error {
	if amount <= 0 {
		return &ValidationError{Field: field, Message: "must be greater than zero"}
	}
	return nil
}

func validDate(field, date string) error {
	if _, err := models.ParseDate(date); err != nil {
		return &ValidationError{Field: field, Message: "must be YYYY-MM-DD"}
	}
	return nil
}
