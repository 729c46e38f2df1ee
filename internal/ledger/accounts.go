package ledger

import (
	"github.com/google/uuid"

	"financepro/internal/models"
)

// AddAccount validates and appends a bank account. The opening balance is
// the starting balance.
func AddAccount(l *models.Ledger, account models.BankAccount) (models.WriteSet, *models.BankAccount, error) {
	if account.Name == "" {
		return models.WriteSet{}, nil, &ValidationError{Field: "name", Message: "required"}
	}
	if account.StartingBalance < 0 {
		return models.WriteSet{}, nil, &ValidationError{Field: "startingBalance", Message: "must not be negative"}
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if existing, _ := l.FindAccount(account.ID); existing != nil {
		return models.WriteSet{}, nil, &ValidationError{Field: "id", Message: "already exists"}
	}
	account.Balance = account.StartingBalance

	accounts := append(cloneAccounts(l), account)
	return models.WriteSet{BankAccounts: &accounts}, &account, nil
}

// UpdateAccount renames an account or moves its starting balance. A change
// in starting balance shifts the current balance by the same delta so the
// recorded history stays consistent.
func UpdateAccount(l *models.Ledger, account models.BankAccount) (models.WriteSet, error) {
	if account.Name == "" {
		return models.WriteSet{}, &ValidationError{Field: "name", Message: "required"}
	}
	if account.StartingBalance < 0 {
		return models.WriteSet{}, &ValidationError{Field: "startingBalance", Message: "must not be negative"}
	}
	existing, idx := l.FindAccount(account.ID)
	if existing == nil {
		return models.WriteSet{}, &AccountNotFoundError{AccountID: account.ID}
	}

	accounts := cloneAccounts(l)
	accounts[idx].Name = account.Name
	accounts[idx].StartingBalance = account.StartingBalance
	accounts[idx].Balance = addToBalance(existing.Balance, account.StartingBalance-existing.StartingBalance)
	return models.WriteSet{BankAccounts: &accounts}, nil
}

// DeleteAccount removes an account with no remaining references. Deleting
// an account out from under its records would corrupt every balance
// reconstruction, so referenced accounts are rejected.
func DeleteAccount(l *models.Ledger, accountID string) (models.WriteSet, error) {
	_, idx := l.FindAccount(accountID)
	if idx < 0 {
		return models.WriteSet{}, &AccountNotFoundError{AccountID: accountID}
	}
	if refs := countAccountRefs(l, accountID); refs > 0 {
		return models.WriteSet{}, &AccountInUseError{AccountID: accountID, Refs: refs}
	}

	accounts := cloneAccounts(l)
	accounts = append(accounts[:idx], accounts[idx+1:]...)
	return models.WriteSet{BankAccounts: &accounts}, nil
}
