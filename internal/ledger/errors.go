// Package ledger implements the balance reconciliation engine. Every record
// mutation produces a write set pairing the changed record collection with
// the adjusted bank accounts, so the two always land in storage together.
package ledger

import "fmt"

// ValidationError reports a rejected input before any mutation is computed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NotFoundError reports a missing record of any kind.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// AccountNotFoundError reports a reference to a bank account that does not
// exist in the ledger.
type AccountNotFoundError struct {
	AccountID string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("bank account not found: %s", e.AccountID)
}

// InsufficientFundsError reports a debit larger than the account balance.
type InsufficientFundsError struct {
	AccountID string
	Balance   float64
	Required  float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in account %s: balance %.2f, required %.2f", e.AccountID, e.Balance, e.Required)
}

// AccountInUseError reports an attempt to delete an account still referenced
// by expenses, income, investments, or goals.
type AccountInUseError struct {
	AccountID string
	Refs      int
}

func (e *AccountInUseError) Error() string {
	return fmt.Sprintf("bank account %s still referenced by %d records", e.AccountID, e.Refs)
}
