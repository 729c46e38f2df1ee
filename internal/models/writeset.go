package models

// WriteSet is a partial update of the ledger document produced by the
// reconciliation engine. Nil pointers mean the field is untouched; the set
// fields are applied together as a single atomic merge so a record mutation
// and its balance adjustment can never be observed half-applied.
type WriteSet struct {
	BankAccounts *[]BankAccount
	Expenses     *[]Expense
	Income       *[]Income
	Investments  *[]Investment
	Goals        *[]Goal
}

// Fields returns the named top-level document fields touched by the write
// set, suitable for a merge-style document update.
func (ws WriteSet) Fields() map[string]any {
	fields := make(map[string]any)
	if ws.BankAccounts != nil {
		fields["bankAccounts"] = *ws.BankAccounts
	}
	if ws.Expenses != nil {
		fields["expenses"] = *ws.Expenses
	}
	if ws.Income != nil {
		fields["income"] = *ws.Income
	}
	if ws.Investments != nil {
		fields["investments"] = *ws.Investments
	}
	if ws.Goals != nil {
		fields["goals"] = *ws.Goals
	}
	return fields
}

// IsEmpty reports whether the write set touches no fields.
func (ws WriteSet) IsEmpty() bool {
	return ws.BankAccounts == nil && ws.Expenses == nil && ws.Income == nil &&
		ws.Investments == nil && ws.Goals == nil
}

// ApplyTo overlays the write set onto a ledger copy and returns the result.
// The input ledger is not modified.
func (ws WriteSet) ApplyTo(l *Ledger) *Ledger {
	out := *l
	if ws.BankAccounts != nil {
		out.BankAccounts = *ws.BankAccounts
	}
	if ws.Expenses != nil {
		out.Expenses = *ws.Expenses
	}
	if ws.Income != nil {
		out.Income = *ws.Income
	}
	if ws.Investments != nil {
		out.Investments = *ws.Investments
	}
	if ws.Goals != nil {
		out.Goals = *ws.Goals
	}
	return &out
}
