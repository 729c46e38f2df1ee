package ledger

import (
	"strings"

	"github.com/google/uuid"

	"financepro/internal/models"
)

// signedValue is the cash-flow effect of a trade on its account: a buy
// spends, a sell receives.
func signedValue(inv models.Investment) float64 {
	return round2(money(inv.Amount).Mul(money(inv.Price)).Mul(money(inv.Action.Sign())).Neg())
}

func validateInvestment(inv *models.Investment) error {
	inv.Symbol = strings.ToUpper(strings.TrimSpace(inv.Symbol))
	if inv.Symbol == "" {
		return &ValidationError{Field: "symbol", Message: "required"}
	}
	if err := validAmount("amount", inv.Amount); err != nil {
		return err
	}
	if inv.Price <= 0 {
		return &ValidationError{Field: "price", Message: "must be positive"}
	}
	if err := validDate("date", inv.Date); err != nil {
		return err
	}
	if !models.ValidInvestmentAction(inv.Action) {
		return &ValidationError{Field: "action", Message: "must be buy or sell"}
	}
	return nil
}

// AddInvestment records a trade and settles it against the account. A buy
// larger than the account balance is rejected.
func AddInvestment(l *models.Ledger, inv models.Investment) (models.WriteSet, *models.Investment, error) {
	if err := validateInvestment(&inv); err != nil {
		return models.WriteSet{}, nil, err
	}
	if err := requireAccount(l, inv.AccountID); err != nil {
		return models.WriteSet{}, nil, err
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}

	delta := signedValue(inv)
	acct, _ := l.FindAccount(inv.AccountID)
	if delta < 0 && acct.Balance+delta < 0 {
		return models.WriteSet{}, nil, &InsufficientFundsError{
			AccountID: inv.AccountID,
			Balance:   acct.Balance,
			Required:  -delta,
		}
	}

	accounts := cloneAccounts(l)
	if err := creditAccount(accounts, inv.AccountID, delta); err != nil {
		return models.WriteSet{}, nil, err
	}

	investments := append(append([]models.Investment{}, l.Investments...), inv)
	return models.WriteSet{BankAccounts: &accounts, Investments: &investments}, &inv, nil
}

// UpdateInvestment replaces a trade and settles the net difference between
// the new and old cash-flow effect against the trade's current account. A
// net debit beyond that account's balance is rejected.
func UpdateInvestment(l *models.Ledger, inv models.Investment) (models.WriteSet, error) {
	if err := validateInvestment(&inv); err != nil {
		return models.WriteSet{}, err
	}
	if err := requireAccount(l, inv.AccountID); err != nil {
		return models.WriteSet{}, err
	}

	idx := -1
	for i := range l.Investments {
		if l.Investments[i].ID == inv.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WriteSet{}, &NotFoundError{Kind: "investment", ID: inv.ID}
	}
	old := l.Investments[idx]

	delta := round2(money(signedValue(inv)).Sub(money(signedValue(old))))
	acct, _ := l.FindAccount(inv.AccountID)
	if delta < 0 && acct.Balance+delta < 0 {
		return models.WriteSet{}, &InsufficientFundsError{
			AccountID: inv.AccountID,
			Balance:   acct.Balance,
			Required:  -delta,
		}
	}

	accounts := cloneAccounts(l)
	if err := creditAccount(accounts, inv.AccountID, delta); err != nil {
		return models.WriteSet{}, err
	}

	investments := append([]models.Investment{}, l.Investments...)
	investments[idx] = inv
	return models.WriteSet{BankAccounts: &accounts, Investments: &investments}, nil
}

// DeleteInvestment removes a trade and reverses its cash-flow effect.
// Reversal always succeeds so a recorded trade can always be undone.
func DeleteInvestment(l *models.Ledger, investmentID string) (models.WriteSet, error) {
	idx := -1
	for i := range l.Investments {
		if l.Investments[i].ID == investmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WriteSet{}, &NotFoundError{Kind: "investment", ID: investmentID}
	}
	old := l.Investments[idx]

	accounts := cloneAccounts(l)
	if err := creditAccount(accounts, old.AccountID, -signedValue(old)); err != nil {
		return models.WriteSet{}, err
	}

	investments := append([]models.Investment{}, l.Investments...)
	investments = append(investments[:idx], investments[idx+1:]...)
	return models.WriteSet{BankAccounts: &accounts, Investments: &investments}, nil
}
