package ledger

import (
	"github.com/google/uuid"

	"financepro/internal/models"
)

// AddGoal validates and appends a savings goal. The saved amount starts
// clamped to the target; creation never moves account funds.
func AddGoal(l *models.Ledger, goal models.Goal) (models.WriteSet, *models.Goal, error) {
	if goal.Name == "" {
		return models.WriteSet{}, nil, &ValidationError{Field: "name", Message: "required"}
	}
	if err := validAmount("amount", goal.Amount); err != nil {
		return models.WriteSet{}, nil, err
	}
	if err := requireAccount(l, goal.AccountID); err != nil {
		return models.WriteSet{}, nil, err
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	if goal.SavedAmount < 0 {
		goal.SavedAmount = 0
	}
	if goal.SavedAmount > goal.Amount {
		goal.SavedAmount = goal.Amount
	}

	goals := append(append([]models.Goal{}, l.Goals...), goal)
	return models.WriteSet{Goals: &goals}, &goal, nil
}

// UpdateGoal changes a goal's name, target, or account. The saved amount is
// preserved and re-clamped to the new target; balances are untouched.
func UpdateGoal(l *models.Ledger, goal models.Goal) (models.WriteSet, error) {
	if goal.Name == "" {
		return models.WriteSet{}, &ValidationError{Field: "name", Message: "required"}
	}
	if err := validAmount("amount", goal.Amount); err != nil {
		return models.WriteSet{}, err
	}
	if err := requireAccount(l, goal.AccountID); err != nil {
		return models.WriteSet{}, err
	}

	idx := -1
	for i := range l.Goals {
		if l.Goals[i].ID == goal.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WriteSet{}, &NotFoundError{Kind: "goal", ID: goal.ID}
	}

	goals := append([]models.Goal{}, l.Goals...)
	goal.SavedAmount = goals[idx].SavedAmount
	if goal.SavedAmount > goal.Amount {
		goal.SavedAmount = goal.Amount
	}
	goals[idx] = goal
	return models.WriteSet{Goals: &goals}, nil
}

// DeleteGoal removes a goal and refunds its saved amount to the account.
func DeleteGoal(l *models.Ledger, goalID string) (models.WriteSet, error) {
	idx := -1
	for i := range l.Goals {
		if l.Goals[i].ID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WriteSet{}, &NotFoundError{Kind: "goal", ID: goalID}
	}
	old := l.Goals[idx]

	ws := models.WriteSet{}
	goals := append([]models.Goal{}, l.Goals...)
	goals = append(goals[:idx], goals[idx+1:]...)
	ws.Goals = &goals

	if old.SavedAmount > 0 {
		accounts := cloneAccounts(l)
		if err := creditAccount(accounts, old.AccountID, old.SavedAmount); err != nil {
			return models.WriteSet{}, err
		}
		ws.BankAccounts = &accounts
	}
	return ws, nil
}

// ContributeToGoal moves funds from the goal's account into its saved
// amount. The applied contribution is clamped to what the goal still
// needs, but the full request must be covered by the account balance.
// Returns the applied amount.
func ContributeToGoal(l *models.Ledger, goalID string, amount float64) (models.WriteSet, float64, error) {
	if amount <= 0 {
		return models.WriteSet{}, 0, &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}

	idx := -1
	for i := range l.Goals {
		if l.Goals[i].ID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WriteSet{}, 0, &NotFoundError{Kind: "goal", ID: goalID}
	}
	goal := l.Goals[idx]

	acct, _ := l.FindAccount(goal.AccountID)
	if acct == nil {
		return models.WriteSet{}, 0, &AccountNotFoundError{AccountID: goal.AccountID}
	}
	if amount > acct.Balance {
		return models.WriteSet{}, 0, &InsufficientFundsError{
			AccountID: goal.AccountID,
			Balance:   acct.Balance,
			Required:  amount,
		}
	}

	applied := round2(money(amount))
	if remaining := round2(money(goal.Amount).Sub(money(goal.SavedAmount))); applied > remaining {
		applied = remaining
	}
	if applied <= 0 {
		return models.WriteSet{}, 0, nil
	}

	accounts := cloneAccounts(l)
	if err := creditAccount(accounts, goal.AccountID, -applied); err != nil {
		return models.WriteSet{}, 0, err
	}

	goals := append([]models.Goal{}, l.Goals...)
	goals[idx].SavedAmount = addToBalance(goals[idx].SavedAmount, applied)
	return models.WriteSet{BankAccounts: &accounts, Goals: &goals}, applied, nil
}
