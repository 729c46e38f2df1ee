// Package ledger provides the ledger service: per-user record CRUD with
// balance reconciliation applied atomically through the storage layer.
package ledger

import (
	"context"
	"fmt"

	"financepro/internal/common"
	"financepro/internal/interfaces"
	ledgercore "financepro/internal/ledger"
	"financepro/internal/models"
)

// Service implements LedgerService on top of a StorageManager. Each call
// loads the authoritative document, computes a write set with the
// reconciliation engine, and applies it as one statement.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new ledger service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

var _ interfaces.LedgerService = (*Service)(nil)

func (s *Service) load(ctx context.Context, userID string) (*models.Ledger, error) {
	if userID == "" {
		return nil, &ledgercore.ValidationError{Field: "userID", Message: "required"}
	}
	l, err := s.storage.LedgerStore().Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading ledger for %s: %w", userID, err)
	}
	return l, nil
}

func (s *Service) apply(ctx context.Context, userID string, ws models.WriteSet) error {
	if ws.IsEmpty() {
		return nil
	}
	if err := s.storage.LedgerStore().Apply(ctx, userID, ws); err != nil {
		return fmt.Errorf("applying write set for %s: %w", userID, err)
	}
	return nil
}

// GetLedger retrieves the user's full ledger.
func (s *Service) GetLedger(ctx context.Context, userID string) (*models.Ledger, error) {
	return s.load(ctx, userID)
}

// AddAccount creates a bank account.
func (s *Service) AddAccount(ctx context.Context, userID string, account models.BankAccount) (*models.BankAccount, error) {
	l, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	ws, created, err := ledgercore.AddAccount(l, account)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, userID, ws); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user", userID).Str("account", created.ID).Msg("bank account created")
	return created, nil
}

// UpdateAccount renames an account or adjusts its starting balance.
func (s *Service) UpdateAccount(ctx context.Context, userID string, account models.BankAccount) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ws, err := ledgercore.UpdateAccount(l, account)
	if err != nil {
		return err
	}
	return s.apply(ctx, userID, ws)
}

// DeleteAccount removes an unreferenced account.
func (s *Service) DeleteAccount(ctx context.Context, userID, accountID string) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ws, err := ledgercore.DeleteAccount(l, accountID)
	if err != nil {
		return err
	}
	if err := s.apply(ctx, userID, ws); err != nil {
		return err
	}
	s.logger.Info().Str("user", userID).Str("account", accountID).Msg("bank account deleted")
	return nil
}

// AddExpense records an expense, expanding recurring templates.
func (s *Service) AddExpense(ctx context.Context, userID string, expense models.Expense) ([]models.Expense, error) {
	l, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	ws, instances, err := ledgercore.AddExpense(l, expense)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, userID, ws); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("user", userID).Int("instances", len(instances)).Msg("expense recorded")
	return instances, nil
}

// UpdateExpense replaces one expense instance.
func (s *Service) UpdateExpense(ctx context.Context, userID string, expense models.Expense) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ws, err := ledgercore.UpdateExpense(l, expense)
	if err != nil {
		return err
	}
	return s.apply(ctx, userID, ws)
}

// DeleteExpense removes one expense instance.
func (s *Service) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ws, err := ledgercore.DeleteExpense(l, expenseID)
	if err != nil {
		return err
	}
	return s.apply(ctx, userID, ws)
}

// AddIncome records income, expanding recurring templates to year end.
func (s *Service) AddIncome(ctx context.Context, userID string, income models.Income) ([]models.Income, error) {
	l, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	ws, instances, err := ledgercore.AddIncome(l, income)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, userID, ws); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("user", userID).Int("instances", len(instances)).Msg("income recorded")
	return instances, nil
}

// UpdateIncome replaces one income instance.
func (s *Service) UpdateIncome(ctx context.Context, userID string, income models.Income) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ws, err := ledgercore.UpdateIncome(l, income)
	if err != nil {
		return err
	}
	return s.apply(ctx, userID, ws)
}

// DeleteIncome removes one income instance.
func (s *Service) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ws, err := ledgercore.DeleteIncome(l, incomeID)
	if err != nil {
		return err
	}
	return s.apply(ctx, userID, ws)
}

// AddInvestment records a trade.
func (s *Service) AddInvestment(ctx context.Context, userID string, inv models.Investment) (*models.Investment, error) {
	l, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	ws, created, err := ledgercore.AddInvestment(l, inv)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, userID, ws); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("user", userID).Str("symbol", created.Symbol).Str("action", string(created.Action)).Msg("investment recorded")
	return created, nil
}

// UpdateInvestment replaces a trade.
func (s *Service) UpdateInvestment(ctx context.Context, userID string, inv models.Investment) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ws, err := ledgercore.UpdateInvestment(l, inv)
	if err != nil {
		return err
	}
	return s.apply(ctx, userID, ws)
}

// DeleteInvestment removes a trade and reverses its settlement.
func (s *Service) DeleteInvestment(ctx context.Context, userID, investmentID string) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ws, err := ledgercore.DeleteInvestment(l, investmentID)
	if err != nil {
		return err
	}
	return s.apply(ctx, userID, ws)
}

// AddGoal creates a savings goal.
func (s *Service) AddGoal(ctx context.Context, userID string, goal models.Goal) (*models.Goal, error) {
	l, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	ws, created, err := ledgercore.AddGoal(l, goal)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, userID, ws); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateGoal changes a goal's name, target, or account.
func (s *Service) UpdateGoal(ctx context.Context, userID string, goal models.Goal) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ws, err := ledgercore.UpdateGoal(l, goal)
	if err != nil {
		return err
	}
	return s.apply(ctx, userID, ws)
}

// DeleteGoal removes a goal and refunds its saved amount.
func (s *Service) DeleteGoal(ctx context.Context, userID, goalID string) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ws, err := ledgercore.DeleteGoal(l, goalID)
	if err != nil {
		return err
	}
	return s.apply(ctx, userID, ws)
}

// ContributeToGoal moves funds from the goal's account into its saved
// amount and returns the applied contribution.
func (s *Service) ContributeToGoal(ctx context.Context, userID, goalID string, amount float64) (float64, error) {
	l, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	ws, applied, err := ledgercore.ContributeToGoal(l, goalID, amount)
	if err != nil {
		return 0, err
	}
	if err := s.apply(ctx, userID, ws); err != nil {
		return 0, err
	}
	s.logger.Info().Str("user", userID).Str("goal", goalID).Float64("applied", applied).Msg("goal contribution")
	return applied, nil
}
