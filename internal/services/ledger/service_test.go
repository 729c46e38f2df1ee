package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financepro/internal/common"
	"financepro/internal/interfaces"
	ledgercore "financepro/internal/ledger"
	"financepro/internal/models"
)

// memLedgerStore keeps normalized ledgers in memory and applies write sets
// the way the real store does: merge touched collections, leave the rest.
type memLedgerStore struct {
	ledgers map[string]*models.Ledger
	applies int
}

func newMemLedgerStore() *memLedgerStore {
	return &memLedgerStore{ledgers: map[string]*models.Ledger{}}
}

func (s *memLedgerStore) Get(_ context.Context, userID string) (*models.Ledger, error) {
	if l, ok := s.ledgers[userID]; ok {
		return l, nil
	}
	return models.NewLedger(userID), nil
}

func (s *memLedgerStore) Apply(_ context.Context, userID string, ws models.WriteSet) error {
	l, ok := s.ledgers[userID]
	if !ok {
		l = models.NewLedger(userID)
	}
	s.ledgers[userID] = ws.ApplyTo(l)
	s.applies++
	return nil
}

func (s *memLedgerStore) ListUserIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.ledgers))
	for id := range s.ledgers {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memLedgerStore) Close() error { return nil }

type stubStorageManager struct {
	ledgerStore *memLedgerStore
}

func (s *stubStorageManager) InternalStore() interfaces.InternalStore { return nil }
func (s *stubStorageManager) LedgerStore() interfaces.LedgerStore     { return s.ledgerStore }
func (s *stubStorageManager) QuoteStore() interfaces.QuoteStore       { return nil }
func (s *stubStorageManager) Close() error                            { return nil }

func newTestService() (*Service, *memLedgerStore) {
	store := newMemLedgerStore()
	svc := NewService(&stubStorageManager{ledgerStore: store}, common.NewSilentLogger())
	return svc, store
}

func seedAccount(t *testing.T, svc *Service, name string, balance float64) *models.BankAccount {
	t.Helper()
	acct, err := svc.AddAccount(context.Background(), "user-1", models.BankAccount{
		Name:            name,
		StartingBalance: balance,
	})
	require.NoError(t, err)
	return acct
}

func TestService_ExpenseLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	acct := seedAccount(t, svc, "Current", 1000)

	instances, err := svc.AddExpense(ctx, "user-1", models.Expense{
		Name:          "Groceries",
		Amount:        55.25,
		Category:      models.CategoryFood,
		Date:          "2026-03-10",
		BankAccountID: acct.ID,
	})
	require.NoError(t, err)
	require.Len(t, instances, 1)

	l, err := svc.GetLedger(ctx, "user-1")
	require.NoError(t, err)
	got, _ := l.FindAccount(acct.ID)
	assert.InDelta(t, 944.75, got.Balance, 0.001)
	assert.Len(t, l.Expenses, 1)

	require.NoError(t, svc.DeleteExpense(ctx, "user-1", instances[0].ID))

	l, err = svc.GetLedger(ctx, "user-1")
	require.NoError(t, err)
	got, _ = l.FindAccount(acct.ID)
	assert.InDelta(t, 1000, got.Balance, 0.001)
	assert.Empty(t, l.Expenses)

	// account create + expense add + expense delete
	assert.Equal(t, 3, store.applies)
}

func TestService_RejectedMutationWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	acct := seedAccount(t, svc, "Current", 100)
	before := store.applies

	_, err := svc.AddInvestment(ctx, "user-1", models.Investment{
		Symbol:    "AAPL",
		Amount:    10,
		Price:     100,
		Date:      "2026-03-01",
		Action:    models.ActionBuy,
		AccountID: acct.ID,
	})
	var insufficient *ledgercore.InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, before, store.applies)

	l, err := svc.GetLedger(ctx, "user-1")
	require.NoError(t, err)
	got, _ := l.FindAccount(acct.ID)
	assert.Equal(t, 100.0, got.Balance)
	assert.Empty(t, l.Investments)
}

func TestService_RecurringIncomeExpands(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	acct := seedAccount(t, svc, "Current", 0)

	instances, err := svc.AddIncome(ctx, "user-1", models.Income{
		Name:          "Salary",
		Amount:        1000,
		Date:          "2026-10-01",
		Recurring:     true,
		Frequency:     models.RecurrenceMonthly,
		BankAccountID: acct.ID,
	})
	require.NoError(t, err)
	assert.Len(t, instances, 3)

	l, err := svc.GetLedger(ctx, "user-1")
	require.NoError(t, err)
	got, _ := l.FindAccount(acct.ID)
	assert.InDelta(t, 3000, got.Balance, 0.001)
}

func TestService_GoalContribution(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	acct := seedAccount(t, svc, "Savings", 800)

	goal, err := svc.AddGoal(ctx, "user-1", models.Goal{
		Name:      "Laptop",
		Amount:    1200,
		AccountID: acct.ID,
	})
	require.NoError(t, err)

	applied, err := svc.ContributeToGoal(ctx, "user-1", goal.ID, 300)
	require.NoError(t, err)
	assert.Equal(t, 300.0, applied)

	l, err := svc.GetLedger(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 300.0, l.Goals[0].SavedAmount)
	got, _ := l.FindAccount(acct.ID)
	assert.InDelta(t, 500, got.Balance, 0.001)
}

func TestService_EmptyUserID(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.GetLedger(context.Background(), "")
	var verr *ledgercore.ValidationError
	assert.ErrorAs(t, err, &verr)
}
