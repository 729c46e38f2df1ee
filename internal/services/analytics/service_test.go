package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financepro/internal/common"
	"financepro/internal/interfaces"
	"financepro/internal/models"
)

type stubLedgerStore struct {
	ledger *models.Ledger
}

func (s *stubLedgerStore) Get(_ context.Context, userID string) (*models.Ledger, error) {
	if s.ledger != nil {
		return s.ledger, nil
	}
	return models.NewLedger(userID), nil
}

func (s *stubLedgerStore) Apply(context.Context, string, models.WriteSet) error { return nil }
func (s *stubLedgerStore) ListUserIDs(context.Context) ([]string, error)        { return nil, nil }
func (s *stubLedgerStore) Close() error                                         { return nil }

type stubStorageManager struct {
	ledgerStore *stubLedgerStore
}

func (s *stubStorageManager) InternalStore() interfaces.InternalStore { return nil }
func (s *stubStorageManager) LedgerStore() interfaces.LedgerStore     { return s.ledgerStore }
func (s *stubStorageManager) QuoteStore() interfaces.QuoteStore       { return nil }
func (s *stubStorageManager) Close() error                            { return nil }

type stubQuoteService struct {
	prices  map[string]float64
	warning string
}

func (s *stubQuoteService) RefreshAll(context.Context, []string) (string, error) {
	return s.warning, nil
}

func (s *stubQuoteService) Prices(_ context.Context, symbols []string) (map[string]float64, error) {
	out := map[string]float64{}
	for _, sym := range symbols {
		if p, ok := s.prices[sym]; ok {
			out[sym] = p
		}
	}
	return out, nil
}

func (s *stubQuoteService) LastWarning() string { return s.warning }

func newTestService(l *models.Ledger, quotes interfaces.QuoteService) *Service {
	storage := &stubStorageManager{ledgerStore: &stubLedgerStore{ledger: l}}
	return NewService(storage, quotes, common.NewSilentLogger())
}

func TestBalanceSeries_ReconstructsMonth(t *testing.T) {
	l := models.NewLedger("user-1")
	l.BankAccounts = []models.BankAccount{
		{ID: "acct-1", Name: "Current", Balance: 1130, StartingBalance: 100},
		{ID: "acct-2", Name: "Other", Balance: 50, StartingBalance: 50},
	}
	l.Income = []models.Income{
		{ID: "i-1", Name: "Salary", Amount: 1000, Date: "2026-04-10", BankAccountID: "acct-1"},
		{ID: "i-2", Name: "Elsewhere", Amount: 999, Date: "2026-04-10", BankAccountID: "acct-2"},
	}
	l.Expenses = []models.Expense{
		{ID: "e-1", Name: "Rent", Amount: 700, Category: models.CategoryHousing, Date: "2026-04-01", BankAccountID: "acct-1"},
		{ID: "e-2", Name: "Food", Amount: 30, Category: models.CategoryFood, Date: "2026-04-20", BankAccountID: "acct-1"},
		{ID: "e-3", Name: "Earlier", Amount: 240, Category: models.CategoryOther, Date: "2026-03-15", BankAccountID: "acct-1"},
	}
	svc := newTestService(l, nil)

	points, err := svc.BalanceSeries(context.Background(), "user-1", "acct-1", 2026, 4)
	require.NoError(t, err)
	require.Len(t, points, 30)

	assert.Equal(t, "2026-04-01", points[0].Date)
	// 100 - 240 (March) - 700 (day 1)
	assert.Equal(t, -840.0, points[0].Balance)
	// salary lands on the 10th
	assert.Equal(t, -840.0, points[8].Balance)
	assert.Equal(t, 160.0, points[9].Balance)
	// food on the 20th
	assert.Equal(t, 130.0, points[19].Balance)
	assert.Equal(t, 130.0, points[29].Balance)
}

func TestBalanceSeries_UnknownAccount(t *testing.T) {
	svc := newTestService(models.NewLedger("user-1"), nil)
	_, err := svc.BalanceSeries(context.Background(), "user-1", "nope", 2026, 4)
	assert.Error(t, err)
}

func TestCategoryTotals_FullAxisCanonicalOrder(t *testing.T) {
	l := models.NewLedger("user-1")
	l.Expenses = []models.Expense{
		{ID: "e-1", Name: "Lunch", Amount: 10.10, Category: models.CategoryFood, Date: "2026-03-01"},
		{ID: "e-2", Name: "Dinner", Amount: 20.20, Category: models.CategoryFood, Date: "2026-03-02"},
		{ID: "e-3", Name: "Bus", Amount: 3, Category: models.CategoryTransportation, Date: "2026-03-02"},
		{ID: "e-4", Name: "Old", Amount: 99, Category: models.CategoryFood, Date: "2026-01-01"},
	}
	svc := newTestService(l, nil)

	totals, err := svc.CategoryTotals(context.Background(), "user-1", "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, totals, len(models.ExpenseCategories))

	byName := map[models.ExpenseCategory]float64{}
	for i, ct := range totals {
		assert.Equal(t, models.ExpenseCategories[i], ct.Name)
		byName[ct.Name] = ct.Amount
	}
	assert.Equal(t, 30.30, byName[models.CategoryFood])
	assert.Equal(t, 3.0, byName[models.CategoryTransportation])
	assert.Equal(t, 0.0, byName[models.CategoryHousing])
}

func TestExpenseStats(t *testing.T) {
	l := models.NewLedger("user-1")
	l.Expenses = []models.Expense{
		{ID: "e-1", Name: "Lunch", Amount: 10, Category: models.CategoryFood, Date: "2026-03-01"},
		{ID: "e-2", Name: "Dinner", Amount: 25, Category: models.CategoryFood, Date: "2026-03-01"},
		{ID: "e-3", Name: "Coat", Amount: 80, Category: models.CategoryClothing, Date: "2026-03-03"},
	}
	svc := newTestService(l, nil)

	stats, err := svc.ExpenseStats(context.Background(), "user-1", "2026-03-01", "2026-03-05")
	require.NoError(t, err)

	assert.Equal(t, 115.0, stats.Total)
	assert.Equal(t, "2026-03-03", stats.MostSpentDay.Date)
	assert.Equal(t, 80.0, stats.MostSpentDay.Amount)
	require.NotNil(t, stats.HighestExpense)
	assert.Equal(t, "e-3", stats.HighestExpense.ID)
	assert.Equal(t, 23.0, stats.AverageDailySpending)
	assert.Equal(t, []models.HabitPoint{
		{Date: "2026-03-01", Count: 2},
		{Date: "2026-03-03", Count: 1},
	}, stats.Habit)
}

func TestExpenseStats_EmptyRange(t *testing.T) {
	svc := newTestService(models.NewLedger("user-1"), nil)
	stats, err := svc.ExpenseStats(context.Background(), "user-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.Total)
	assert.Nil(t, stats.HighestExpense)
	assert.Empty(t, stats.Habit)
}

func TestPortfolioOverview_CumulativeDateOrder(t *testing.T) {
	l := models.NewLedger("user-1")
	l.Investments = []models.Investment{
		// stored out of order on purpose
		{ID: "t-2", Symbol: "AAPL", Amount: 1, Price: 110, Date: "2026-02-01", Action: models.ActionBuy, AccountID: "a"},
		{ID: "t-1", Symbol: "AAPL", Amount: 2, Price: 100, Date: "2026-01-01", Action: models.ActionBuy, AccountID: "a"},
		{ID: "t-3", Symbol: "AAPL", Amount: 1, Price: 120, Date: "2026-03-01", Action: models.ActionSell, AccountID: "a"},
	}
	quotes := &stubQuoteService{
		prices:  map[string]float64{"AAPL": 150},
		warning: "",
	}
	svc := newTestService(l, quotes)

	overview, err := svc.PortfolioOverview(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, overview.Series, 3)

	// every point valued at the live 150 quote
	assert.Equal(t, "2026-01-01", overview.Series[0].Date)
	assert.Equal(t, 300.0, overview.Series[0].CumulativeValue)
	assert.Equal(t, 450.0, overview.Series[1].CumulativeValue)
	assert.Equal(t, 300.0, overview.Series[2].CumulativeValue)

	// 2 units net at live 150
	assert.Equal(t, 300.0, overview.TotalValue)
	assert.Equal(t, 150.0, overview.Prices["AAPL"])
	assert.Empty(t, overview.Warning)
}

func TestPortfolioOverview_PerSymbolPriceFallback(t *testing.T) {
	l := models.NewLedger("user-1")
	l.Investments = []models.Investment{
		{ID: "t-1", Symbol: "AAPL", Amount: 1, Price: 100, Date: "2026-01-01", Action: models.ActionBuy, AccountID: "a"},
		{ID: "t-2", Symbol: "XYZ", Amount: 1, Price: 40, Date: "2026-02-01", Action: models.ActionBuy, AccountID: "a"},
	}
	// AAPL has a live quote, XYZ falls back to its transaction price.
	svc := newTestService(l, &stubQuoteService{prices: map[string]float64{"AAPL": 150}})

	overview, err := svc.PortfolioOverview(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, overview.Series, 2)

	assert.Equal(t, 150.0, overview.Series[0].CumulativeValue)
	assert.Equal(t, 190.0, overview.Series[1].CumulativeValue)
}

func TestPortfolioOverview_QuoteWarningPassedThrough(t *testing.T) {
	l := models.NewLedger("user-1")
	l.Investments = []models.Investment{
		{ID: "t-1", Symbol: "XYZ", Amount: 2, Price: 10, Date: "2026-01-01", Action: models.ActionBuy, AccountID: "a"},
	}
	quotes := &stubQuoteService{warning: "Failed to fetch price for XYZ."}
	svc := newTestService(l, quotes)

	overview, err := svc.PortfolioOverview(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "Failed to fetch price for XYZ.", overview.Warning)
	// fallback to transaction price
	assert.Equal(t, 20.0, overview.TotalValue)
	require.Len(t, overview.Series, 1)
	assert.Equal(t, 20.0, overview.Series[0].CumulativeValue)
}

func TestHoldings_NetsAndExcludesClosedPositions(t *testing.T) {
	l := models.NewLedger("user-1")
	l.Investments = []models.Investment{
		{ID: "t-1", Symbol: "AAPL", Amount: 3, Price: 100, Date: "2026-01-01", Action: models.ActionBuy, AccountID: "a"},
		{ID: "t-2", Symbol: "AAPL", Amount: 1, Price: 120, Date: "2026-02-01", Action: models.ActionSell, AccountID: "a"},
		{ID: "t-3", Symbol: "MSFT", Amount: 2, Price: 50, Date: "2026-01-15", Action: models.ActionBuy, AccountID: "a"},
		{ID: "t-4", Symbol: "MSFT", Amount: 2, Price: 55, Date: "2026-02-15", Action: models.ActionSell, AccountID: "a"},
	}
	svc := newTestService(l, &stubQuoteService{prices: map[string]float64{"AAPL": 130}})

	positions, err := svc.Holdings(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, positions, 1)

	assert.Equal(t, "AAPL", positions[0].Symbol)
	assert.Equal(t, 2.0, positions[0].Units)
	assert.Equal(t, 130.0, positions[0].Price)
	assert.Equal(t, 260.0, positions[0].MarketValue)
}

func TestIncomeByMonth(t *testing.T) {
	l := models.NewLedger("user-1")
	l.Income = []models.Income{
		{ID: "i-1", Name: "Salary", Amount: 1000, Date: "2026-01-15", Month: "January", Year: 2026},
		{ID: "i-2", Name: "Salary", Amount: 1000, Date: "2026-02-15", Month: "February", Year: 2026},
		{ID: "i-3", Name: "Bonus", Amount: 500, Date: "2026-02-20", Month: "February", Year: 2026},
		{ID: "i-4", Name: "Old", Amount: 999, Date: "2025-02-15", Month: "February", Year: 2025},
	}
	svc := newTestService(l, nil)

	out, err := svc.IncomeByMonth(context.Background(), "user-1", 2026)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "January", out[0].Month)
	assert.Equal(t, 1000.0, out[0].Amount)
	assert.Equal(t, "February", out[1].Month)
	assert.Equal(t, 1500.0, out[1].Amount)
}

func TestRecentEntries_DefaultLimit(t *testing.T) {
	l := models.NewLedger("user-1")
	for _, d := range []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07"} {
		l.Expenses = append(l.Expenses, models.Expense{
			ID: d, Name: "x", Amount: 1, Category: models.CategoryOther, Date: d, BankAccountID: "a",
		})
	}
	svc := newTestService(l, nil)

	recent, err := svc.RecentEntries(context.Background(), "user-1", 0)
	require.NoError(t, err)
	require.Len(t, recent.Expenses, 5)
	assert.Equal(t, "2026-03-07", recent.Expenses[0].Date)
	assert.Equal(t, "2026-03-03", recent.Expenses[4].Date)
	assert.Empty(t, recent.Income)
}
