// Package interfaces defines service contracts for FinancePro
package interfaces

import (
	"context"

	"financepro/internal/models"
)

// LedgerService manages the per-user financial document. Every mutation
// reconciles the referenced bank account balance in the same write.
type LedgerService interface {
	// GetLedger retrieves the user's full ledger
	GetLedger(ctx context.Context, userID string) (*models.Ledger, error)

	// Bank accounts
	AddAccount(ctx context.Context, userID string, account models.BankAccount) (*models.BankAccount, error)
	UpdateAccount(ctx context.Context, userID string, account models.BankAccount) error
	DeleteAccount(ctx context.Context, userID, accountID string) error

	// Expenses. Recurring expenses expand into independent instances up
	// to their end date.
	AddExpense(ctx context.Context, userID string, expense models.Expense) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, userID string, expense models.Expense) error
	DeleteExpense(ctx context.Context, userID, expenseID string) error

	// Income. Recurring income expands to the end of the calendar year.
	AddIncome(ctx context.Context, userID string, income models.Income) ([]models.Income, error)
	UpdateIncome(ctx context.Context, userID string, income models.Income) error
	DeleteIncome(ctx context.Context, userID, incomeID string) error

	// Investments
	AddInvestment(ctx context.Context, userID string, inv models.Investment) (*models.Investment, error)
	UpdateInvestment(ctx context.Context, userID string, inv models.Investment) error
	DeleteInvestment(ctx context.Context, userID, investmentID string) error

	// Goals
	AddGoal(ctx context.Context, userID string, goal models.Goal) (*models.Goal, error)
	UpdateGoal(ctx context.Context, userID string, goal models.Goal) error
	DeleteGoal(ctx context.Context, userID, goalID string) error

	// ContributeToGoal moves funds from the goal's account into its saved
	// amount, clamped to what the goal still needs. Returns the applied
	// contribution.
	ContributeToGoal(ctx context.Context, userID, goalID string, amount float64) (float64, error)
}

// AnalyticsService derives chart-ready series from a user's ledger.
type AnalyticsService interface {
	// BalanceSeries reconstructs one account's daily balance over a month.
	BalanceSeries(ctx context.Context, userID, accountID string, year int, month int) ([]models.BalancePoint, error)

	// CategoryTotals sums expenses per category over a date range.
	CategoryTotals(ctx context.Context, userID, from, to string) ([]models.CategoryTotal, error)

	// ExpenseStats summarizes spending over a date range.
	ExpenseStats(ctx context.Context, userID, from, to string) (*models.ExpenseStats, error)

	// PortfolioOverview builds the cumulative investment value series with
	// live prices where available.
	PortfolioOverview(ctx context.Context, userID string) (*models.PortfolioOverview, error)

	// Holdings returns net open positions per symbol.
	Holdings(ctx context.Context, userID string) ([]models.HoldingPosition, error)

	// IncomeByMonth groups income totals by cached month and year.
	IncomeByMonth(ctx context.Context, userID string, year int) ([]models.MonthlyIncome, error)

	// RecentEntries returns the latest expenses and income for the dashboard.
	RecentEntries(ctx context.Context, userID string, limit int) (*models.RecentEntries, error)
}

// QuoteService maintains the live price cache.
type QuoteService interface {
	// RefreshAll fetches current prices for the given symbols. Individual
	// failures accumulate into the returned warning instead of failing the
	// refresh.
	RefreshAll(ctx context.Context, symbols []string) (warning string, err error)

	// Prices returns the cached price per symbol.
	Prices(ctx context.Context, symbols []string) (map[string]float64, error)

	// LastWarning returns the warning accumulated by the most recent
	// refresh, or empty when every symbol resolved.
	LastWarning() string
}
