// Package analytics derives chart-ready series from a user's ledger. All
// derivations read the stored document; nothing here writes.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"financepro/internal/common"
	"financepro/internal/interfaces"
	ledgercore "financepro/internal/ledger"
	"financepro/internal/models"
)

// Service implements AnalyticsService.
type Service struct {
	storage interfaces.StorageManager
	quotes  interfaces.QuoteService
	logger  *common.Logger
}

// NewService creates a new analytics service. quotes may be nil; portfolio
// views then value every position at its transaction price.
func NewService(storage interfaces.StorageManager, quotes interfaces.QuoteService, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		quotes:  quotes,
		logger:  logger,
	}
}

var _ interfaces.AnalyticsService = (*Service)(nil)

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// BalanceSeries reconstructs one account's balance for every day of a
// month. The balance on day d is the starting balance plus all income on
// or before d minus all expenses on or before d, counting only records
// charged to that account.
func (s *Service) BalanceSeries(ctx context.Context, userID, accountID string, year int, month int) ([]models.BalancePoint, error) {
	if month < 1 || month > 12 {
		return nil, &ledgercore.ValidationError{Field: "month", Message: "must be 1 through 12"}
	}
	l, err := s.storage.LedgerStore().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	acct, _ := l.FindAccount(accountID)
	if acct == nil {
		return nil, &ledgercore.AccountNotFoundError{AccountID: accountID}
	}

	expenses := ledgercore.ExpensesForAccount(l, accountID)
	income := ledgercore.IncomeForAccount(l, accountID)

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	points := make([]models.BalancePoint, 0, days)
	for day := 0; day < days; day++ {
		date := models.FormatDate(first.AddDate(0, 0, day))
		balance := decimal.NewFromFloat(acct.StartingBalance)
		for _, inc := range income {
			if inc.Date <= date {
				balance = balance.Add(decimal.NewFromFloat(inc.Amount))
			}
		}
		for _, e := range expenses {
			if e.Date <= date {
				balance = balance.Sub(decimal.NewFromFloat(e.Amount))
			}
		}
		points = append(points, models.BalancePoint{Date: date, Balance: round2(balance)})
	}
	return points, nil
}

// CategoryTotals sums expenses per category over a date range. Every
// category of the closed set appears in canonical order, zero or not.
func (s *Service) CategoryTotals(ctx context.Context, userID, from, to string) ([]models.CategoryTotal, error) {
	l, err := s.storage.LedgerStore().Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sums := make(map[models.ExpenseCategory]decimal.Decimal, len(models.ExpenseCategories))
	for _, e := range ledgercore.ExpensesInRange(l, from, to) {
		sums[e.Category] = sums[e.Category].Add(decimal.NewFromFloat(e.Amount))
	}

	totals := make([]models.CategoryTotal, 0, len(models.ExpenseCategories))
	for _, cat := range models.ExpenseCategories {
		totals = append(totals, models.CategoryTotal{Name: cat, Amount: round2(sums[cat])})
	}
	return totals, nil
}

// ExpenseStats summarizes spending over a date range: grand total, the
// single heaviest day, the biggest entry, daily average across the range,
// and the per-day entry counts for habit charts.
func (s *Service) ExpenseStats(ctx context.Context, userID, from, to string) (*models.ExpenseStats, error) {
	l, err := s.storage.LedgerStore().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses := ledgercore.ExpensesInRange(l, from, to)

	stats := &models.ExpenseStats{Habit: []models.HabitPoint{}}
	if len(expenses) == 0 {
		return stats, nil
	}

	total := decimal.Zero
	perDay := map[string]decimal.Decimal{}
	counts := map[string]int{}
	var highest *models.Expense
	for i := range expenses {
		e := expenses[i]
		total = total.Add(decimal.NewFromFloat(e.Amount))
		perDay[e.Date] = perDay[e.Date].Add(decimal.NewFromFloat(e.Amount))
		counts[e.Date]++
		if highest == nil || e.Amount > highest.Amount {
			highest = &expenses[i]
		}
	}
	stats.Total = round2(total)
	stats.HighestExpense = highest

	for date, sum := range perDay {
		if amt := round2(sum); amt > stats.MostSpentDay.Amount ||
			(amt == stats.MostSpentDay.Amount && (stats.MostSpentDay.Date == "" || date < stats.MostSpentDay.Date)) {
			stats.MostSpentDay = models.DayAmount{Date: date, Amount: amt}
		}
	}

	days := rangeDays(from, to, expenses)
	if days > 0 {
		stats.AverageDailySpending = round2(total.Div(decimal.NewFromInt(int64(days))))
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		stats.Habit = append(stats.Habit, models.HabitPoint{Date: date, Count: counts[date]})
	}
	return stats, nil
}

// rangeDays is the inclusive day span of the stats window. Open bounds fall
// back to the earliest and latest expense dates.
func rangeDays(from, to string, expenses []models.Expense) int {
	if from == "" || to == "" {
		lo, hi := expenses[0].Date, expenses[0].Date
		for _, e := range expenses[1:] {
			if e.Date < lo {
				lo = e.Date
			}
			if e.Date > hi {
				hi = e.Date
			}
		}
		if from == "" {
			from = lo
		}
		if to == "" {
			to = hi
		}
	}
	start, err1 := models.ParseDate(from)
	end, err2 := models.ParseDate(to)
	if err1 != nil || err2 != nil || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// PortfolioOverview builds the cumulative portfolio-value series in date
// order, each trade valued at the live price when the cache has one and the
// transaction price otherwise, plus a current valuation of open positions.
func (s *Service) PortfolioOverview(ctx context.Context, userID string) (*models.PortfolioOverview, error) {
	l, err := s.storage.LedgerStore().Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &models.PortfolioOverview{
		Series: []models.PortfolioPoint{},
		Prices: map[string]float64{},
	}
	if len(l.Investments) == 0 {
		return overview, nil
	}

	prices := s.livePrices(ctx, l.Symbols())
	overview.Prices = prices
	if s.quotes != nil {
		overview.Warning = s.quotes.LastWarning()
	}

	trades := append([]models.Investment{}, l.Investments...)
	sort.SliceStable(trades, func(i, j int) bool { return trades[i].Date < trades[j].Date })

	cumulative := decimal.Zero
	for _, inv := range trades {
		price, ok := prices[inv.Symbol]
		if !ok {
			price = inv.Price
		}
		value := decimal.NewFromFloat(inv.Amount).
			Mul(decimal.NewFromFloat(price)).
			Mul(decimal.NewFromFloat(inv.Action.Sign()))
		cumulative = cumulative.Add(value)
		overview.Series = append(overview.Series, models.PortfolioPoint{
			Date:            inv.Date,
			CumulativeValue: round2(cumulative),
		})
	}

	total := decimal.Zero
	for _, pos := range holdingsFromTrades(trades, prices) {
		total = total.Add(decimal.NewFromFloat(pos.MarketValue))
	}
	overview.TotalValue = round2(total)
	return overview, nil
}

// Holdings returns net open positions per symbol, valued at the live price
// when cached and the most recent transaction price otherwise.
func (s *Service) Holdings(ctx context.Context, userID string) ([]models.HoldingPosition, error) {
	l, err := s.storage.LedgerStore().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	prices := s.livePrices(ctx, l.Symbols())

	trades := append([]models.Investment{}, l.Investments...)
	sort.SliceStable(trades, func(i, j int) bool { return trades[i].Date < trades[j].Date })
	return holdingsFromTrades(trades, prices), nil
}

// holdingsFromTrades nets buys against sells per symbol. Trades must be in
// date order so the fallback price is the latest one.
func holdingsFromTrades(trades []models.Investment, prices map[string]float64) []models.HoldingPosition {
	units := map[string]decimal.Decimal{}
	lastPrice := map[string]float64{}
	var order []string
	for _, inv := range trades {
		if _, seen := units[inv.Symbol]; !seen {
			order = append(order, inv.Symbol)
		}
		units[inv.Symbol] = units[inv.Symbol].Add(
			decimal.NewFromFloat(inv.Amount).Mul(decimal.NewFromFloat(inv.Action.Sign())))
		lastPrice[inv.Symbol] = inv.Price
	}

	var positions []models.HoldingPosition
	for _, sym := range order {
		n := units[sym]
		if n.Sign() <= 0 {
			continue
		}
		price, ok := prices[sym]
		if !ok {
			price = lastPrice[sym]
		}
		positions = append(positions, models.HoldingPosition{
			Symbol:      sym,
			Units:       round2(n),
			Price:       price,
			MarketValue: round2(n.Mul(decimal.NewFromFloat(price))),
		})
	}
	return positions
}

func (s *Service) livePrices(ctx context.Context, symbols []string) map[string]float64 {
	if s.quotes == nil || len(symbols) == 0 {
		return map[string]float64{}
	}
	prices, err := s.quotes.Prices(ctx, symbols)
	if err != nil {
		s.logger.Warn().Err(err).Msg("price cache unavailable, valuing at transaction prices")
		return map[string]float64{}
	}
	return prices
}

// IncomeByMonth groups income totals by their cached month and year,
// in calendar order.
func (s *Service) IncomeByMonth(ctx context.Context, userID string, year int) ([]models.MonthlyIncome, error) {
	l, err := s.storage.LedgerStore().Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	type group struct {
		month string
		year  int
	}
	sums := map[group]decimal.Decimal{}
	for _, inc := range l.Income {
		if year != 0 && inc.Year != year {
			continue
		}
		g := group{month: inc.Month, year: inc.Year}
		sums[g] = sums[g].Add(decimal.NewFromFloat(inc.Amount))
	}

	groups := make([]group, 0, len(sums))
	for g := range sums {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].year != groups[j].year {
			return groups[i].year < groups[j].year
		}
		return models.MonthNumber(groups[i].month) < models.MonthNumber(groups[j].month)
	})

	out := make([]models.MonthlyIncome, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.MonthlyIncome{Month: g.month, Year: g.year, Amount: round2(sums[g])})
	}
	return out, nil
}

// RecentEntries returns the latest expenses and income, newest first.
func (s *Service) RecentEntries(ctx context.Context, userID string, limit int) (*models.RecentEntries, error) {
	if limit <= 0 {
		limit = 5
	}
	l, err := s.storage.LedgerStore().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.RecentEntries{
		Expenses: ledgercore.RecentExpenses(l, limit),
		Income:   ledgercore.RecentIncome(l, limit),
	}, nil
}
