package models

// BalancePoint is one day of an account's reconstructed balance curve.
type BalancePoint struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

// CategoryTotal is the summed expense amount for one category over a range.
// Every category of the closed set appears, zero or not, so charts keep a
// stable axis.
type CategoryTotal struct {
	Name   ExpenseCategory `json:"name"`
	Amount float64         `json:"amount"`
}

// HabitPoint counts expense entries on one day.
type HabitPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DayAmount is a date with a summed amount, used for the most-spent day.
type DayAmount struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// ExpenseStats summarizes spending over a date range.
type ExpenseStats struct {
	Total                float64      `json:"total"`
	MostSpentDay         DayAmount    `json:"most_spent_day"`
	HighestExpense       *Expense     `json:"highest_expense,omitempty"`
	AverageDailySpending float64      `json:"average_daily_spending"`
	Habit                []HabitPoint `json:"habit"`
}

// PortfolioPoint is one step of the cumulative portfolio value series.
type PortfolioPoint struct {
	Date            string  `json:"date"`
	CumulativeValue float64 `json:"cumulativeValue"`
}

// PortfolioOverview is the chart-ready investment summary. Warning carries
// accumulated per-symbol quote failures; it never blocks the data.
type PortfolioOverview struct {
	Series     []PortfolioPoint   `json:"series"`
	TotalValue float64            `json:"total_value"`
	Prices     map[string]float64 `json:"prices"`
	Warning    string             `json:"warning,omitempty"`
}

// HoldingPosition is the net position in one symbol. Positions with
// non-positive net units are excluded from holdings views.
type HoldingPosition struct {
	Symbol      string  `json:"symbol"`
	Units       float64 `json:"units"`
	Price       float64 `json:"price"`
	MarketValue float64 `json:"market_value"`
}

// MonthlyIncome is the summed income for one (month, year) group.
type MonthlyIncome struct {
	Month  string  `json:"month"`
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// RecentEntries holds the most recent records for the dashboard lists.
type RecentEntries struct {
	Expenses []Expense `json:"expenses"`
	Income   []Income  `json:"income"`
}
