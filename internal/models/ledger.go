// Package models defines data structures for FinancePro
package models

import (
	"encoding/json"
	"strings"
)

// CurrentSchemaVersion is stamped on every ledger write. Older documents are
// normalized on load (see Ledger.Normalize) rather than migrated in place.
const CurrentSchemaVersion = 2

// ExpenseCategory is a closed set of expense labels. Charts render the full
// set, so aggregation emits every category even when its total is zero.
type ExpenseCategory string

const (
	CategoryFood           ExpenseCategory = "Food"
	CategoryTransportation ExpenseCategory = "Transportation"
	CategoryEntertainment  ExpenseCategory = "Entertainment"
	CategoryClothing       ExpenseCategory = "Clothing"
	CategoryInsurance      ExpenseCategory = "Insurance"
	CategoryPersonal       ExpenseCategory = "Personal"
	CategoryDebt           ExpenseCategory = "Debt"
	CategoryUtilities      ExpenseCategory = "Utilities"
	CategoryHousing        ExpenseCategory = "Housing"
	CategoryOther          ExpenseCategory = "Other"
)

// ExpenseCategories lists every category in canonical chart order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood, CategoryTransportation, CategoryEntertainment,
	CategoryClothing, CategoryInsurance, CategoryPersonal,
	CategoryDebt, CategoryUtilities, CategoryHousing, CategoryOther,
}

// ValidExpenseCategory reports whether c is a member of the closed set.
func ValidExpenseCategory(c ExpenseCategory) bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Recurrence describes how a record template repeats.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// ValidRecurrence reports whether r is a known recurrence value.
func ValidRecurrence(r Recurrence) bool {
	return r == RecurrenceNone || r == RecurrenceWeekly || r == RecurrenceMonthly
}

// UnmarshalJSON accepts both the current string form and the legacy boolean
// form of the expense recurring field. Legacy true maps to monthly, the
// historical default frequency.
func (r *Recurrence) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*r = RecurrenceMonthly
		} else {
			*r = RecurrenceNone
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = Recurrence(strings.ToLower(s))
	return nil
}

// InvestmentAction is the direction of an investment trade.
type InvestmentAction string

const (
	ActionBuy  InvestmentAction = "buy"
	ActionSell InvestmentAction = "sell"
)

// ValidInvestmentAction reports whether a is "buy" or "sell".
func ValidInvestmentAction(a InvestmentAction) bool {
	return a == ActionBuy || a == ActionSell
}

// Sign returns the signed direction of a trade's effect on portfolio value:
// +1 for buy, -1 for sell.
func (a InvestmentAction) Sign() float64 {
	if a == ActionSell {
		return -1
	}
	return 1
}

// BankAccount is the balance-bearing aggregate every transactional record
// posts against. StartingBalance is an immutable snapshot taken at creation
// and anchors time-series reconstruction; Balance is maintained incrementally
// by the reconciliation engine.
type BankAccount struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Balance         float64 `json:"balance"`
	StartingBalance float64 `json:"startingBalance"`
}

// Expense is a single dated outgoing. Recurring templates are expanded into
// independent instances at creation time; EndDate bounds the expansion.
type Expense struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Amount        float64         `json:"amount"`
	Category      ExpenseCategory `json:"category"`
	Date          string          `json:"date"`
	Recurring     Recurrence      `json:"recurring"`
	EndDate       string          `json:"endDate,omitempty"`
	BankAccountID string          `json:"bankAccountId"`
}

// Income is a single dated credit. Month and Year are cached from Date for
// grouping and kept consistent by Normalize.
type Income struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Amount        float64    `json:"amount"`
	Date          string     `json:"date"`
	Recurring     bool       `json:"recurring"`
	Frequency     Recurrence `json:"frequency,omitempty"`
	Month         string     `json:"month"`
	Year          int        `json:"year"`
	BankAccountID string     `json:"bankAccountId"`
}

// Investment is a single trade. A buy debits amount*price from the account,
// a sell credits it.
type Investment struct {
	ID        string           `json:"id"`
	Symbol    string           `json:"symbol"`
	Amount    float64          `json:"amount"`
	Price     float64          `json:"price"`
	Date      string           `json:"date"`
	Action    InvestmentAction `json:"action"`
	AccountID string           `json:"accountId"`
}

// Value returns the trade's total transaction value (amount * price).
func (i Investment) Value() float64 {
	return i.Amount * i.Price
}

// Goal is a savings target. SavedAmount is committed from the linked account
// and clamped to [0, Amount]; deleting the goal refunds it.
type Goal struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	SavedAmount float64 `json:"savedAmount"`
	AccountID   string  `json:"accountId"`
}

// Remaining returns the amount still needed to reach the target.
func (g Goal) Remaining() float64 {
	r := g.Amount - g.SavedAmount
	if r < 0 {
		return 0
	}
	return r
}

// Ledger is the per-user document holding every denormalized record array.
// It is read and written as a whole through named top-level fields so that a
// record mutation and its balance adjustment commit atomically.
type Ledger struct {
	UserID        string        `json:"user_id"`
	BankAccounts  []BankAccount `json:"bankAccounts"`
	Expenses      []Expense     `json:"expenses"`
	Income        []Income      `json:"income"`
	Investments   []Investment  `json:"investments"`
	Goals         []Goal        `json:"goals"`
	SchemaVersion int           `json:"schemaVersion"`
}

// NewLedger returns an empty ledger for a user at the current schema version.
func NewLedger(userID string) *Ledger {
	return &Ledger{
		UserID:        userID,
		BankAccounts:  []BankAccount{},
		Expenses:      []Expense{},
		Income:        []Income{},
		Investments:   []Investment{},
		Goals:         []Goal{},
		SchemaVersion: CurrentSchemaVersion,
	}
}

// FindAccount returns the account with the given id and its index, or nil, -1.
func (l *Ledger) FindAccount(id string) (*BankAccount, int) {
	for i := range l.BankAccounts {
		if l.BankAccounts[i].ID == id {
			return &l.BankAccounts[i], i
		}
	}
	return nil, -1
}

// Symbols returns the distinct investment symbols in insertion order.
func (l *Ledger) Symbols() []string {
	seen := make(map[string]bool)
	var out []string
	for _, inv := range l.Investments {
		if inv.Symbol == "" || seen[inv.Symbol] {
			continue
		}
		seen[inv.Symbol] = true
		out = append(out, inv.Symbol)
	}
	return out
}

// Normalize defaults legacy document shapes in place and stamps the current
// schema version. Record shapes drifted across revisions of the original
// document (recurring as boolean, bankAccountId and goal savedAmount added
// late), so every load passes through here before any other code sees the
// ledger.
func (l *Ledger) Normalize() {
	for i := range l.Expenses {
		e := &l.Expenses[i]
		if !ValidRecurrence(e.Recurring) {
			e.Recurring = RecurrenceNone
		}
		if !ValidExpenseCategory(e.Category) {
			e.Category = CategoryOther
		}
	}

	for i := range l.Income {
		in := &l.Income[i]
		if in.Recurring && !ValidRecurrence(in.Frequency) {
			in.Frequency = RecurrenceMonthly
		}
		if in.Month == "" || in.Year == 0 {
			if t, err := ParseDate(in.Date); err == nil {
				in.Month = MonthName(t)
				in.Year = t.Year()
			}
		}
	}

	for i := range l.Goals {
		g := &l.Goals[i]
		if g.SavedAmount < 0 {
			g.SavedAmount = 0
		}
		if g.SavedAmount > g.Amount {
			g.SavedAmount = g.Amount
		}
	}

	l.SchemaVersion = CurrentSchemaVersion
}
