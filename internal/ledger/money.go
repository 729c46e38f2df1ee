package ledger

import "github.com/shopspring/decimal"

// Balance arithmetic goes through decimal so repeated add/remove cycles
// cannot drift an account balance. Model fields stay float64 for the
// document encoding; conversion happens only at the edges here.

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// addToBalance returns balance + delta rounded to cents.
func addToBalance(balance, delta float64) float64 {
	return round2(money(balance).Add(money(delta)))
}

// sumRounded adds the values exactly and rounds once at the end.
func sumRounded(values []float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(money(v))
	}
	return round2(total)
}
