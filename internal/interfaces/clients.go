// Package interfaces defines service contracts for FinancePro
package interfaces

import (
	"context"

	"financepro/internal/models"
)

// QuoteClient provides access to a market quote API
type QuoteClient interface {
	// GetQuote retrieves the current price for a symbol
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
}
