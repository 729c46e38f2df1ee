package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"financepro/internal/common"
	"financepro/internal/interfaces"
	"financepro/internal/models"
)

// QuoteStore caches the latest fetched price per symbol, keyed by symbol.
type QuoteStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewQuoteStore(db *surrealdb.DB, logger *common.Logger) *QuoteStore {
	return &QuoteStore{
		db:     db,
		logger: logger,
	}
}

var _ interfaces.QuoteStore = (*QuoteStore)(nil)

// GetQuotes returns cached quotes for the requested symbols. Symbols never
// cached are simply absent from the result.
func (s *QuoteStore) GetQuotes(ctx context.Context, symbols []string) ([]*models.Quote, error) {
	var quotes []*models.Quote
	for _, symbol := range symbols {
		q, err := surrealdb.Select[models.Quote](ctx, s.db, surrealmodels.NewRecordID("quote", symbol))
		if err != nil {
			return nil, fmt.Errorf("failed to select quote %s: %w", symbol, err)
		}
		if q != nil && q.Symbol != "" {
			quotes = append(quotes, q)
		}
	}
	return quotes, nil
}

func (s *QuoteStore) SaveQuote(ctx context.Context, quote *models.Quote) error {
	sql := "UPSERT type::record('quote', $id) CONTENT $quote"
	vars := map[string]any{"id": quote.Symbol, "quote": quote}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Quote](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to save quote after retries: %w", err)
		}
	}
	return nil
}

func (s *QuoteStore) Close() error {
	return nil
}
