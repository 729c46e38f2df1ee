// Package quote maintains the live price cache behind portfolio views.
package quote

import (
	"context"
	"strings"
	"sync"
	"time"

	"financepro/internal/common"
	"financepro/internal/interfaces"
)

// Service implements QuoteService. Fetched prices are held in memory for
// fast reads and mirrored to the quote store so a restart does not lose
// the last known values.
type Service struct {
	client interfaces.QuoteClient
	store  interfaces.QuoteStore
	logger *common.Logger
	now    func() time.Time

	mu      sync.RWMutex
	prices  map[string]float64
	warning string
}

// NewService creates a new quote service. store may be nil; the cache is
// then memory-only.
func NewService(client interfaces.QuoteClient, store interfaces.QuoteStore, logger *common.Logger) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: logger,
		now:    time.Now,
		prices: map[string]float64{},
	}
}

var _ interfaces.QuoteService = (*Service)(nil)

// RefreshAll fetches current prices for the given symbols. A symbol that
// fails adds a line to the returned warning; the rest still refresh. Only
// context cancellation aborts the sweep.
func (s *Service) RefreshAll(ctx context.Context, symbols []string) (string, error) {
	var failures []string
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		q, err := s.client.GetQuote(ctx, symbol)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("quote fetch failed")
			failures = append(failures, "Failed to fetch price for "+symbol+".")
			continue
		}
		q.FetchedAt = s.now()

		s.mu.Lock()
		s.prices[symbol] = q.CurrentPrice
		s.mu.Unlock()

		if s.store != nil {
			if err := s.store.SaveQuote(ctx, q); err != nil {
				s.logger.Warn().Err(err).Str("symbol", symbol).Msg("quote cache write failed")
			}
		}
	}

	warning := strings.Join(failures, " ")
	s.mu.Lock()
	s.warning = warning
	s.mu.Unlock()

	if warning != "" {
		s.logger.Debug().Int("failed", len(failures)).Int("total", len(symbols)).Msg("quote refresh finished with failures")
	}
	return warning, nil
}

// Prices returns the cached price per symbol. Symbols not in memory are
// looked up in the quote store; symbols never fetched are simply absent.
func (s *Service) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	out := make(map[string]float64, len(symbols))

	var missing []string
	s.mu.RLock()
	for _, symbol := range symbols {
		if p, ok := s.prices[symbol]; ok {
			out[symbol] = p
		} else {
			missing = append(missing, symbol)
		}
	}
	s.mu.RUnlock()

	if len(missing) > 0 && s.store != nil {
		quotes, err := s.store.GetQuotes(ctx, missing)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		for _, q := range quotes {
			out[q.Symbol] = q.CurrentPrice
			s.prices[q.Symbol] = q.CurrentPrice
		}
		s.mu.Unlock()
	}
	return out, nil
}

// LastWarning returns the warning from the most recent refresh.
func (s *Service) LastWarning() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warning
}
