package quote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financepro/internal/common"
	"financepro/internal/models"
)

type stubQuoteClient struct {
	prices map[string]float64
	calls  int
}

func (c *stubQuoteClient) GetQuote(_ context.Context, symbol string) (*models.Quote, error) {
	c.calls++
	p, ok := c.prices[symbol]
	if !ok {
		return nil, errors.New("symbol not found")
	}
	return &models.Quote{Symbol: symbol, CurrentPrice: p}, nil
}

type memQuoteStore struct {
	quotes map[string]*models.Quote
}

func newMemQuoteStore() *memQuoteStore {
	return &memQuoteStore{quotes: map[string]*models.Quote{}}
}

func (s *memQuoteStore) GetQuotes(_ context.Context, symbols []string) ([]*models.Quote, error) {
	var out []*models.Quote
	for _, sym := range symbols {
		if q, ok := s.quotes[sym]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memQuoteStore) SaveQuote(_ context.Context, q *models.Quote) error {
	s.quotes[q.Symbol] = q
	return nil
}

func (s *memQuoteStore) Close() error { return nil }

func TestRefreshAll_AccumulatesFailures(t *testing.T) {
	client := &stubQuoteClient{prices: map[string]float64{"AAPL": 150, "MSFT": 400}}
	svc := NewService(client, newMemQuoteStore(), common.NewSilentLogger())

	warning, err := svc.RefreshAll(context.Background(), []string{"AAPL", "BAD", "MSFT"})
	require.NoError(t, err)
	assert.Equal(t, "Failed to fetch price for BAD.", warning)
	assert.Equal(t, warning, svc.LastWarning())

	prices, err := svc.Prices(context.Background(), []string{"AAPL", "MSFT", "BAD"})
	require.NoError(t, err)
	assert.Equal(t, 150.0, prices["AAPL"])
	assert.Equal(t, 400.0, prices["MSFT"])
	_, ok := prices["BAD"]
	assert.False(t, ok)
}

func TestRefreshAll_ClearsWarningOnFullSuccess(t *testing.T) {
	client := &stubQuoteClient{prices: map[string]float64{"AAPL": 150}}
	svc := NewService(client, nil, common.NewSilentLogger())

	warning, err := svc.RefreshAll(context.Background(), []string{"MISSING"})
	require.NoError(t, err)
	assert.NotEmpty(t, warning)

	client.prices["MISSING"] = 10
	warning, err = svc.RefreshAll(context.Background(), []string{"MISSING"})
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Empty(t, svc.LastWarning())
}

func TestPrices_FallsBackToStore(t *testing.T) {
	store := newMemQuoteStore()
	require.NoError(t, store.SaveQuote(context.Background(), &models.Quote{Symbol: "AAPL", CurrentPrice: 123}))
	svc := NewService(&stubQuoteClient{}, store, common.NewSilentLogger())

	prices, err := svc.Prices(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	assert.Equal(t, 123.0, prices["AAPL"])
}

func TestRefreshAll_StopsOnCancelledContext(t *testing.T) {
	client := &stubQuoteClient{prices: map[string]float64{"AAPL": 150}}
	svc := NewService(client, nil, common.NewSilentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RefreshAll(ctx, []string{"AAPL"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, client.calls)
}
