package app

import (
	"context"
	"time"

	"financepro/internal/common"
	"financepro/internal/interfaces"
)

// StartQuoteScheduler launches the background quote refresh loop. Call
// Close to stop it.
func (a *App) StartQuoteScheduler() {
	ctx, cancel := context.WithCancel(context.Background())
	a.schedulerCancel = cancel
	go startQuoteScheduler(ctx, a.QuoteService, a.Storage, a.Logger, a.Config.Clients.Finnhub.GetRefreshInterval())
}

// startQuoteScheduler refreshes cached prices on a fixed interval for every
// symbol held in any stored ledger.
func startQuoteScheduler(ctx context.Context, quotes interfaces.QuoteService, storage interfaces.StorageManager, logger *common.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Quote scheduler: stopped")
			return
		case <-ticker.C:
			refreshQuotes(ctx, quotes, storage, logger)
		}
	}
}

func refreshQuotes(ctx context.Context, quotes interfaces.QuoteService, storage interfaces.StorageManager, logger *common.Logger) {
	start := time.Now()

	userIDs, err := storage.LedgerStore().ListUserIDs(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Quote refresh: listing ledgers failed")
		return
	}

	seen := map[string]bool{}
	var symbols []string
	for _, userID := range userIDs {
		l, err := storage.LedgerStore().Get(ctx, userID)
		if err != nil {
			logger.Warn().Err(err).Str("user", userID).Msg("Quote refresh: ledger read failed")
			continue
		}
		for _, sym := range l.Symbols() {
			if !seen[sym] {
				seen[sym] = true
				symbols = append(symbols, sym)
			}
		}
	}

	if len(symbols) == 0 {
		return
	}

	warning, err := quotes.RefreshAll(ctx, symbols)
	if err != nil {
		logger.Warn().Err(err).Msg("Quote refresh: aborted")
		return
	}

	event := logger.Info()
	if warning != "" {
		event = logger.Warn().Str("warning", warning)
	}
	event.
		Int("symbols", len(symbols)).
		Dur("elapsed", time.Since(start)).
		Msg("Quote refresh: complete")
}
