package models

import "time"

// Quote is the last known market price for a symbol. Quotes are cached so
// aggregation can fall back to the most recent fetch when the upstream quote
// API is unavailable.
type Quote struct {
	Symbol       string    `json:"symbol"`
	CurrentPrice float64   `json:"current_price"`
	FetchedAt    time.Time `json:"fetched_at"`
}
