// Package interfaces defines service contracts for FinancePro
package interfaces

import (
	"context"

	"financepro/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	InternalStore() InternalStore
	LedgerStore() LedgerStore
	QuoteStore() QuoteStore

	// Lifecycle
	Close() error
}

// InternalStore manages user accounts and system-level KV.
type InternalStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]string, error)

	// System key-value (non-user-scoped)
	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error

	Close() error
}

// LedgerStore persists the per-user financial document.
type LedgerStore interface {
	// Get returns the user's ledger, normalized. A user with no ledger yet
	// gets an empty one, never an error.
	Get(ctx context.Context, userID string) (*models.Ledger, error)

	// Apply merges a write set into the user's document as a single
	// statement. All touched collections land together or not at all.
	Apply(ctx context.Context, userID string, ws models.WriteSet) error

	// ListUserIDs returns the IDs of all users with a stored ledger.
	ListUserIDs(ctx context.Context) ([]string, error)

	Close() error
}

// QuoteStore caches the latest fetched price per symbol.
type QuoteStore interface {
	GetQuotes(ctx context.Context, symbols []string) ([]*models.Quote, error)
	SaveQuote(ctx context.Context, quote *models.Quote) error

	Close() error
}
