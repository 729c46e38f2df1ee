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

// LedgerStore persists one document per user in the ledger table, keyed by
// user ID.
type LedgerStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewLedgerStore(db *surrealdb.DB, logger *common.Logger) *LedgerStore {
	return &LedgerStore{
		db:     db,
		logger: logger,
	}
}

var _ interfaces.LedgerStore = (*LedgerStore)(nil)

// Get returns the user's ledger, normalized. A user without a stored
// document gets an empty ledger.
func (s *LedgerStore) Get(ctx context.Context, userID string) (*models.Ledger, error) {
	ledger, err := surrealdb.Select[models.Ledger](ctx, s.db, surrealmodels.NewRecordID("ledger", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to select ledger: %w", err)
	}
	if ledger == nil || ledger.UserID == "" {
		return models.NewLedger(userID), nil
	}
	ledger.Normalize()
	return ledger, nil
}

// Apply merges a write set into the user's document. MERGE touches only the
// collections present in the patch, so one statement carries the paired
// account and record changes atomically.
func (s *LedgerStore) Apply(ctx context.Context, userID string, ws models.WriteSet) error {
	if ws.IsEmpty() {
		return nil
	}

	patch := ws.Fields()
	patch["user_id"] = userID
	patch["schemaVersion"] = models.CurrentSchemaVersion

	sql := "UPSERT type::record('ledger', $id) MERGE $patch"
	vars := map[string]any{"id": userID, "patch": patch}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Ledger](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to apply ledger write set after retries: %w", err)
		}
	}
	return nil
}

// ListUserIDs returns the IDs of all users with a stored ledger.
func (s *LedgerStore) ListUserIDs(ctx context.Context) ([]string, error) {
	list, err := surrealdb.Select[[]models.Ledger](ctx, s.db, surrealmodels.Table("ledger"))
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}

	var userIDs []string
	if list != nil {
		for _, l := range *list {
			if l.UserID != "" {
				userIDs = append(userIDs, l.UserID)
			}
		}
	}
	return userIDs, nil
}

func (s *LedgerStore) Close() error {
	return nil
}
