package surrealdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financepro/internal/models"
)

func TestLedgerGet_EmptyForNewUser(t *testing.T) {
	db := testDB(t)
	store := NewLedgerStore(db, testLogger())

	l, err := store.Get(context.Background(), "fresh-user")
	require.NoError(t, err)
	assert.Equal(t, "fresh-user", l.UserID)
	assert.Empty(t, l.BankAccounts)
	assert.Empty(t, l.Expenses)
}

func TestLedgerApply_PairsCollections(t *testing.T) {
	db := testDB(t)
	store := NewLedgerStore(db, testLogger())
	ctx := context.Background()

	accounts := []models.BankAccount{
		{ID: "acct-1", Name: "Current", Balance: 940, StartingBalance: 1000},
	}
	expenses := []models.Expense{
		{ID: "e-1", Name: "Groceries", Amount: 60, Category: models.CategoryFood, Date: "2026-03-10", BankAccountID: "acct-1"},
	}
	require.NoError(t, store.Apply(ctx, "user-1", models.WriteSet{
		BankAccounts: &accounts,
		Expenses:     &expenses,
	}))

	l, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, l.BankAccounts, 1)
	assert.Equal(t, 940.0, l.BankAccounts[0].Balance)
	require.Len(t, l.Expenses, 1)
	assert.Equal(t, "Groceries", l.Expenses[0].Name)
	assert.Equal(t, models.CurrentSchemaVersion, l.SchemaVersion)
}

func TestLedgerApply_MergeLeavesOtherCollections(t *testing.T) {
	db := testDB(t)
	store := NewLedgerStore(db, testLogger())
	ctx := context.Background()

	accounts := []models.BankAccount{{ID: "acct-1", Name: "Current", Balance: 100, StartingBalance: 100}}
	require.NoError(t, store.Apply(ctx, "user-2", models.WriteSet{BankAccounts: &accounts}))

	goals := []models.Goal{{ID: "g-1", Name: "Trip", Amount: 500, AccountID: "acct-1"}}
	require.NoError(t, store.Apply(ctx, "user-2", models.WriteSet{Goals: &goals}))

	l, err := store.Get(ctx, "user-2")
	require.NoError(t, err)
	assert.Len(t, l.BankAccounts, 1)
	assert.Len(t, l.Goals, 1)
}

func TestLedgerApply_EmptyWriteSetIsNoop(t *testing.T) {
	db := testDB(t)
	store := NewLedgerStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.Apply(ctx, "user-3", models.WriteSet{}))

	ids, err := store.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "user-3")
}

func TestLedgerListUserIDs(t *testing.T) {
	db := testDB(t)
	store := NewLedgerStore(db, testLogger())
	ctx := context.Background()

	for _, user := range []string{"ua", "ub"} {
		accounts := []models.BankAccount{{ID: "a", Name: "x", Balance: 1, StartingBalance: 1}}
		require.NoError(t, store.Apply(ctx, user, models.WriteSet{BankAccounts: &accounts}))
	}

	ids, err := store.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ua", "ub"}, ids)
}

func TestQuoteStore_SaveAndGet(t *testing.T) {
	db := testDB(t)
	store := NewQuoteStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SaveQuote(ctx, &models.Quote{Symbol: "AAPL", CurrentPrice: 178.25}))
	require.NoError(t, store.SaveQuote(ctx, &models.Quote{Symbol: "MSFT", CurrentPrice: 401.5}))

	quotes, err := store.GetQuotes(ctx, []string{"AAPL", "MSFT", "MISSING"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	prices := map[string]float64{}
	for _, q := range quotes {
		prices[q.Symbol] = q.CurrentPrice
	}
	assert.Equal(t, 178.25, prices["AAPL"])
	assert.Equal(t, 401.5, prices["MSFT"])
}
