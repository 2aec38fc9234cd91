package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skothari/txmail/internal/types"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), ".txmail", "transactions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tx(userID, merchant, typ, hash string, amount float64, date time.Time) *types.Transaction {
	return &types.Transaction{
		UserID:     userID,
		Merchant:   merchant,
		OrderRef:   "REF-" + hash,
		Amount:     amount,
		Date:       date,
		Type:       typ,
		DedupeHash: hash,
	}
}

func TestInsertIfAbsent(t *testing.T) {
	db := testDB(t)
	date := time.Date(2024, 8, 12, 10, 0, 0, 0, time.UTC)

	created, err := db.InsertIfAbsent(tx("alice", "Swiggy", types.TypeExpense, "h1", 350, date))
	require.NoError(t, err)
	assert.True(t, created)

	// Same hash again: silently ignored.
	created, err = db.InsertIfAbsent(tx("alice", "Swiggy", types.TypeExpense, "h1", 350, date))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, db.Count())

	created, err = db.InsertIfAbsent(tx("alice", "Swiggy", types.TypeRefund, "h2", 350, date))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, db.Count())
}

func TestInsertIfAbsentInvalidType(t *testing.T) {
	db := testDB(t)
	_, err := db.InsertIfAbsent(tx("alice", "Swiggy", "loan", "h1", 350, time.Now()))
	assert.ErrorContains(t, err, "invalid transaction type")
	assert.Equal(t, 0, db.Count())
}

func TestInsertAssignsIDAndCreatedAt(t *testing.T) {
	db := testDB(t)
	created, err := db.InsertIfAbsent(tx("alice", "Swiggy", types.TypeExpense, "h1", 350, time.Now()))
	require.NoError(t, err)
	require.True(t, created)

	rows, err := db.List(ListFilter{UserID: "alice"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].ID, 16)
	assert.NotEmpty(t, rows[0].CreatedAt)
}

func TestListFilters(t *testing.T) {
	db := testDB(t)
	base := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	seed := []*types.Transaction{
		tx("alice", "Swiggy", types.TypeExpense, "a1", 350, base),
		tx("alice", "Zomato", types.TypeExpense, "a2", 220, base.AddDate(0, 0, 1)),
		tx("alice", "Swiggy", types.TypeRefund, "a3", 120, base.AddDate(0, 0, 2)),
		tx("bob", "Swiggy", types.TypeExpense, "b1", 500, base),
	}
	for _, s := range seed {
		created, err := db.InsertIfAbsent(s)
		require.NoError(t, err)
		require.True(t, created)
	}

	all, err := db.List(ListFilter{UserID: "alice"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "a3", all[0].DedupeHash)
	assert.Equal(t, "a1", all[2].DedupeHash)

	refunds, err := db.List(ListFilter{UserID: "alice", Type: types.TypeRefund})
	require.NoError(t, err)
	require.Len(t, refunds, 1)
	assert.Equal(t, "Swiggy", refunds[0].Merchant)
	assert.Equal(t, 120.0, refunds[0].Amount)

	swiggy, err := db.List(ListFilter{Merchant: "Swiggy"})
	require.NoError(t, err)
	assert.Len(t, swiggy, 3)

	limited, err := db.List(ListFilter{UserID: "alice", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSummaries(t *testing.T) {
	db := testDB(t)
	base := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	seed := []*types.Transaction{
		tx("alice", "Swiggy", types.TypeExpense, "a1", 350, base),
		tx("alice", "Swiggy", types.TypeExpense, "a2", 150, base.AddDate(0, 0, 1)),
		tx("alice", "Amazon", types.TypeExpense, "a3", 1299, base),
		tx("alice", "Amazon", types.TypeRefund, "a4", 299, base),
		tx("alice", "Paytm", types.TypeCashback, "a5", 45, base),
	}
	for _, s := range seed {
		_, err := db.InsertIfAbsent(s)
		require.NoError(t, err)
	}

	byType, err := db.SummaryByType("alice")
	require.NoError(t, err)
	require.Len(t, byType, 3)
	totals := map[string]types.TypeSummary{}
	for _, s := range byType {
		totals[s.Type] = s
	}
	assert.Equal(t, 3, totals[types.TypeExpense].Count)
	assert.Equal(t, 1799.0, totals[types.TypeExpense].Total)
	assert.Equal(t, 299.0, totals[types.TypeRefund].Total)
	assert.Equal(t, 45.0, totals[types.TypeCashback].Total)

	// Merchant ranking covers expenses only, largest spend first.
	byMerchant, err := db.SummaryByMerchant("alice", 0)
	require.NoError(t, err)
	require.Len(t, byMerchant, 2)
	assert.Equal(t, "Amazon", byMerchant[0].Merchant)
	assert.Equal(t, 1299.0, byMerchant[0].Total)
	assert.Equal(t, "Swiggy", byMerchant[1].Merchant)
	assert.Equal(t, 2, byMerchant[1].Count)

	top1, err := db.SummaryByMerchant("alice", 1)
	require.NoError(t, err)
	require.Len(t, top1, 1)
	assert.Equal(t, "Amazon", top1[0].Merchant)
}

func TestUsersAndCounts(t *testing.T) {
	db := testDB(t)
	assert.Empty(t, db.Users())
	assert.Equal(t, "", db.LatestImportAt("alice"))

	base := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	_, err := db.InsertIfAbsent(tx("bob", "Swiggy", types.TypeExpense, "b1", 500, base))
	require.NoError(t, err)
	_, err = db.InsertIfAbsent(tx("alice", "Swiggy", types.TypeExpense, "a1", 350, base))
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob"}, db.Users())
	assert.Equal(t, 1, db.CountByUser("alice"))
	assert.Equal(t, 0, db.CountByUser("carol"))
	assert.NotEmpty(t, db.LatestImportAt("alice"))
}
