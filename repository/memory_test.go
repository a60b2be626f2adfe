package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[models.Branch](NewMemoryStore(0))

	for _, id := range []string{"b3", "b1", "b2"} {
		require.NoError(t, repo.Create(ctx, models.Branch{ID: id, Name: id}))
	}
	require.NoError(t, repo.Delete(ctx, "b1"))
	require.NoError(t, repo.Create(ctx, models.Branch{ID: "b1", Name: "again"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"b3", "b2", "b1"}, ids)
}

func TestMemoryRepositoryErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[models.Branch](NewMemoryStore(0))
	require.NoError(t, repo.Create(ctx, models.Branch{ID: "b1"}))

	assert.ErrorIs(t, repo.Create(ctx, models.Branch{ID: "b1"}), ErrDuplicateID)
	assert.ErrorIs(t, repo.Update(ctx, models.Branch{ID: "nope"}), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nope"), ErrNotFound)
	_, err := repo.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepositoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[models.Branch](NewMemoryStore(0))
	require.NoError(t, repo.Create(ctx, models.Branch{ID: "b1", Name: "Main"}))

	got, err := repo.Get(ctx, "b1")
	require.NoError(t, err)
	got.Name = "changed"

	again, err := repo.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Main", again.Name)
}

func TestMemoryTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	items := NewMemoryRepository[models.InventoryItem](store)
	ledger := NewMemoryTransactionLog(store)
	tx := NewMemoryTx(store)

	require.NoError(t, items.Create(ctx, models.InventoryItem{ID: "inv-1", QuantityInHand: 5}))

	boom := errors.New("boom")
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, items.Update(ctx, models.InventoryItem{ID: "inv-1", QuantityInHand: 2}))
		require.NoError(t, ledger.Append(ctx, models.StockTransaction{ID: "t1", ItemID: "inv-1"}))
		require.NoError(t, items.Create(ctx, models.InventoryItem{ID: "inv-2"}))
		require.NoError(t, items.Delete(ctx, "inv-1"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	item, err := items.Get(ctx, "inv-1")
	require.NoError(t, err)
	assert.EqualValues(t, 5, item.QuantityInHand)
	_, err = items.Get(ctx, "inv-2")
	assert.ErrorIs(t, err, ErrNotFound)
	rows, err := ledger.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryLatencyHonoursCancellation(t *testing.T) {
	store := NewMemoryStore(time.Second)
	repo := NewMemoryRepository[models.Branch](store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Create(ctx, models.Branch{ID: "b1"})
	assert.ErrorIs(t, err, context.Canceled)

	store.latency = 0
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLedgerListFiltersByItem(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryTransactionLog(NewMemoryStore(0))
	require.NoError(t, ledger.Append(ctx, models.StockTransaction{ID: "t1", ItemID: "a"}))
	require.NoError(t, ledger.Append(ctx, models.StockTransaction{ID: "t2", ItemID: "b"}))
	require.NoError(t, ledger.Append(ctx, models.StockTransaction{ID: "t3", ItemID: "a"}))
	assert.ErrorIs(t, ledger.Append(ctx, models.StockTransaction{ID: "t1", ItemID: "a"}), ErrDuplicateID)

	rows, err := ledger.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "t1", rows[0].ID)
	assert.Equal(t, "t3", rows[1].ID)
}

func TestMemoryCooldownStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryCooldownStore()
	store.now = func() time.Time { return now }

	left, err := store.Remaining(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, left)

	require.NoError(t, store.Start(ctx, "s1", 30*time.Second))
	now = now.Add(10 * time.Second)
	left, err = store.Remaining(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, left)

	now = now.Add(25 * time.Second)
	left, err = store.Remaining(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, left)
}

func TestMemorySessionStoreExpiresAndIsolates(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore()
	store.now = func() time.Time { return now }

	session := &models.BookingSession{ID: "s1", Step: 3, Draft: models.BookingDraft{Tests: []string{"test-1"}}}
	require.NoError(t, store.Save(ctx, session, time.Minute))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	loaded.Draft.Tests[0] = "mutated"

	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"test-1"}, again.Draft.Tests)

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores(0)

	require.NoError(t, SeedData(ctx, stores))
	require.NoError(t, SeedData(ctx, stores))

	n, err := stores.Tests.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 8, n)

	admins, err := stores.AdminUsers.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, admins)

	rows, err := stores.Ledger.List(ctx, "inv-001")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.TransactionPurchase, rows[0].Type)
	assert.EqualValues(t, 45, rows[0].QuantityAfter)
}
