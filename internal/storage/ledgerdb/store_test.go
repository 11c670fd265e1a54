package ledgerdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmoiseev/moneta/internal/common"
	"github.com/pmoiseev/moneta/internal/interfaces"
	"github.com/pmoiseev/moneta/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testCategory(t *testing.T, name string) models.Category {
	t.Helper()
	cat, err := models.CategoryBuilder{Name: name, Type: models.CategoryExpenses}.Build()
	require.NoError(t, err)
	return cat
}

func testAccount(t *testing.T, name string, categoryUUID uuid.UUID) models.Account {
	t.Helper()
	acc, err := models.AccountBuilder{
		Name:           name,
		Type:           models.CategoryExpenses,
		CategoryUUID:   categoryUUID,
		OpeningBalance: decimal.RequireFromString("250.10"),
	}.Build()
	require.NoError(t, err)
	return acc
}

func TestStore_InsertAndGetAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cat := testCategory(t, "Food")
	require.NoError(t, store.Insert(cat))

	acc := testAccount(t, "Wallet", cat.UUID)
	require.NoError(t, store.Insert(acc))

	cats, err := store.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, cat.UUID, cats[0].UUID)
	assert.Equal(t, models.CategoryExpenses, cats[0].Type)

	accs, err := store.GetAllAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accs, 1)
	assert.True(t, accs[0].OpeningBalance.Equal(acc.OpeningBalance))
}

func TestStore_SameUUIDAcrossKindsDoesNotCollide(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	shared := uuid.New()

	cat := testCategory(t, "Shared")
	cat.UUID = shared
	require.NoError(t, store.Insert(cat))

	con, err := models.ContactBuilder{UUID: shared, Name: "Shared"}.Build()
	require.NoError(t, err)
	require.NoError(t, store.Insert(con))

	cats, err := store.GetAllCategories(ctx)
	require.NoError(t, err)
	cons, err := store.GetAllContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	assert.Len(t, cons, 1)
}

func TestStore_UpdateReplacesRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cat := testCategory(t, "Old name")
	require.NoError(t, store.Insert(cat))

	b := cat.Builder()
	b.Name = "New name"
	b.Modified = cat.Modified + 1
	updated, err := b.Build()
	require.NoError(t, err)
	require.NoError(t, store.Update(updated))

	cats, err := store.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "New name", cats[0].Name)
	assert.Equal(t, cat.Created, cats[0].Created)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cat := testCategory(t, "Doomed")
	require.NoError(t, store.Insert(cat))

	require.NoError(t, store.Delete(models.KindCategory, cat.UUID))
	require.NoError(t, store.Delete(models.KindCategory, cat.UUID))

	cats, err := store.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestStore_DropTablesClearsEverything(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cat := testCategory(t, "Cat")
	require.NoError(t, store.Insert(cat))
	require.NoError(t, store.Insert(testAccount(t, "Acc", cat.UUID)))

	require.NoError(t, store.DropTables(ctx))
	require.NoError(t, store.CreateTables(ctx))

	cats, err := store.GetAllCategories(ctx)
	require.NoError(t, err)
	accs, err := store.GetAllAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
	assert.Empty(t, accs)
}

func TestStore_BatchCommitsAtomically(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cat := testCategory(t, "Batch cat")
	acc := testAccount(t, "Batch acc", cat.UUID)

	err := store.Batch(ctx, func(tx interfaces.LedgerWriter) error {
		if err := tx.Insert(cat); err != nil {
			return err
		}
		return tx.Insert(acc)
	})
	require.NoError(t, err)

	cats, err := store.GetAllCategories(ctx)
	require.NoError(t, err)
	accs, err := store.GetAllAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	assert.Len(t, accs, 1)
}

func TestStore_BatchRollsBackOnError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cat := testCategory(t, "Never committed")
	boom := errors.New("boom")

	err := store.Batch(ctx, func(tx interfaces.LedgerWriter) error {
		if err := tx.Insert(cat); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	cats, err := store.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats, "failed batch must leave no records behind")
}

func TestStore_TransactionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tx, err := models.TransactionBuilder{
		Amount:              decimal.RequireFromString("42.123456"),
		CreditAmount:        decimal.RequireFromString("42.123456"),
		Date:                time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Type:                models.TxTransfer,
		AccountDebitedUUID:  uuid.New(),
		AccountCreditedUUID: uuid.New(),
		Rate:                decimal.RequireFromString("1.5"),
		RateDirection:       models.RateMultiply,
	}.Build()
	require.NoError(t, err)
	require.NoError(t, store.Insert(tx))

	txs, err := store.GetAllTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, tx.UUID, txs[0].UUID)
	assert.True(t, txs[0].Amount.Equal(tx.Amount))
	assert.True(t, txs[0].Rate.Equal(tx.Rate))
	assert.Equal(t, models.RateMultiply, txs[0].RateDirection)
	assert.True(t, txs[0].Date.Equal(tx.Date))
}
