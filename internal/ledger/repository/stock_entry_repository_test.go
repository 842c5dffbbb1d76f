package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hornada/internal/domain"
	"hornada/internal/testutil"
)

// Unit Tests

func TestNewMySQLEntryRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLEntryRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func insertProduct(t *testing.T, db *sql.DB, id, sku string) {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	_, err := db.Exec(`
		INSERT INTO products (id, sku, name, description, type, measureUnit,
			salePrice, costPrice, currentStock, minStock, isActive, createdAt, updatedAt)
		VALUES (?, ?, ?, '', 'INSUMO', 'KG', 0, 0, 0, 0, 1, ?, ?)`,
		id, sku, sku, now, now)
	require.NoError(t, err)
}

func TestEntryRepository_InsertAndListByProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLEntryRepository(db)
	ctx := context.Background()

	productID := "11111111-1111-1111-1111-111111111111"
	insertProduct(t, db, productID, "INS-001")

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	ref := "run-1"
	base := time.Now().UTC().Truncate(time.Microsecond)
	entries := []domain.StockEntry{
		{ID: uuid.New().String(), ProductID: productID, Delta: decimal.NewFromInt(10), Reason: domain.ReasonReceipt, CreatedAt: base},
		{ID: uuid.New().String(), ProductID: productID, Delta: decimal.NewFromInt(-2), Reason: domain.ReasonSale, CreatedAt: base.Add(time.Second)},
		{ID: uuid.New().String(), ProductID: productID, Delta: decimal.NewFromInt(-3), Reason: domain.ReasonProductionConsume, ReferenceID: &ref, CreatedAt: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Insert(ctx, tx, e))
	}
	require.NoError(t, tx.Commit())

	listed, err := repo.ListByProduct(ctx, productID, 10)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Newest first.
	assert.Equal(t, domain.ReasonProductionConsume, listed[0].Reason)
	require.NotNil(t, listed[0].ReferenceID)
	assert.Equal(t, "run-1", *listed[0].ReferenceID)
	assert.Equal(t, domain.ReasonReceipt, listed[2].Reason)
	assert.True(t, listed[2].Delta.Equal(decimal.NewFromInt(10)))
}

func TestEntryRepository_ListByProduct_RespectsLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLEntryRepository(db)
	ctx := context.Background()

	productID := "11111111-1111-1111-1111-111111111111"
	insertProduct(t, db, productID, "INS-001")

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, tx, domain.StockEntry{
			ID:        uuid.New().String(),
			ProductID: productID,
			Delta:     decimal.NewFromInt(1),
			Reason:    domain.ReasonReceipt,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, tx.Commit())

	listed, err := repo.ListByProduct(ctx, productID, 2)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestEntryRepository_ListByProduct_OtherProductsExcluded(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLEntryRepository(db)
	ctx := context.Background()

	insertProduct(t, db, "11111111-1111-1111-1111-111111111111", "INS-001")
	insertProduct(t, db, "22222222-2222-2222-2222-222222222222", "INS-002")

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	now := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.Insert(ctx, tx, domain.StockEntry{
		ID: uuid.New().String(), ProductID: "11111111-1111-1111-1111-111111111111",
		Delta: decimal.NewFromInt(1), Reason: domain.ReasonReceipt, CreatedAt: now,
	}))
	require.NoError(t, repo.Insert(ctx, tx, domain.StockEntry{
		ID: uuid.New().String(), ProductID: "22222222-2222-2222-2222-222222222222",
		Delta: decimal.NewFromInt(7), Reason: domain.ReasonReceipt, CreatedAt: now,
	}))
	require.NoError(t, tx.Commit())

	listed, err := repo.ListByProduct(ctx, "11111111-1111-1111-1111-111111111111", 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Delta.Equal(decimal.NewFromInt(1)))
}
