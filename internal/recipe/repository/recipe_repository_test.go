package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hornada/internal/domain"
	apperrors "hornada/internal/errors"
	"hornada/internal/testutil"
	"hornada/internal/units"
)

// Unit Tests

func TestNewMySQLRecipeRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLRecipeRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func insertProduct(t *testing.T, db *sql.DB, id, sku, typ string) {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	_, err := db.Exec(`
		INSERT INTO products (id, sku, name, description, type, measureUnit,
			salePrice, costPrice, currentStock, minStock, isActive, createdAt, updatedAt)
		VALUES (?, ?, ?, '', ?, 'KG', 0, 0, 0, 0, 1, ?, ?)`,
		id, sku, sku, typ, now, now)
	require.NoError(t, err)
}

func replaceRecipe(t *testing.T, db *sql.DB, repo *MySQLRecipeRepository, rec domain.Recipe) {
	t.Helper()
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()
	require.NoError(t, repo.Replace(ctx, tx, rec))
	require.NoError(t, tx.Commit())
}

func TestRecipeRepository_ReplaceAndFindByProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRecipeRepository(db)
	ctx := context.Background()

	insertProduct(t, db, "11111111-1111-1111-1111-111111111111", "INS-001", domain.ProductTypeInsumo)
	insertProduct(t, db, "22222222-2222-2222-2222-222222222222", "TER-001", domain.ProductTypeTerminado)

	rec := domain.Recipe{
		ProductID: "22222222-2222-2222-2222-222222222222",
		Yield:     decimal.NewFromInt(2),
		Lines: []domain.RecipeLine{
			{ComponentID: "11111111-1111-1111-1111-111111111111", Quantity: decimal.RequireFromString("1.5"), Unit: units.KG},
		},
	}
	replaceRecipe(t, db, repo, rec)

	found, err := repo.FindByProduct(ctx, rec.ProductID)
	require.NoError(t, err)
	assert.True(t, found.Yield.Equal(decimal.NewFromInt(2)))
	require.Len(t, found.Lines, 1)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", found.Lines[0].ComponentID)
	assert.True(t, found.Lines[0].Quantity.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, units.KG, found.Lines[0].Unit)

	// The transactional read sees the same rows.
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()
	inTx, err := repo.FindByProductTx(ctx, tx, rec.ProductID)
	require.NoError(t, err)
	require.Len(t, inTx.Lines, 1)
	assert.True(t, inTx.Yield.Equal(decimal.NewFromInt(2)))
}

func TestRecipeRepository_ReplaceOverwritesOldLines(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRecipeRepository(db)
	ctx := context.Background()

	insertProduct(t, db, "11111111-1111-1111-1111-111111111111", "INS-001", domain.ProductTypeInsumo)
	insertProduct(t, db, "33333333-3333-3333-3333-333333333333", "INS-002", domain.ProductTypeInsumo)
	insertProduct(t, db, "22222222-2222-2222-2222-222222222222", "TER-001", domain.ProductTypeTerminado)

	owner := "22222222-2222-2222-2222-222222222222"

	first := domain.Recipe{
		ProductID: owner,
		Yield:     decimal.NewFromInt(1),
		Lines: []domain.RecipeLine{
			{ComponentID: "11111111-1111-1111-1111-111111111111", Quantity: decimal.NewFromInt(1), Unit: units.KG},
		},
	}
	replaceRecipe(t, db, repo, first)

	second := domain.Recipe{
		ProductID: owner,
		Yield:     decimal.NewFromInt(4),
		Lines: []domain.RecipeLine{
			{ComponentID: "33333333-3333-3333-3333-333333333333", Quantity: decimal.NewFromInt(2), Unit: units.KG},
		},
	}
	replaceRecipe(t, db, repo, second)

	found, err := repo.FindByProduct(ctx, owner)
	require.NoError(t, err)
	assert.True(t, found.Yield.Equal(decimal.NewFromInt(4)))
	require.Len(t, found.Lines, 1)
	assert.Equal(t, "33333333-3333-3333-3333-333333333333", found.Lines[0].ComponentID)
}

func TestRecipeRepository_FindByProduct_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRecipeRepository(db)

	_, err := repo.FindByProduct(context.Background(), "99999999-9999-9999-9999-999999999999")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok, "expected NotFoundError, got %T", err)
}

func TestRecipeRepository_LoadEdges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRecipeRepository(db)
	ctx := context.Background()

	insertProduct(t, db, "11111111-1111-1111-1111-111111111111", "INS-001", domain.ProductTypeInsumo)
	insertProduct(t, db, "33333333-3333-3333-3333-333333333333", "INS-002", domain.ProductTypeInsumo)
	insertProduct(t, db, "22222222-2222-2222-2222-222222222222", "TER-001", domain.ProductTypeTerminado)

	owner := "22222222-2222-2222-2222-222222222222"
	rec := domain.Recipe{
		ProductID: owner,
		Yield:     decimal.NewFromInt(1),
		Lines: []domain.RecipeLine{
			{ComponentID: "11111111-1111-1111-1111-111111111111", Quantity: decimal.NewFromInt(1), Unit: units.KG},
			{ComponentID: "33333333-3333-3333-3333-333333333333", Quantity: decimal.NewFromInt(2), Unit: units.KG},
		},
	}
	replaceRecipe(t, db, repo, rec)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	edges, err := repo.LoadEdges(ctx, tx)
	require.NoError(t, err)
	require.Len(t, edges[owner], 2)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", edges[owner][0])
	assert.Equal(t, "33333333-3333-3333-3333-333333333333", edges[owner][1])
}
