package recipe

import (
	"context"
	"database/sql"

	"hornada/internal/domain"
	"hornada/internal/infrastructure/mysql"
)

type UseCase interface {
	SetRecipe(ctx context.Context, productID string, req SetRecipeRequest) (*RecipeDTO, error)
	GetRecipe(ctx context.Context, productID string) (*RecipeDTO, error)
}

type Service interface {
	Set(ctx context.Context, rec domain.Recipe) error
	Get(ctx context.Context, productID string) (*domain.Recipe, error)
}

type Repository interface {
	FindByProduct(ctx context.Context, productID string) (*domain.Recipe, error)
	// Replace swaps the stored recipe inside the caller's transaction.
	Replace(ctx context.Context, tx mysql.Tx, rec domain.Recipe) error
	// LoadEdges returns ownerID -> component ids for every stored
	// recipe line, the adjacency the cycle check walks. It reads
	// through tx so the check sees the edges the transaction's row
	// locks protect.
	LoadEdges(ctx context.Context, tx mysql.Tx) (map[string][]string, error)
}

type ProductReader interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id string) (*domain.Product, error)
}

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (mysql.Tx, error)
}

type CostRefresher interface {
	RefreshAll(ctx context.Context) error
}
