package catalog

import (
	"context"

	"hornada/internal/domain"
)

type UseCase interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductDTO, error)
	DeactivateProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (*ProductDTO, error)
	GetProductBySKU(ctx context.Context, sku string) (*ProductDTO, error)
	ListProducts(ctx context.Context, req ListProductsRequest) ([]ProductDTO, error)
}

type Service interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Deactivate(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
}

type Repository interface {
	Insert(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context, typeFilter string, onlyActive bool) ([]domain.Product, error)
}

// CostRefresher re-derives cached composite cost prices after an
// ingredient cost edit. Implemented by the costing module.
type CostRefresher interface {
	RefreshAll(ctx context.Context) error
}

type ListFilter struct {
	Type       string
	OnlyActive bool
}
