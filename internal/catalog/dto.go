package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	MeasureUnit  string          `json:"measureUnit"`
	SalePrice    decimal.Decimal `json:"salePrice"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStock"`
}

// UpdateProductRequest uses pointers so absent fields stay untouched.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	MeasureUnit *string          `json:"measureUnit"`
	SalePrice   *decimal.Decimal `json:"salePrice"`
	CostPrice   *decimal.Decimal `json:"costPrice"`
	MinStock    *decimal.Decimal `json:"minStock"`
}

type ListProductsRequest struct {
	Type       string
	OnlyActive bool
}

type ProductDTO struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	MeasureUnit  string          `json:"measureUnit"`
	SalePrice    decimal.Decimal `json:"salePrice"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStock"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductPatch is the service-level partial update.
type ProductPatch struct {
	Name        *string
	Description *string
	MeasureUnit *string
	SalePrice   *decimal.Decimal
	CostPrice   *decimal.Decimal
	MinStock    *decimal.Decimal
}
