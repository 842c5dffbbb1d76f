package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"hornada/internal/units"
)

const (
	ProductTypeInsumo        = "INSUMO"
	ProductTypeSemiElaborado = "SEMI_ELABORADO"
	ProductTypeTerminado     = "PRODUCTO_TERMINADO"
)

type Product struct {
	ID           string
	SKU          string
	Name         string
	Description  string
	Type         string
	MeasureUnit  units.Unit
	SalePrice    decimal.Decimal
	CostPrice    decimal.Decimal
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsComposite reports whether the product may own a recipe.
func (p Product) IsComposite() bool {
	return p.Type == ProductTypeSemiElaborado || p.Type == ProductTypeTerminado
}

// IsLowStock reports whether current stock sits at or below the minimum.
func (p Product) IsLowStock() bool {
	return p.CurrentStock.Cmp(p.MinStock) <= 0
}

func ValidProductType(t string) bool {
	switch t {
	case ProductTypeInsumo, ProductTypeSemiElaborado, ProductTypeTerminado:
		return true
	}
	return false
}
