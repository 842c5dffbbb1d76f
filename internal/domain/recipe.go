package domain

import (
	"github.com/shopspring/decimal"

	"hornada/internal/units"
)

// Recipe is the bill of materials owned by a SEMI_ELABORADO or
// PRODUCTO_TERMINADO product. Yield is how many units of the owner
// (in its own measureUnit) one batch of the listed lines produces.
type Recipe struct {
	ProductID string
	Yield     decimal.Decimal
	Lines     []RecipeLine
}

type RecipeLine struct {
	ComponentID string
	Quantity    decimal.Decimal
	Unit        units.Unit
}

// DefaultYield is assumed when a recipe declares no explicit yield.
var DefaultYield = decimal.NewFromInt(1)
