package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Engine error taxonomy. Every one of these is detected before any
// write is committed; a failed operation leaves stock and recipes
// exactly as they were.

type UnknownComponentError struct {
	ComponentID string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("recipe component %s does not exist", e.ComponentID)
}

type CyclicRecipeError struct {
	ProductID string
	Path      []string
}

func (e *CyclicRecipeError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("recipe for %s would create a cycle", e.ProductID)
	}
	return fmt.Sprintf("recipe for %s would create a cycle: %s", e.ProductID, strings.Join(e.Path, " -> "))
}

type BrokenRecipeReferenceError struct {
	ProductID   string
	ComponentID string
}

func (e *BrokenRecipeReferenceError) Error() string {
	return fmt.Sprintf("recipe of %s references missing component %s", e.ProductID, e.ComponentID)
}

type NegativeStockRejectedError struct {
	ProductID string
	Current   decimal.Decimal
	Delta     decimal.Decimal
}

func (e *NegativeStockRejectedError) Error() string {
	return fmt.Sprintf("stock of %s cannot go negative (current %s, delta %s)",
		e.ProductID, e.Current.String(), e.Delta.String())
}

type InsufficientStockError struct {
	ComponentID string
	Required    decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock of %s: required %s, available %s",
		e.ComponentID, e.Required.String(), e.Available.String())
}

type MissingRecipeError struct {
	ProductID string
}

func (e *MissingRecipeError) Error() string {
	return fmt.Sprintf("product %s has no recipe", e.ProductID)
}
