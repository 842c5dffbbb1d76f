package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInsufficientStockError_Fields(t *testing.T) {
	err := &InsufficientStockError{
		ComponentID: "harina-001",
		Required:    decimal.NewFromInt(5),
		Available:   decimal.NewFromInt(3),
	}

	assert.Contains(t, err.Error(), "harina-001")
	assert.Contains(t, err.Error(), "required 5")
	assert.Contains(t, err.Error(), "available 3")

	wrapped := fmt.Errorf("production run failed: %w", err)
	var target *InsufficientStockError
	assert.True(t, errors.As(wrapped, &target))
	assert.True(t, target.Required.Equal(decimal.NewFromInt(5)))
}

func TestNegativeStockRejectedError_Message(t *testing.T) {
	err := &NegativeStockRejectedError{
		ProductID: "pan-blanco",
		Current:   decimal.NewFromInt(3),
		Delta:     decimal.NewFromInt(-10),
	}
	assert.Contains(t, err.Error(), "pan-blanco")
	assert.Contains(t, err.Error(), "current 3")
	assert.Contains(t, err.Error(), "delta -10")
}

func TestCyclicRecipeError_Path(t *testing.T) {
	err := &CyclicRecipeError{
		ProductID: "a",
		Path:      []string{"a", "b", "a"},
	}
	assert.Contains(t, err.Error(), "a -> b -> a")

	bare := &CyclicRecipeError{ProductID: "a"}
	assert.Contains(t, bare.Error(), "would create a cycle")
}

func TestBrokenRecipeReferenceError_Message(t *testing.T) {
	err := &BrokenRecipeReferenceError{ProductID: "torta", ComponentID: "ghost"}
	assert.Contains(t, err.Error(), "torta")
	assert.Contains(t, err.Error(), "ghost")
}
