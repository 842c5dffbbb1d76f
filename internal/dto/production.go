package dto

import (
	"github.com/shopspring/decimal"

	"hornada/internal/domain"
)

type ProductionRunRequest struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ComponentRequirement is one component's demand for a production run,
// already converted into the component's own measureUnit.
type ComponentRequirement struct {
	ComponentID string
	Required    decimal.Decimal
}

// ProductionPlan is the precomputed, validated input to the ledger
// transaction. LockOrder holds every involved product id (components
// plus the produced product) in ascending order; the transaction locks
// rows in exactly this order to avoid deadlocks.
type ProductionPlan struct {
	RunID        string
	ProductID    string
	Quantity     decimal.Decimal
	Requirements []ComponentRequirement
	LockOrder    []string
	// Yield and Lines record the recipe the plan was built from, so the
	// transaction can verify the recipe has not changed underneath it.
	Yield decimal.Decimal
	Lines []domain.RecipeLine
}

type ConsumedComponent struct {
	ComponentID string          `json:"componentId"`
	Quantity    decimal.Decimal `json:"quantity"`
}

type ProductionRunResult struct {
	RunID     string              `json:"runId"`
	ProductID string              `json:"productId"`
	Quantity  decimal.Decimal     `json:"quantity"`
	Consumed  []ConsumedComponent `json:"consumed"`
}
