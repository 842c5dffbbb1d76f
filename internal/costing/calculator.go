package costing

import (
	"github.com/shopspring/decimal"

	"hornada/internal/domain"
	"hornada/internal/units"
)

// Snapshot is a point-in-time view of the catalog and recipe graph.
// All roll-up math runs against it, never against live tables, so a
// computation can never observe a half-committed write.
type Snapshot struct {
	Products map[string]domain.Product
	Recipes  map[string]domain.Recipe
}

// Calculator derives unit costs over a snapshot. Costs are memoized
// per calculator because the recipe graph is a DAG and components are
// shared across branches; without the memo a deep graph recomputes
// shared sub-trees exponentially.
type Calculator struct {
	snap   Snapshot
	memo   map[string]decimal.Decimal
	onPath map[string]bool
}

func NewCalculator(snap Snapshot) *Calculator {
	return &Calculator{
		snap:   snap,
		memo:   make(map[string]decimal.Decimal),
		onPath: make(map[string]bool),
	}
}

// UnitCost returns the cost of one measureUnit of the product.
// Ingredients cost their declared costPrice. Composites cost the sum
// of their converted line quantities times each component's unit cost,
// divided by the recipe yield. A composite without a stored recipe
// falls back to its declared costPrice.
func (c *Calculator) UnitCost(productID string) (decimal.Decimal, error) {
	if cost, ok := c.memo[productID]; ok {
		return cost, nil
	}
	if c.onPath[productID] {
		// Cyclic rows can only exist if a write bypassed the recipe
		// service; refuse to follow the loop instead of recursing.
		return decimal.Zero, &domain.CyclicRecipeError{ProductID: productID}
	}

	p, ok := c.snap.Products[productID]
	if !ok {
		return decimal.Zero, &domain.BrokenRecipeReferenceError{ComponentID: productID}
	}

	if !p.IsComposite() {
		c.memo[productID] = p.CostPrice
		return p.CostPrice, nil
	}

	recipe, ok := c.snap.Recipes[productID]
	if !ok || len(recipe.Lines) == 0 {
		c.memo[productID] = p.CostPrice
		return p.CostPrice, nil
	}

	yield := recipe.Yield
	if yield.IsZero() {
		yield = domain.DefaultYield
	}

	c.onPath[productID] = true
	defer delete(c.onPath, productID)

	total := decimal.Zero
	for _, line := range recipe.Lines {
		comp, ok := c.snap.Products[line.ComponentID]
		if !ok {
			return decimal.Zero, &domain.BrokenRecipeReferenceError{
				ProductID:   productID,
				ComponentID: line.ComponentID,
			}
		}

		qty, err := units.Convert(line.Quantity, line.Unit, comp.MeasureUnit)
		if err != nil {
			return decimal.Zero, err
		}

		compCost, err := c.UnitCost(line.ComponentID)
		if err != nil {
			return decimal.Zero, err
		}

		total = total.Add(qty.Mul(compCost))
	}

	cost := total.Div(yield)
	c.memo[productID] = cost
	return cost, nil
}
