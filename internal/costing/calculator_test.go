package costing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hornada/internal/domain"
	"hornada/internal/units"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ingredient(id string, unit units.Unit, cost string) domain.Product {
	return domain.Product{
		ID:          id,
		Type:        domain.ProductTypeInsumo,
		MeasureUnit: unit,
		CostPrice:   dec(cost),
		IsActive:    true,
	}
}

func composite(id, typ string, unit units.Unit) domain.Product {
	return domain.Product{
		ID:          id,
		Type:        typ,
		MeasureUnit: unit,
		IsActive:    true,
	}
}

func TestUnitCost_Ingredient(t *testing.T) {
	snap := Snapshot{
		Products: map[string]domain.Product{
			"harina": ingredient("harina", units.KG, "3"),
		},
		Recipes: map[string]domain.Recipe{},
	}

	cost, err := NewCalculator(snap).UnitCost("harina")
	assert.NoError(t, err)
	assert.True(t, cost.Equal(dec("3")), "got %s", cost)
}

func TestUnitCost_SingleLineRecipe(t *testing.T) {
	// 2 kg of a $3/kg ingredient, yield 1: cost is 6.
	snap := Snapshot{
		Products: map[string]domain.Product{
			"harina": ingredient("harina", units.KG, "3"),
			"pan":    composite("pan", domain.ProductTypeTerminado, units.UN),
		},
		Recipes: map[string]domain.Recipe{
			"pan": {
				ProductID: "pan",
				Yield:     dec("1"),
				Lines: []domain.RecipeLine{
					{ComponentID: "harina", Quantity: dec("2"), Unit: units.KG},
				},
			},
		},
	}

	cost, err := NewCalculator(snap).UnitCost("pan")
	assert.NoError(t, err)
	assert.True(t, cost.Equal(dec("6")), "got %s", cost)
}

func TestUnitCost_ConvertsLineUnits(t *testing.T) {
	// 500 g of a $3/kg ingredient: 0.5 kg * 3 = 1.5.
	snap := Snapshot{
		Products: map[string]domain.Product{
			"harina": ingredient("harina", units.KG, "3"),
			"masa":   composite("masa", domain.ProductTypeSemiElaborado, units.KG),
		},
		Recipes: map[string]domain.Recipe{
			"masa": {
				ProductID: "masa",
				Yield:     dec("1"),
				Lines: []domain.RecipeLine{
					{ComponentID: "harina", Quantity: dec("500"), Unit: units.GR},
				},
			},
		},
	}

	cost, err := NewCalculator(snap).UnitCost("masa")
	assert.NoError(t, err)
	assert.True(t, cost.Equal(dec("1.5")), "got %s", cost)
}

func TestUnitCost_YieldDividesBatchCost(t *testing.T) {
	// One batch uses 6 kg at $2/kg = 12, and yields 12 units: $1 each.
	snap := Snapshot{
		Products: map[string]domain.Product{
			"harina":  ingredient("harina", units.KG, "2"),
			"bollito": composite("bollito", domain.ProductTypeTerminado, units.UN),
		},
		Recipes: map[string]domain.Recipe{
			"bollito": {
				ProductID: "bollito",
				Yield:     dec("12"),
				Lines: []domain.RecipeLine{
					{ComponentID: "harina", Quantity: dec("6"), Unit: units.KG},
				},
			},
		},
	}

	cost, err := NewCalculator(snap).UnitCost("bollito")
	assert.NoError(t, err)
	assert.True(t, cost.Equal(dec("1")), "got %s", cost)
}

func TestUnitCost_NestedRecipes(t *testing.T) {
	// masa: 1 kg harina ($3) -> 3 per kg.
	// torta: 2 kg masa + 200 g azucar ($2/kg): 6 + 0.4 = 6.4.
	snap := Snapshot{
		Products: map[string]domain.Product{
			"harina": ingredient("harina", units.KG, "3"),
			"azucar": ingredient("azucar", units.KG, "2"),
			"masa":   composite("masa", domain.ProductTypeSemiElaborado, units.KG),
			"torta":  composite("torta", domain.ProductTypeTerminado, units.UN),
		},
		Recipes: map[string]domain.Recipe{
			"masa": {
				ProductID: "masa",
				Yield:     dec("1"),
				Lines: []domain.RecipeLine{
					{ComponentID: "harina", Quantity: dec("1"), Unit: units.KG},
				},
			},
			"torta": {
				ProductID: "torta",
				Yield:     dec("1"),
				Lines: []domain.RecipeLine{
					{ComponentID: "masa", Quantity: dec("2"), Unit: units.KG},
					{ComponentID: "azucar", Quantity: dec("200"), Unit: units.GR},
				},
			},
		},
	}

	cost, err := NewCalculator(snap).UnitCost("torta")
	assert.NoError(t, err)
	assert.True(t, cost.Equal(dec("6.4")), "got %s", cost)
}

func TestUnitCost_SharedComponentMemoized(t *testing.T) {
	// Diamond: both halves use masa; the calculator must agree with a
	// hand-computed total and return the same value on a second call.
	snap := Snapshot{
		Products: map[string]domain.Product{
			"harina":  ingredient("harina", units.KG, "4"),
			"masa":    composite("masa", domain.ProductTypeSemiElaborado, units.KG),
			"base":    composite("base", domain.ProductTypeSemiElaborado, units.UN),
			"tapa":    composite("tapa", domain.ProductTypeSemiElaborado, units.UN),
			"alfajor": composite("alfajor", domain.ProductTypeTerminado, units.UN),
		},
		Recipes: map[string]domain.Recipe{
			"masa": {ProductID: "masa", Yield: dec("1"), Lines: []domain.RecipeLine{
				{ComponentID: "harina", Quantity: dec("1"), Unit: units.KG},
			}},
			"base": {ProductID: "base", Yield: dec("1"), Lines: []domain.RecipeLine{
				{ComponentID: "masa", Quantity: dec("250"), Unit: units.GR},
			}},
			"tapa": {ProductID: "tapa", Yield: dec("1"), Lines: []domain.RecipeLine{
				{ComponentID: "masa", Quantity: dec("250"), Unit: units.GR},
			}},
			"alfajor": {ProductID: "alfajor", Yield: dec("1"), Lines: []domain.RecipeLine{
				{ComponentID: "base", Quantity: dec("1"), Unit: units.UN},
				{ComponentID: "tapa", Quantity: dec("1"), Unit: units.UN},
			}},
		},
	}

	calc := NewCalculator(snap)
	cost, err := calc.UnitCost("alfajor")
	assert.NoError(t, err)
	assert.True(t, cost.Equal(dec("2")), "got %s", cost)

	again, err := calc.UnitCost("alfajor")
	assert.NoError(t, err)
	assert.True(t, again.Equal(cost))
}

func TestUnitCost_CyclicRowsDetected(t *testing.T) {
	// masa and relleno reference each other, a state only a write that
	// bypassed the recipe service can produce. The roll-up must return
	// an error rather than recurse into the loop.
	snap := Snapshot{
		Products: map[string]domain.Product{
			"masa":    composite("masa", domain.ProductTypeSemiElaborado, units.KG),
			"relleno": composite("relleno", domain.ProductTypeSemiElaborado, units.KG),
		},
		Recipes: map[string]domain.Recipe{
			"masa": {ProductID: "masa", Yield: dec("1"), Lines: []domain.RecipeLine{
				{ComponentID: "relleno", Quantity: dec("1"), Unit: units.KG},
			}},
			"relleno": {ProductID: "relleno", Yield: dec("1"), Lines: []domain.RecipeLine{
				{ComponentID: "masa", Quantity: dec("1"), Unit: units.KG},
			}},
		},
	}

	_, err := NewCalculator(snap).UnitCost("masa")
	var cyclic *domain.CyclicRecipeError
	assert.True(t, errors.As(err, &cyclic))
}

func TestUnitCost_SelfReferencingRowDetected(t *testing.T) {
	snap := Snapshot{
		Products: map[string]domain.Product{
			"masa": composite("masa", domain.ProductTypeSemiElaborado, units.KG),
		},
		Recipes: map[string]domain.Recipe{
			"masa": {ProductID: "masa", Yield: dec("1"), Lines: []domain.RecipeLine{
				{ComponentID: "masa", Quantity: dec("1"), Unit: units.KG},
			}},
		},
	}

	_, err := NewCalculator(snap).UnitCost("masa")
	var cyclic *domain.CyclicRecipeError
	assert.True(t, errors.As(err, &cyclic))
	assert.Equal(t, "masa", cyclic.ProductID)
}

func TestUnitCost_BrokenReference(t *testing.T) {
	snap := Snapshot{
		Products: map[string]domain.Product{
			"torta": composite("torta", domain.ProductTypeTerminado, units.UN),
		},
		Recipes: map[string]domain.Recipe{
			"torta": {ProductID: "torta", Yield: dec("1"), Lines: []domain.RecipeLine{
				{ComponentID: "fantasma", Quantity: dec("1"), Unit: units.KG},
			}},
		},
	}

	_, err := NewCalculator(snap).UnitCost("torta")
	var broken *domain.BrokenRecipeReferenceError
	assert.True(t, errors.As(err, &broken))
	assert.Equal(t, "torta", broken.ProductID)
	assert.Equal(t, "fantasma", broken.ComponentID)
}

func TestUnitCost_CompositeWithoutRecipeFallsBack(t *testing.T) {
	p := composite("empanada", domain.ProductTypeTerminado, units.UN)
	p.CostPrice = dec("2.5")
	snap := Snapshot{
		Products: map[string]domain.Product{"empanada": p},
		Recipes:  map[string]domain.Recipe{},
	}

	cost, err := NewCalculator(snap).UnitCost("empanada")
	assert.NoError(t, err)
	assert.True(t, cost.Equal(dec("2.5")))
}
