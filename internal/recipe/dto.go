package recipe

import "github.com/shopspring/decimal"

type SetRecipeRequest struct {
	Yield decimal.Decimal  `json:"yield"`
	Lines []RecipeLineBody `json:"lines"`
}

type RecipeLineBody struct {
	ComponentID string          `json:"componentId"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
}

type RecipeDTO struct {
	ProductID string          `json:"productId"`
	Yield     decimal.Decimal `json:"yield"`
	Lines     []RecipeLineDTO `json:"lines"`
}

type RecipeLineDTO struct {
	ComponentID string          `json:"componentId"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
}
