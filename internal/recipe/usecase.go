package recipe

import (
	"context"

	"hornada/internal/domain"
	apperrors "hornada/internal/errors"
	"hornada/internal/units"
)

type recipeUseCase struct {
	service Service
}

func NewUseCase(service Service) UseCase {
	return &recipeUseCase{service: service}
}

func (uc *recipeUseCase) SetRecipe(ctx context.Context, productID string, req SetRecipeRequest) (*RecipeDTO, error) {
	yield := req.Yield
	if yield.IsZero() {
		yield = domain.DefaultYield
	}

	lines := make([]domain.RecipeLine, 0, len(req.Lines))
	for _, body := range req.Lines {
		u, err := units.Parse(body.Unit)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid line unit",
				apperrors.ValidationDetail{Field: "lines", Message: err.Error()})
		}
		lines = append(lines, domain.RecipeLine{
			ComponentID: body.ComponentID,
			Quantity:    body.Quantity,
			Unit:        u,
		})
	}

	rec := domain.Recipe{ProductID: productID, Yield: yield, Lines: lines}
	if err := uc.service.Set(ctx, rec); err != nil {
		return nil, err
	}

	dto := toDTO(rec)
	return &dto, nil
}

func (uc *recipeUseCase) GetRecipe(ctx context.Context, productID string) (*RecipeDTO, error) {
	rec, err := uc.service.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*rec)
	return &dto, nil
}

func toDTO(rec domain.Recipe) RecipeDTO {
	lines := make([]RecipeLineDTO, 0, len(rec.Lines))
	for _, line := range rec.Lines {
		lines = append(lines, RecipeLineDTO{
			ComponentID: line.ComponentID,
			Quantity:    line.Quantity,
			Unit:        string(line.Unit),
		})
	}
	return RecipeDTO{
		ProductID: rec.ProductID,
		Yield:     rec.Yield,
		Lines:     lines,
	}
}
