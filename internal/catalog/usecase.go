package catalog

import (
	"context"

	"hornada/internal/domain"
	"hornada/internal/units"
)

type catalogUseCase struct {
	service Service
}

func NewUseCase(service Service) UseCase {
	return &catalogUseCase{service: service}
}

func (uc *catalogUseCase) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	p, err := uc.service.Create(ctx, domain.Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		Type:         req.Type,
		MeasureUnit:  units.Unit(req.MeasureUnit),
		SalePrice:    req.SalePrice,
		CostPrice:    req.CostPrice,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
	})
	if err != nil {
		return nil, err
	}
	dto := toDTO(*p)
	return &dto, nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductDTO, error) {
	p, err := uc.service.Update(ctx, id, ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		MeasureUnit: req.MeasureUnit,
		SalePrice:   req.SalePrice,
		CostPrice:   req.CostPrice,
		MinStock:    req.MinStock,
	})
	if err != nil {
		return nil, err
	}
	dto := toDTO(*p)
	return &dto, nil
}

func (uc *catalogUseCase) DeactivateProduct(ctx context.Context, id string) error {
	return uc.service.Deactivate(ctx, id)
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id string) (*ProductDTO, error) {
	p, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*p)
	return &dto, nil
}

func (uc *catalogUseCase) GetProductBySKU(ctx context.Context, sku string) (*ProductDTO, error) {
	p, err := uc.service.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*p)
	return &dto, nil
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, req ListProductsRequest) ([]ProductDTO, error) {
	found, err := uc.service.List(ctx, ListFilter{Type: req.Type, OnlyActive: req.OnlyActive})
	if err != nil {
		return nil, err
	}
	dtos := make([]ProductDTO, 0, len(found))
	for _, p := range found {
		dtos = append(dtos, toDTO(p))
	}
	return dtos, nil
}

func toDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Type:         p.Type,
		MeasureUnit:  string(p.MeasureUnit),
		SalePrice:    p.SalePrice,
		CostPrice:    p.CostPrice,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
