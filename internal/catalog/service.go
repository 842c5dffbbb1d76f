package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hornada/internal/domain"
	apperrors "hornada/internal/errors"
	"hornada/internal/units"
)

type productService struct {
	repo      Repository
	refresher CostRefresher
	logger    *zap.Logger
}

func NewService(repo Repository, refresher CostRefresher, logger *zap.Logger) Service {
	return &productService{repo: repo, refresher: refresher, logger: logger}
}

func (s *productService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if !domain.ValidProductType(p.Type) {
		return nil, apperrors.NewValidationError("invalid product type", apperrors.ValidationDetail{
			Field: "type", Message: "type must be INSUMO, SEMI_ELABORADO or PRODUCTO_TERMINADO",
		})
	}
	if _, err := units.Parse(string(p.MeasureUnit)); err != nil {
		return nil, apperrors.NewValidationError("invalid measure unit", apperrors.ValidationDetail{
			Field: "measureUnit", Message: err.Error(),
		})
	}
	if p.SalePrice.IsNegative() || p.CostPrice.IsNegative() ||
		p.CurrentStock.IsNegative() || p.MinStock.IsNegative() {
		return nil, apperrors.NewValidationError("negative amounts are not allowed")
	}

	if existing, err := s.repo.FindBySKU(ctx, p.SKU); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("sku already in use")
	} else if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); !ok {
			return nil, err
		}
	}

	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("productId", p.ID), zap.String("sku", p.SKU), zap.String("type", p.Type))
	return &p, nil
}

func (s *productService) Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	costChanged := false
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.MeasureUnit != nil {
		u, err := units.Parse(*patch.MeasureUnit)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid measure unit", apperrors.ValidationDetail{
				Field: "measureUnit", Message: err.Error(),
			})
		}
		p.MeasureUnit = u
	}
	if patch.SalePrice != nil {
		if patch.SalePrice.IsNegative() {
			return nil, apperrors.NewValidationError("salePrice must not be negative")
		}
		p.SalePrice = *patch.SalePrice
	}
	if patch.CostPrice != nil {
		if patch.CostPrice.IsNegative() {
			return nil, apperrors.NewValidationError("costPrice must not be negative")
		}
		costChanged = !p.CostPrice.Equal(*patch.CostPrice)
		p.CostPrice = *patch.CostPrice
	}
	if patch.MinStock != nil {
		if patch.MinStock.IsNegative() {
			return nil, apperrors.NewValidationError("minStock must not be negative")
		}
		p.MinStock = *patch.MinStock
	}

	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, *p); err != nil {
		return nil, err
	}

	// An ingredient cost edit invalidates every composite cost cache.
	if costChanged && p.Type == domain.ProductTypeInsumo {
		if err := s.refresher.RefreshAll(ctx); err != nil {
			s.logger.Error("cost refresh after ingredient cost edit failed",
				zap.String("productId", id), zap.Error(err))
			return nil, err
		}
	}

	return p, nil
}

// Deactivate flags the product inactive. Products referenced by ledger
// history or recipes are never deleted, only deactivated.
func (s *productService) Deactivate(ctx context.Context, id string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsActive {
		return nil
	}
	p.IsActive = false
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, *p); err != nil {
		return err
	}
	s.logger.Info("product deactivated", zap.String("productId", id))
	return nil
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *productService) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return s.repo.FindBySKU(ctx, sku)
}

func (s *productService) List(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	if filter.Type != "" && !domain.ValidProductType(filter.Type) {
		return nil, apperrors.NewValidationError("invalid product type filter")
	}
	return s.repo.List(ctx, filter.Type, filter.OnlyActive)
}
