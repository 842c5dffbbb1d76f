package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hornada/internal/domain"
	"hornada/internal/dto"
	apperrors "hornada/internal/errors"
	ledgersvc "hornada/internal/ledger/service"
	"hornada/internal/units"
)

type ProductionService interface {
	ExecuteProduction(ctx context.Context, plan dto.ProductionPlan) (*dto.ProductionRunResult, error)
}

type ProductReader interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

type RecipeReader interface {
	FindByProduct(ctx context.Context, productID string) (*domain.Recipe, error)
}

type ProductionUseCase struct {
	products         ProductReader
	recipes          RecipeReader
	ledgerSvc        ProductionService
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewProductionUseCase(
	products ProductReader,
	recipes RecipeReader,
	ledgerSvc ProductionService,
	logger *zap.Logger,
	maxRetryAttempts int,
) *ProductionUseCase {
	return &ProductionUseCase{
		products:         products,
		recipes:          recipes,
		ledgerSvc:        ledgerSvc,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

// Run consumes the recipe components for quantityProduced units of the
// product and credits the yield, all-or-nothing.
func (uc *ProductionUseCase) Run(ctx context.Context, productID string, quantityProduced decimal.Decimal) (*dto.ProductionRunResult, error) {
	// Bloque 1: pre-validation outside the transaction.
	if quantityProduced.Sign() <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive",
			apperrors.ValidationDetail{Field: "quantity", Message: "quantity must be greater than zero"})
	}

	product, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsComposite() {
		return nil, apperrors.NewValidationError("only SEMI_ELABORADO and PRODUCTO_TERMINADO products are produced",
			apperrors.ValidationDetail{Field: "productId", Message: "product is an INSUMO"})
	}

	recipe, err := uc.recipes.FindByProduct(ctx, productID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, &domain.MissingRecipeError{ProductID: productID}
		}
		return nil, err
	}

	plan, err := uc.buildPlan(ctx, *product, *recipe, quantityProduced)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("production run started",
		zap.String("runId", plan.RunID),
		zap.String("productId", productID),
		zap.String("quantity", quantityProduced.String()),
		zap.Int("components", len(plan.Requirements)))

	// Bloque 2: execute with deadlock and stale-plan retry.
	return uc.runWithRetry(ctx, *product, quantityProduced, *plan)
}

// buildPlan converts each line's demand into the component's own
// measureUnit and fixes the ascending lock order for the transaction.
func (uc *ProductionUseCase) buildPlan(
	ctx context.Context,
	product domain.Product,
	recipe domain.Recipe,
	quantityProduced decimal.Decimal,
) (*dto.ProductionPlan, error) {
	yield := recipe.Yield
	if yield.IsZero() {
		yield = domain.DefaultYield
	}
	batches := quantityProduced.Div(yield)

	required := make(map[string]decimal.Decimal, len(recipe.Lines))
	for _, line := range recipe.Lines {
		component, err := uc.products.FindByID(ctx, line.ComponentID)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				return nil, &domain.BrokenRecipeReferenceError{
					ProductID:   product.ID,
					ComponentID: line.ComponentID,
				}
			}
			return nil, err
		}

		qty, err := units.Convert(line.Quantity.Mul(batches), line.Unit, component.MeasureUnit)
		if err != nil {
			return nil, err
		}

		// A component listed on several lines is demanded once, summed.
		required[line.ComponentID] = required[line.ComponentID].Add(qty)
	}

	requirements := make([]dto.ComponentRequirement, 0, len(required))
	lockOrder := make([]string, 0, len(required)+1)
	for id, qty := range required {
		requirements = append(requirements, dto.ComponentRequirement{ComponentID: id, Required: qty})
		lockOrder = append(lockOrder, id)
	}
	lockOrder = append(lockOrder, product.ID)

	sort.Slice(requirements, func(i, j int) bool {
		return requirements[i].ComponentID < requirements[j].ComponentID
	})
	sort.Strings(lockOrder)

	return &dto.ProductionPlan{
		RunID:        uuid.New().String(),
		ProductID:    product.ID,
		Quantity:     quantityProduced,
		Requirements: requirements,
		LockOrder:    lockOrder,
		Yield:        yield,
		Lines:        recipe.Lines,
	}, nil
}

// rebuildPlan re-reads the recipe and builds a fresh plan, for retries
// after the transaction reported the previous plan stale.
func (uc *ProductionUseCase) rebuildPlan(ctx context.Context, product domain.Product, quantityProduced decimal.Decimal) (*dto.ProductionPlan, error) {
	recipe, err := uc.recipes.FindByProduct(ctx, product.ID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, &domain.MissingRecipeError{ProductID: product.ID}
		}
		return nil, err
	}
	return uc.buildPlan(ctx, product, *recipe, quantityProduced)
}

func (uc *ProductionUseCase) runWithRetry(
	ctx context.Context,
	product domain.Product,
	quantityProduced decimal.Decimal,
	plan dto.ProductionPlan,
) (*dto.ProductionRunResult, error) {
	maxAttempts := uc.maxRetryAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	// Backoff intervals: attempt 1 (0ms), attempt 2 (100ms), attempt 3 (200ms), etc.
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := uc.ledgerSvc.ExecuteProduction(ctx, plan)
		if err == nil {
			return result, nil
		}

		if errors.Is(err, ledgersvc.ErrStalePlan) {
			if attempt >= maxAttempts {
				return nil, apperrors.NewConflictError("recipe changed while the production run was executing")
			}
			uc.logger.Warn("production plan stale, rebuilding",
				zap.Int("attempt", attempt),
				zap.String("runId", plan.RunID))
			rebuilt, err := uc.rebuildPlan(ctx, product, quantityProduced)
			if err != nil {
				return nil, err
			}
			plan = *rebuilt
			continue
		}

		if isDeadlockError(err) {
			if attempt < maxAttempts {
				base := backoffs[(attempt-1)%len(backoffs)]
				// Jitter: ±20% of the backoff base.
				jitter := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
				time.Sleep(jitter)
				uc.logger.Warn("deadlock detected, retrying",
					zap.Int("attempt", attempt),
					zap.Int("maxAttempts", maxAttempts),
					zap.String("runId", plan.RunID))
				continue
			}
			break
		}

		return nil, err
	}

	return nil, apperrors.NewDeadlockError("max retries exceeded")
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
