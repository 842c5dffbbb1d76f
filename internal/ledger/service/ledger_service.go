package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hornada/internal/domain"
	"hornada/internal/dto"
	apperrors "hornada/internal/errors"
	"hornada/internal/infrastructure/mysql"
)

// ErrStalePlan signals that the recipe changed between plan building
// and the production transaction. The caller rebuilds the plan and
// retries.
var ErrStalePlan = errors.New("recipe changed after the production plan was built")

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (mysql.Tx, error)
}

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id string) (*domain.Product, error)
	UpdateStock(ctx context.Context, tx mysql.Tx, id string, stock decimal.Decimal) error
}

type EntryRepository interface {
	Insert(ctx context.Context, tx mysql.Tx, entry domain.StockEntry) error
	ListByProduct(ctx context.Context, productID string, limit int) ([]domain.StockEntry, error)
}

type RecipeRepository interface {
	FindByProductTx(ctx context.Context, tx mysql.Tx, productID string) (*domain.Recipe, error)
}

type LedgerService struct {
	db          TransactionManager
	productRepo ProductRepository
	entryRepo   EntryRepository
	recipeRepo  RecipeRepository
	logger      *zap.Logger
	txTimeout   time.Duration
}

func NewLedgerService(
	db TransactionManager,
	productRepo ProductRepository,
	entryRepo EntryRepository,
	recipeRepo RecipeRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *LedgerService {
	return &LedgerService{
		db:          db,
		productRepo: productRepo,
		entryRepo:   entryRepo,
		recipeRepo:  recipeRepo,
		logger:      logger,
		txTimeout:   txTimeout,
	}
}

// Record appends one entry and moves the product's cached running
// balance in the same transaction. The balance never goes below zero:
// a delta that would sink it is rejected before anything is written.
func (s *LedgerService) Record(ctx context.Context, entry domain.StockEntry) (*domain.StockEntry, decimal.Decimal, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, decimal.Zero, err
	}
	// Rollback is a no-op after commit.
	defer tx.Rollback()

	product, err := s.productRepo.FindByIDForUpdate(txCtx, tx, entry.ProductID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	newStock := product.CurrentStock.Add(entry.Delta)
	if newStock.IsNegative() {
		// Holds for ADJUSTMENT too: a correction may land exactly on
		// zero but never below it.
		return nil, decimal.Zero, &domain.NegativeStockRejectedError{
			ProductID: entry.ProductID,
			Current:   product.CurrentStock,
			Delta:     entry.Delta,
		}
	}

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()

	if err := s.entryRepo.Insert(txCtx, tx, entry); err != nil {
		return nil, decimal.Zero, err
	}
	if err := s.productRepo.UpdateStock(txCtx, tx, entry.ProductID, newStock); err != nil {
		return nil, decimal.Zero, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit ledger entry", zap.String("productId", entry.ProductID), zap.Error(err))
		return nil, decimal.Zero, err
	}

	s.logger.Info("stock entry recorded",
		zap.String("productId", entry.ProductID),
		zap.String("reason", entry.Reason),
		zap.String("delta", entry.Delta.String()),
		zap.String("currentStock", newStock.String()))

	return &entry, newStock, nil
}

// ExecuteProduction runs a precomputed production plan as one
// transaction: lock every involved product in plan.LockOrder, verify
// every component's sufficiency, then write one PRODUCTION_CONSUME
// entry per component and one PRODUCTION_YIELD entry for the produced
// product. If any component is short, nothing at all is written.
func (s *LedgerService) ExecuteProduction(ctx context.Context, plan dto.ProductionPlan) (*dto.ProductionRunResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	// Bloque 1: lock all rows in fixed ascending order.
	locked := make(map[string]*domain.Product, len(plan.LockOrder))
	for _, id := range plan.LockOrder {
		product, err := s.productRepo.FindByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = product
	}

	// Bloque 2: re-read the recipe under the owner's row lock and check
	// it still matches the plan. The recipe writer takes the same lock,
	// so a plan built from a recipe that changed in the meantime is
	// caught here instead of consuming the wrong components.
	fresh, err := s.recipeRepo.FindByProductTx(txCtx, tx, plan.ProductID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, ErrStalePlan
		}
		return nil, err
	}
	if !planMatchesRecipe(plan, fresh) {
		s.logger.Warn("production plan stale, recipe changed",
			zap.String("runId", plan.RunID),
			zap.String("productId", plan.ProductID))
		return nil, ErrStalePlan
	}

	// Bloque 3: sufficiency check for every component, before any write.
	for _, req := range plan.Requirements {
		component := locked[req.ComponentID]
		if component.CurrentStock.Cmp(req.Required) < 0 {
			s.logger.Warn("production run rejected, insufficient stock",
				zap.String("productId", plan.ProductID),
				zap.String("componentId", req.ComponentID),
				zap.String("required", req.Required.String()),
				zap.String("available", component.CurrentStock.String()))
			return nil, &domain.InsufficientStockError{
				ComponentID: req.ComponentID,
				Required:    req.Required,
				Available:   component.CurrentStock,
			}
		}
	}

	// Bloque 4: consume components and credit the yield.
	now := time.Now().UTC()
	runID := plan.RunID
	consumed := make([]dto.ConsumedComponent, 0, len(plan.Requirements))

	for _, req := range plan.Requirements {
		component := locked[req.ComponentID]
		entry := domain.StockEntry{
			ID:          uuid.New().String(),
			ProductID:   req.ComponentID,
			Delta:       req.Required.Neg(),
			Reason:      domain.ReasonProductionConsume,
			ReferenceID: &runID,
			CreatedAt:   now,
		}
		if err := s.entryRepo.Insert(txCtx, tx, entry); err != nil {
			return nil, err
		}
		newStock := component.CurrentStock.Sub(req.Required)
		if err := s.productRepo.UpdateStock(txCtx, tx, req.ComponentID, newStock); err != nil {
			return nil, err
		}
		consumed = append(consumed, dto.ConsumedComponent{
			ComponentID: req.ComponentID,
			Quantity:    req.Required,
		})
	}

	owner := locked[plan.ProductID]
	yieldEntry := domain.StockEntry{
		ID:          uuid.New().String(),
		ProductID:   plan.ProductID,
		Delta:       plan.Quantity,
		Reason:      domain.ReasonProductionYield,
		ReferenceID: &runID,
		CreatedAt:   now,
	}
	if err := s.entryRepo.Insert(txCtx, tx, yieldEntry); err != nil {
		return nil, err
	}
	if err := s.productRepo.UpdateStock(txCtx, tx, plan.ProductID, owner.CurrentStock.Add(plan.Quantity)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit production run",
			zap.String("productId", plan.ProductID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("production run committed",
		zap.String("runId", runID),
		zap.String("productId", plan.ProductID),
		zap.String("quantity", plan.Quantity.String()),
		zap.Int("componentsConsumed", len(consumed)))

	return &dto.ProductionRunResult{
		RunID:     runID,
		ProductID: plan.ProductID,
		Quantity:  plan.Quantity,
		Consumed:  consumed,
	}, nil
}

func (s *LedgerService) History(ctx context.Context, productID string, limit int) ([]domain.StockEntry, error) {
	return s.entryRepo.ListByProduct(ctx, productID, limit)
}

// planMatchesRecipe reports whether the recipe the plan was built from
// is still the stored one, line for line.
func planMatchesRecipe(plan dto.ProductionPlan, rec *domain.Recipe) bool {
	planYield := plan.Yield
	if planYield.IsZero() {
		planYield = domain.DefaultYield
	}
	recYield := rec.Yield
	if recYield.IsZero() {
		recYield = domain.DefaultYield
	}
	if !planYield.Equal(recYield) {
		return false
	}

	if len(plan.Lines) != len(rec.Lines) {
		return false
	}
	for i, line := range plan.Lines {
		other := rec.Lines[i]
		if line.ComponentID != other.ComponentID || line.Unit != other.Unit || !line.Quantity.Equal(other.Quantity) {
			return false
		}
	}
	return true
}
