package recipe

import (
	"context"
	"database/sql"
	"sort"

	"go.uber.org/zap"

	"hornada/internal/domain"
	apperrors "hornada/internal/errors"
	"hornada/internal/infrastructure/mysql"
	"hornada/internal/units"
)

type recipeService struct {
	db        TransactionManager
	repo      Repository
	products  ProductReader
	refresher CostRefresher
	logger    *zap.Logger
}

func NewService(db TransactionManager, repo Repository, products ProductReader, refresher CostRefresher, logger *zap.Logger) Service {
	return &recipeService{
		db:        db,
		repo:      repo,
		products:  products,
		refresher: refresher,
		logger:    logger,
	}
}

// Set validates and persists a recipe all-or-nothing. On any violation
// the stored recipe, if one exists, is left untouched. The cycle check
// and the write share one transaction that holds row locks on the owner
// and every component, so two overlapping Sets cannot each pass the
// check and then commit the two halves of a cycle.
func (s *recipeService) Set(ctx context.Context, rec domain.Recipe) error {
	if rec.Yield.Sign() <= 0 {
		return apperrors.NewValidationError("yield must be positive",
			apperrors.ValidationDetail{Field: "yield", Message: "yield must be greater than zero"})
	}
	for _, line := range rec.Lines {
		if line.Quantity.Sign() <= 0 {
			return apperrors.NewValidationError("line quantity must be positive",
				apperrors.ValidationDetail{Field: "lines", Message: "quantity must be greater than zero"})
		}
	}

	// Bloque 1: lock the owner and every component row in ascending id
	// order, the same order production runs lock in, so concurrent
	// writers queue instead of deadlocking.
	seen := map[string]bool{rec.ProductID: true}
	ids := []string{rec.ProductID}
	for _, line := range rec.Lines {
		if !seen[line.ComponentID] {
			seen[line.ComponentID] = true
			ids = append(ids, line.ComponentID)
		}
	}
	sort.Strings(ids)

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return apperrors.NewInternalError("could not begin transaction", err)
	}
	defer tx.Rollback()

	locked := make(map[string]*domain.Product, len(ids))
	for _, id := range ids {
		product, err := s.products.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok && id != rec.ProductID {
				return &domain.UnknownComponentError{ComponentID: id}
			}
			return err
		}
		locked[id] = product
	}

	// Bloque 2: validate against the locked rows.
	if !locked[rec.ProductID].IsComposite() {
		return apperrors.NewValidationError("only SEMI_ELABORADO and PRODUCTO_TERMINADO products own recipes",
			apperrors.ValidationDetail{Field: "productId", Message: "product is an INSUMO"})
	}
	for _, line := range rec.Lines {
		comp := locked[line.ComponentID]
		if !units.Compatible(line.Unit, comp.MeasureUnit) {
			return &units.IncompatibleUnitsError{From: line.Unit, To: comp.MeasureUnit}
		}
	}

	if err := s.checkAcyclic(ctx, tx, rec); err != nil {
		return err
	}

	// Bloque 3: replace and commit under the same locks the check held.
	if err := s.repo.Replace(ctx, tx, rec); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("could not commit recipe", err)
	}

	s.logger.Info("recipe stored",
		zap.String("productId", rec.ProductID), zap.Int("lines", len(rec.Lines)))

	// The owner's roll-up cost changed, and so did every ancestor's.
	return s.refresher.RefreshAll(ctx)
}

func (s *recipeService) Get(ctx context.Context, productID string) (*domain.Recipe, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	rec, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			// Recipeless products answer with an empty recipe, not an error.
			return &domain.Recipe{ProductID: productID, Yield: domain.DefaultYield}, nil
		}
		return nil, err
	}
	return rec, nil
}

// checkAcyclic walks the stored edge set, with the candidate recipe's
// edges overriding the owner's current ones, and fails if the owner is
// reachable from any of its components.
func (s *recipeService) checkAcyclic(ctx context.Context, tx mysql.Tx, rec domain.Recipe) error {
	edges, err := s.repo.LoadEdges(ctx, tx)
	if err != nil {
		return err
	}

	next := make([]string, 0, len(rec.Lines))
	for _, line := range rec.Lines {
		next = append(next, line.ComponentID)
	}
	edges[rec.ProductID] = next

	var path []string
	visited := make(map[string]bool)

	var visit func(id string) *domain.CyclicRecipeError
	visit = func(id string) *domain.CyclicRecipeError {
		if id == rec.ProductID {
			return &domain.CyclicRecipeError{
				ProductID: rec.ProductID,
				Path:      append(append([]string{rec.ProductID}, path...), rec.ProductID),
			}
		}
		if visited[id] {
			return nil
		}
		visited[id] = true
		path = append(path, id)
		for _, child := range edges[id] {
			if cycleErr := visit(child); cycleErr != nil {
				return cycleErr
			}
		}
		path = path[:len(path)-1]
		return nil
	}

	for _, component := range next {
		if cycleErr := visit(component); cycleErr != nil {
			return cycleErr
		}
	}
	return nil
}
