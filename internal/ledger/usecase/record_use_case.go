package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hornada/internal/domain"
	"hornada/internal/dto"
	apperrors "hornada/internal/errors"
)

type RecordService interface {
	Record(ctx context.Context, entry domain.StockEntry) (*domain.StockEntry, decimal.Decimal, error)
	History(ctx context.Context, productID string, limit int) ([]domain.StockEntry, error)
}

type RecordUseCase struct {
	ledgerSvc RecordService
	logger    *zap.Logger
}

func NewRecordUseCase(ledgerSvc RecordService, logger *zap.Logger) *RecordUseCase {
	return &RecordUseCase{ledgerSvc: ledgerSvc, logger: logger}
}

// Record writes one stock-affecting fact: a receipt, a sale deduction
// coming from the checkout collaborator, or a manual adjustment.
// Production movements go through ProductionUseCase, never here.
func (uc *RecordUseCase) Record(ctx context.Context, req dto.RecordEntryRequest) (*dto.StockEntryDTO, error) {
	if !domain.ValidReason(req.Reason) {
		return nil, apperrors.NewValidationError("invalid reason",
			apperrors.ValidationDetail{Field: "reason", Message: "reason must be RECEIPT, PRODUCTION_CONSUME, PRODUCTION_YIELD, SALE or ADJUSTMENT"})
	}
	if req.Reason == domain.ReasonProductionConsume || req.Reason == domain.ReasonProductionYield {
		return nil, apperrors.NewValidationError("production entries are written by production runs",
			apperrors.ValidationDetail{Field: "reason", Message: "use the production-runs endpoint"})
	}
	if req.Delta.IsZero() {
		return nil, apperrors.NewValidationError("delta must not be zero",
			apperrors.ValidationDetail{Field: "delta", Message: "a zero delta records nothing"})
	}

	entry, newStock, err := uc.ledgerSvc.Record(ctx, domain.StockEntry{
		ProductID:   req.ProductID,
		Delta:       req.Delta,
		Reason:      req.Reason,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		return nil, err
	}

	return &dto.StockEntryDTO{
		ID:           entry.ID,
		ProductID:    entry.ProductID,
		Delta:        entry.Delta,
		Reason:       entry.Reason,
		ReferenceID:  entry.ReferenceID,
		CurrentStock: newStock,
		CreatedAt:    entry.CreatedAt,
	}, nil
}

func (uc *RecordUseCase) History(ctx context.Context, productID string, limit int) ([]dto.StockEntryDTO, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	entries, err := uc.ledgerSvc.History(ctx, productID, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]dto.StockEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, dto.StockEntryDTO{
			ID:          e.ID,
			ProductID:   e.ProductID,
			Delta:       e.Delta,
			Reason:      e.Reason,
			ReferenceID: e.ReferenceID,
			CreatedAt:   e.CreatedAt,
		})
	}
	return dtos, nil
}
